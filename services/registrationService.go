package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/ibam-church/membership/models"
)

type ErrorKind string

const (
	ValidationError  ErrorKind = "validation"
	PersistenceError ErrorKind = "persistence"
)

// IntakeError is the structured failure of a registration. Message is
// safe to show a registrant; Detail is for operators only.
type IntakeError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Detail  string
}

func (e *IntakeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(code, message string) *IntakeError {
	return &IntakeError{Kind: ValidationError, Code: code, Message: message}
}

// Registration is a submission that passed validation, already in the
// shape it will be stored in.
type Registration struct {
	Person      models.Person
	MinistryIDs []models.EntityID
	CellID      models.EntityID
}

const (
	minNameLength  = 3
	minPhoneDigits = 10
)

// ValidateRegistration re-checks every rule of the public form and
// normalizes the payload. It never trusts the caller to have validated.
func ValidateRegistration(payload models.RegistrationPayload) (Registration, *IntakeError) {
	f := payload.Form
	if f == nil {
		return Registration{}, invalid("missing_form", "Formulário ausente")
	}

	name := strings.TrimSpace(f.Name)
	if len([]rune(name)) < minNameLength {
		return Registration{}, invalid("invalid_name", "Nome inválido")
	}

	phone := DigitsOnly(f.Phone)
	if len(phone) < minPhoneDigits {
		return Registration{}, invalid("invalid_phone", "Telefone inválido")
	}

	rawBirth := strings.TrimSpace(f.Birth_Date)
	if rawBirth == "" {
		return Registration{}, invalid("missing_birth_date", "Nascimento obrigatório")
	}
	birth, err := models.ParseDate(rawBirth)
	if err != nil {
		return Registration{}, invalid("invalid_birth_date", "Data de nascimento inválida")
	}

	zone := strings.TrimSpace(f.Zone)
	if zone == "" {
		return Registration{}, invalid("missing_zone", "Zona obrigatória")
	}

	if !f.Baptized.IsAnswered() {
		return Registration{}, invalid("invalid_baptized", "Batismo inválido")
	}
	if f.Baptized.IsFalse() && !f.Baptism_Contact.IsAnswered() {
		return Registration{}, invalid("missing_baptism_contact", "Interesse no batismo obrigatório")
	}

	optIn := f.Address_Opt_In.IsTrue()
	if f.Wants_Visit.IsTrue() && !optIn {
		return Registration{}, invalid("visit_requires_address", "Visita requer endereço")
	}

	var street, houseNumber, complement, neighborhood, city, reference *string
	if optIn {
		street = trimmedOrNil(f.Street)
		houseNumber = trimmedOrNil(f.House_Number)
		complement = trimmedOrNil(f.Complement)
		neighborhood = trimmedOrNil(f.Neighborhood)
		city = trimmedOrNil(f.City)
		reference = trimmedOrNil(f.Reference)

		switch {
		case street == nil:
			return Registration{}, invalid("missing_street", "Informe a rua.")
		case houseNumber == nil:
			return Registration{}, invalid("missing_house_number", "Informe o número.")
		case neighborhood == nil:
			return Registration{}, invalid("missing_neighborhood", "Informe o bairro.")
		case city == nil:
			return Registration{}, invalid("missing_city", "Informe a cidade.")
		}
	}

	// old producers send declaration_true/consent_internal
	consentTruth := f.Declaration_True.IsTrue() || f.Consent_Truth.IsTrue()
	consentData := f.Consent_Internal.IsTrue() || f.Consent_Data.IsTrue()
	if !consentTruth || !consentData {
		return Registration{}, invalid("missing_consent", "Confirmações obrigatórias")
	}

	var baptismContact *bool
	if f.Baptized.IsFalse() {
		baptismContact = f.Baptism_Contact.Bool()
	}

	person := models.Person{
		Name:            name,
		Phone:           phone,
		Birth_Date:      birth,
		Zone:            zone,
		Baptized:        f.Baptized.IsTrue(),
		Baptism_Contact: baptismContact,
		Address_Opt_In:  optIn,
		Wants_Visit:     optIn && f.Wants_Visit.IsTrue(),
		Street:          street,
		House_Number:    houseNumber,
		Complement:      complement,
		Neighborhood:    neighborhood,
		City:            city,
		Reference:       reference,
		Wants_Ministry:  f.Wants_Ministry.IsTrue(),
		Wants_Cell:      f.Wants_Cell.IsTrue(),
		Consent_Truth:   consentTruth,
		Consent_Data:    consentData,
	}

	return Registration{
		Person:      person,
		MinistryIDs: models.UniqueEntityIDs(payload.SelectedMinistries),
		CellID:      models.ParseEntityID(payload.SelectedCell.String()),
	}, nil
}

// RegistrationService is the trusted write path for public registrations.
type RegistrationService struct {
	store RegistrationStore
	newID func() string
}

func NewRegistrationService(store RegistrationStore) *RegistrationService {
	return &RegistrationService{
		store: store,
		newID: func() string { return uuid.New().String() },
	}
}

// Register validates the payload and writes the person plus their
// ministry and cell rows. The store has no multi-statement transaction
// here, so a failed join insert deletes the person it just wrote: either
// everything is stored or nothing is.
func (s *RegistrationService) Register(ctx context.Context, payload models.RegistrationPayload) (models.Person, *IntakeError) {
	reg, ierr := ValidateRegistration(payload)
	if ierr != nil {
		registrationsTotal.WithLabelValues(outcomeValidationError).Inc()
		return models.Person{}, ierr
	}

	person := reg.Person
	person.ID = s.newID()
	person.Created_At = time.Now()

	if err := s.store.InsertPerson(ctx, person); err != nil {
		log.Printf("Insert people failed: %v", err)
		registrationsTotal.WithLabelValues(outcomePersistenceError).Inc()
		return models.Person{}, &IntakeError{
			Kind:    PersistenceError,
			Code:    "insert_people_failed",
			Message: "Insert people failed",
			Detail:  err.Error(),
		}
	}

	if len(reg.MinistryIDs) > 0 {
		rows := make([]models.PersonMinistry, 0, len(reg.MinistryIDs))
		for _, id := range reg.MinistryIDs {
			rows = append(rows, models.PersonMinistry{Person_ID: person.ID, Ministry_ID: id})
		}
		if err := s.store.InsertPersonMinistries(ctx, rows); err != nil {
			log.Printf("Insert people_ministries failed for person %s: %v", person.ID, err)
			s.rollback(ctx, person.ID)
			return models.Person{}, &IntakeError{
				Kind:    PersistenceError,
				Code:    "insert_people_ministries_failed",
				Message: "Insert people_ministries failed",
				Detail:  err.Error(),
			}
		}
	}

	if !reg.CellID.IsZero() {
		row := models.PersonCell{Person_ID: person.ID, Cell_ID: reg.CellID}
		if err := s.store.InsertPersonCell(ctx, row); err != nil {
			log.Printf("Insert people_cells failed for person %s: %v", person.ID, err)
			s.rollback(ctx, person.ID)
			return models.Person{}, &IntakeError{
				Kind:    PersistenceError,
				Code:    "insert_people_cells_failed",
				Message: "Insert people_cells failed",
				Detail:  err.Error(),
			}
		}
	}

	registrationsTotal.WithLabelValues(outcomeCreated).Inc()
	return person, nil
}

// rollback is best effort; a failure here is logged and swallowed so the
// caller still reports the original error.
func (s *RegistrationService) rollback(ctx context.Context, personID string) {
	registrationsTotal.WithLabelValues(outcomePersistenceError).Inc()
	registrationRollbacksTotal.Inc()
	if err := s.store.DeletePerson(ctx, personID); err != nil {
		log.Printf("Rollback of person %s failed: %v", personID, err)
	}
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimFunc(*s, unicode.IsSpace)
	if t == "" {
		return nil
	}
	return &t
}

// Response renders the error for the intake endpoint.
func (e *IntakeError) Response() models.RegistrationResponse {
	return models.RegistrationResponse{
		OK:     false,
		Error:  e.Message,
		Detail: e.Detail,
		Kind:   string(e.Kind),
		Code:   e.Code,
	}
}
