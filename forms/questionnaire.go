// Package forms holds the guided registration questionnaire: the answers a
// registrant gives, the branches that clear downstream answers, first-pass
// validation and the submission payload sent to the intake endpoint.
package forms

import (
	"strings"
	"unicode/utf8"

	"github.com/ibam-church/membership/models"
)

const (
	DefaultCity = "Porto Velho"
	maxPhone    = 11
)

// Field names the tri-state questions.
type Field string

const (
	FieldBaptized       Field = "baptized"
	FieldBaptismContact Field = "baptism_contact"
	FieldInMinistry     Field = "in_ministry"
	FieldWantsMinistry  Field = "wants_ministry"
	FieldInCell         Field = "in_cell"
	FieldWantsCell      Field = "wants_cell"
)

type Questionnaire struct {
	Name      string
	Phone     string
	BirthDate string
	Zone      string

	Baptized       models.Answer
	BaptismContact models.Answer

	AddressOptIn bool
	WantsVisit   bool
	Street       string
	HouseNumber  string
	Complement   string
	Neighborhood string
	City         string
	Reference    string

	InMinistry    models.Answer
	WantsMinistry models.Answer
	InCell        models.Answer
	WantsCell     models.Answer

	ConsentTruth bool
	ConsentData  bool

	SelectedMinistries []models.EntityID
	SelectedCell       models.EntityID
}

func New() *Questionnaire {
	q := &Questionnaire{}
	q.Reset()
	return q
}

// Reset puts every answer back to its initial value.
func (q *Questionnaire) Reset() {
	*q = Questionnaire{City: DefaultCity}
}

// SetPhone keeps at most eleven digits of what was typed.
func (q *Questionnaire) SetPhone(v string) {
	q.Phone = normalizePhone(v)
}

func normalizePhone(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == maxPhone {
				break
			}
		}
	}
	return b.String()
}

// SetAnswer sets a tri-state question and clears the answers that depend
// on it.
func (q *Questionnaire) SetAnswer(f Field, a models.Answer) {
	switch f {
	case FieldBaptized:
		q.Baptized = a
		if a != models.No {
			q.BaptismContact = models.Unanswered
		}
	case FieldBaptismContact:
		q.BaptismContact = a
	case FieldInMinistry:
		q.InMinistry = a
		q.WantsMinistry = models.Unanswered
		if a != models.Yes {
			q.SelectedMinistries = nil
		}
	case FieldWantsMinistry:
		q.WantsMinistry = a
		if a != models.Yes {
			q.SelectedMinistries = nil
		}
	case FieldInCell:
		q.InCell = a
		q.WantsCell = models.Unanswered
		if a != models.Yes {
			q.SelectedCell = ""
		}
	case FieldWantsCell:
		q.WantsCell = a
		if a != models.Yes {
			q.SelectedCell = ""
		}
	}
}

// ToggleMinistry adds id to the selection, or removes it when present.
func (q *Questionnaire) ToggleMinistry(id models.EntityID) {
	for i, x := range q.SelectedMinistries {
		if x == id {
			q.SelectedMinistries = append(q.SelectedMinistries[:i:i], q.SelectedMinistries[i+1:]...)
			return
		}
	}
	q.SelectedMinistries = append(q.SelectedMinistries, id)
}

func (q *Questionnaire) SelectCell(id models.EntityID) {
	q.SelectedCell = id
}

func (q *Questionnaire) ShowMinistryPicker() bool {
	return q.InMinistry == models.Yes || (q.InMinistry == models.No && q.WantsMinistry == models.Yes)
}

func (q *Questionnaire) ShowCellPicker() bool {
	return q.InCell == models.Yes || (q.InCell == models.No && q.WantsCell == models.Yes)
}

func (q *Questionnaire) ShowAddressFields() bool {
	return q.AddressOptIn
}

// Submission builds the payload for the intake endpoint. Answers hidden by
// an upstream choice are dropped.
func (q *Questionnaire) Submission() models.RegistrationPayload {
	form := &models.RegistrationForm{
		Name:           strings.TrimSpace(q.Name),
		Phone:          normalizePhone(q.Phone),
		Birth_Date:     q.BirthDate,
		Baptized:       q.Baptized,
		Zone:           strings.TrimSpace(q.Zone),
		Address_Opt_In: models.AnswerOf(q.AddressOptIn),
		Wants_Visit:    models.AnswerOf(q.AddressOptIn && q.WantsVisit),
		Wants_Ministry: models.AnswerOf(q.ShowMinistryPicker()),
		Wants_Cell:     models.AnswerOf(q.ShowCellPicker()),
		Consent_Truth:  models.AnswerOf(q.ConsentTruth),
		Consent_Data:   models.AnswerOf(q.ConsentData),
	}
	if q.Baptized == models.No {
		form.Baptism_Contact = q.BaptismContact
	}
	if q.AddressOptIn {
		form.Street = trimmed(q.Street)
		form.House_Number = trimmed(q.HouseNumber)
		form.Complement = trimmedOrNil(q.Complement)
		form.Neighborhood = trimmed(q.Neighborhood)
		form.City = trimmed(q.City)
		form.Reference = trimmedOrNil(q.Reference)
	}

	payload := models.RegistrationPayload{
		Form:               form,
		SelectedMinistries: models.EntityIDList{},
	}
	if q.ShowMinistryPicker() {
		payload.SelectedMinistries = append(models.EntityIDList{}, q.SelectedMinistries...)
	}
	if q.ShowCellPicker() {
		payload.SelectedCell = q.SelectedCell
	}
	return payload
}

func trimmed(s string) *string {
	t := strings.TrimSpace(s)
	return &t
}

func trimmedOrNil(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
