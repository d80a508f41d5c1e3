package forms

import (
	"strings"

	"github.com/ibam-church/membership/models"
)

// Answers is a complete set of questionnaire answers as sent by a client
// that keeps its own form state.
type Answers struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Birth_Date string `json:"birth_date"`
	Zone       string `json:"zone"`

	Baptized        models.Answer `json:"baptized"`
	Baptism_Contact models.Answer `json:"baptism_contact"`

	Address_Opt_In bool   `json:"address_opt_in"`
	Wants_Visit    bool   `json:"wants_visit"`
	Street         string `json:"street"`
	House_Number   string `json:"house_number"`
	Complement     string `json:"complement"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	Reference      string `json:"reference"`

	In_Ministry    models.Answer `json:"in_ministry"`
	Wants_Ministry models.Answer `json:"wants_ministry"`
	In_Cell        models.Answer `json:"in_cell"`
	Wants_Cell     models.Answer `json:"wants_cell"`

	Consent_Truth bool `json:"consent_truth"`
	Consent_Data  bool `json:"consent_data"`

	SelectedMinistries models.EntityIDList `json:"selectedMinistries"`
	SelectedCell       models.EntityID     `json:"selectedCell"`
}

// FromAnswers fills a fresh questionnaire by answering each question in
// the order it is asked, so the usual branch clearing applies.
func FromAnswers(a Answers) *Questionnaire {
	q := New()
	q.Name = a.Name
	q.SetPhone(a.Phone)
	q.BirthDate = a.Birth_Date
	q.Zone = a.Zone

	q.SetAnswer(FieldBaptized, a.Baptized)
	if q.Baptized == models.No {
		q.SetAnswer(FieldBaptismContact, a.Baptism_Contact)
	}

	q.AddressOptIn = a.Address_Opt_In
	q.WantsVisit = a.Wants_Visit
	q.Street = a.Street
	q.HouseNumber = a.House_Number
	q.Complement = a.Complement
	q.Neighborhood = a.Neighborhood
	if a.City != "" {
		q.City = a.City
	}
	q.Reference = a.Reference

	q.SetAnswer(FieldInMinistry, a.In_Ministry)
	if q.InMinistry == models.No {
		q.SetAnswer(FieldWantsMinistry, a.Wants_Ministry)
	}
	if q.ShowMinistryPicker() {
		for _, id := range models.UniqueEntityIDs(a.SelectedMinistries) {
			q.ToggleMinistry(id)
		}
	}

	q.SetAnswer(FieldInCell, a.In_Cell)
	if q.InCell == models.No {
		q.SetAnswer(FieldWantsCell, a.Wants_Cell)
	}
	if q.ShowCellPicker() {
		q.SelectCell(a.SelectedCell)
	}

	q.ConsentTruth = a.Consent_Truth
	q.ConsentData = a.Consent_Data
	return q
}

// ParseAnswerText reads a yes/no cell typed by a person: "sim", "s",
// "yes", "true", "1" or "não", "nao", "n", "no", "false", "0". Anything
// else is unanswered.
func ParseAnswerText(s string) models.Answer {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sim", "s", "yes", "y", "true", "1", "x":
		return models.Yes
	case "não", "nao", "n", "no", "false", "0":
		return models.No
	default:
		return models.Unanswered
	}
}
