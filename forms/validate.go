package forms

import "github.com/ibam-church/membership/models"

// ValidationError is the first rule the questionnaire breaks. Message is
// shown to the registrant as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func warn(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Validate runs the checks in the order the questions are asked and
// stops at the first failure.
func (q *Questionnaire) Validate() *ValidationError {
	if runeLen(q.Name) < 3 {
		return warn("name", "Digite seu nome completo.")
	}
	if len(normalizePhone(q.Phone)) < 10 {
		return warn("phone", "Digite um telefone válido com DDD.")
	}
	if q.BirthDate == "" {
		return warn("birth_date", "Informe sua data de nascimento.")
	}
	if blank(q.Zone) {
		return warn("zone", "Selecione sua zona.")
	}

	if !q.Baptized.IsAnswered() {
		return warn("baptized", "Responda se você é batizado.")
	}
	if q.Baptized == models.No && !q.BaptismContact.IsAnswered() {
		return warn("baptism_contact", "Você tem interesse em conversar sobre o batismo?")
	}

	if q.WantsVisit && !q.AddressOptIn {
		return warn("wants_visit", "Para solicitar visita, marque que deseja cadastrar o endereço.")
	}
	if q.AddressOptIn {
		switch {
		case blank(q.Street):
			return warn("street", "Informe a rua.")
		case blank(q.HouseNumber):
			return warn("house_number", "Informe o número.")
		case blank(q.Neighborhood):
			return warn("neighborhood", "Informe o bairro.")
		case blank(q.City):
			return warn("city", "Informe a cidade.")
		}
	}

	if !q.InMinistry.IsAnswered() {
		return warn("in_ministry", "Responda sobre ministério.")
	}
	if q.InMinistry == models.No && !q.WantsMinistry.IsAnswered() {
		return warn("wants_ministry", "Você deseja participar de um ministério?")
	}
	if q.ShowMinistryPicker() && len(q.SelectedMinistries) == 0 {
		return warn("selected_ministries", "Selecione pelo menos um ministério.")
	}

	if !q.InCell.IsAnswered() {
		return warn("in_cell", "Responda sobre célula.")
	}
	if q.InCell == models.No && !q.WantsCell.IsAnswered() {
		return warn("wants_cell", "Você deseja participar de uma célula?")
	}
	if q.ShowCellPicker() && q.SelectedCell.IsZero() {
		return warn("selected_cell", "Selecione sua célula.")
	}

	if !q.ConsentTruth {
		return warn("consent_truth", "Confirme que as informações são verdadeiras.")
	}
	if !q.ConsentData {
		return warn("consent_data", "Confirme o consentimento de uso interno.")
	}
	return nil
}
