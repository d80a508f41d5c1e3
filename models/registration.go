package models

// RegistrationForm is the "form" object of an intake request. Both
// spellings of the two consent flags are accepted on the wire.
type RegistrationForm struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Birth_Date      string `json:"birth_date"`
	Baptized        Answer `json:"baptized"`
	Baptism_Contact Answer `json:"baptism_contact"`
	Zone            string `json:"zone"`

	Address_Opt_In Answer   `json:"address_opt_in"`
	Wants_Visit    Answer   `json:"wants_visit"`
	Street         *string  `json:"street"`
	House_Number   *string  `json:"house_number"`
	Complement     *string  `json:"complement"`
	Neighborhood   *string  `json:"neighborhood"`
	City           *string  `json:"city"`
	Reference      *string  `json:"reference"`

	Wants_Ministry Answer `json:"wants_ministry"`
	Wants_Cell     Answer `json:"wants_cell"`

	// legacy producers
	Declaration_True Answer `json:"declaration_true,omitempty"`
	Consent_Internal Answer `json:"consent_internal,omitempty"`

	Consent_Truth Answer `json:"consent_truth,omitempty"`
	Consent_Data  Answer `json:"consent_data,omitempty"`
}

// RegistrationPayload is the body accepted by the public intake endpoint.
type RegistrationPayload struct {
	Form               *RegistrationForm `json:"form"`
	SelectedMinistries EntityIDList      `json:"selectedMinistries"`
	SelectedCell       EntityID          `json:"selectedCell"`
}

type RegistrationResponse struct {
	OK     bool   `json:"ok"`
	ID     string `json:"id,omitempty"`
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Code   string `json:"code,omitempty"`
}
