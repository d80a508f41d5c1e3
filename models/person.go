package models

import "time"

// Person is one row of the people table. The consent columns keep their
// historical names in the database.
type Person struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Birth_Date      Date      `json:"birth_date"`
	Zone            string    `json:"zone"`
	Baptized        bool      `json:"baptized"`
	Baptism_Contact *bool     `json:"baptism_contact"`
	Address_Opt_In  bool      `json:"address_opt_in"`
	Wants_Visit     bool      `json:"wants_visit"`
	Street          *string   `json:"street"`
	House_Number    *string   `json:"house_number"`
	Complement      *string   `json:"complement"`
	Neighborhood    *string   `json:"neighborhood"`
	City            *string   `json:"city"`
	Reference       *string   `json:"reference"`
	Wants_Ministry  bool      `json:"wants_ministry"`
	Wants_Cell      bool      `json:"wants_cell"`
	Consent_Truth   bool      `json:"consent_truth" db:"declaration_true"`
	Consent_Data    bool      `json:"consent_data" db:"consent_internal"`
	Created_At      time.Time `json:"created_at" goqu:"skipinsert"`
}

// WantsBaptismConversation is true for unbaptized registrants who asked
// to talk about baptism.
func (p Person) WantsBaptismConversation() bool {
	return !p.Baptized && p.Baptism_Contact != nil && *p.Baptism_Contact
}
