package models

type PersonMinistry struct {
	Person_ID   string   `json:"person_id"`
	Ministry_ID EntityID `json:"ministry_id"`
}

type PersonCell struct {
	Person_ID string   `json:"person_id"`
	Cell_ID   EntityID `json:"cell_id"`
}
