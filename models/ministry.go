package models

type Ministry struct {
	ID   EntityID `json:"id" goqu:"skipinsert"`
	Name string   `json:"name"`
}

type MinistryWrite struct {
	Name string `json:"name"`
}
