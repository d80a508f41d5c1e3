package models

type Cell struct {
	ID           EntityID `json:"id" goqu:"skipinsert"`
	Name         string   `json:"name"`
	Leaders      *string  `json:"leaders"`
	Whatsapp     *string  `json:"whatsapp"`
	Zone         *string  `json:"zone"`
	Neighborhood *string  `json:"neighborhood"`
	Weekday      *string  `json:"weekday"`
	Time         *string  `json:"time"`
	Address      *string  `json:"address"`
	Is_Active    bool     `json:"is_active"`
}

type CellWrite struct {
	Name         string  `json:"name"`
	Leaders      *string `json:"leaders"`
	Whatsapp     *string `json:"whatsapp"`
	Zone         *string `json:"zone"`
	Neighborhood *string `json:"neighborhood"`
	Weekday      *string `json:"weekday"`
	Time         *string `json:"time"`
	Address      *string `json:"address"`
	Is_Active    *bool   `json:"is_active"`
}
