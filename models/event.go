package models

type Event struct {
	ID         EntityID `json:"id" goqu:"skipinsert"`
	Title      string   `json:"title"`
	Start_Date Date     `json:"start_date"`
	End_Date   *Date    `json:"end_date"`
	Time       *string  `json:"time"`
	Location   *string  `json:"location"`
	Price      *string  `json:"price"`
	Notes      *string  `json:"notes"`
	Is_Public  bool     `json:"is_public"`
}

type EventWrite struct {
	Title      string  `json:"title"`
	Start_Date string  `json:"start_date"`
	End_Date   *string `json:"end_date"`
	Time       *string `json:"time"`
	Location   *string `json:"location"`
	Price      *string `json:"price"`
	Notes      *string `json:"notes"`
	Is_Public  *bool   `json:"is_public"`
}
