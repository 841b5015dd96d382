package models

type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Emoji       string  `json:"emoji"`
	IsActive    bool    `json:"is_active"`
}
