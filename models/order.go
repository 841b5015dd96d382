package models

import "time"

// CartItem is one line of a client-submitted cart. Name and Price are
// client-side snapshots; invoice pricing always resolves against the
// menu table by ID.
type CartItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
}

// Order is a finalized, paid order. Rows are append-only.
type Order struct {
	ID         int64
	UserID     int64
	Items      []CartItem
	TotalPrice float64
	CreatedAt  time.Time
}

// PricedLine is one resolved invoice line. Amount is in minor currency
// units (cents).
type PricedLine struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Invoice is the request handed to the external invoice issuer.
type Invoice struct {
	Title         string
	Description   string
	Payload       string
	ProviderToken string
	Currency      string
	Prices        []PricedLine
}
