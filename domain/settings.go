package domain

import "time"

// Settings is the store profile printed on receipts. TaxRate is a percentage.
type Settings struct {
	StoreName string    `db:"store_name" json:"store_name"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	Currency  string    `db:"currency" json:"currency"`
	TaxRate   float64   `db:"tax_rate" json:"tax_rate"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
