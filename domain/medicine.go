package domain

import "time"

// Medicine is a catalog entry sold at the counter.
type Medicine struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	CategoryID     int64     `db:"category_id" json:"category_id"`
	Category       string    `db:"category_name" json:"category"`
	DosageForm     string    `db:"dosage_form" json:"dosage_form"`
	Strength       string    `db:"strength" json:"strength"`
	Manufacturer   string    `db:"manufacturer" json:"manufacturer"`
	Indication     string    `db:"indication" json:"indication"`
	Classification string    `db:"classification" json:"classification"`
	Price          float64   `db:"price" json:"price"`
	Cost           *float64  `db:"cost" json:"cost,omitempty"`
	Stock          int64     `db:"stock" json:"stock"`
	MinStock       int64     `db:"min_stock" json:"min_stock"`
	Barcode        string    `db:"barcode" json:"barcode"`
	SKU            string    `db:"sku" json:"sku"`
	ExpiryDate     *string   `db:"expiry_date" json:"expiry_date,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// LowStock reports whether the medicine is at or below its alert threshold.
func (m Medicine) LowStock() bool {
	return m.Stock <= m.MinStock
}

// MedicinePage is one page of a catalog listing.
type MedicinePage struct {
	Data  []Medicine `json:"data"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
}
