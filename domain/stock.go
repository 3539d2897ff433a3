package domain

import "time"

const (
	StockIn         = "in"
	StockOut        = "out"
	StockAdjustment = "adjustment"
)

// StockEntry is one movement in the append-only stock ledger.
type StockEntry struct {
	ID          string    `db:"id" json:"id"`
	MedicineID  int64     `db:"medicine_id" json:"medicine_id"`
	ProductName string    `db:"product_name" json:"product_name"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	Type        string    `db:"type" json:"type"`
	Reason      string    `db:"reason" json:"reason"`
	Supplier    *string   `db:"supplier" json:"supplier,omitempty"`
	Cost        *float64  `db:"cost" json:"cost,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"date"`
}

// ValidStockType reports whether t names a ledger movement.
func ValidStockType(t string) bool {
	return t == StockIn || t == StockOut || t == StockAdjustment
}

// SaleReason is the ledger reason recorded for stock sold in a transaction.
func SaleReason(transactionID string) string {
	return "Sale - Transaction ID: " + transactionID
}
