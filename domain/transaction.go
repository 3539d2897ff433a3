package domain

import "time"

const (
	PaymentCash   = "Cash"
	PaymentCard   = "Card"
	PaymentMobile = "Mobile"

	PaymentPaid      = "paid"
	PaymentPending   = "pending"
	PaymentCancelled = "cancelled"
)

// Transaction is a completed sale. It is never updated once stored.
type Transaction struct {
	ID             string            `db:"id" json:"id"`
	CustomerID     *int64            `db:"customer_id" json:"customer_id,omitempty"`
	Subtotal       float64           `db:"subtotal" json:"subtotal"`
	TaxRate        float64           `db:"tax_rate" json:"tax_rate"`
	Tax            float64           `db:"tax" json:"tax"`
	Discount       float64           `db:"discount" json:"discount"`
	Total          float64           `db:"total" json:"total"`
	AmountTendered float64           `db:"amount_tendered" json:"amount_tendered"`
	Change         float64           `db:"change_due" json:"change"`
	PaymentMethod  string            `db:"payment_method" json:"payment_method"`
	PaymentStatus  string            `db:"payment_status" json:"payment_status"`
	CashierID      int64             `db:"cashier_id" json:"cashier_id"`
	Cashier        string            `db:"cashier" json:"cashier"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	Items          []TransactionItem `db:"-" json:"items"`
}

type TransactionItem struct {
	TransactionID string  `db:"transaction_id" json:"-"`
	Position      int     `db:"position" json:"-"`
	MedicineID    int64   `db:"medicine_id" json:"medicine_id"`
	Name          string  `db:"name" json:"name"`
	Strength      string  `db:"strength" json:"strength"`
	Quantity      int64   `db:"quantity" json:"quantity"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price"`
	Subtotal      float64 `db:"subtotal" json:"subtotal"`
}

// SalesSummary aggregates transactions over a period.
type SalesSummary struct {
	Revenue    float64 `db:"revenue" json:"revenue"`
	SalesCount int64   `db:"sales_count" json:"sales_count"`
}
