package pos

import (
	"github.com/shopspring/decimal"

	"pharmapos/m/internal/cart"
)

// Totals is the money breakdown of a sale. TaxRate is a percentage.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	TaxRate  float64 `json:"tax_rate"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals sums lines and applies tax and a flat discount. Nothing is
// rounded and a discount larger than the taxed subtotal yields a negative
// total.
func ComputeTotals(lines []cart.Line, taxRate, discount float64) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.Subtotal))
	}
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Div(hundred)
	total := subtotal.Add(tax).Sub(decimal.NewFromFloat(discount))

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		TaxRate:  taxRate,
		Tax:      tax.InexactFloat64(),
		Discount: discount,
		Total:    total.InexactFloat64(),
	}
}

// Change returns tendered minus total.
func Change(tendered, total float64) float64 {
	return decimal.NewFromFloat(tendered).Sub(decimal.NewFromFloat(total)).InexactFloat64()
}
