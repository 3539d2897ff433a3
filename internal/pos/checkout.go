package pos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"pharmapos/m/domain"
)

// CheckoutRequest carries the payment details of a sale.
type CheckoutRequest struct {
	CustomerID     *int64  `json:"customer_id"`
	Discount       float64 `json:"discount"`
	PaymentMethod  string  `json:"payment_method"`
	AmountTendered float64 `json:"amount_tendered"`
}

// Checkout commits the session's cart as a paid transaction made by cashier.
//
// Stock is decremented and "out" ledger entries are written in the same
// database transaction as the sale record. If any product lacks stock the
// sale is rolled back and the cart is left as it was. Once the sale is
// stored the cart is cleared. The tendered amount must cover the total
// computed from the same cart snapshot and tax rate that the sale records.
func (s *Service) Checkout(ctx context.Context, session int64, cashier domain.User, req CheckoutRequest) (domain.Transaction, error) {
	c := s.carts.Get(session)
	lines := c.Lines()
	if len(lines) == 0 {
		return domain.Transaction{}, ErrEmptyCart
	}
	if !validPaymentMethod(req.PaymentMethod) {
		return domain.Transaction{}, ErrInvalidPaymentMethod
	}

	rate, err := s.TaxRate(ctx)
	if err != nil {
		return domain.Transaction{}, errors.Wrap(err, "load tax rate")
	}
	totals := ComputeTotals(lines, rate, req.Discount)
	if req.AmountTendered < totals.Total {
		return domain.Transaction{}, ErrInsufficientTender
	}

	txn := domain.Transaction{
		ID:             uuid.NewString(),
		CustomerID:     req.CustomerID,
		Subtotal:       totals.Subtotal,
		TaxRate:        totals.TaxRate,
		Tax:            totals.Tax,
		Discount:       totals.Discount,
		Total:          totals.Total,
		AmountTendered: req.AmountTendered,
		Change:         Change(req.AmountTendered, totals.Total),
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  domain.PaymentPaid,
		CashierID:      cashier.ID,
		Cashier:        cashier.Username,
		CreatedAt:      s.now(),
		Items:          make([]domain.TransactionItem, 0, len(lines)),
	}
	for _, l := range lines {
		txn.Items = append(txn.Items, domain.TransactionItem{
			MedicineID: l.Product.ID,
			Name:       l.Product.Name,
			Strength:   l.Product.Strength,
			Quantity:   l.Quantity,
			UnitPrice:  l.Product.Price,
			Subtotal:   l.Subtotal,
		})
	}

	skipped, err := s.store.CommitSale(ctx, &txn)
	if err != nil {
		return domain.Transaction{}, err
	}
	c.Clear()

	for _, id := range skipped {
		log.Warn().Str("transaction_id", txn.ID).Int64("medicine_id", id).
			Msg("medicine no longer exists, stock not adjusted")
	}
	log.Info().Str("transaction_id", txn.ID).Int("items", len(txn.Items)).
		Float64("total", txn.Total).Str("cashier", txn.Cashier).Msg("sale committed")
	return txn, nil
}

func validPaymentMethod(m string) bool {
	switch m {
	case domain.PaymentCash, domain.PaymentCard, domain.PaymentMobile:
		return true
	}
	return false
}
