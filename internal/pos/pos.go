// Package pos turns carts into committed sales and records stock movements.
package pos

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
	"pharmapos/m/internal/cart"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("payment method must be Cash, Card or Mobile")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInvalidStockType     = errors.New("type must be in, out or adjustment")
	ErrInsufficientTender   = errors.New("amount tendered is less than the total")
)

// Store is the persistence the POS needs. *store.Store satisfies it.
type Store interface {
	GetMedicine(ctx context.Context, id int64) (domain.Medicine, error)
	GetSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, st *domain.Settings) error
	CommitSale(ctx context.Context, txn *domain.Transaction) ([]int64, error)
	AddStockEntry(ctx context.Context, entry *domain.StockEntry) error
	ListStockEntries(ctx context.Context, medicineID *int64, limit int) ([]domain.StockEntry, error)
}

// Service runs the cart, checkout and ledger workflows.
type Service struct {
	store          Store
	carts          *cart.Registry
	defaultTaxRate float64
	now            func() time.Time
}

// New returns a Service. defaultTaxRate is a percentage used when no store
// settings have been saved.
func New(st Store, carts *cart.Registry, defaultTaxRate float64) *Service {
	return &Service{
		store:          st,
		carts:          carts,
		defaultTaxRate: defaultTaxRate,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// TaxRate returns the percentage applied at checkout.
func (s *Service) TaxRate(ctx context.Context) (float64, error) {
	st, err := s.Settings(ctx)
	if err != nil {
		return 0, err
	}
	return st.TaxRate, nil
}
