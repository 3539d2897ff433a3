package pos

import (
	"context"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
	"pharmapos/m/internal/store"
)

var ErrInvalidTaxRate = errors.New("tax_rate must not be negative")

// Settings returns the saved store profile, or defaults carrying the
// configured tax rate when nothing has been saved.
func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	st, err := s.store.GetSettings(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Settings{Currency: "USD", TaxRate: s.defaultTaxRate}, nil
	}
	return st, err
}

// SaveSettings validates and stores the store profile. The saved tax rate
// applies to every later checkout.
func (s *Service) SaveSettings(ctx context.Context, st *domain.Settings) error {
	if st.TaxRate < 0 {
		return ErrInvalidTaxRate
	}
	if st.Currency == "" {
		st.Currency = "USD"
	}
	return s.store.SaveSettings(ctx, st)
}
