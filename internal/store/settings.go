package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
)

// GetSettings returns the stored store profile, or ErrNotFound when none
// has been saved yet.
func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	var st domain.Settings
	err := s.db.GetContext(ctx, &st, `SELECT store_name, address, phone, email, currency, tax_rate, updated_at FROM settings WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return st, ErrNotFound
	}
	return st, errors.Wrap(err, "load settings")
}

func (s *Store) SaveSettings(ctx context.Context, st *domain.Settings) error {
	st.UpdatedAt = s.now()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO settings (id, store_name, address, phone, email, currency, tax_rate, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET store_name = excluded.store_name, address = excluded.address,
			phone = excluded.phone, email = excluded.email, currency = excluded.currency,
			tax_rate = excluded.tax_rate, updated_at = excluded.updated_at`),
		st.StoreName, st.Address, st.Phone, st.Email, st.Currency, st.TaxRate, st.UpdatedAt)
	return errors.Wrap(err, "save settings")
}
