package pos

import (
	"context"
	"strings"

	"pharmapos/m/domain"
)

const stockPageLimit = 500

// AddStockEntry records a stock movement. Only "in" entries change stock.
func (s *Service) AddStockEntry(ctx context.Context, entry *domain.StockEntry) error {
	entry.Type = strings.ToLower(strings.TrimSpace(entry.Type))
	if !domain.ValidStockType(entry.Type) {
		return ErrInvalidStockType
	}
	if entry.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	entry.ID = ""
	return s.store.AddStockEntry(ctx, entry)
}

// ListStockEntries returns ledger entries, newest first, optionally for one
// medicine.
func (s *Service) ListStockEntries(ctx context.Context, medicineID *int64) ([]domain.StockEntry, error) {
	return s.store.ListStockEntries(ctx, medicineID, stockPageLimit)
}
