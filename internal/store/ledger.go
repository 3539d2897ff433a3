package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"pharmapos/m/domain"
)

// AddStockEntry appends entry to the ledger. The medicine must exist; its
// name is copied onto the entry. Only "in" movements change stock here.
func (s *Store) AddStockEntry(ctx context.Context, entry *domain.StockEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = s.now()
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var name string
		err := tx.GetContext(ctx, &name, tx.Rebind(`SELECT name FROM medicines WHERE id = ?`), entry.MedicineID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load medicine")
		}
		entry.ProductName = name

		if err := insertStockEntry(ctx, tx, entry); err != nil {
			return err
		}
		if entry.Type != domain.StockIn {
			return nil
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(`UPDATE medicines SET stock = stock + ?, updated_at = ? WHERE id = ?`),
			entry.Quantity, entry.CreatedAt, entry.MedicineID)
		return errors.Wrap(err, "increment stock")
	})
}

// ListStockEntries returns ledger entries newest first, for one medicine
// when medicineID is non-nil.
func (s *Store) ListStockEntries(ctx context.Context, medicineID *int64, limit int) ([]domain.StockEntry, error) {
	query := `SELECT id, medicine_id, product_name, quantity, type, reason, supplier, cost, created_at FROM stock_entries`
	var args []any
	if medicineID != nil {
		query += ` WHERE medicine_id = ?`
		args = append(args, *medicineID)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	entries := []domain.StockEntry{}
	err := s.db.SelectContext(ctx, &entries, s.db.Rebind(query), args...)
	return entries, errors.Wrap(err, "list stock entries")
}

func insertStockEntry(ctx context.Context, tx *sqlx.Tx, e *domain.StockEntry) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO stock_entries
		(id, medicine_id, product_name, quantity, type, reason, supplier, cost, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.MedicineID, e.ProductName, e.Quantity, e.Type, e.Reason, e.Supplier, e.Cost, e.CreatedAt)
	return errors.Wrap(err, "insert stock entry")
}
