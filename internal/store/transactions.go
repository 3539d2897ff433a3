package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"pharmapos/m/domain"
)

const transactionSelect = `SELECT id, customer_id, subtotal, tax_rate, tax, discount, total, amount_tendered,
	change_due, payment_method, payment_status, cashier_id, cashier, created_at FROM transactions`

// CommitSale stores txn with its items and, in the same database
// transaction, decrements stock for every line and appends an "out" ledger
// entry referencing the sale.
//
// The decrement only applies while stock covers the line quantity. A line
// whose medicine no longer exists is kept on the record but moves no stock;
// its medicine id is returned in skipped. A line whose medicine exists with
// too little stock aborts the whole sale with ErrInsufficientStock.
func (s *Store) CommitSale(ctx context.Context, txn *domain.Transaction) (skipped []int64, err error) {
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = s.now()
	}
	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		skipped = nil
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO transactions
			(id, customer_id, subtotal, tax_rate, tax, discount, total, amount_tendered, change_due,
			 payment_method, payment_status, cashier_id, cashier, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			txn.ID, txn.CustomerID, txn.Subtotal, txn.TaxRate, txn.Tax, txn.Discount, txn.Total,
			txn.AmountTendered, txn.Change, txn.PaymentMethod, txn.PaymentStatus, txn.CashierID,
			txn.Cashier, txn.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "insert transaction")
		}

		for i := range txn.Items {
			item := &txn.Items[i]
			item.TransactionID = txn.ID
			item.Position = i
			_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO transaction_items
				(transaction_id, position, medicine_id, name, strength, quantity, unit_price, subtotal)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
				item.TransactionID, item.Position, item.MedicineID, item.Name, item.Strength,
				item.Quantity, item.UnitPrice, item.Subtotal)
			if err != nil {
				return errors.Wrap(err, "insert transaction item")
			}

			res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE medicines SET stock = stock - ?, updated_at = ?
				WHERE id = ? AND stock >= ?`), item.Quantity, txn.CreatedAt, item.MedicineID, item.Quantity)
			if err != nil {
				return errors.Wrap(err, "decrement stock")
			}
			if n, err := res.RowsAffected(); err != nil {
				return errors.Wrap(err, "rows affected")
			} else if n == 0 {
				var exists int
				if err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) FROM medicines WHERE id = ?`), item.MedicineID); err != nil {
					return errors.Wrap(err, "check medicine")
				}
				if exists == 0 {
					skipped = append(skipped, item.MedicineID)
					continue
				}
				return errors.Wrapf(ErrInsufficientStock, "medicine %d", item.MedicineID)
			}

			entry := domain.StockEntry{
				ID:          uuid.NewString(),
				MedicineID:  item.MedicineID,
				ProductName: item.Name,
				Quantity:    item.Quantity,
				Type:        domain.StockOut,
				Reason:      domain.SaleReason(txn.ID),
				CreatedAt:   txn.CreatedAt,
			}
			if err := insertStockEntry(ctx, tx, &entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return skipped, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (domain.Transaction, error) {
	var txn domain.Transaction
	err := s.db.GetContext(ctx, &txn, s.db.Rebind(transactionSelect+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return txn, ErrNotFound
	}
	if err != nil {
		return txn, errors.Wrap(err, "load transaction")
	}
	txns := []domain.Transaction{txn}
	if err := s.attachItems(ctx, txns); err != nil {
		return txn, err
	}
	return txns[0], nil
}

// ListTransactions returns the most recent transactions with their items,
// newest first.
func (s *Store) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	txns := []domain.Transaction{}
	if err := s.db.SelectContext(ctx, &txns, s.db.Rebind(transactionSelect+` ORDER BY created_at DESC LIMIT ?`), limit); err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	if err := s.attachItems(ctx, txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Store) attachItems(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	ids := make([]string, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
	}
	query, args, err := sqlx.In(`SELECT transaction_id, position, medicine_id, name, strength, quantity, unit_price, subtotal
		FROM transaction_items WHERE transaction_id IN (?) ORDER BY transaction_id, position`, ids)
	if err != nil {
		return errors.Wrap(err, "prepare transaction items query")
	}
	var rows []domain.TransactionItem
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "load transaction items")
	}
	byTxn := make(map[string][]domain.TransactionItem)
	for _, row := range rows {
		byTxn[row.TransactionID] = append(byTxn[row.TransactionID], row)
	}
	for i := range txns {
		items := byTxn[txns[i].ID]
		if items == nil {
			items = []domain.TransactionItem{}
		}
		txns[i].Items = items
	}
	return nil
}

// SalesSummary sums paid transaction totals created in [from, to).
func (s *Store) SalesSummary(ctx context.Context, from, to time.Time) (domain.SalesSummary, error) {
	var sum domain.SalesSummary
	err := s.db.GetContext(ctx, &sum, s.db.Rebind(`SELECT COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS sales_count
		FROM transactions WHERE payment_status = ? AND created_at >= ? AND created_at < ?`),
		domain.PaymentPaid, from.UTC(), to.UTC())
	return sum, errors.Wrap(err, "sales summary")
}
