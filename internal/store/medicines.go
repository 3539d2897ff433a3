package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
)

const medicineSelect = `SELECT m.id, m.name, m.category_id, c.name AS category_name, m.dosage_form, m.strength,
	m.manufacturer, m.indication, m.classification, m.price, m.cost, m.stock, m.min_stock,
	m.barcode, m.sku, m.expiry_date, m.created_at, m.updated_at
	FROM medicines m
	JOIN categories c ON c.id = m.category_id`

func (s *Store) CreateMedicine(ctx context.Context, m *domain.Medicine) error {
	now := s.now()
	m.CreatedAt, m.UpdatedAt = now, now
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`INSERT INTO medicines
		(name, category_id, dosage_form, strength, manufacturer, indication, classification,
		 price, cost, stock, min_stock, barcode, sku, expiry_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		m.Name, m.CategoryID, m.DosageForm, m.Strength, m.Manufacturer, m.Indication, m.Classification,
		m.Price, m.Cost, m.Stock, m.MinStock, m.Barcode, m.SKU, m.ExpiryDate, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	if err != nil {
		return errors.Wrap(err, "insert medicine")
	}
	return nil
}

func (s *Store) GetMedicine(ctx context.Context, id int64) (domain.Medicine, error) {
	var m domain.Medicine
	err := s.db.GetContext(ctx, &m, s.db.Rebind(medicineSelect+` WHERE m.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotFound
	}
	return m, errors.Wrap(err, "load medicine")
}

// MedicineExists reports whether a medicine with exactly this name and
// strength is already in the catalog.
func (s *Store) MedicineExists(ctx context.Context, name, strength string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(`SELECT COUNT(*) FROM medicines WHERE name = ? AND strength = ?`), name, strength)
	if err != nil {
		return false, errors.Wrap(err, "check duplicate medicine")
	}
	return n > 0, nil
}

// ListMedicines returns one page of medicines ordered by name, optionally
// filtered by a case-insensitive name substring, plus the total match count.
func (s *Store) ListMedicines(ctx context.Context, search string, limit, offset int) ([]domain.Medicine, int64, error) {
	where := ""
	var args []any
	if search != "" {
		where = ` WHERE LOWER(m.name) LIKE ? ESCAPE '\'`
		args = append(args, likePattern(search))
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, s.db.Rebind(`SELECT COUNT(*) FROM medicines m`+where), args...); err != nil {
		return nil, 0, errors.Wrap(err, "count medicines")
	}

	medicines := []domain.Medicine{}
	query := s.db.Rebind(medicineSelect + where + ` ORDER BY m.name, m.id LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &medicines, query, append(args, limit, offset)...); err != nil {
		return nil, 0, errors.Wrap(err, "list medicines")
	}
	return medicines, total, nil
}

func (s *Store) SearchMedicines(ctx context.Context, query string, limit int) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines,
		s.db.Rebind(medicineSelect+` WHERE LOWER(m.name) LIKE ? ESCAPE '\' ORDER BY m.name, m.id LIMIT ?`),
		likePattern(query), limit)
	return medicines, errors.Wrap(err, "search medicines")
}

// ListLowStock returns medicines whose stock is at or below min_stock.
func (s *Store) ListLowStock(ctx context.Context) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines, medicineSelect+` WHERE m.stock <= m.min_stock ORDER BY m.stock, m.name`)
	return medicines, errors.Wrap(err, "list low stock")
}

// UpdateMedicine writes the catalog fields of m. Stock is written only when
// setStock is true, so an edit that leaves stock alone cannot overwrite a
// decrement committed by a concurrent sale.
func (s *Store) UpdateMedicine(ctx context.Context, m *domain.Medicine, setStock bool) error {
	m.UpdatedAt = s.now()
	query := `UPDATE medicines SET
		name = ?, category_id = ?, dosage_form = ?, strength = ?, manufacturer = ?, indication = ?,
		classification = ?, price = ?, cost = ?, min_stock = ?, barcode = ?, sku = ?,
		expiry_date = ?, updated_at = ?`
	args := []any{m.Name, m.CategoryID, m.DosageForm, m.Strength, m.Manufacturer, m.Indication,
		m.Classification, m.Price, m.Cost, m.MinStock, m.Barcode, m.SKU, m.ExpiryDate, m.UpdatedAt}
	if setStock {
		query += `, stock = ?`
		args = append(args, m.Stock)
	}
	query += ` WHERE id = ?`
	args = append(args, m.ID)

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return errors.Wrap(err, "update medicine")
	}
	return notFoundIfNoRows(res)
}

func (s *Store) DeleteMedicine(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM medicines WHERE id = ?`), id)
	if err != nil {
		return errors.Wrap(err, "delete medicine")
	}
	return notFoundIfNoRows(res)
}
