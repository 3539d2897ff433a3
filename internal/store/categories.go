package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"pharmapos/m/domain"
)

func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`INSERT INTO categories (name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?) RETURNING id`), c.Name, c.Description, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "insert category")
}

func (s *Store) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT id, name, description, created_at, updated_at FROM categories WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, errors.Wrap(err, "load category")
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	var c domain.Category
	err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT id, name, description, created_at, updated_at FROM categories WHERE name = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, errors.Wrap(err, "load category")
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	err := s.db.SelectContext(ctx, &categories, `SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name`)
	return categories, errors.Wrap(err, "list categories")
}

func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	c.UpdatedAt = s.now()
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`),
		c.Name, c.Description, c.UpdatedAt, c.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "update category")
	}
	return notFoundIfNoRows(res)
}

// DeleteCategory removes a category. It refuses with ErrInUse while any
// medicine still references it.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var refs int
		if err := tx.GetContext(ctx, &refs, tx.Rebind(`SELECT COUNT(*) FROM medicines WHERE category_id = ?`), id); err != nil {
			return errors.Wrap(err, "count category references")
		}
		if refs > 0 {
			return ErrInUse
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM categories WHERE id = ?`), id)
		if err != nil {
			return errors.Wrap(err, "delete category")
		}
		return notFoundIfNoRows(res)
	})
}
