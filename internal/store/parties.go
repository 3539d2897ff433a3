package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
)

// Customers

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`INSERT INTO customers (name, email, phone, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`), c.Name, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	return errors.Wrap(err, "insert customer")
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	var c domain.Customer
	err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT id, name, email, phone, address, created_at, updated_at FROM customers WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, errors.Wrap(err, "load customer")
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := s.db.SelectContext(ctx, &customers, `SELECT id, name, email, phone, address, created_at, updated_at FROM customers ORDER BY name`)
	return customers, errors.Wrap(err, "list customers")
}

func (s *Store) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = s.now()
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE customers SET name = ?, email = ?, phone = ?, address = ?, updated_at = ? WHERE id = ?`),
		c.Name, c.Email, c.Phone, c.Address, c.UpdatedAt, c.ID)
	if err != nil {
		return errors.Wrap(err, "update customer")
	}
	return notFoundIfNoRows(res)
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM customers WHERE id = ?`), id)
	if err != nil {
		return errors.Wrap(err, "delete customer")
	}
	return notFoundIfNoRows(res)
}

// Suppliers

func (s *Store) CreateSupplier(ctx context.Context, sp *domain.Supplier) error {
	now := s.now()
	sp.CreatedAt, sp.UpdatedAt = now, now
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`INSERT INTO suppliers (company_name, contact_name, email, phone, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		sp.CompanyName, sp.ContactName, sp.Email, sp.Phone, sp.Address, sp.CreatedAt, sp.UpdatedAt).Scan(&sp.ID)
	return errors.Wrap(err, "insert supplier")
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (domain.Supplier, error) {
	var sp domain.Supplier
	err := s.db.GetContext(ctx, &sp, s.db.Rebind(`SELECT id, company_name, contact_name, email, phone, address, created_at, updated_at FROM suppliers WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return sp, ErrNotFound
	}
	return sp, errors.Wrap(err, "load supplier")
}

func (s *Store) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	err := s.db.SelectContext(ctx, &suppliers, `SELECT id, company_name, contact_name, email, phone, address, created_at, updated_at FROM suppliers ORDER BY company_name`)
	return suppliers, errors.Wrap(err, "list suppliers")
}

func (s *Store) UpdateSupplier(ctx context.Context, sp *domain.Supplier) error {
	sp.UpdatedAt = s.now()
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE suppliers SET company_name = ?, contact_name = ?, email = ?, phone = ?, address = ?, updated_at = ? WHERE id = ?`),
		sp.CompanyName, sp.ContactName, sp.Email, sp.Phone, sp.Address, sp.UpdatedAt, sp.ID)
	if err != nil {
		return errors.Wrap(err, "update supplier")
	}
	return notFoundIfNoRows(res)
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM suppliers WHERE id = ?`), id)
	if err != nil {
		return errors.Wrap(err, "delete supplier")
	}
	return notFoundIfNoRows(res)
}
