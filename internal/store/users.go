package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
)

const userSelect = `SELECT id, username, email, password, role, created_at, updated_at FROM users`

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	now := s.now()
	u.Email = strings.ToLower(u.Email)
	u.CreatedAt, u.UpdatedAt = now, now
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`INSERT INTO users (username, email, password, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`), u.Username, u.Email, u.Password, u.Role, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "insert user")
}

func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(userSelect+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, errors.Wrap(err, "load user")
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(userSelect+` WHERE email = ?`), strings.ToLower(email))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, errors.Wrap(err, "load user")
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := s.db.SelectContext(ctx, &users, userSelect+` ORDER BY id`)
	return users, errors.Wrap(err, "list users")
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(u.Email)
	u.UpdatedAt = s.now()
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE users SET username = ?, email = ?, password = ?, role = ?, updated_at = ? WHERE id = ?`),
		u.Username, u.Email, u.Password, u.Role, u.UpdatedAt, u.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	return notFoundIfNoRows(res)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	return notFoundIfNoRows(res)
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, errors.Wrap(err, "count users")
}
