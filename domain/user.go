package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCashier  = "cashier"
	RoleCustomer = "customer"
)

type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRole reports whether role is one the user directory accepts.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCashier, RoleCustomer:
		return true
	}
	return false
}
