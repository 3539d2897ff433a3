package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"pharmapos/m/domain"
	"pharmapos/m/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUser        = errors.New("username, email and password are required")
	ErrInvalidRole        = errors.New("role must be admin, cashier or customer")
	ErrForbidden          = errors.New("insufficient permissions")
)

// UserStore is the persistence the user directory needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// UserInput is a registration or partial update request.
type UserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Users manages accounts and logins. Methods taking an actor act on behalf
// of the authenticated caller; a nil actor is an anonymous caller.
type Users struct {
	store  UserStore
	tokens *Tokens
}

func NewUsers(st UserStore, tokens *Tokens) *Users {
	return &Users{store: st, tokens: tokens}
}

func isAdmin(actor *Claims) bool {
	return actor != nil && actor.Role == domain.RoleAdmin
}

func canManage(actor *Claims, id int64) bool {
	return isAdmin(actor) || (actor != nil && actor.UserID == id)
}

// Register creates an account. Only an admin may create admin or cashier
// accounts, except for the very first account, which may take any role.
// Role defaults to cashier for admins and customer for everyone else.
func (u *Users) Register(ctx context.Context, actor *Claims, in UserInput) (domain.User, error) {
	if in.Username == nil || in.Email == nil || in.Password == nil ||
		strings.TrimSpace(*in.Username) == "" || strings.TrimSpace(*in.Email) == "" || *in.Password == "" {
		return domain.User{}, ErrInvalidUser
	}
	if in.Role == nil || *in.Role == "" {
		role := domain.RoleCustomer
		if isAdmin(actor) {
			role = domain.RoleCashier
		}
		in.Role = &role
	}
	if *in.Role != domain.RoleCustomer && !isAdmin(actor) {
		n, err := u.store.CountUsers(ctx)
		if err != nil {
			return domain.User{}, err
		}
		if n > 0 {
			return domain.User{}, ErrForbidden
		}
	}

	var user domain.User
	if err := u.apply(&user, in); err != nil {
		return domain.User{}, err
	}
	if err := u.store.CreateUser(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login checks credentials and returns a token for the user.
func (u *Users) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := u.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.User{}, err
	}
	if err := VerifyPassword(user.Password, password); err != nil {
		return "", domain.User{}, ErrInvalidCredentials
	}
	token, err := u.tokens.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// Get returns user id to an admin or to that user.
func (u *Users) Get(ctx context.Context, actor *Claims, id int64) (domain.User, error) {
	if !canManage(actor, id) {
		return domain.User{}, ErrForbidden
	}
	return u.store.GetUser(ctx, id)
}

// List returns every account. Admin only.
func (u *Users) List(ctx context.Context, actor *Claims) ([]domain.User, error) {
	if !isAdmin(actor) {
		return nil, ErrForbidden
	}
	return u.store.ListUsers(ctx)
}

// Update applies the non-nil fields of in. Users may edit their own account
// but only an admin may change a role. A new password is re-hashed.
func (u *Users) Update(ctx context.Context, actor *Claims, id int64, in UserInput) (domain.User, error) {
	if !canManage(actor, id) {
		return domain.User{}, ErrForbidden
	}
	user, err := u.store.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if in.Role != nil && *in.Role != user.Role && !isAdmin(actor) {
		return domain.User{}, ErrForbidden
	}
	if err := u.apply(&user, in); err != nil {
		return domain.User{}, err
	}
	if err := u.store.UpdateUser(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Delete removes user id. Admins may remove anyone, users only themselves.
func (u *Users) Delete(ctx context.Context, actor *Claims, id int64) error {
	if !canManage(actor, id) {
		return ErrForbidden
	}
	return u.store.DeleteUser(ctx, id)
}

func (u *Users) apply(user *domain.User, in UserInput) error {
	if in.Username != nil {
		if v := strings.TrimSpace(*in.Username); v != "" {
			user.Username = v
		}
	}
	if in.Email != nil {
		if v := strings.TrimSpace(*in.Email); v != "" {
			user.Email = v
		}
	}
	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return ErrInvalidRole
		}
		user.Role = *in.Role
	}
	if in.Password != nil && *in.Password != "" {
		hashed, err := HashPassword(*in.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}
	return nil
}
