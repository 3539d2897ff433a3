package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pharmapos/m/domain"
	"pharmapos/m/internal/store"
	"pharmapos/m/internal/store/storetest"
)

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "s3cret" {
		t.Fatal("password stored in plain text")
	}
	if err := VerifyPassword(hashed, "s3cret"); err != nil {
		t.Errorf("verify correct password: %v", err)
	}
	if err := VerifyPassword(hashed, "wrong"); err == nil {
		t.Error("verify wrong password should fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")
	raw, err := tokens.Generate(3, "ana", domain.RoleCashier)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := tokens.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 3 || claims.Username != "ana" || claims.Role != domain.RoleCashier {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := NewTokens("other").Parse(raw); err == nil {
		t.Error("token signed with another secret should be rejected")
	}

	late := NewTokens("test-secret")
	late.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if _, err := late.Parse(raw); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestMiddlewareAndRoles(t *testing.T) {
	tokens := NewTokens("test-secret")
	h := tokens.Middleware(RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := FromContext(r.Context())
		w.Write([]byte(claims.Username))
	})))

	admin, _ := tokens.Generate(1, "root", domain.RoleAdmin)
	cashier, _ := tokens.Generate(2, "ana", domain.RoleCashier)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + cashier, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Errorf("%s: status = %d, want %d", c.name, rec.Code, c.want)
		}
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(storetest.New(t), NewTokens("test-secret"))
	str := func(s string) *string { return &s }

	if _, err := users.Register(ctx, nil, UserInput{Username: str("ana")}); !errors.Is(err, ErrInvalidUser) {
		t.Errorf("missing fields: err = %v", err)
	}
	if _, err := users.Register(ctx, nil, UserInput{Username: str("ana"), Email: str("a@x.io"), Password: str("pw"), Role: str("owner")}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("bad role: err = %v", err)
	}

	// The first account may take any role so a fresh install can be set up.
	admin, err := users.Register(ctx, nil, UserInput{Username: str("ana"), Email: str("Ana@X.io"), Password: str("pw"), Role: str(domain.RoleAdmin)})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if admin.Role != domain.RoleAdmin || admin.Password == "pw" || admin.Email != "ana@x.io" {
		t.Errorf("registered user = %+v", admin)
	}
	if _, err := users.Register(ctx, nil, UserInput{Username: str("ana"), Email: str("ana@x.io"), Password: str("pw"), Role: str(domain.RoleCustomer)}); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("duplicate email: err = %v", err)
	}

	if _, _, err := users.Login(ctx, "ana@x.io", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, _, err := users.Login(ctx, "bob@x.io", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v", err)
	}
	token, logged, err := users.Login(ctx, "ANA@x.io", "pw")
	if err != nil || token == "" || logged.ID != admin.ID {
		t.Errorf("login: token=%q user=%+v err=%v", token, logged, err)
	}

	self := &Claims{UserID: admin.ID, Username: "ana", Role: domain.RoleAdmin}
	updated, err := users.Update(ctx, self, admin.ID, UserInput{Password: str("new")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if VerifyPassword(updated.Password, "new") != nil {
		t.Error("updated password not hashed")
	}
	if err := users.Delete(ctx, self, admin.ID); err != nil {
		t.Errorf("delete: %v", err)
	}
}

func TestUserDirectoryPermissions(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(storetest.New(t), NewTokens("test-secret"))
	str := func(s string) *string { return &s }

	root, err := users.Register(ctx, nil, UserInput{Username: str("root"), Email: str("root@x.io"), Password: str("pw"), Role: str(domain.RoleAdmin)})
	if err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}
	admin := &Claims{UserID: root.ID, Username: "root", Role: domain.RoleAdmin}

	for _, role := range []string{domain.RoleAdmin, domain.RoleCashier} {
		if _, err := users.Register(ctx, nil, UserInput{Username: str("eve"), Email: str("eve@x.io"), Password: str("pw"), Role: str(role)}); !errors.Is(err, ErrForbidden) {
			t.Errorf("anonymous %s registration: err = %v", role, err)
		}
	}
	walkIn, err := users.Register(ctx, nil, UserInput{Username: str("eve"), Email: str("eve@x.io"), Password: str("pw")})
	if err != nil || walkIn.Role != domain.RoleCustomer {
		t.Fatalf("anonymous registration: user=%+v err=%v", walkIn, err)
	}
	staff, err := users.Register(ctx, admin, UserInput{Username: str("bo"), Email: str("bo@x.io"), Password: str("pw")})
	if err != nil || staff.Role != domain.RoleCashier {
		t.Fatalf("admin registration: user=%+v err=%v", staff, err)
	}
	cashier := &Claims{UserID: staff.ID, Username: "bo", Role: domain.RoleCashier}

	if _, err := users.Update(ctx, cashier, staff.ID, UserInput{Role: str(domain.RoleAdmin)}); !errors.Is(err, ErrForbidden) {
		t.Errorf("self promotion: err = %v", err)
	}
	if _, err := users.Update(ctx, cashier, staff.ID, UserInput{Role: str(domain.RoleCashier), Username: str("bob")}); err != nil {
		t.Errorf("self edit keeping role: err = %v", err)
	}
	if _, err := users.Update(ctx, cashier, walkIn.ID, UserInput{Username: str("x")}); !errors.Is(err, ErrForbidden) {
		t.Errorf("editing another user: err = %v", err)
	}
	if _, err := users.Update(ctx, nil, staff.ID, UserInput{Username: str("x")}); !errors.Is(err, ErrForbidden) {
		t.Errorf("anonymous edit: err = %v", err)
	}
	if _, err := users.Get(ctx, cashier, root.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("reading another user: err = %v", err)
	}
	if _, err := users.List(ctx, cashier); !errors.Is(err, ErrForbidden) {
		t.Errorf("cashier list: err = %v", err)
	}
	if err := users.Delete(ctx, cashier, walkIn.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("cashier delete: err = %v", err)
	}

	promoted, err := users.Update(ctx, admin, staff.ID, UserInput{Role: str(domain.RoleAdmin)})
	if err != nil || promoted.Role != domain.RoleAdmin {
		t.Errorf("admin promotion: user=%+v err=%v", promoted, err)
	}
	all, err := users.List(ctx, admin)
	if err != nil || len(all) != 3 {
		t.Errorf("admin list: %d users, err = %v", len(all), err)
	}
	if err := users.Delete(ctx, admin, walkIn.ID); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}
