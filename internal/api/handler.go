package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"pharmapos/m/domain"
	"pharmapos/m/internal/auth"
	"pharmapos/m/internal/catalog"
	"pharmapos/m/internal/pos"
	"pharmapos/m/internal/store"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store   *store.Store
	catalog *catalog.Service
	pos     *pos.Service
	users   *auth.Users
	tokens  *auth.Tokens
}

// New constructs a Handler.
func New(st *store.Store, cat *catalog.Service, p *pos.Service, users *auth.Users, tokens *auth.Tokens) *Handler {
	return &Handler{store: st, catalog: cat, pos: p, users: users, tokens: tokens}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/medicines", func(r chi.Router) {
			r.Post("/create-medicine", h.createMedicine)
			r.Get("/getMedicines", h.listMedicines)
			r.Get("/low-stock", h.lowStock)
			r.Get("/search", h.searchMedicines)
			r.Put("/update-medicine/{id}", h.updateMedicine)
			r.Delete("/delete-medicine/{id}", h.deleteMedicine)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/getCategories", h.listCategories)
			r.Post("/create", h.createCategory)
			r.Put("/update/{id}", h.updateCategory)
			r.Delete("/delete/{id}", h.deleteCategory)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.tokens.Optional).Post("/register", h.register)
			r.Post("/login", h.login)

			r.Group(func(r chi.Router) {
				r.Use(h.tokens.Middleware)
				r.Get("/getUsers", h.listUsers)
				r.Get("/profile/{id}", h.getUser)
				r.Put("/update/{id}", h.updateUser)
				r.Delete("/remove/{id}", h.deleteUser)
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.listCustomers)
			r.Post("/", h.createCustomer)
			r.Put("/{id}", h.updateCustomer)
			r.Delete("/{id}", h.deleteCustomer)
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.listSuppliers)
			r.Post("/", h.createSupplier)
			r.Put("/{id}", h.updateSupplier)
			r.Delete("/{id}", h.deleteSupplier)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.tokens.Middleware)
			pr.Use(auth.RequireRole(domain.RoleAdmin, domain.RoleCashier))

			pr.Route("/pos", func(r chi.Router) {
				r.Get("/cart", h.getCart)
				r.Delete("/cart", h.clearCart)
				r.Post("/cart/items", h.addCartItem)
				r.Put("/cart/items/{productID}", h.updateCartItem)
				r.Delete("/cart/items/{productID}", h.removeCartItem)
				r.Get("/cart/quote", h.quote)
				r.Post("/checkout", h.checkout)
			})

			pr.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.listTransactions)
				r.Get("/{id}", h.getTransaction)
			})

			pr.Route("/stock", func(r chi.Router) {
				r.Get("/", h.listStockEntries)
				r.Post("/", h.addStockEntry)
			})

			pr.Route("/settings", func(r chi.Router) {
				r.Get("/", h.getSettings)
				r.With(auth.RequireRole(domain.RoleAdmin)).Put("/", h.saveSettings)
			})

			pr.Route("/reports", func(r chi.Router) {
				r.Get("/sales/daily", h.dailySales)
				r.Get("/sales/monthly", h.monthlySales)
			})
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail maps a service error to a status code and message. Unexpected errors
// are logged and reported as a generic server error.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case catalog.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrDuplicateMedicine),
		errors.Is(err, pos.ErrEmptyCart),
		errors.Is(err, pos.ErrInvalidPaymentMethod),
		errors.Is(err, pos.ErrInvalidQuantity),
		errors.Is(err, pos.ErrInvalidStockType),
		errors.Is(err, pos.ErrInvalidTaxRate),
		errors.Is(err, pos.ErrInsufficientTender),
		errors.Is(err, auth.ErrInvalidUser),
		errors.Is(err, auth.ErrInvalidRole):
		respondError(w, http.StatusBadRequest, errors.Cause(err).Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicate):
		respondError(w, http.StatusConflict, "already exists")
	case errors.Is(err, store.ErrInUse):
		respondError(w, http.StatusConflict, "still referenced by medicines")
	case errors.Is(err, store.ErrInsufficientStock):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "server error")
	}
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
