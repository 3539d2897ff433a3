package api

import (
	"net/http"
	"strconv"

	"pharmapos/m/domain"
	"pharmapos/m/internal/auth"
	"pharmapos/m/internal/cart"
	"pharmapos/m/internal/pos"
)

type cartResponse struct {
	Items    []cart.Line `json:"items"`
	Subtotal float64     `json:"subtotal"`
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// session returns the cart key of the authenticated cashier.
func session(r *http.Request) (int64, *auth.Claims) {
	claims, _ := auth.FromContext(r.Context())
	return claims.UserID, claims
}

func respondCart(w http.ResponseWriter, lines []cart.Line) {
	respondJSON(w, http.StatusOK, cartResponse{Items: lines, Subtotal: cart.Subtotal(lines)})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	id, _ := session(r)
	respondCart(w, h.pos.Cart(id))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	id, _ := session(r)
	h.pos.ClearCart(id)
	respondCart(w, h.pos.Cart(id))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, _ := session(r)
	lines, err := h.pos.AddToCart(r.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondCart(w, lines)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(r, "productID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, _ := session(r)
	respondCart(w, h.pos.UpdateCartItem(id, productID, req.Quantity))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(r, "productID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	id, _ := session(r)
	respondCart(w, h.pos.RemoveFromCart(id, productID))
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var discount float64
	if raw := r.URL.Query().Get("discount"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid discount")
			return
		}
		discount = d
	}
	id, _ := session(r)
	totals, err := h.pos.Quote(r.Context(), id, discount)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req pos.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, claims := session(r)
	cashier := domain.User{ID: claims.UserID, Username: claims.Username, Role: claims.Role}
	txn, err := h.pos.Checkout(r.Context(), id, cashier, req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, txn)
}
