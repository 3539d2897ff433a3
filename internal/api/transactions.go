package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

func listLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.store.ListTransactions(r.Context(), listLimit(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, txns)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := h.store.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}
