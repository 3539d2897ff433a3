package api

import (
	"net/http"
	"strings"

	"pharmapos/m/domain"
)

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := decodeJSON(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.ID = 0
	if strings.TrimSpace(c.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := h.store.CreateCustomer(r.Context(), &c); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// updateCustomer decodes the body over the stored record, so omitted fields
// keep their values.
func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	c, err := h.store.GetCustomer(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := decodeJSON(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.ID = id
	if strings.TrimSpace(c.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := h.store.UpdateCustomer(r.Context(), &c); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	if err := h.store.DeleteCustomer(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.store.ListSuppliers(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var sp domain.Supplier
	if err := decodeJSON(r, &sp); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sp.ID = 0
	if strings.TrimSpace(sp.CompanyName) == "" {
		respondError(w, http.StatusBadRequest, "company_name is required")
		return
	}
	if err := h.store.CreateSupplier(r.Context(), &sp); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sp)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	sp, err := h.store.GetSupplier(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := decodeJSON(r, &sp); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sp.ID = id
	if strings.TrimSpace(sp.CompanyName) == "" {
		respondError(w, http.StatusBadRequest, "company_name is required")
		return
	}
	if err := h.store.UpdateSupplier(r.Context(), &sp); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sp)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	if err := h.store.DeleteSupplier(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "supplier deleted"})
}
