package api

import (
	"net/http"
	"strconv"

	"pharmapos/m/internal/catalog"
)

func (h *Handler) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req catalog.MedicineInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.catalog.CreateMedicine(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	result, err := h.catalog.ListMedicines(r.Context(), page, r.URL.Query().Get("search"))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var req catalog.MedicineInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.catalog.UpdateMedicine(r.Context(), id, req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	if err := h.catalog.DeleteMedicine(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "medicine deleted"})
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.catalog.LowStock(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) searchMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.catalog.SearchMedicines(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}
