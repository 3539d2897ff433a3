package api

import (
	"net/http"
	"strconv"

	"pharmapos/m/domain"
)

type stockRequest struct {
	MedicineID int64    `json:"medicine_id"`
	Quantity   int64    `json:"quantity"`
	Type       string   `json:"type"`
	Reason     string   `json:"reason"`
	Supplier   *string  `json:"supplier"`
	Cost       *float64 `json:"cost"`
}

func (h *Handler) listStockEntries(w http.ResponseWriter, r *http.Request) {
	var medicineID *int64
	if raw := r.URL.Query().Get("medicine_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid medicine_id")
			return
		}
		medicineID = &id
	}
	entries, err := h.pos.ListStockEntries(r.Context(), medicineID)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) addStockEntry(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry := domain.StockEntry{
		MedicineID: req.MedicineID,
		Quantity:   req.Quantity,
		Type:       req.Type,
		Reason:     req.Reason,
		Supplier:   req.Supplier,
		Cost:       req.Cost,
	}
	if err := h.pos.AddStockEntry(r.Context(), &entry); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}
