package api

import (
	"net/http"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.pos.Settings(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.pos.Settings(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := decodeJSON(r, &st); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.pos.SaveSettings(r.Context(), &st); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}
