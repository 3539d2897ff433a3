package api

import (
	"net/http"

	"pharmapos/m/internal/catalog"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req catalog.CategoryInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.catalog.CreateCategory(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var req catalog.CategoryInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.catalog.UpdateCategory(r.Context(), id, req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
