package api

import (
	"net/http"

	"pharmapos/m/domain"
	"pharmapos/m/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// actor returns the caller's claims, or nil for an anonymous request.
func actor(r *http.Request) *auth.Claims {
	claims, _ := auth.FromContext(r.Context())
	return claims
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req auth.UserInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.users.Register(r.Context(), actor(r), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), actor(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.users.Get(r.Context(), actor(r), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req auth.UserInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.users.Update(r.Context(), actor(r), id, req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.users.Delete(r.Context(), actor(r), id); err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "user removed"})
}
