package handlers

import (
	"context"
	"net/http"

	"fleet/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.Users.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.UpdateUserRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	user, err := h.Users.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "User updated", user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "User deleted", nil)
}
