package handlers

import (
	"context"
	"net/http"

	"fleet/src/schemas"
	"fleet/src/utils"
)

type userKey struct{}

// AuthUser is the caller identity taken from a verified token.
type AuthUser struct {
	ID       string
	Username string
	Role     string
}

func WithUser(ctx context.Context, user AuthUser) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(userKey{}).(AuthUser)
	return user, ok
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.RegisterRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	user, err := h.Users.Register(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "User registered", user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.LoginRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	token, err := h.Users.Login(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Login successful", token)
}

// Me returns the caller's own profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	caller, ok := UserFromContext(ctx)
	if !ok {
		h.HandleErrors(w, utils.Unauthorized("missing token"))
		return
	}
	user, err := h.Users.GetByID(ctx, caller.ID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", user)
}
