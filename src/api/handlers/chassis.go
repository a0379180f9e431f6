package handlers

import (
	"context"
	"net/http"

	"fleet/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllChassis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	list, err := h.Chassis.GetAll(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", list)
}

func (h *Handler) GetChassisByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	chassis, err := h.Chassis.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", chassis)
}

func (h *Handler) CreateChassis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.ChassisRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	chassis, err := h.Chassis.Create(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "Chassis created", chassis)
}

func (h *Handler) UpdateChassis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.ChassisRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	chassis, err := h.Chassis.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Chassis updated", chassis)
}

func (h *Handler) DeleteChassis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Chassis.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Chassis deleted", nil)
}

func (h *Handler) BulkDeleteChassis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.IDsRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	n, err := h.Chassis.BulkDelete(ctx, req.IDs)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Chassis deleted", schemas.BulkDeleteResponse{DeletedCount: n})
}
