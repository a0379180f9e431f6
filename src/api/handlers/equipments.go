package handlers

import (
	"context"
	"net/http"

	"fleet/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllEquipments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	list, err := h.Equipments.GetAll(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", list)
}

func (h *Handler) GetEquipmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	equipment, err := h.Equipments.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", equipment)
}

func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.EquipmentRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	equipment, err := h.Equipments.Create(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "Equipment created", equipment)
}

func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.EquipmentRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	equipment, err := h.Equipments.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Equipment updated", equipment)
}

func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Equipments.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Equipment deleted", nil)
}

func (h *Handler) BulkDeleteEquipments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.IDsRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	n, err := h.Equipments.BulkDelete(ctx, req.IDs)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Equipments deleted", schemas.BulkDeleteResponse{DeletedCount: n})
}
