package handlers

import (
	"context"
	"net/http"

	"fleet/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	vehicles, err := h.Vehicles.GetAll(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", vehicles)
}

func (h *Handler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	vehicle, err := h.Vehicles.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", vehicle)
}

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.VehicleRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	vehicle, err := h.Vehicles.Create(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "Vehicle created", vehicle)
}

func (h *Handler) BulkCreateVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.ReportTimeout)
	defer cancel()

	var reqs []schemas.VehicleRequest
	if err := decode(r, &reqs); err != nil {
		h.HandleErrors(w, err)
		return
	}
	vehicles, err := h.Vehicles.BulkCreate(ctx, reqs)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "Vehicles imported", vehicles)
}

func (h *Handler) ImportVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.ReportTimeout)
	defer cancel()

	file, _, err := h.formFile(w, r, "file")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	defer file.Close()

	result, err := h.Imports.ImportVehicles(ctx, file)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "Vehicles imported", result)
}

func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.VehicleRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	vehicle, err := h.Vehicles.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Vehicle updated", vehicle)
}

func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Vehicles.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Vehicle deleted", nil)
}

func (h *Handler) BulkDeleteVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.IDsRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	n, err := h.Vehicles.BulkDelete(ctx, req.IDs)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Vehicles deleted", schemas.BulkDeleteResponse{DeletedCount: n})
}
