package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fleet/src/schemas"
	"fleet/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	caller, ok := UserFromContext(ctx)
	if !ok {
		h.HandleErrors(w, utils.Unauthorized("missing token"))
		return
	}
	var req schemas.MaintenanceRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	maintenance, err := h.Maintenances.Create(ctx, caller.ID, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "Maintenance created", maintenance)
}

// GetMyMaintenances pages through the maintenances recorded by the caller.
func (h *Handler) GetMyMaintenances(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	caller, ok := UserFromContext(ctx)
	if !ok {
		h.HandleErrors(w, utils.Unauthorized("missing token"))
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	result, err := h.Maintenances.ListMine(ctx, caller.ID, page, size, search)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", result)
}

func (h *Handler) GetMaintenancesByAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	list, err := h.Maintenances.ListByAsset(ctx, chi.URLParam(r, "assetId"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", list)
}

func (h *Handler) GetMaintenanceByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	maintenance, err := h.Maintenances.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", maintenance)
}

func (h *Handler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.MaintenanceRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	maintenance, err := h.Maintenances.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Maintenance updated", maintenance)
}

func (h *Handler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Maintenances.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Maintenance deleted", nil)
}

// ExportMaintenancePDF renders the maintenance report and streams it as an
// attachment.
func (h *Handler) ExportMaintenancePDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.ReportTimeout)
	defer cancel()

	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		h.HandleErrors(w, utils.BadRequest("id is required"))
		return
	}
	pdf, filename, err := h.Reports.MaintenancePDF(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("writing pdf response")
	}
}
