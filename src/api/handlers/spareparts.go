package handlers

import (
	"context"
	"net/http"

	"fleet/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllSpareparts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	list, err := h.Spareparts.GetAll(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", list)
}

func (h *Handler) GetSparepartByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	sparepart, err := h.Spareparts.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", sparepart)
}

func (h *Handler) CreateSparepart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.SparepartRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	sparepart, err := h.Spareparts.Create(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "Sparepart created", sparepart)
}

func (h *Handler) UpdateSparepart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.SparepartRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	sparepart, err := h.Spareparts.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Sparepart updated", sparepart)
}

func (h *Handler) DeleteSparepart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Spareparts.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Sparepart deleted", nil)
}

// GetSparepartUsage sums the quantities consumed by maintenances per sparepart.
func (h *Handler) GetSparepartUsage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	start, err := queryDate(r, "startDate")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	end, err := queryDate(r, "endDate")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	usage, err := h.Spareparts.Usage(ctx, start, end)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", usage)
}
