package handlers

import (
	"context"
	"net/http"

	"fleet/src/schemas"
)

func (h *Handler) GetAllDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	drivers, err := h.Drivers.GetAll(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", drivers)
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req schemas.DriverRequest
	if err := decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	driver, err := h.Drivers.Create(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusCreated, "Driver created", driver)
}
