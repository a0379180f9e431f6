package handlers

import (
	"context"
	"net/http"
	"time"

	"fleet/src/schemas"
)

func (h *Handler) ScanReminders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.Controller.RunReminderScan(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.ApiResponse{Success: true, Message: "Reminder scan finished", Data: result}, http.StatusOK)
}

// ReloadReminderSchedule re-registers the periodic scan.
func (h *Handler) ReloadReminderSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Controller.LoadReminderScan(ctx); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.ApiResponse{Success: true, Message: "Reminder scan scheduled"}, http.StatusOK)
}
