package handlers

import (
	"context"
	"net/http"
	"strings"

	"fleet/src/models"
	"fleet/src/utils"

	"github.com/go-chi/chi/v5"
)

func reminderFilter(r *http.Request) (models.ReminderFilter, error) {
	var filter models.ReminderFilter
	var err error
	if filter.StartDate, err = queryDate(r, "startDate"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = queryDate(r, "endDate"); err != nil {
		return filter, err
	}

	q := r.URL.Query()
	filter.Type = strings.ToUpper(strings.TrimSpace(q.Get("type")))
	if filter.Type != "" && filter.Type != utils.ReminderTypeKIR && filter.Type != utils.ReminderTypeSTNK {
		return filter, utils.BadRequest("type must be KIR or STNK")
	}
	filter.AssetType = strings.ToUpper(strings.TrimSpace(q.Get("assetType")))
	filter.Overdue = q.Get("overdue") == "true"

	switch strings.ToLower(q.Get("sort")) {
	case "", "desc":
	case "asc":
		filter.SortAsc = true
	default:
		return filter, utils.BadRequest("sort must be asc or desc")
	}
	return filter, nil
}

func (h *Handler) GetReminders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	filter, err := reminderFilter(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	list, err := h.Reminders.List(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", list)
}

func (h *Handler) MarkReminderDone(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	reminder, err := h.Reminders.MarkDone(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Reminder marked as done", reminder)
}

func (h *Handler) ScanReminders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.Reminders.Scan(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "Reminder scan finished", result)
}
