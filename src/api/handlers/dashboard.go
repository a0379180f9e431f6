package handlers

import (
	"context"
	"net/http"
)

func (h *Handler) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.Dashboard.Summary(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.ok(w, r, http.StatusOK, "", summary)
}
