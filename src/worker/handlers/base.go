package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fleet/src/schemas"
	"fleet/src/utils"
	"fleet/src/worker/controllers"
)

type Handler struct {
	Controller *controllers.Controller
}

func NewHandler(controller *controllers.Controller) *Handler {
	return &Handler{Controller: controller}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, schemas.ApiResponse{Message: "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, schemas.ApiResponse{Message: httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, schemas.ApiResponse{Message: "Internal Server Error", Error: err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, schemas.ApiResponse{Message: "Unhandled error"}, http.StatusInternalServerError)
	}
}
