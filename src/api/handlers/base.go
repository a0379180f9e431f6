package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"fleet/src/repositories"
	"fleet/src/schemas"
	"fleet/src/services"
	"fleet/src/utils"

	"github.com/sirupsen/logrus"
)

const requestTimeout = 10 * time.Second

type Services struct {
	Vehicles     *services.VehicleService
	Chassis      *services.ChassisService
	Equipments   *services.EquipmentService
	Reminders    *services.ReminderService
	Spareparts   *services.SparepartService
	Maintenances *services.MaintenanceService
	Drivers      *services.DriverService
	Users        *services.UserService
	Dashboard    *services.DashboardService
	Imports      *services.ImportService
	Reports      *services.ReportService
	Uploads      *services.UploadService
}

type Handler struct {
	Services
	Logger         *logrus.Logger
	MaxUploadBytes int64
	ReportTimeout  time.Duration
}

func NewHandler(svcs Services, logger *logrus.Logger, maxUploadBytes int64, reportTimeout time.Duration) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	if reportTimeout <= 0 {
		reportTimeout = 2 * time.Minute
	}
	return &Handler{Services: svcs, Logger: logger, MaxUploadBytes: maxUploadBytes, ReportTimeout: reportTimeout}
}

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		fmt.Fprintf(w, "Im alive!")
	} else {
		fmt.Fprintf(w, "Method not available: %s", r.Method)
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	h.respond(w, r, schemas.ApiResponse{Success: true, Message: message, Data: data}, status)
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string, detail interface{}) {
	h.respond(w, nil, schemas.ApiResponse{Success: false, Message: message, Error: detail}, status)
}

// HandleErrors writes the envelope matching err: validation failures are 400
// with per field messages, HTTP errors keep their code, and repository or
// domain sentinels are mapped to their status.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	var validationErr *utils.ValidationError
	switch {
	case err == nil:
		h.fail(w, http.StatusInternalServerError, "Unhandled error", nil)
	case errors.Is(err, context.DeadlineExceeded):
		h.fail(w, http.StatusGatewayTimeout, "Request timed out", nil)
	case errors.As(err, &validationErr):
		h.fail(w, http.StatusBadRequest, "Validation failed", validationErr.Fields)
	case errors.As(err, &httpErr):
		h.fail(w, httpErr.Code, httpErr.Message, nil)
	case errors.Is(err, repositories.ErrNotFound):
		h.fail(w, http.StatusNotFound, "Record not found", nil)
	case errors.Is(err, repositories.ErrDuplicate):
		h.fail(w, http.StatusConflict, "Record already exists", nil)
	case errors.Is(err, repositories.ErrInsufficientStock), errors.Is(err, repositories.ErrStale):
		h.fail(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, utils.ErrInvalidInterval):
		h.fail(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, utils.ErrCodeOverflow):
		h.fail(w, http.StatusConflict, err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("unhandled request error")
		}
		h.fail(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// decode reads a JSON body into dst, rejecting unknown or malformed payloads.
func decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return utils.BadRequest(fmt.Sprintf("invalid request body: %s", err))
	}
	return nil
}

// formFile reads one multipart file field, bounding the body to MaxUploadBytes.
func (h *Handler) formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		return nil, nil, utils.BadRequest(fmt.Sprintf("invalid multipart form: %s", err))
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, utils.BadRequest(fmt.Sprintf("missing %q file", field))
	}
	return file, header, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		return nil, utils.BadRequest(fmt.Sprintf("invalid %s: %s", key, raw))
	}
	return &d, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.BadRequest(fmt.Sprintf("invalid %s: %s", key, raw))
	}
	return n, nil
}
