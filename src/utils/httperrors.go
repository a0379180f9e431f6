package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HTTPError defines a custom error structure that includes an HTTP status code and message
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError instance with a custom status code and message
func NewHTTPError(code int, message string) error {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func BadRequest(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

func Unauthorized(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

func Forbidden(message string) error {
	return NewHTTPError(http.StatusForbidden, message)
}

func NotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

func Conflict(message string) error {
	return NewHTTPError(http.StatusConflict, message)
}

func UnprocessableEntity(message string) error {
	return NewHTTPError(http.StatusUnprocessableEntity, message)
}

func InternalServerError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}

func ServiceUnavailable(message string) error {
	return NewHTTPError(http.StatusServiceUnavailable, message)
}

// ValidationError carries per field messages for a rejected request body.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Require records a "required" message when value is blank.
func (e *ValidationError) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// WriteError is a helper function to send the error response as JSON
func WriteError(w http.ResponseWriter, err error) {
	httpErr, ok := err.(*HTTPError)
	if !ok {
		httpErr = &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Internal Server Error",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": httpErr.Message})
}
