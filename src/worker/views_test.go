package worker_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleet/src/schemas"
	"fleet/src/worker"
	"fleet/src/worker/controllers"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanner struct{}

func (stubScanner) Scan(context.Context) (*schemas.ReminderScanResponse, error) {
	return &schemas.ReminderScanResponse{Overdue: 3}, nil
}

func newTestServer() *worker.Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return worker.NewServerWithController(controllers.NewController(stubScanner{}, logger, "@daily"))
}

func TestWorker_Alive(t *testing.T) {
	server := newTestServer()
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alive", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Tasks  []struct {
			Name    string `json:"name"`
			NextRun string `json:"next_run"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alive", body.Status)
	assert.Empty(t, body.Tasks)
}

func TestWorker_ScanReminders(t *testing.T) {
	server := newTestServer()
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reminders/scan", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                         `json:"success"`
		Data    schemas.ReminderScanResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.Data.Overdue)
}

func TestWorker_ReloadSchedule(t *testing.T) {
	server := newTestServer()
	defer server.Stop()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reminders/schedule", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, server.Handler.Controller.GetSchedulers(), 1)

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alive", nil))
	assert.Contains(t, rec.Body.String(), `"name":"reminder-scan"`)
}
