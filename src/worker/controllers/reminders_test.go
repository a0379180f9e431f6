package controllers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"fleet/src/schemas"
	"fleet/src/utils"
	"fleet/src/worker/controllers"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeScanner struct {
	calls int
	err   error
}

func (f *fakeScanner) Scan(ctx context.Context) (*schemas.ReminderScanResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &schemas.ReminderScanResponse{Overdue: 1, Upcoming: 2}, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestController_LoadReminderScanReplacesTask(t *testing.T) {
	c := controllers.NewController(&fakeScanner{}, quietLogger(), "0 7 * * *")
	defer c.Stop()

	require.NoError(t, c.LoadReminderScan(context.Background()))
	first := c.GetSchedulers()["reminder-scan"]
	require.NotNil(t, first)

	require.NoError(t, c.LoadReminderScan(context.Background()))
	tasks := c.GetSchedulers()
	assert.Len(t, tasks, 1)
	assert.NotSame(t, first, tasks["reminder-scan"])
}

func TestController_InvalidCronKeepsRunningTask(t *testing.T) {
	c := controllers.NewController(&fakeScanner{}, quietLogger(), "0 7 * * *")
	defer c.Stop()
	require.NoError(t, c.LoadReminderScan(context.Background()))

	c.ScanCron = "every day"
	err := c.LoadReminderScan(context.Background())
	var httpErr *utils.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Len(t, c.GetSchedulers(), 1)
}

func TestController_RunReminderScan(t *testing.T) {
	scanner := &fakeScanner{}
	c := controllers.NewController(scanner, quietLogger(), "@daily")

	res, err := c.RunReminderScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Overdue)
	assert.Equal(t, 2, res.Upcoming)
	assert.Equal(t, 1, scanner.calls)

	scanner.err = errors.New("db down")
	_, err = c.RunReminderScan(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestController_Stop(t *testing.T) {
	c := controllers.NewController(&fakeScanner{}, quietLogger(), "@hourly")
	require.NoError(t, c.LoadReminderScan(context.Background()))
	c.Stop()
	assert.Empty(t, c.GetSchedulers())
}
