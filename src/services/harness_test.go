package services_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"fleet/src/config"
	"fleet/src/services"
	"fleet/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store        *store
	cfg          *config.Config
	codes        *services.CodeGenerator
	reminders    *services.ReminderService
	vehicles     *services.VehicleService
	chassis      *services.ChassisService
	equipments   *services.EquipmentService
	spareparts   *services.SparepartService
	maintenances *services.MaintenanceService
	users        *services.UserService
	drivers      *services.DriverService
	dashboard    *services.DashboardService
	tokenAuth    *jwtauth.JWTAuth
	changes      int

	// reminderChanges counts hook calls from reminder writes.
	reminderChanges int
}

func newHarness(now time.Time) *harness {
	s := newStore()
	cfg := testConfig()
	clock := func() time.Time { return now }
	loc := time.UTC

	h := &harness{store: s, cfg: cfg, tokenAuth: jwtauth.New("HS256", []byte("test-secret"), nil)}
	txm := fakeTx{s}
	h.codes = services.NewCodeGenerator(fakeCodes{s}, cfg)
	h.reminders = services.NewReminderService(fakeReminders{s}, cfg, loc)
	h.reminders.SetClock(clock)
	h.reminders.OnChange(func() { h.reminderChanges++ })
	h.vehicles = services.NewVehicleService(fakeAssets{s}, fakeVehicles{s}, fakeReminders{s}, h.reminders, h.codes, txm)
	h.chassis = services.NewChassisService(fakeAssets{s}, fakeChassis{s}, fakeReminders{s}, h.reminders, h.codes, txm)
	h.equipments = services.NewEquipmentService(fakeAssets{s}, fakeEquipments{s}, h.codes, txm)
	h.spareparts = services.NewSparepartService(fakeSpareparts{s}, loc)
	h.spareparts.SetClock(clock)
	h.maintenances = services.NewMaintenanceService(fakeMaintenances{s}, fakeSpareparts{s}, fakeAssets{s}, h.codes, txm)
	h.maintenances.OnChange(func() { h.changes++ })
	h.users = services.NewUserService(fakeUsers{s}, h.tokenAuth, time.Hour)
	h.users.OnChange(func() { h.changes++ })
	h.drivers = services.NewDriverService(fakeDrivers{s})
	h.dashboard = services.NewDashboardService(fakeMaintenances{s}, fakeUsers{s}, fakeSpareparts{s}, fakeReminders{s},
		services.NewMemorySummaryCache(), time.Minute, cfg.Reminders.LeadDays, loc)
	h.dashboard.SetClock(clock)
	return h
}

func str(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// requireStatus asserts err is an HTTP error carrying code. Validation errors
// count as 400, as they do when written to the client.
func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		require.Equal(t, http.StatusBadRequest, code, verr.Error())
		return
	}
	var httpErr *utils.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected HTTP error %d, got %v", code, err)
	require.Equal(t, code, httpErr.Code, httpErr.Message)
}
