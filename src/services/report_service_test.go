package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"fleet/src/models"
	"fleet/src/services"
	"fleet/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	html string
	err  error
}

func (e *fakeEngine) PDF(_ context.Context, html string) ([]byte, error) {
	e.html = html
	if e.err != nil {
		return nil, e.err
	}
	return []byte("%PDF-1.4"), nil
}

func newReports(h *harness, engine *fakeEngine) *services.ReportService {
	s := h.store
	reports := services.NewReportService(fakeMaintenances{s}, fakeVehicles{s}, fakeChassis{s}, fakeEquipments{s},
		engine, "../../templates", time.Second, time.UTC)
	reports.SetClock(func() time.Time { return time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC) })
	return reports
}

func seedReport(h *harness) {
	seedWorkshop(h)
	stnk := day(2025, 9, 14)
	h.store.vehicles["v1"] = &models.Vehicle{ID: "v1", AssetID: "a1", LicensePlate: "B 1 AA", FrameNumber: "MHF123", STNKDueDate: &stnk}
	h.store.maintenances["m1"] = &models.Maintenance{ID: "m1", RecordNumber: "MNT-0000009", AssetID: "a1", UserID: "u1", Complaint: "Rem <bunyi>"}
	h.store.items["m1"] = []models.MaintenanceSparepart{{SparepartID: "oil", Quantity: 2}, {SparepartID: "filter", Quantity: 1}}
}

func TestReportService_MaintenanceHTML(t *testing.T) {
	h := newHarness(time.Now())
	seedReport(h)

	html, err := newReports(h, &fakeEngine{}).MaintenanceHTML(context.Background(), "m1")
	require.NoError(t, err)
	assert.Contains(t, html, "MNT-0000009")
	assert.Contains(t, html, "TRK-0000001")
	assert.Contains(t, html, "B 1 AA")
	assert.Contains(t, html, "14-09-2025")
	assert.Contains(t, html, "Oli Mesin")
	assert.Contains(t, html, "215000.00")
	assert.Contains(t, html, "Budi Mekanik")
	assert.Contains(t, html, "17 Agustus 2025")
	assert.Contains(t, html, "Rem &lt;bunyi&gt;")
}

func TestReportService_MaintenancePDF(t *testing.T) {
	h := newHarness(time.Now())
	seedReport(h)
	engine := &fakeEngine{}

	pdf, name, err := newReports(h, engine).MaintenancePDF(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "Laporan-m1.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Contains(t, engine.html, "MNT-0000009")

	_, _, err = newReports(h, engine).MaintenancePDF(context.Background(), "missing")
	requireStatus(t, err, http.StatusNotFound)

	failing := &fakeEngine{err: errors.New("chrome crashed")}
	_, _, err = newReports(h, failing).MaintenancePDF(context.Background(), "m1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chrome crashed")
}

func TestFormatIndonesianDate(t *testing.T) {
	assert.Equal(t, "2 Januari 2025", services.FormatIndonesianDate(day(2025, 1, 2)))
	assert.Equal(t, "31 Desember 1999", services.FormatIndonesianDate(day(1999, 12, 31)))
	assert.Len(t, utils.MonthNamesID, 12)
}
