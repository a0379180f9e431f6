package services_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"fleet/src/services"
	"fleet/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheets map[string][][]interface{}, order ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func fleetWorkbook(t *testing.T) *bytes.Buffer {
	return workbook(t, map[string][][]interface{}{
		"Cover": {{"DAFTAR KENDARAAN"}},
		"Data": {
			{"No. Polisi", "Merk", "Tahun", "Masa Berlaku STNK", "Masa Berlaku KIR", "Keterangan"},
			{"B 9044 TXT", "Hino", 2019, time.Date(2021, 9, 14, 0, 0, 0, 0, time.UTC), "31/01/2024", "unit baru"},
			{"", "Isuzu"},
			{"B 1234 XY", "Mitsubishi", nil, nil, nil, nil},
		},
	}, "Cover", "Data")
}

func TestParseVehicleWorkbook(t *testing.T) {
	reqs, err := services.ParseVehicleWorkbook(fleetWorkbook(t))
	require.NoError(t, err)
	require.Len(t, reqs, 2, "rows without a plate are skipped")

	first := reqs[0]
	assert.Equal(t, "B 9044 TXT", *first.LicensePlate)
	assert.Equal(t, "B 9044 TXT", *first.Name)
	assert.Equal(t, "Hino", *first.Brand)
	assert.Equal(t, 2019, *first.Year)
	assert.Equal(t, day(2019, 1, 1), first.PurchaseDate.Time)
	assert.Equal(t, day(2021, 9, 14), first.STNKDueDate.Time)
	assert.Equal(t, day(2024, 1, 31), first.KIRDueDate.Time)
	assert.Equal(t, "unit baru", *first.Notes)

	assert.Nil(t, reqs[1].Year)
	assert.Nil(t, reqs[1].STNKDueDate)
}

func TestParseVehicleWorkbook_Rejects(t *testing.T) {
	_, err := services.ParseVehicleWorkbook(bytes.NewBufferString("not a workbook"))
	requireStatus(t, err, http.StatusBadRequest)

	_, err = services.ParseVehicleWorkbook(workbook(t, map[string][][]interface{}{
		"Sheet": {{"Foo", "Bar"}, {"1", "2"}},
	}, "Sheet"))
	requireStatus(t, err, http.StatusBadRequest)

	_, err = services.ParseVehicleWorkbook(workbook(t, map[string][][]interface{}{
		"Sheet": {{"NO POLISI", "MASA BERLAKU KIR"}, {"B 1 A", "someday"}},
	}, "Sheet"))
	requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "row 2")
}

func TestImportService_ImportVehicles(t *testing.T) {
	h := newHarness(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	imports := services.NewImportService(h.vehicles)

	res, err := imports.ImportVehicles(context.Background(), fleetWorkbook(t))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	require.Len(t, res.Vehicles, 2)
	assert.Equal(t, "TRK-0000001", res.Vehicles[0].Asset.AssetCode)
	assert.Equal(t, "TRK-0000002", res.Vehicles[1].Asset.AssetCode)
	assert.Equal(t, 1, h.store.txCount)

	got := h.store.reminderTypes(res.Vehicles[0].AssetID)
	assert.Equal(t, day(2025, 9, 14), got[utils.ReminderTypeSTNK].NextDueDate)
	assert.Equal(t, day(2025, 1, 31), got[utils.ReminderTypeKIR].NextDueDate)
}
