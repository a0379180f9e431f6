package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fleet/src/models"
	"fleet/src/schemas"
	"fleet/src/utils"

	"github.com/xuri/excelize/v2"
)

// vehicleHeaders maps normalized spreadsheet headers to vehicle fields.
var vehicleHeaders = map[string]string{
	"NO POLISI":         "license_plate",
	"NOPOL":             "license_plate",
	"LICENSE PLATE":     "license_plate",
	"MERK":              "brand",
	"BRAND":             "brand",
	"TYPE":              "model",
	"TIPE":              "model",
	"MODEL":             "model",
	"TAHUN":             "year",
	"YEAR":              "year",
	"WARNA":             "color",
	"COLOR":             "color",
	"NO RANGKA":         "chassis_number",
	"CHASSIS NUMBER":    "chassis_number",
	"NO MESIN":          "engine_number",
	"ENGINE NUMBER":     "engine_number",
	"NAMA PEMILIK":      "owner",
	"PEMILIK":           "owner",
	"OWNER":             "owner",
	"ALAMAT":            "address",
	"ADDRESS":           "address",
	"NO STNK":           "stnk_number",
	"STNK NUMBER":       "stnk_number",
	"MASA BERLAKU STNK": "stnk_due_date",
	"STNK DUE DATE":     "stnk_due_date",
	"NO KIR":            "kir_number",
	"KIR NUMBER":        "kir_number",
	"MASA BERLAKU KIR":  "kir_due_date",
	"KIR DUE DATE":      "kir_due_date",
	"HARGA":             "purchase_price",
	"PURCHASE PRICE":    "purchase_price",
	"KETERANGAN":        "notes",
	"NOTES":             "notes",
}

var cellDateLayouts = []string{utils.ShortDashDateLayout, "02/01/2006", "02-01-2006", "2/1/2006", utils.ShortSlashDateLayout}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToUpper(strings.ReplaceAll(h, ".", " "))), " ")
}

// ParseVehicleWorkbook reads vehicle rows from an xlsx workbook. The data is
// taken from the second sheet when the workbook has one (the first is a cover
// sheet in the fleet template), otherwise from the first. Rows without a
// license plate are skipped.
func ParseVehicleWorkbook(r io.Reader) ([]schemas.VehicleRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, utils.BadRequest(fmt.Sprintf("invalid xlsx file: %s", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, utils.BadRequest("workbook has no sheets")
	}
	sheet := sheets[0]
	if len(sheets) > 1 {
		sheet = sheets[1]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, utils.BadRequest(fmt.Sprintf("sheet %q has no data rows", sheet))
	}

	columns := map[int]string{}
	for i, h := range rows[0] {
		if key, ok := vehicleHeaders[normalizeHeader(h)]; ok {
			columns[i] = key
		}
	}
	if len(columns) == 0 {
		return nil, utils.BadRequest(fmt.Sprintf("sheet %q has no known headers", sheet))
	}

	var reqs []schemas.VehicleRequest
	for n, row := range rows[1:] {
		values := map[string]string{}
		for i, cell := range row {
			if key, ok := columns[i]; ok && strings.TrimSpace(cell) != "" {
				values[key] = strings.TrimSpace(cell)
			}
		}
		if values["license_plate"] == "" {
			continue
		}
		req, err := vehicleRequestFromRow(values)
		if err != nil {
			return nil, utils.BadRequest(fmt.Sprintf("row %d: %s", n+2, err))
		}
		reqs = append(reqs, req)
	}
	if len(reqs) == 0 {
		return nil, utils.BadRequest("no vehicle rows found")
	}
	return reqs, nil
}

func vehicleRequestFromRow(values map[string]string) (schemas.VehicleRequest, error) {
	str := func(key string) *string {
		v := values[key]
		return &v
	}

	plate := values["license_plate"]
	req := schemas.VehicleRequest{
		AssetFields: schemas.AssetFields{
			Name:         &plate,
			Brand:        str("brand"),
			Model:        str("model"),
			SerialNumber: str("chassis_number"),
		},
		LicensePlate: &plate,
		Owner:        str("owner"),
		Address:      str("address"),
		Color:        str("color"),
		EngineNumber: str("engine_number"),
		FrameNumber:  str("chassis_number"),
		NoKIR:        str("kir_number"),
		STNKNumber:   str("stnk_number"),
		Notes:        str("notes"),
	}

	if y := values["year"]; y != "" {
		year, purchase, err := parseYear(y)
		if err != nil {
			return req, err
		}
		req.Year = &year
		req.PurchaseDate = schemas.NewDate(purchase)
	}
	if p := values["purchase_price"]; p != "" {
		price, err := strconv.ParseFloat(strings.ReplaceAll(p, ",", ""), 64)
		if err != nil {
			return req, fmt.Errorf("invalid purchase price %q", p)
		}
		req.PurchasePrice = &price
	}

	var err error
	if req.STNKDueDate, err = parseCellDate(values["stnk_due_date"]); err != nil {
		return req, err
	}
	if req.KIRDueDate, err = parseCellDate(values["kir_due_date"]); err != nil {
		return req, err
	}
	return req, nil
}

// parseYear accepts a bare year, taken as January 1st, or a full date.
func parseYear(value string) (int, time.Time, error) {
	if len(value) == 4 {
		if y, err := strconv.Atoi(value); err == nil {
			return y, time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	d, err := parseCellDate(value)
	if err != nil {
		return 0, time.Time{}, err
	}
	if d == nil {
		return 0, time.Time{}, fmt.Errorf("invalid year %q", value)
	}
	return d.Year(), d.Time, nil
}

// parseCellDate reads an Excel serial date or a textual date.
func parseCellDate(value string) (*schemas.Date, error) {
	if value == "" {
		return nil, nil
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", value)
		}
		return schemas.NewDate(t), nil
	}
	if t, err := utils.ParseDate(value); err == nil {
		return schemas.NewDate(t), nil
	}
	for _, layout := range cellDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return schemas.NewDate(t), nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", value)
}

type ImportService struct {
	vehicles *VehicleService
}

func NewImportService(vehicles *VehicleService) *ImportService {
	return &ImportService{vehicles: vehicles}
}

// ImportVehicles parses the workbook and creates every vehicle in one transaction.
func (s *ImportService) ImportVehicles(ctx context.Context, r io.Reader) (*schemas.ImportResult, error) {
	reqs, err := ParseVehicleWorkbook(r)
	if err != nil {
		return nil, err
	}
	created, err := s.vehicles.BulkCreate(ctx, reqs)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = []models.Vehicle{}
	}
	return &schemas.ImportResult{Imported: len(created), Vehicles: created}, nil
}
