package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"fleet/src/models"
	"fleet/src/repositories"
	"fleet/src/utils"
	"fleet/src/utils/render"
)

// MaintenanceReport is the data passed to the maintenance report template.
type MaintenanceReport struct {
	Maintenance *models.Maintenance
	Vehicle     *models.Vehicle
	Chassis     *models.Chassis
	Equipment   *models.Equipment
	Total       float64
	PrintedAt   string
}

type ReportService struct {
	maintenances repositories.MaintenanceRepository
	vehicles     repositories.VehicleRepository
	chassis      repositories.ChassisRepository
	equipments   repositories.EquipmentRepository
	engine       render.PDFEngine
	templatesDir string
	timeout      time.Duration
	loc          *time.Location
	now          Clock
}

func NewReportService(
	maintenances repositories.MaintenanceRepository,
	vehicles repositories.VehicleRepository,
	chassis repositories.ChassisRepository,
	equipments repositories.EquipmentRepository,
	engine render.PDFEngine,
	templatesDir string,
	timeout time.Duration,
	loc *time.Location,
) *ReportService {
	return &ReportService{
		maintenances: maintenances,
		vehicles:     vehicles,
		chassis:      chassis,
		equipments:   equipments,
		engine:       engine,
		templatesDir: templatesDir,
		timeout:      timeout,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *ReportService) SetClock(now Clock) {
	s.now = now
}

// FormatIndonesianDate renders t as "2 Januari 2025".
func FormatIndonesianDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), utils.MonthNamesID[t.Month()-1], t.Year())
}

func (s *ReportService) load(ctx context.Context, id string) (*MaintenanceReport, error) {
	m, err := s.maintenances.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NotFound("maintenance not found")
	}
	if err != nil {
		return nil, err
	}

	report := &MaintenanceReport{
		Maintenance: m,
		PrintedAt:   FormatIndonesianDate(s.now().In(s.loc)),
	}
	for _, it := range m.Spareparts {
		report.Total += it.Price * float64(it.Quantity)
	}

	if m.Asset == nil {
		return report, nil
	}
	switch m.Asset.AssetType {
	case utils.AssetTypeVehicle:
		report.Vehicle, err = s.vehicles.GetByAssetID(ctx, m.AssetID)
	case utils.AssetTypeChassis:
		report.Chassis, err = s.chassis.GetByAssetID(ctx, m.AssetID)
	case utils.AssetTypeEquipment:
		report.Equipment, err = s.equipments.GetByAssetID(ctx, m.AssetID)
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	return report, nil
}

// MaintenanceHTML renders the printable maintenance report.
func (s *ReportService) MaintenanceHTML(ctx context.Context, id string) (string, error) {
	report, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.templatesDir, "maintenance")
	return render.RenderHTMLWithCSS(filepath.Join(dir, "report.html"), filepath.Join(dir, "report.css"), report)
}

// MaintenancePDF renders the report and prints it on Legal paper. The returned
// name is the download file name.
func (s *ReportService) MaintenancePDF(ctx context.Context, id string) ([]byte, string, error) {
	html, err := s.MaintenanceHTML(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	pdf, err := s.engine.PDF(ctx, html)
	if err != nil {
		return nil, "", fmt.Errorf("render maintenance %s: %w", id, err)
	}
	utils.LoggerFromContext(ctx).WithField("maintenance_id", id).
		Infof("maintenance report generated in %s", time.Since(started))
	return pdf, fmt.Sprintf("Laporan-%s.pdf", id), nil
}
