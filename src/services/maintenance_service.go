package services

import (
	"context"
	"errors"
	"fmt"

	"fleet/src/models"
	"fleet/src/repositories"
	"fleet/src/schemas"
	"fleet/src/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type MaintenanceService struct {
	maintenances repositories.MaintenanceRepository
	spareparts   repositories.SparepartRepository
	assets       repositories.AssetRepository
	codes        *CodeGenerator
	txm          repositories.TxManager
	onChange     func()
}

func NewMaintenanceService(
	maintenances repositories.MaintenanceRepository,
	spareparts repositories.SparepartRepository,
	assets repositories.AssetRepository,
	codes *CodeGenerator,
	txm repositories.TxManager,
) *MaintenanceService {
	return &MaintenanceService{
		maintenances: maintenances,
		spareparts:   spareparts,
		assets:       assets,
		codes:        codes,
		txm:          txm,
		onChange:     func() {},
	}
}

// OnChange registers a hook run after every committed write, used to drop
// cached dashboard figures.
func (s *MaintenanceService) OnChange(fn func()) {
	s.onChange = fn
}

func (s *MaintenanceService) GetByID(ctx context.Context, id string) (*models.Maintenance, error) {
	m, err := s.maintenances.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NotFound("maintenance not found")
	}
	return m, err
}

func (s *MaintenanceService) ListMine(ctx context.Context, userID string, page, size int, search string) (*schemas.MaintenancePage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	list, total, err := s.maintenances.ListByUser(ctx, models.MaintenanceFilter{
		UserID: userID,
		Search: search,
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, err
	}
	return &schemas.MaintenancePage{Data: list, Pagination: schemas.NewPagination(total, page, size)}, nil
}

func (s *MaintenanceService) ListByAsset(ctx context.Context, assetID string) ([]models.Maintenance, error) {
	return s.maintenances.ListByAsset(ctx, assetID)
}

// Create stores a maintenance record with a generated record number and takes
// the used spareparts out of stock. Any shortage aborts the whole record.
func (s *MaintenanceService) Create(ctx context.Context, userID string, req schemas.MaintenanceRequest) (*models.Maintenance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m := models.Maintenance{ID: uuid.NewString(), UserID: userID}
	req.ApplyTo(&m)
	if err := s.ensureAsset(ctx, m.AssetID); err != nil {
		return nil, err
	}
	items := req.Items()

	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		codes, err := s.codes.Next(ctx, utils.CodeCategoryMaintenance, 1, tx)
		if err != nil {
			return err
		}
		m.RecordNumber = codes[0]

		if err := s.maintenances.Create(ctx, &m, tx); err != nil {
			return err
		}
		if err := s.adjustStock(ctx, items, -1, tx); err != nil {
			return err
		}
		return s.maintenances.ReplaceSpareparts(ctx, m.ID, items, tx)
	})
	if err != nil {
		return nil, err
	}
	m.Spareparts = items
	s.onChange()

	utils.LoggerFromContext(ctx).WithField("record_number", m.RecordNumber).Info("maintenance recorded")
	return &m, nil
}

// Update replaces the record and its spareparts. The previous quantities are
// returned to stock before the new ones are taken out.
func (s *MaintenanceService) Update(ctx context.Context, id string, req schemas.MaintenanceRequest) (*models.Maintenance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousAsset := m.AssetID
	req.ApplyTo(m)
	if m.AssetID != previousAsset {
		if err := s.ensureAsset(ctx, m.AssetID); err != nil {
			return nil, err
		}
	}
	items := req.Items()

	err = s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		previous, err := s.maintenances.Spareparts(ctx, m.ID, tx)
		if err != nil {
			return err
		}
		if err := s.adjustStock(ctx, previous, 1, tx); err != nil {
			return err
		}
		if err := s.maintenances.Update(ctx, m, tx); err != nil {
			return err
		}
		if err := s.adjustStock(ctx, items, -1, tx); err != nil {
			return err
		}
		return s.maintenances.ReplaceSpareparts(ctx, m.ID, items, tx)
	})
	if err != nil {
		return nil, err
	}
	m.Spareparts = items
	s.onChange()
	return m, nil
}

// Delete removes the record and returns its spareparts to stock.
func (s *MaintenanceService) Delete(ctx context.Context, id string) error {
	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		previous, err := s.maintenances.Spareparts(ctx, id, tx)
		if err != nil {
			return err
		}
		if err := s.adjustStock(ctx, previous, 1, tx); err != nil {
			return err
		}
		return s.maintenances.Delete(ctx, id, tx)
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.NotFound("maintenance not found")
	}
	if err == nil {
		s.onChange()
	}
	return err
}

func (s *MaintenanceService) adjustStock(ctx context.Context, items []models.MaintenanceSparepart, sign int, tx pgx.Tx) error {
	for _, it := range items {
		err := s.spareparts.AdjustStock(ctx, it.SparepartID, sign*it.Quantity, tx)
		switch {
		case errors.Is(err, repositories.ErrInsufficientStock):
			return utils.Conflict(fmt.Sprintf("insufficient stock for sparepart %s", it.SparepartID))
		case errors.Is(err, repositories.ErrNotFound):
			return utils.BadRequest(fmt.Sprintf("sparepart %s does not exist", it.SparepartID))
		case err != nil:
			return err
		}
	}
	return nil
}

func (s *MaintenanceService) ensureAsset(ctx context.Context, assetID string) error {
	_, err := s.assets.GetByID(ctx, assetID)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.BadRequest(fmt.Sprintf("asset %s does not exist", assetID))
	}
	return err
}
