package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet/src/models"
	"fleet/src/repositories"
	"fleet/src/schemas"
	"fleet/src/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VehicleService struct {
	assets       repositories.AssetRepository
	vehicles     repositories.VehicleRepository
	reminderRepo repositories.ReminderRepository
	reminders    *ReminderService
	codes        *CodeGenerator
	txm          repositories.TxManager
}

func NewVehicleService(
	assets repositories.AssetRepository,
	vehicles repositories.VehicleRepository,
	reminderRepo repositories.ReminderRepository,
	reminders *ReminderService,
	codes *CodeGenerator,
	txm repositories.TxManager,
) *VehicleService {
	return &VehicleService{
		assets:       assets,
		vehicles:     vehicles,
		reminderRepo: reminderRepo,
		reminders:    reminders,
		codes:        codes,
		txm:          txm,
	}
}

func vehicleDues(v *models.Vehicle) []ReminderDue {
	return []ReminderDue{
		{Type: utils.ReminderTypeSTNK, Date: v.STNKDueDate},
		{Type: utils.ReminderTypeKIR, Date: v.KIRDueDate},
	}
}

// providedCode returns the trimmed asset code of a request, or "" when the
// code should be generated.
func providedCode(code *string) string {
	if code == nil {
		return ""
	}
	return strings.TrimSpace(*code)
}

func (s *VehicleService) GetAll(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicles.GetAll(ctx)
}

func (s *VehicleService) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NotFound("vehicle not found")
	}
	return v, err
}

func (s *VehicleService) Create(ctx context.Context, req schemas.VehicleRequest) (*models.Vehicle, error) {
	vehicles, err := s.BulkCreate(ctx, []schemas.VehicleRequest{req})
	if err != nil {
		return nil, err
	}
	return &vehicles[0], nil
}

// BulkCreate inserts every vehicle in one transaction. Missing asset codes are
// generated as one consecutive run; a failure on any row rolls back all rows.
func (s *VehicleService) BulkCreate(ctx context.Context, reqs []schemas.VehicleRequest) ([]models.Vehicle, error) {
	if len(reqs) == 0 {
		return nil, utils.BadRequest("no vehicles to create")
	}
	missing := 0
	for i := range reqs {
		req := &reqs[i]
		// Fleet sheets only carry the plate; it doubles as the asset name.
		if (req.Name == nil || strings.TrimSpace(*req.Name) == "") && req.LicensePlate != nil {
			req.Name = req.LicensePlate
		}
		if err := req.Validate(true); err != nil {
			if len(reqs) == 1 {
				return nil, err
			}
			return nil, utils.BadRequest(fmt.Sprintf("row %d: %s", i+1, err))
		}
		if code := providedCode(req.AssetCode); code == "" {
			missing++
		} else if err := s.codes.CheckProvided(utils.AssetTypeVehicle, code); err != nil {
			if len(reqs) == 1 {
				return nil, err
			}
			return nil, utils.BadRequest(fmt.Sprintf("row %d: %s", i+1, err))
		}
	}

	created := make([]models.Vehicle, 0, len(reqs))
	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		codes, err := s.codes.Next(ctx, utils.AssetTypeVehicle, missing, tx)
		if err != nil {
			return err
		}
		for _, req := range reqs {
			code := providedCode(req.AssetCode)
			if code == "" {
				code, codes = codes[0], codes[1:]
			}
			v, err := s.insert(ctx, code, req, tx)
			if err != nil {
				return err
			}
			created = append(created, *v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.reminders.onChange()

	utils.LoggerFromContext(ctx).Infof("created %d vehicles", len(created))
	return created, nil
}

func (s *VehicleService) insert(ctx context.Context, code string, req schemas.VehicleRequest, tx pgx.Tx) (*models.Vehicle, error) {
	asset := models.Asset{ID: uuid.NewString(), AssetCode: code, AssetType: utils.AssetTypeVehicle, IsActive: true}
	vehicle := models.Vehicle{ID: uuid.NewString(), AssetID: asset.ID}
	req.ApplyTo(&asset, &vehicle)

	if err := s.assets.Create(ctx, &asset, tx); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.Conflict(fmt.Sprintf("asset code %s already exists", code))
		}
		return nil, err
	}
	if err := s.vehicles.Create(ctx, &vehicle, tx); err != nil {
		return nil, err
	}
	if _, err := s.reminders.RebuildForAsset(ctx, asset.ID, vehicleDues(&vehicle), tx); err != nil {
		return nil, err
	}
	vehicle.Asset = &asset
	return &vehicle, nil
}

// Update applies a partial update and supersedes the asset's reminders with
// ones derived from the new STNK and KIR dates.
func (s *VehicleService) Update(ctx context.Context, id string, req schemas.VehicleRequest) (*models.Vehicle, error) {
	if err := req.Validate(false); err != nil {
		return nil, err
	}
	vehicle, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	asset := vehicle.Asset
	req.ApplyTo(asset, vehicle)

	err = s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.assets.Update(ctx, asset, tx); err != nil {
			return err
		}
		if err := s.vehicles.Update(ctx, vehicle, tx); err != nil {
			return err
		}
		_, err := s.reminders.RebuildForAsset(ctx, asset.ID, vehicleDues(vehicle), tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.reminders.onChange()
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if _, err := s.BulkDelete(ctx, []string{id}); err != nil {
		if errors.Is(err, errNoneFound) {
			return utils.NotFound("vehicle not found")
		}
		return err
	}
	return nil
}

// BulkDelete removes the vehicles among ids together with their reminders and
// assets. Unknown ids are ignored; when none exist the call fails with 404.
func (s *VehicleService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if err := (schemas.IDsRequest{IDs: ids}).Validate(); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		found, err := s.vehicles.GetByIDs(ctx, ids, tx)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return errNoneFound
		}
		vehicleIDs := make([]string, 0, len(found))
		assetIDs := make([]string, 0, len(found))
		for _, v := range found {
			vehicleIDs = append(vehicleIDs, v.ID)
			assetIDs = append(assetIDs, v.AssetID)
		}

		if _, err := s.reminderRepo.DeleteByAssetIDs(ctx, assetIDs, tx); err != nil {
			return err
		}
		if deleted, err = s.vehicles.DeleteByIDs(ctx, vehicleIDs, tx); err != nil {
			return err
		}
		_, err = s.assets.DeleteByIDs(ctx, assetIDs, tx)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.reminders.onChange()
	return deleted, nil
}
