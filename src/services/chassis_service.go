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

type ChassisService struct {
	assets       repositories.AssetRepository
	chassis      repositories.ChassisRepository
	reminderRepo repositories.ReminderRepository
	reminders    *ReminderService
	codes        *CodeGenerator
	txm          repositories.TxManager
}

func NewChassisService(
	assets repositories.AssetRepository,
	chassis repositories.ChassisRepository,
	reminderRepo repositories.ReminderRepository,
	reminders *ReminderService,
	codes *CodeGenerator,
	txm repositories.TxManager,
) *ChassisService {
	return &ChassisService{
		assets:       assets,
		chassis:      chassis,
		reminderRepo: reminderRepo,
		reminders:    reminders,
		codes:        codes,
		txm:          txm,
	}
}

func chassisDues(c *models.Chassis) []ReminderDue {
	return []ReminderDue{{Type: utils.ReminderTypeKIR, Date: c.KIRDueDate}}
}

func (s *ChassisService) GetAll(ctx context.Context) ([]models.Chassis, error) {
	return s.chassis.GetAll(ctx)
}

func (s *ChassisService) GetByID(ctx context.Context, id string) (*models.Chassis, error) {
	c, err := s.chassis.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NotFound("chassis not found")
	}
	return c, err
}

func (s *ChassisService) Create(ctx context.Context, req schemas.ChassisRequest) (*models.Chassis, error) {
	if err := req.Validate(true); err != nil {
		return nil, err
	}
	if code := providedCode(req.AssetCode); code != "" {
		if err := s.codes.CheckProvided(utils.AssetTypeChassis, code); err != nil {
			return nil, err
		}
	}

	asset := models.Asset{ID: uuid.NewString(), AssetType: utils.AssetTypeChassis, IsActive: true}
	chassis := models.Chassis{ID: uuid.NewString(), AssetID: asset.ID}
	req.ApplyTo(&asset, &chassis)

	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		asset.AssetCode = providedCode(req.AssetCode)
		if asset.AssetCode == "" {
			codes, err := s.codes.Next(ctx, utils.AssetTypeChassis, 1, tx)
			if err != nil {
				return err
			}
			asset.AssetCode = codes[0]
		}
		if err := s.assets.Create(ctx, &asset, tx); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return utils.Conflict(fmt.Sprintf("asset code %s already exists", asset.AssetCode))
			}
			return err
		}
		if err := s.chassis.Create(ctx, &chassis, tx); err != nil {
			return err
		}
		_, err := s.reminders.RebuildForAsset(ctx, asset.ID, chassisDues(&chassis), tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.reminders.onChange()
	chassis.Asset = &asset
	return &chassis, nil
}

// Update applies a partial update and supersedes the KIR reminder.
func (s *ChassisService) Update(ctx context.Context, id string, req schemas.ChassisRequest) (*models.Chassis, error) {
	if err := req.Validate(false); err != nil {
		return nil, err
	}
	chassis, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(chassis.Asset, chassis)

	err = s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.assets.Update(ctx, chassis.Asset, tx); err != nil {
			return err
		}
		if err := s.chassis.Update(ctx, chassis, tx); err != nil {
			return err
		}
		_, err := s.reminders.RebuildForAsset(ctx, chassis.AssetID, chassisDues(chassis), tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.reminders.onChange()
	return chassis, nil
}

func (s *ChassisService) Delete(ctx context.Context, id string) error {
	if _, err := s.BulkDelete(ctx, []string{id}); err != nil {
		if errors.Is(err, errNoneFound) {
			return utils.NotFound("chassis not found")
		}
		return err
	}
	return nil
}

// BulkDelete removes chassis, their reminders and assets in one transaction.
func (s *ChassisService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if err := (schemas.IDsRequest{IDs: ids}).Validate(); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		found, err := s.chassis.GetByIDs(ctx, ids, tx)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return errNoneFound
		}
		chassisIDs := make([]string, 0, len(found))
		assetIDs := make([]string, 0, len(found))
		for _, c := range found {
			chassisIDs = append(chassisIDs, c.ID)
			assetIDs = append(assetIDs, c.AssetID)
		}

		if _, err := s.reminderRepo.DeleteByAssetIDs(ctx, assetIDs, tx); err != nil {
			return err
		}
		if deleted, err = s.chassis.DeleteByIDs(ctx, chassisIDs, tx); err != nil {
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
