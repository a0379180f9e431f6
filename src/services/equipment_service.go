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

type EquipmentService struct {
	assets     repositories.AssetRepository
	equipments repositories.EquipmentRepository
	codes      *CodeGenerator
	txm        repositories.TxManager
}

func NewEquipmentService(assets repositories.AssetRepository, equipments repositories.EquipmentRepository, codes *CodeGenerator, txm repositories.TxManager) *EquipmentService {
	return &EquipmentService{assets: assets, equipments: equipments, codes: codes, txm: txm}
}

func (s *EquipmentService) GetAll(ctx context.Context) ([]models.Equipment, error) {
	return s.equipments.GetAll(ctx)
}

func (s *EquipmentService) GetByID(ctx context.Context, id string) (*models.Equipment, error) {
	e, err := s.equipments.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NotFound("equipment not found")
	}
	return e, err
}

func (s *EquipmentService) Create(ctx context.Context, req schemas.EquipmentRequest) (*models.Equipment, error) {
	if err := req.Validate(true); err != nil {
		return nil, err
	}
	if code := providedCode(req.AssetCode); code != "" {
		if err := s.codes.CheckProvided(utils.AssetTypeEquipment, code); err != nil {
			return nil, err
		}
	}

	asset := models.Asset{ID: uuid.NewString(), AssetType: utils.AssetTypeEquipment, IsActive: true}
	equipment := models.Equipment{ID: uuid.NewString(), AssetID: asset.ID}
	req.ApplyTo(&asset, &equipment)

	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		asset.AssetCode = providedCode(req.AssetCode)
		if asset.AssetCode == "" {
			codes, err := s.codes.Next(ctx, utils.AssetTypeEquipment, 1, tx)
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
		return s.equipments.Create(ctx, &equipment, tx)
	})
	if err != nil {
		return nil, err
	}
	equipment.Asset = &asset
	return &equipment, nil
}

func (s *EquipmentService) Update(ctx context.Context, id string, req schemas.EquipmentRequest) (*models.Equipment, error) {
	if err := req.Validate(false); err != nil {
		return nil, err
	}
	equipment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(equipment.Asset, equipment)

	err = s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.assets.Update(ctx, equipment.Asset, tx); err != nil {
			return err
		}
		return s.equipments.Update(ctx, equipment, tx)
	})
	if err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.BulkDelete(ctx, []string{id}); err != nil {
		if errors.Is(err, errNoneFound) {
			return utils.NotFound("equipment not found")
		}
		return err
	}
	return nil
}

func (s *EquipmentService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if err := (schemas.IDsRequest{IDs: ids}).Validate(); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		found, err := s.equipments.GetByIDs(ctx, ids, tx)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return errNoneFound
		}
		equipmentIDs := make([]string, 0, len(found))
		assetIDs := make([]string, 0, len(found))
		for _, e := range found {
			equipmentIDs = append(equipmentIDs, e.ID)
			assetIDs = append(assetIDs, e.AssetID)
		}
		if deleted, err = s.equipments.DeleteByIDs(ctx, equipmentIDs, tx); err != nil {
			return err
		}
		_, err = s.assets.DeleteByIDs(ctx, assetIDs, tx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
