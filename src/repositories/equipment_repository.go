package repositories

import (
	"context"

	"fleet/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentColumns = `e.id, e.asset_id, e.equipment_type, e.specification, e.condition`

type EquipmentRepository interface {
	GetAll(ctx context.Context) ([]models.Equipment, error)
	GetByID(ctx context.Context, id string) (*models.Equipment, error)
	GetByAssetID(ctx context.Context, assetID string) (*models.Equipment, error)
	GetByIDs(ctx context.Context, ids []string, tx pgx.Tx) ([]models.Equipment, error)
	Create(ctx context.Context, equipment *models.Equipment, tx pgx.Tx) error
	Update(ctx context.Context, equipment *models.Equipment, tx pgx.Tx) error
	DeleteByIDs(ctx context.Context, ids []string, tx pgx.Tx) (int64, error)
}

type equipmentRepo struct {
	db *pgxpool.Pool
}

func NewEquipmentRepository(db *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepo{db: db}
}

func scanEquipment(row pgx.Row) (*models.Equipment, error) {
	var e models.Equipment
	var a models.Asset
	targets := append([]any{&e.ID, &e.AssetID, &e.EquipmentType, &e.Specification, &e.Condition},
		assetScanTargets(&a)...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	e.Asset = &a
	return &e, nil
}

func (r *equipmentRepo) query(ctx context.Context, q querier, where string, args ...any) ([]models.Equipment, error) {
	rows, err := q.Query(ctx,
		`SELECT `+equipmentColumns+`, `+assetColumns+`
		 FROM equipments e JOIN assets a ON a.id = e.asset_id `+where+`
		 ORDER BY a.asset_code`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func (r *equipmentRepo) GetAll(ctx context.Context) ([]models.Equipment, error) {
	return r.query(ctx, r.db, "")
}

func (r *equipmentRepo) GetByID(ctx context.Context, id string) (*models.Equipment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+equipmentColumns+`, `+assetColumns+`
		 FROM equipments e JOIN assets a ON a.id = e.asset_id WHERE e.id = $1`, id)
	e, err := scanEquipment(row)
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

func (r *equipmentRepo) GetByIDs(ctx context.Context, ids []string, tx pgx.Tx) ([]models.Equipment, error) {
	return r.query(ctx, conn(r.db, tx), "WHERE e.id = ANY($1)", ids)
}

func (r *equipmentRepo) Create(ctx context.Context, e *models.Equipment, tx pgx.Tx) error {
	_, err := conn(r.db, tx).Exec(ctx,
		`INSERT INTO equipments (id, asset_id, equipment_type, specification, condition) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.AssetID, e.EquipmentType, e.Specification, e.Condition)
	return mapError(err)
}

func (r *equipmentRepo) Update(ctx context.Context, e *models.Equipment, tx pgx.Tx) error {
	tag, err := conn(r.db, tx).Exec(ctx,
		`UPDATE equipments SET equipment_type = $2, specification = $3, condition = $4 WHERE id = $1`,
		e.ID, e.EquipmentType, e.Specification, e.Condition)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *equipmentRepo) DeleteByIDs(ctx context.Context, ids []string, tx pgx.Tx) (int64, error) {
	tag, err := conn(r.db, tx).Exec(ctx, `DELETE FROM equipments WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *equipmentRepo) GetByAssetID(ctx context.Context, assetID string) (*models.Equipment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+equipmentColumns+`, `+assetColumns+`
		 FROM equipments e JOIN assets a ON a.id = e.asset_id WHERE e.asset_id = $1`, assetID)
	found, err := scanEquipment(row)
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}
