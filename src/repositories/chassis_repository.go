package repositories

import (
	"context"

	"fleet/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const chassisColumns = `c.id, c.asset_id, c.chassis_number, c.axle_count, c.chassis_type, c.chassis_category,
	c.no_kir, c.kir_due_date, c.notes`

type ChassisRepository interface {
	GetAll(ctx context.Context) ([]models.Chassis, error)
	GetByID(ctx context.Context, id string) (*models.Chassis, error)
	GetByAssetID(ctx context.Context, assetID string) (*models.Chassis, error)
	GetByIDs(ctx context.Context, ids []string, tx pgx.Tx) ([]models.Chassis, error)
	Create(ctx context.Context, chassis *models.Chassis, tx pgx.Tx) error
	Update(ctx context.Context, chassis *models.Chassis, tx pgx.Tx) error
	DeleteByIDs(ctx context.Context, ids []string, tx pgx.Tx) (int64, error)
}

type chassisRepo struct {
	db *pgxpool.Pool
}

func NewChassisRepository(db *pgxpool.Pool) ChassisRepository {
	return &chassisRepo{db: db}
}

func scanChassis(row pgx.Row) (*models.Chassis, error) {
	var c models.Chassis
	var a models.Asset
	targets := append([]any{&c.ID, &c.AssetID, &c.ChassisNumber, &c.AxleCount, &c.ChassisType,
		&c.ChassisCategory, &c.NoKIR, &c.KIRDueDate, &c.Notes}, assetScanTargets(&a)...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	c.Asset = &a
	return &c, nil
}

func (r *chassisRepo) query(ctx context.Context, q querier, where string, args ...any) ([]models.Chassis, error) {
	rows, err := q.Query(ctx,
		`SELECT `+chassisColumns+`, `+assetColumns+`
		 FROM chassis c JOIN assets a ON a.id = c.asset_id `+where+`
		 ORDER BY a.asset_code`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Chassis{}
	for rows.Next() {
		c, err := scanChassis(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

func (r *chassisRepo) GetAll(ctx context.Context) ([]models.Chassis, error) {
	return r.query(ctx, r.db, "")
}

func (r *chassisRepo) GetByID(ctx context.Context, id string) (*models.Chassis, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+chassisColumns+`, `+assetColumns+`
		 FROM chassis c JOIN assets a ON a.id = c.asset_id WHERE c.id = $1`, id)
	c, err := scanChassis(row)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *chassisRepo) GetByIDs(ctx context.Context, ids []string, tx pgx.Tx) ([]models.Chassis, error) {
	return r.query(ctx, conn(r.db, tx), "WHERE c.id = ANY($1)", ids)
}

func (r *chassisRepo) Create(ctx context.Context, c *models.Chassis, tx pgx.Tx) error {
	_, err := conn(r.db, tx).Exec(ctx,
		`INSERT INTO chassis (id, asset_id, chassis_number, axle_count, chassis_type, chassis_category, no_kir, kir_due_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.AssetID, c.ChassisNumber, c.AxleCount, c.ChassisType, c.ChassisCategory, c.NoKIR, c.KIRDueDate, c.Notes)
	return mapError(err)
}

func (r *chassisRepo) Update(ctx context.Context, c *models.Chassis, tx pgx.Tx) error {
	tag, err := conn(r.db, tx).Exec(ctx,
		`UPDATE chassis SET chassis_number = $2, axle_count = $3, chassis_type = $4, chassis_category = $5,
		 no_kir = $6, kir_due_date = $7, notes = $8
		 WHERE id = $1`,
		c.ID, c.ChassisNumber, c.AxleCount, c.ChassisType, c.ChassisCategory, c.NoKIR, c.KIRDueDate, c.Notes)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *chassisRepo) DeleteByIDs(ctx context.Context, ids []string, tx pgx.Tx) (int64, error) {
	tag, err := conn(r.db, tx).Exec(ctx, `DELETE FROM chassis WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *chassisRepo) GetByAssetID(ctx context.Context, assetID string) (*models.Chassis, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+chassisColumns+`, `+assetColumns+`
		 FROM chassis c JOIN assets a ON a.id = c.asset_id WHERE c.asset_id = $1`, assetID)
	found, err := scanChassis(row)
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}
