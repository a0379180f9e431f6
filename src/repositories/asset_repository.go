package repositories

import (
	"context"

	"fleet/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const assetColumns = `a.id, a.asset_code, a.asset_type, a.name, a.brand, a.model, a.serial_number,
	a.purchase_date, a.purchase_price, a.is_active, a.created_at, a.updated_at`

type AssetRepository interface {
	GetByID(ctx context.Context, id string) (*models.Asset, error)
	Create(ctx context.Context, asset *models.Asset, tx pgx.Tx) error
	Update(ctx context.Context, asset *models.Asset, tx pgx.Tx) error
	DeleteByIDs(ctx context.Context, ids []string, tx pgx.Tx) (int64, error)
}

type assetRepo struct {
	db *pgxpool.Pool
}

func NewAssetRepository(db *pgxpool.Pool) AssetRepository {
	return &assetRepo{db: db}
}

func assetScanTargets(a *models.Asset) []any {
	return []any{&a.ID, &a.AssetCode, &a.AssetType, &a.Name, &a.Brand, &a.Model, &a.SerialNumber,
		&a.PurchaseDate, &a.PurchasePrice, &a.IsActive, &a.CreatedAt, &a.UpdatedAt}
}

func (r *assetRepo) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets a WHERE a.id = $1`, id).
		Scan(assetScanTargets(&asset)...)
	if err != nil {
		return nil, mapError(err)
	}
	return &asset, nil
}

func (r *assetRepo) Create(ctx context.Context, asset *models.Asset, tx pgx.Tx) error {
	err := conn(r.db, tx).QueryRow(ctx,
		`INSERT INTO assets (id, asset_code, asset_type, name, brand, model, serial_number, purchase_date, purchase_price, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		asset.ID, asset.AssetCode, asset.AssetType, asset.Name, asset.Brand, asset.Model, asset.SerialNumber,
		asset.PurchaseDate, asset.PurchasePrice, asset.IsActive,
	).Scan(&asset.CreatedAt, &asset.UpdatedAt)
	return mapError(err)
}

func (r *assetRepo) Update(ctx context.Context, asset *models.Asset, tx pgx.Tx) error {
	err := conn(r.db, tx).QueryRow(ctx,
		`UPDATE assets SET name = $2, brand = $3, model = $4, serial_number = $5, purchase_date = $6,
		 purchase_price = $7, is_active = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		asset.ID, asset.Name, asset.Brand, asset.Model, asset.SerialNumber, asset.PurchaseDate,
		asset.PurchasePrice, asset.IsActive,
	).Scan(&asset.UpdatedAt)
	return mapError(err)
}

func (r *assetRepo) DeleteByIDs(ctx context.Context, ids []string, tx pgx.Tx) (int64, error) {
	tag, err := conn(r.db, tx).Exec(ctx, `DELETE FROM assets WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
