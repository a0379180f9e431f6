package repositories

import (
	"context"

	"fleet/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vehicleColumns = `v.id, v.asset_id, v.license_plate, v.owner, v.address, v.color, v.year, v.engine_number,
	v.frame_number, v.no_kir, v.kir_due_date, v.stnk_number, v.stnk_due_date, v.notes`

type VehicleRepository interface {
	GetAll(ctx context.Context) ([]models.Vehicle, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	GetByAssetID(ctx context.Context, assetID string) (*models.Vehicle, error)
	// GetByIDs returns the vehicles among ids that exist.
	GetByIDs(ctx context.Context, ids []string, tx pgx.Tx) ([]models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle, tx pgx.Tx) error
	Update(ctx context.Context, vehicle *models.Vehicle, tx pgx.Tx) error
	DeleteByIDs(ctx context.Context, ids []string, tx pgx.Tx) (int64, error)
}

type vehicleRepo struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) VehicleRepository {
	return &vehicleRepo{db: db}
}

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	var a models.Asset
	targets := append([]any{&v.ID, &v.AssetID, &v.LicensePlate, &v.Owner, &v.Address, &v.Color, &v.Year,
		&v.EngineNumber, &v.FrameNumber, &v.NoKIR, &v.KIRDueDate, &v.STNKNumber, &v.STNKDueDate, &v.Notes},
		assetScanTargets(&a)...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	v.Asset = &a
	return &v, nil
}

func (r *vehicleRepo) query(ctx context.Context, q querier, where string, args ...any) ([]models.Vehicle, error) {
	rows, err := q.Query(ctx,
		`SELECT `+vehicleColumns+`, `+assetColumns+`
		 FROM vehicles v JOIN assets a ON a.id = v.asset_id `+where+`
		 ORDER BY a.asset_code`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepo) GetAll(ctx context.Context) ([]models.Vehicle, error) {
	return r.query(ctx, r.db, "")
}

func (r *vehicleRepo) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+vehicleColumns+`, `+assetColumns+`
		 FROM vehicles v JOIN assets a ON a.id = v.asset_id WHERE v.id = $1`, id)
	v, err := scanVehicle(row)
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

func (r *vehicleRepo) GetByIDs(ctx context.Context, ids []string, tx pgx.Tx) ([]models.Vehicle, error) {
	return r.query(ctx, conn(r.db, tx), "WHERE v.id = ANY($1)", ids)
}

func (r *vehicleRepo) Create(ctx context.Context, v *models.Vehicle, tx pgx.Tx) error {
	_, err := conn(r.db, tx).Exec(ctx,
		`INSERT INTO vehicles (id, asset_id, license_plate, owner, address, color, year, engine_number,
		 frame_number, no_kir, kir_due_date, stnk_number, stnk_due_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		v.ID, v.AssetID, v.LicensePlate, v.Owner, v.Address, v.Color, v.Year, v.EngineNumber,
		v.FrameNumber, v.NoKIR, v.KIRDueDate, v.STNKNumber, v.STNKDueDate, v.Notes)
	return mapError(err)
}

func (r *vehicleRepo) Update(ctx context.Context, v *models.Vehicle, tx pgx.Tx) error {
	tag, err := conn(r.db, tx).Exec(ctx,
		`UPDATE vehicles SET license_plate = $2, owner = $3, address = $4, color = $5, year = $6,
		 engine_number = $7, frame_number = $8, no_kir = $9, kir_due_date = $10, stnk_number = $11,
		 stnk_due_date = $12, notes = $13
		 WHERE id = $1`,
		v.ID, v.LicensePlate, v.Owner, v.Address, v.Color, v.Year, v.EngineNumber, v.FrameNumber,
		v.NoKIR, v.KIRDueDate, v.STNKNumber, v.STNKDueDate, v.Notes)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *vehicleRepo) DeleteByIDs(ctx context.Context, ids []string, tx pgx.Tx) (int64, error) {
	tag, err := conn(r.db, tx).Exec(ctx, `DELETE FROM vehicles WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *vehicleRepo) GetByAssetID(ctx context.Context, assetID string) (*models.Vehicle, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+vehicleColumns+`, `+assetColumns+`
		 FROM vehicles v JOIN assets a ON a.id = v.asset_id WHERE v.asset_id = $1`, assetID)
	found, err := scanVehicle(row)
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}
