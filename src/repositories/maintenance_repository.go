package repositories

import (
	"context"
	"time"

	"fleet/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maintenanceColumns = `m.id, m.record_number, m.asset_id, m.driver_id, m.user_id, m.complaint, m.repair_notes,
	m.images, m.created_at, m.updated_at, COALESCE(u.fullname, '')`

type MaintenanceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Maintenance, error)
	// ListByUser returns one page of the user's records and the total match count.
	ListByUser(ctx context.Context, filter models.MaintenanceFilter) ([]models.Maintenance, int, error)
	ListByAsset(ctx context.Context, assetID string) ([]models.Maintenance, error)
	Create(ctx context.Context, maintenance *models.Maintenance, tx pgx.Tx) error
	Update(ctx context.Context, maintenance *models.Maintenance, tx pgx.Tx) error
	Delete(ctx context.Context, id string, tx pgx.Tx) error
	Spareparts(ctx context.Context, maintenanceID string, tx pgx.Tx) ([]models.MaintenanceSparepart, error)
	ReplaceSpareparts(ctx context.Context, maintenanceID string, items []models.MaintenanceSparepart, tx pgx.Tx) error
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error)
}

type maintenanceRepo struct {
	db *pgxpool.Pool
}

func NewMaintenanceRepository(db *pgxpool.Pool) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func maintenanceScanTargets(m *models.Maintenance) []any {
	return []any{&m.ID, &m.RecordNumber, &m.AssetID, &m.DriverID, &m.UserID, &m.Complaint, &m.RepairNotes,
		&m.Images, &m.CreatedAt, &m.UpdatedAt, &m.Mechanic}
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id string) (*models.Maintenance, error) {
	var m models.Maintenance
	var a models.Asset
	targets := append(maintenanceScanTargets(&m), assetScanTargets(&a)...)
	err := r.db.QueryRow(ctx,
		`SELECT `+maintenanceColumns+`, `+assetColumns+`
		 FROM maintenances m
		 JOIN assets a ON a.id = m.asset_id
		 LEFT JOIN users u ON u.id = m.user_id
		 WHERE m.id = $1`, id).Scan(targets...)
	if err != nil {
		return nil, mapError(err)
	}
	m.Asset = &a

	if m.DriverID != nil {
		var d models.Driver
		err := r.db.QueryRow(ctx,
			`SELECT id, name, phone, license_number, is_active, created_at FROM drivers WHERE id = $1`, *m.DriverID).
			Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.IsActive, &d.CreatedAt)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		if err == nil {
			m.Driver = &d
		}
	}

	if m.Spareparts, err = r.Spareparts(ctx, m.ID, nil); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepo) list(ctx context.Context, where string, args ...any) ([]models.Maintenance, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+maintenanceColumns+`, `+assetColumns+`
		 FROM maintenances m
		 JOIN assets a ON a.id = m.asset_id
		 LEFT JOIN users u ON u.id = m.user_id `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Maintenance{}
	for rows.Next() {
		var m models.Maintenance
		var a models.Asset
		if err := rows.Scan(append(maintenanceScanTargets(&m), assetScanTargets(&a)...)...); err != nil {
			return nil, err
		}
		m.Asset = &a
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *maintenanceRepo) ListByUser(ctx context.Context, filter models.MaintenanceFilter) ([]models.Maintenance, int, error) {
	where := `WHERE m.user_id = $1 AND ($2::text = '' OR m.record_number ILIKE '%' || $2::text || '%'
		OR m.complaint ILIKE '%' || $2::text || '%' OR a.asset_code ILIKE '%' || $2::text || '%'
		OR a.name ILIKE '%' || $2::text || '%')`

	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM maintenances m JOIN assets a ON a.id = m.asset_id `+where,
		filter.UserID, filter.Search).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	list, err := r.list(ctx, where+` ORDER BY m.created_at DESC LIMIT $3 OFFSET $4`,
		filter.UserID, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *maintenanceRepo) ListByAsset(ctx context.Context, assetID string) ([]models.Maintenance, error) {
	return r.list(ctx, `WHERE m.asset_id = $1 ORDER BY m.created_at DESC`, assetID)
}

func (r *maintenanceRepo) Create(ctx context.Context, m *models.Maintenance, tx pgx.Tx) error {
	if m.Images == nil {
		m.Images = []string{}
	}
	err := conn(r.db, tx).QueryRow(ctx,
		`INSERT INTO maintenances (id, record_number, asset_id, driver_id, user_id, complaint, repair_notes, images)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		m.ID, m.RecordNumber, m.AssetID, m.DriverID, m.UserID, m.Complaint, m.RepairNotes, m.Images,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return mapError(err)
}

func (r *maintenanceRepo) Update(ctx context.Context, m *models.Maintenance, tx pgx.Tx) error {
	if m.Images == nil {
		m.Images = []string{}
	}
	err := conn(r.db, tx).QueryRow(ctx,
		`UPDATE maintenances SET asset_id = $2, driver_id = $3, complaint = $4, repair_notes = $5,
		 images = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		m.ID, m.AssetID, m.DriverID, m.Complaint, m.RepairNotes, m.Images,
	).Scan(&m.UpdatedAt)
	return mapError(err)
}

func (r *maintenanceRepo) Delete(ctx context.Context, id string, tx pgx.Tx) error {
	tag, err := conn(r.db, tx).Exec(ctx, `DELETE FROM maintenances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *maintenanceRepo) Spareparts(ctx context.Context, maintenanceID string, tx pgx.Tx) ([]models.MaintenanceSparepart, error) {
	rows, err := conn(r.db, tx).Query(ctx,
		`SELECT ms.sparepart_id, ms.quantity, s.code, s.name, s.unit, s.price
		 FROM maintenance_spareparts ms JOIN spareparts s ON s.id = ms.sparepart_id
		 WHERE ms.maintenance_id = $1
		 ORDER BY s.name`, maintenanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MaintenanceSparepart{}
	for rows.Next() {
		var it models.MaintenanceSparepart
		if err := rows.Scan(&it.SparepartID, &it.Quantity, &it.Code, &it.Name, &it.Unit, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *maintenanceRepo) ReplaceSpareparts(ctx context.Context, maintenanceID string, items []models.MaintenanceSparepart, tx pgx.Tx) error {
	q := conn(r.db, tx)
	if _, err := q.Exec(ctx, `DELETE FROM maintenance_spareparts WHERE maintenance_id = $1`, maintenanceID); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO maintenance_spareparts (maintenance_id, sparepart_id, quantity) VALUES ($1, $2, $3)`,
			maintenanceID, it.SparepartID, it.Quantity); err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *maintenanceRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM maintenances WHERE created_at BETWEEN $1 AND $2`, start, end).Scan(&n)
	return n, err
}
