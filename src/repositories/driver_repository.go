package repositories

import (
	"context"

	"fleet/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepository interface {
	GetAll(ctx context.Context) ([]models.Driver, error)
	Create(ctx context.Context, driver *models.Driver) error
}

type driverRepo struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) DriverRepository {
	return &driverRepo{db: db}
}

func (r *driverRepo) GetAll(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, phone, license_number, is_active, created_at FROM drivers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO drivers (id, name, phone, license_number, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		d.ID, d.Name, d.Phone, d.LicenseNumber, d.IsActive,
	).Scan(&d.CreatedAt)
	return mapError(err)
}
