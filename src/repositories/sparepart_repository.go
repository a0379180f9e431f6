package repositories

import (
	"context"
	"time"

	"fleet/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sparepartColumns = `id, code, name, unit, price, stock_quantity, description, created_at, updated_at`

type SparepartRepository interface {
	GetAll(ctx context.Context) ([]models.Sparepart, error)
	GetByID(ctx context.Context, id string) (*models.Sparepart, error)
	Create(ctx context.Context, sparepart *models.Sparepart) error
	Update(ctx context.Context, sparepart *models.Sparepart) error
	Delete(ctx context.Context, id string) error
	// AdjustStock adds delta to the stock of a sparepart. A negative delta that
	// would leave the stock below zero fails with ErrInsufficientStock.
	AdjustStock(ctx context.Context, id string, delta int, tx pgx.Tx) error
	Usage(ctx context.Context, start, end time.Time) ([]models.SparepartUsage, error)
	Count(ctx context.Context) (int, error)
}

type sparepartRepo struct {
	db *pgxpool.Pool
}

func NewSparepartRepository(db *pgxpool.Pool) SparepartRepository {
	return &sparepartRepo{db: db}
}

func sparepartScanTargets(s *models.Sparepart) []any {
	return []any{&s.ID, &s.Code, &s.Name, &s.Unit, &s.Price, &s.StockQuantity, &s.Description, &s.CreatedAt, &s.UpdatedAt}
}

func (r *sparepartRepo) GetAll(ctx context.Context) ([]models.Sparepart, error) {
	rows, err := r.db.Query(ctx, `SELECT `+sparepartColumns+` FROM spareparts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Sparepart{}
	for rows.Next() {
		var s models.Sparepart
		if err := rows.Scan(sparepartScanTargets(&s)...); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *sparepartRepo) GetByID(ctx context.Context, id string) (*models.Sparepart, error) {
	var s models.Sparepart
	err := r.db.QueryRow(ctx, `SELECT `+sparepartColumns+` FROM spareparts WHERE id = $1`, id).
		Scan(sparepartScanTargets(&s)...)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *sparepartRepo) Create(ctx context.Context, s *models.Sparepart) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO spareparts (id, code, name, unit, price, stock_quantity, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		s.ID, s.Code, s.Name, s.Unit, s.Price, s.StockQuantity, s.Description,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return mapError(err)
}

func (r *sparepartRepo) Update(ctx context.Context, s *models.Sparepart) error {
	err := r.db.QueryRow(ctx,
		`UPDATE spareparts SET code = $2, name = $3, unit = $4, price = $5, stock_quantity = $6,
		 description = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		s.ID, s.Code, s.Name, s.Unit, s.Price, s.StockQuantity, s.Description,
	).Scan(&s.UpdatedAt)
	return mapError(err)
}

func (r *sparepartRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM spareparts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sparepartRepo) AdjustStock(ctx context.Context, id string, delta int, tx pgx.Tx) error {
	tag, err := conn(r.db, tx).Exec(ctx,
		`UPDATE spareparts SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		 WHERE id = $1 AND stock_quantity + $2 >= 0`, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := conn(r.db, tx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM spareparts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInsufficientStock
}

func (r *sparepartRepo) Usage(ctx context.Context, start, end time.Time) ([]models.SparepartUsage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.unit, s.price, SUM(ms.quantity)::int AS total_used
		 FROM maintenance_spareparts ms
		 JOIN maintenances m ON m.id = ms.maintenance_id
		 JOIN spareparts s ON s.id = ms.sparepart_id
		 WHERE m.created_at BETWEEN $1 AND $2
		 GROUP BY s.id, s.name, s.unit, s.price
		 ORDER BY total_used DESC, s.name`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.SparepartUsage{}
	for rows.Next() {
		var u models.SparepartUsage
		if err := rows.Scan(&u.SparepartID, &u.Name, &u.Unit, &u.Price, &u.TotalUsed); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *sparepartRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM spareparts`).Scan(&n)
	return n, err
}
