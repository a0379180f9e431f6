package repositories

import (
	"context"

	"fleet/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, fullname, username, password, role, is_active, deleted_at, created_at, updated_at`

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByUsername ignores soft deleted users.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func userScanTargets(u *models.User) []any {
	return []any{&u.ID, &u.Fullname, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, id).
		Scan(userScanTargets(&u)...)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1 AND deleted_at IS NULL`, username).
		Scan(userScanTargets(&u)...)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (id, fullname, username, password, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		u.ID, u.Fullname, u.Username, u.PasswordHash, u.Role, u.IsActive,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	err := r.db.QueryRow(ctx,
		`UPDATE users SET fullname = $2, username = $3, password = $4, role = $5, is_active = $6, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING updated_at`,
		u.ID, u.Fullname, u.Username, u.PasswordHash, u.Role, u.IsActive,
	).Scan(&u.UpdatedAt)
	return mapError(err)
}

func (r *userRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active AND deleted_at IS NULL`).Scan(&n)
	return n, err
}
