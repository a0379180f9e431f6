package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CodeSource names a column holding prefixed sequential codes.
type CodeSource int

const (
	AssetCodes CodeSource = iota
	MaintenanceRecordNumbers
)

func (s CodeSource) table() (string, string) {
	switch s {
	case MaintenanceRecordNumbers:
		return "maintenances", "record_number"
	default:
		return "assets", "asset_code"
	}
}

type CodeRepository interface {
	// Lock takes a transaction scoped advisory lock on prefix. It must be
	// called with a transaction; the lock is released on commit or rollback.
	Lock(ctx context.Context, prefix string, tx pgx.Tx) error
	// Last returns the highest code starting with prefix, or nil when none exists.
	Last(ctx context.Context, source CodeSource, prefix string, tx pgx.Tx) (*string, error)
}

type codeRepo struct {
	db *pgxpool.Pool
}

func NewCodeRepository(db *pgxpool.Pool) CodeRepository {
	return &codeRepo{db: db}
}

func (r *codeRepo) Lock(ctx context.Context, prefix string, tx pgx.Tx) error {
	if tx == nil {
		return fmt.Errorf("code lock for %q requires a transaction", prefix)
	}
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix)
	return err
}

func (r *codeRepo) Last(ctx context.Context, source CodeSource, prefix string, tx pgx.Tx) (*string, error) {
	table, column := source.table()
	// Longer codes sort first so TRK-10000000 beats TRK-9999999.
	query := fmt.Sprintf(
		`SELECT %[2]s FROM %[1]s WHERE starts_with(%[2]s, $1) ORDER BY length(%[2]s) DESC, %[2]s DESC LIMIT 1`,
		table, column)

	var code string
	err := conn(r.db, tx).QueryRow(ctx, query, prefix).Scan(&code)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}
