package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrInsufficientStock is returned when a decrement would make stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStale is returned by conditional writes when the row changed since it was read.
	ErrStale = errors.New("record was modified concurrently")
)

const uniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn returns tx when the caller runs inside a transaction, the pool otherwise.
func conn(db *pgxpool.Pool, tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return db
}

// mapError translates driver errors into the package sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

type TxManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type txManager struct {
	db *pgxpool.Pool
}

func NewTxManager(db *pgxpool.Pool) TxManager {
	return &txManager{db: db}
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (m *txManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
