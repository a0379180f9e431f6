// Package testutil holds helpers shared by the integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// DatabaseURLEnv names the variable holding the integration database DSN.
const DatabaseURLEnv = "TEST_DATABASE_URL"

var (
	testDB     *pgxpool.Pool
	testDBOnce sync.Once
	testDBErr  error
)

// SetupTestDB connects to the database named by TEST_DATABASE_URL, applies the
// migrations once per test binary and truncates every table. Tests are
// skipped when the variable is unset.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping database test", DatabaseURLEnv)
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = connect(dsn)
	})
	if testDBErr != nil {
		t.Fatalf("Failed to set up test database: %v", testDBErr)
	}

	TruncateTables(t, testDB)
	return testDB
}

func connect(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	root, err := ServiceRoot()
	if err != nil {
		pool.Close()
		return nil, err
	}
	// db borrows connections from pool; keep none idle so they go straight back.
	db := stdlib.OpenDBFromPool(pool)
	db.SetMaxIdleConns(0)
	if err := goose.SetDialect("postgres"); err != nil {
		pool.Close()
		return nil, err
	}
	goose.SetLogger(goose.NopLogger())
	if err := goose.Up(db, filepath.Join(root, "migrations")); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return pool, nil
}

// ServiceRoot returns the directory holding go.mod.
func ServiceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		wd = parent
	}
}

// TruncateTables empties every application table.
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if pool == nil {
		t.Fatal("Database connection not initialized")
	}

	tables := []string{
		"maintenance_spareparts",
		"maintenances",
		"spareparts",
		"reminders",
		"equipments",
		"chassis",
		"vehicles",
		"assets",
		"drivers",
		"users",
	}

	for _, table := range tables {
		_, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}
