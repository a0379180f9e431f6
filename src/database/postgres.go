package database

import (
	"context"
	"fmt"
	"time"

	"fleet/src/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func SetupDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Databases.SQL.DSN())
	if err != nil {
		return nil, err
	}

	if cfg.Databases.SQL.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Databases.SQL.MaxConns
	}
	if cfg.Databases.SQL.MinConns > 0 {
		poolConfig.MinConns = cfg.Databases.SQL.MinConns
	}
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %v\nPlease ensure the database is running and accessible with the provided credentials", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %v\nPlease check your database configuration and ensure it's running", err)
	}
	return pool, nil
}
