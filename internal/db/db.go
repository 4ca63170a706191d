package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"payday/internal/config"
)

func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	// Single-operator deployment; a handful of connections is plenty.
	poolCfg.MaxConns = 4
	poolCfg.MinConns = 1
	return pgxpool.NewWithConfig(ctx, poolCfg)
}
