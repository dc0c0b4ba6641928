package database

import (
	"context"
	"fmt"
	"time"

	"lightbnb/internal/config"
	"lightbnb/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const pingTimeout = 10 * time.Second

var (
	pgxpoolNewWithConfig = pgxpool.NewWithConfig
	pingPool             = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
)

// NewPgxPool builds the connection pool from cfg and verifies it with a ping.
// When traceQueries is set every statement is logged through log.
func NewPgxPool(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger, traceQueries bool) (DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if traceQueries {
		poolCfg.ConnConfig.Tracer = logger.NewQueryTracer(log)
	}

	pool, err := pgxpoolNewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pingPool(pingCtx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Int32("max_conns", poolCfg.MaxConns).Msg("connected to the database")
	return pool, nil
}
