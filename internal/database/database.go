// Package database establishes the PostgreSQL connection.
//
// It handles:
//   - creating a pgx connection pool (pgxpool) from config
//   - wiring query tracing (New Relic nrpgx5, pgx tracelog in local env)
//   - exposing the same pool through database/sql as *sqlx.DB
//   - running embedded tern migrations
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/go-cms/internal/config"
	loggerConfig "github.com/deppfellow/go-cms/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// DriverName is the database/sql driver name registered by pgx's stdlib.
const DriverName = "pgx"

// Database wraps the pgx pool and an sqlx handle backed by the same pool.
//
// Pool serves health checks and migrations. DB serves repositories and the
// search engine, which build their statements with squirrel and scan with
// sqlx.
type Database struct {
	Pool *pgxpool.Pool
	DB   *sqlx.DB
	log  *zerolog.Logger
}

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// New creates an instrumented PostgreSQL pool and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	var tracers []pgx.QueryTracer
	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// SQL statement logging is too noisy outside local development.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	pgxPoolConfig.ConnConfig.Tracer = chainTracers(tracers...)

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("connected to the database")

	return &Database{
		Pool: pool,
		DB:   sqlx.NewDb(stdlib.OpenDBFromPool(pool), DriverName),
		log:  logger,
	}, nil
}

// Close closes the sqlx handle and then the pool underneath it.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	err := db.DB.Close()
	db.Pool.Close()
	return err
}
