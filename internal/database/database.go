package database

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	// applicationName tags cart connections in pg_stat_activity.
	applicationName = "storefront-carts"
	// cartStatementTimeout bounds a single cart read or upsert on the server.
	cartStatementTimeout = 5 * time.Second
	// cartIdleConnTime releases connections between bursts of cart traffic.
	cartIdleConnTime = 5 * time.Minute
)

// NewPool creates the PostgreSQL connection pool backing cart storage.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	logger = logger.With().Str("component", "postgres").Logger()

	poolConfig, err := cartPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int32("max_connections", poolConfig.MaxConns).
		Int32("min_connections", poolConfig.MinConns).
		Str("application_name", applicationName).
		Msg("creating cart storage pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("cart storage pool ready")

	return pool, nil
}

// cartPoolConfig translates cfg into pool settings sized for short cart
// documents: small idle footprint and a server-side statement timeout.
func cartPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	poolConfig.MinConns = min(int32(max(cfg.MinConnections, 0)), poolConfig.MaxConns)
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	}
	poolConfig.MaxConnIdleTime = cartIdleConnTime
	poolConfig.HealthCheckPeriod = time.Minute

	params := poolConfig.ConnConfig.RuntimeParams
	params["application_name"] = applicationName
	params["statement_timeout"] = fmt.Sprint(cartStatementTimeout.Milliseconds())

	return poolConfig, nil
}
