package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresRepository implements CartRepository using PostgreSQL.
type postgresRepository struct {
	pool   *pgxpool.Pool
	ttl    time.Duration
	logger zerolog.Logger
}

// PostgresCartRepository is the PostgreSQL-backed CartRepository; it also migrates its own schema.
type PostgresCartRepository interface {
	CartRepository
	SchemaMigrator
}

// NewPostgresRepository creates a new PostgreSQL-backed cart repository.
func NewPostgresRepository(pool *pgxpool.Pool, ttl time.Duration, logger zerolog.Logger) PostgresCartRepository {
	return &postgresRepository{
		pool:   pool,
		ttl:    ttl,
		logger: logger.With().Str("repository", "postgres").Logger(),
	}
}

// Migrate creates the carts table.
func (r *postgresRepository) Migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS carts (
			key TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_carts_updated_at ON carts(updated_at);
	`

	if _, err := r.pool.Exec(ctx, schema); err != nil {
		r.logger.Error().Err(err).Msg("failed to create carts table")
		return fmt.Errorf("failed to create carts table: %w", err)
	}

	return nil
}

// Load returns the document stored under key. Expiry is judged against the
// database clock, the same clock Save stamps updated_at with.
func (r *postgresRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT data::text
		FROM carts
		WHERE key = $1
		  AND ($2::double precision = 0 OR updated_at > NOW() - make_interval(secs => $2::double precision))
	`

	var data string
	err := r.pool.QueryRow(ctx, query, key, r.ttl.Seconds()).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("key", key).Msg("cart not found or expired")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return []byte(data), nil
}

// Save upserts data under key.
func (r *postgresRepository) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO carts (key, data, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, key, string(data)); err != nil {
		r.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	r.logger.Debug().
		Str("key", key).
		Int("bytes", len(data)).
		Msg("cart saved")

	return nil
}

// Delete removes the document stored under key.
func (r *postgresRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE key = $1`, key); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
