package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// sqliteRepository implements CartRepository on a local SQLite database file.
type sqliteRepository struct {
	db     *sql.DB
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// SQLiteCartRepository is the SQLite-backed CartRepository; it also migrates its own schema.
type SQLiteCartRepository interface {
	CartRepository
	SchemaMigrator
}

// NewSQLiteRepository creates a SQLite-backed cart repository.
func NewSQLiteRepository(db *sql.DB, ttl time.Duration, logger zerolog.Logger) SQLiteCartRepository {
	return &sqliteRepository{
		db:     db,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With().Str("repository", "sqlite").Logger(),
	}
}

// Migrate creates the carts table.
func (r *sqliteRepository) Migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS carts (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		r.logger.Error().Err(err).Msg("failed to create carts table")
		return fmt.Errorf("failed to create carts table: %w", err)
	}

	return nil
}

// Load returns the document stored under key.
func (r *sqliteRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT data, updated_at
		FROM carts
		WHERE key = ?
	`

	var (
		data      string
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, key).Scan(&data, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug().Str("key", key).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	if expired(time.UnixMilli(updatedAt), r.ttl, r.now()) {
		r.logger.Debug().Str("key", key).Msg("cart expired")
		return nil, nil
	}

	return []byte(data), nil
}

// Save stores data under key.
func (r *sqliteRepository) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO carts (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, string(data), r.now().UnixMilli()); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	r.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("cart saved")

	return nil
}

// Delete removes the document stored under key.
func (r *sqliteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE key = ?`, key); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
