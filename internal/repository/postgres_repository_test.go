package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func TestPostgresRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewPostgresRepository(pool, 0, zerolog.Nop())
	require.NoError(t, repo.Migrate(context.Background()))

	testCartRepository(t, repo)
}

func TestPostgresRepository_Expiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPostgresRepository(pool, time.Hour, zerolog.Nop())
	require.NoError(t, repo.Migrate(ctx))

	require.NoError(t, repo.Save(ctx, "cart:old", []byte(`{"items":[]}`)))

	// Age the row past the TTL
	_, err := pool.Exec(ctx, "UPDATE carts SET updated_at = NOW() - INTERVAL '2 hours' WHERE key = $1", "cart:old")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, "cart:recent", []byte(`{"items":[]}`)))
	_, err = pool.Exec(ctx, "UPDATE carts SET updated_at = NOW() - INTERVAL '30 minutes' WHERE key = $1", "cart:recent")
	require.NoError(t, err)

	data, err := repo.Load(ctx, "cart:old")
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = repo.Load(ctx, "cart:recent")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data), "rows inside the ttl are returned")

	// Without a ttl nothing expires
	forever := NewPostgresRepository(pool, 0, zerolog.Nop())
	data, err = forever.Load(ctx, "cart:old")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data))
}
