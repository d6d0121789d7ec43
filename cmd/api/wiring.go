package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// catalogFetchTimeout bounds a single HTTP catalog download.
const catalogFetchTimeout = 10 * time.Second

// newCartRepository opens the storage backend selected by STORAGE_DRIVER. The
// returned func releases its connections.
func newCartRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.CartRepository, func(), error) {
	ttl := cfg.Storage.CartTTL

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn().Msg("using in-memory cart storage, carts are lost on restart")
		return repository.NewMemoryRepository(ttl, logger), func() {}, nil

	case config.StorageSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewSQLiteRepository(db, ttl, logger)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil

	case config.StorageRedis:
		client, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisRepository(client, ttl, logger), func() { client.Close() }, nil

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresRepository(pool, ttl, logger)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}

// newCatalogLoader builds the loader for CATALOG_SOURCE. An S3 source falls
// back to the local file system when S3 cannot be reached. The returned func
// releases the loader's connections.
func newCatalogLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (catalog.Loader, func()) {
	loader := selectCatalogLoader(ctx, cfg, logger)

	return loader, func() {
		closer, ok := loader.(io.Closer)
		if !ok {
			return
		}
		if err := closer.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close catalog loader")
		}
	}
}

func selectCatalogLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) catalog.Loader {
	fileLoader := catalog.NewFileLoader(logger)

	switch cfg.Catalog.Source {
	case config.CatalogSourceHTTP:
		return catalog.NewHTTPLoader(catalogFetchTimeout, logger)

	case config.CatalogSourceS3:
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			return fileLoader
		}
		return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)

	default:
		logger.Info().Msg("using local file system for the product catalog")
		return fileLoader
	}
}
