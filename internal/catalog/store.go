package catalog

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the catalog.
type Config struct {
	// Locations are the documents to load, merged in order. Their meaning
	// (path, S3 key or URL) depends on the Loader.
	Locations []string
}

// store implements Catalog over an immutable index swapped on reload.
type store struct {
	mu     sync.RWMutex
	idx    *index
	config *Config
	loader Loader
	logger zerolog.Logger
}

// New creates a catalog and loads every configured document.
func New(ctx context.Context, config *Config, loader Loader, logger zerolog.Logger) (Catalog, error) {
	if config == nil || len(config.Locations) == 0 {
		return nil, fmt.Errorf("at least one catalog location is required")
	}

	s := &store{
		config: config,
		loader: loader,
		logger: logger.With().Str("component", "catalog").Logger(),
	}

	s.logger.Info().
		Strs("locations", config.Locations).
		Msg("initialising catalog")

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// NewStatic creates a catalog over a fixed product list. Reload is a no-op.
func NewStatic(products []model.Product, logger zerolog.Logger) (Catalog, error) {
	idx, err := newIndex(products)
	if err != nil {
		return nil, err
	}
	return &store{
		idx:    idx,
		config: &Config{},
		logger: logger.With().Str("component", "catalog").Logger(),
	}, nil
}

// Reload loads all documents concurrently and replaces the product list.
func (s *store) Reload(ctx context.Context) error {
	if s.loader == nil {
		return nil
	}

	results := make([][]model.Product, len(s.config.Locations))

	g, gctx := errgroup.WithContext(ctx)
	for i, location := range s.config.Locations {
		g.Go(func() error {
			products, err := s.loader.Load(gctx, location)
			if err != nil {
				return fmt.Errorf("failed to load catalog %s: %w", location, err)
			}
			results[i] = products
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("catalog reload failed, keeping previous products")
		return err
	}

	var merged []model.Product
	for _, products := range results {
		merged = append(merged, products...)
	}

	idx, err := newIndex(merged)
	if err != nil {
		s.logger.Error().Err(err).Msg("catalog rejected, keeping previous products")
		return fmt.Errorf("invalid catalog: %w", err)
	}

	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()

	s.logger.Info().
		Int("documents", len(results)).
		Int("products", idx.size()).
		Msg("catalog loaded")

	return nil
}

// List returns a page of products.
func (s *store) List(category string, limit, offset int) []model.Product {
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	return idx.list(category, limit, offset)
}

// Get returns one product by id.
func (s *store) Get(id string) (model.Product, error) {
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()

	p, ok := idx.get(id)
	if !ok {
		return model.Product{}, model.ErrProductNotFound
	}
	return p, nil
}

// Size returns the number of products.
func (s *store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.size()
}
