package service

import (
	"context"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	catalog catalog.Catalog
	logger  zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(catalog catalog.Catalog, logger zerolog.Logger) ProductService {
	return &productService{
		catalog: catalog,
		logger:  logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves products with pagination.
func (s *productService) GetAll(ctx context.Context, category string, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products := s.catalog.List(category, limit, offset)

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", category).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.catalog.Get(id)
	if err != nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, err
	}

	return &product, nil
}

// Reload re-reads the catalog.
func (s *productService) Reload(ctx context.Context) error {
	if err := s.catalog.Reload(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to reload catalog")
		return fmt.Errorf("failed to reload catalog: %w", err)
	}

	s.logger.Info().Int("products", s.catalog.Size()).Msg("catalog reloaded")
	return nil
}
