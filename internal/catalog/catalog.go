// Package catalog loads the read-only product list and serves lookups on it.
package catalog

import (
	"context"

	"storefront/internal/model"
)

// Catalog defines read access to the product list.
type Catalog interface {
	// List returns products in catalog order, optionally restricted to one
	// category, starting at offset and returning at most limit entries.
	List(category string, limit, offset int) []model.Product

	// Get returns the product with the given id or model.ErrProductNotFound.
	Get(id string) (model.Product, error)

	// Reload reads every configured document again and swaps the product
	// list atomically. On failure the previous list stays in place.
	Reload(ctx context.Context) error

	// Size returns the number of products.
	Size() int
}

// Loader reads one catalog document.
type Loader interface {
	// Load fetches the document at location and decodes its products.
	Load(ctx context.Context, location string) ([]model.Product, error)
}
