package catalog

import (
	"fmt"
	"strings"

	"storefront/internal/model"
)

// index is an immutable snapshot of the catalog with O(1) id lookup.
type index struct {
	products []model.Product
	byID     map[string]int
}

// newIndex validates products and builds an index over them. Products keep
// the order they were supplied in.
func newIndex(products []model.Product) (*index, error) {
	idx := &index{
		products: make([]model.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("invalid product at position %d: %w", i, err)
		}
		if _, exists := idx.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		idx.byID[p.ID] = len(idx.products)
		idx.products = append(idx.products, p)
	}

	return idx, nil
}

func validateProduct(p model.Product) error {
	if p.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %s: name is required", p.ID)
	}
	if p.Price <= 0 {
		return fmt.Errorf("product %s: price must be positive, got %v", p.ID, p.Price)
	}
	return nil
}

func (idx *index) get(id string) (model.Product, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return idx.products[i], true
}

func (idx *index) list(category string, limit, offset int) []model.Product {
	matched := idx.products
	if category != "" {
		matched = make([]model.Product, 0, len(idx.products))
		for _, p := range idx.products {
			if strings.EqualFold(p.Category, category) {
				matched = append(matched, p)
			}
		}
	}

	if offset >= len(matched) {
		return []model.Product{}
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]model.Product, end-offset)
	copy(out, matched[offset:end])
	return out
}

func (idx *index) size() int {
	return len(idx.products)
}
