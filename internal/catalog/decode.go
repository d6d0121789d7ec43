package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"storefront/internal/model"

	"gopkg.in/yaml.v3"
)

// Decode parses a catalog document. Locations ending in .yaml or .yml are
// decoded as YAML, everything else as JSON. The document is a list of products.
func Decode(location string, data []byte) ([]model.Product, error) {
	var products []model.Product

	if isYAML(location) {
		if err := yaml.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("failed to decode YAML catalog %s: %w", location, err)
		}
		return products, nil
	}

	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode JSON catalog %s: %w", location, err)
	}
	return products, nil
}

func isYAML(location string) bool {
	p := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		p = u.Path
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
