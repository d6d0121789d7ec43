package model

// Product represents a catalog entry. The catalog is read-only and supplied
// externally as a JSON or YAML document.
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Image       string  `json:"image" yaml:"image"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
}
