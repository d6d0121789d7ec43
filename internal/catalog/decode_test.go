package catalog

import (
	"testing"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonCatalog = `[
  {"id":"P001","name":"Chocolate Cake","price":25.5,"image":"/images/cake.jpg","description":"Rich","category":"Cakes"},
  {"id":"P002","name":"Apple Pie","price":12.25,"image":"/images/pie.jpg","description":"Warm"}
]`

const yamlCatalog = `
- id: P101
  name: Lemon Tart
  price: 9.75
  image: /images/tart.jpg
  description: Zesty
  category: Tarts
`

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		location string
		data     string
		expected []model.Product
	}{
		{
			name:     "JSON by extension",
			location: "data/products.json",
			data:     jsonCatalog,
			expected: []model.Product{
				{ID: "P001", Name: "Chocolate Cake", Price: 25.5, Image: "/images/cake.jpg", Description: "Rich", Category: "Cakes"},
				{ID: "P002", Name: "Apple Pie", Price: 12.25, Image: "/images/pie.jpg", Description: "Warm"},
			},
		},
		{
			name:     "YAML by extension",
			location: "catalog/tarts.yaml",
			data:     yamlCatalog,
			expected: []model.Product{
				{ID: "P101", Name: "Lemon Tart", Price: 9.75, Image: "/images/tart.jpg", Description: "Zesty", Category: "Tarts"},
			},
		},
		{
			name:     "YML URL with query string",
			location: "https://cdn.example.com/tarts.YML?v=3",
			data:     yamlCatalog,
			expected: []model.Product{
				{ID: "P101", Name: "Lemon Tart", Price: 9.75, Image: "/images/tart.jpg", Description: "Zesty", Category: "Tarts"},
			},
		},
		{
			name:     "No extension defaults to JSON",
			location: "https://cdn.example.com/products",
			data:     `[]`,
			expected: []model.Product{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := Decode(tt.location, []byte(tt.data))

			require.NoError(t, err)
			assert.Equal(t, tt.expected, products)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("products.json", []byte(`{"id":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode JSON catalog products.json")

	_, err = Decode("products.yaml", []byte("- id: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode YAML catalog products.yaml")
}
