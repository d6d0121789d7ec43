package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"storefront/internal/model"

	"gopkg.in/yaml.v3"
)

// generateSampleCatalog writes the sample bakery catalog as data/products.json
// and data/products.yaml. Both documents hold the same products, so either
// can be used as CATALOG_PATH.
func main() {
	dataDir := flag.String("dir", "data", "output directory")
	flag.Parse()

	// Create directory if it doesn't exist
	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []model.Product{
		{ID: "1", Name: "Chocolate Cake", Price: 25.50, Image: "/images/chocolate-cake.jpg", Description: "Rich dark chocolate sponge layered with ganache.", Category: "Cakes"},
		{ID: "2", Name: "Red Velvet Cake", Price: 28.00, Image: "/images/red-velvet.jpg", Description: "Velvety cocoa layers with cream cheese frosting.", Category: "Cakes"},
		{ID: "3", Name: "Carrot Cake", Price: 22.00, Image: "/images/carrot-cake.jpg", Description: "Spiced carrot cake with walnuts.", Category: "Cakes"},
		{ID: "4", Name: "Apple Pie", Price: 12.25, Image: "/images/apple-pie.jpg", Description: "Cinnamon apples baked in butter pastry.", Category: "Pies"},
		{ID: "5", Name: "Lemon Meringue Tart", Price: 14.75, Image: "/images/lemon-tart.jpg", Description: "Sharp lemon curd under toasted meringue.", Category: "Pies"},
		{ID: "6", Name: "Chocolate Chip Cookies (6)", Price: 8.50, Image: "/images/cookies.jpg", Description: "Chewy cookies with dark chocolate chunks.", Category: "Cookies"},
		{ID: "7", Name: "Cinnamon Rolls (4)", Price: 10.00, Image: "/images/cinnamon-rolls.jpg", Description: "Soft rolls with brown sugar and icing.", Category: "Pastries"},
		{ID: "8", Name: "Butter Croissant", Price: 3.25, Image: "/images/croissant.jpg", Description: "Laminated all-butter croissant.", Category: "Pastries"},
		{ID: "9", Name: "Celebration Cupcakes (12)", Price: 30.00, Image: "/images/cupcakes.jpg", Description: "Vanilla cupcakes with buttercream swirls."},
	}

	jsonData, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode JSON catalog: %v", err)
	}
	writeFile(filepath.Join(*dataDir, "products.json"), append(jsonData, '\n'))

	yamlData, err := yaml.Marshal(products)
	if err != nil {
		log.Fatalf("Failed to encode YAML catalog: %v", err)
	}
	writeFile(filepath.Join(*dataDir, "products.yaml"), yamlData)

	log.Printf("Sample catalog with %d products generated in %s/", len(products), *dataDir)
}

func writeFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	log.Printf("Created %s", path)
}
