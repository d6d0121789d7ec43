package main

import (
	"context"
	"fmt"
	"sort"

	"storefront/internal/catalog"
	"storefront/internal/config"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Product catalog utilities",
	}
	cmd.AddCommand(newCatalogCheckCmd())
	return cmd
}

func newCatalogCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [location...]",
		Short: "Load and validate the product catalog",
		Long: `Loads the configured catalog documents (or the given locations) with the
configured source, validates every product and prints a summary per category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := config.NewLogger(cfg.Logger)

			locations := cfg.Catalog.Locations()
			if len(args) > 0 {
				locations = args
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			loader, closeLoader := newCatalogLoader(ctx, cfg, logger)
			defer closeLoader()

			products, err := catalog.New(ctx, &catalog.Config{Locations: locations}, loader, logger)
			if err != nil {
				return fmt.Errorf("catalog is invalid: %w", err)
			}

			return printCatalogSummary(cmd, products)
		},
	}
}

func printCatalogSummary(cmd *cobra.Command, products catalog.Catalog) error {
	counts := make(map[string]int)
	for _, p := range products.List("", 0, 0) {
		category := p.Category
		if category == "" {
			category = "(none)"
		}
		counts[category]++
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "catalog ok: %d products\n", products.Size())
	for _, c := range categories {
		fmt.Fprintf(out, "  %-20s %d\n", c, counts[c])
	}
	return nil
}
