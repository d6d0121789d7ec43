package main

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Cart storage utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Verify the configured cart storage can save, load and delete a cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := config.NewLogger(cfg.Logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			repo, closeRepo, err := newCartRepository(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
			}
			defer closeRepo()

			if err := checkRepository(ctx, repo); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s storage ok\n", cfg.Storage.Driver)
			return nil
		},
	})
	return cmd
}

// checkRepository round-trips a throwaway cart through repo.
func checkRepository(ctx context.Context, repo repository.CartRepository) error {
	key := cart.Key("storage-check-" + uuid.NewString())
	payload := []byte(`{"items":[]}`)

	if err := repo.Save(ctx, key, payload); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	data, err := repo.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	// JSONB backends normalise whitespace, so compare the decoded document.
	var doc struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.Items == nil {
		return fmt.Errorf("load returned %q, want %q", data, payload)
	}

	if err := repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if data, err = repo.Load(ctx, key); err != nil {
		return fmt.Errorf("load after delete failed: %w", err)
	}
	if data != nil {
		return fmt.Errorf("cart still present after delete")
	}

	return nil
}
