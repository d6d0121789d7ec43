package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/router"
	"storefront/internal/service"
)

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize cart storage
	repo, closeRepo, err := newCartRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cart storage: %w", err)
	}
	defer closeRepo()

	// Initialize product catalog
	loader, closeLoader := newCatalogLoader(ctx, cfg, logger)
	defer closeLoader()
	products, err := catalog.New(ctx, &catalog.Config{Locations: cfg.Catalog.Locations()}, loader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	// Initialize services
	co := checkout.New(checkout.Options{
		MessagingLink:  cfg.Checkout.MessagingLink,
		CurrencySymbol: cfg.Checkout.CurrencySymbol,
	}, logger)

	productService := service.NewProductService(products, logger)
	cartService := service.NewCartService(repo, products, cfg.Session.IdleTimeout, logger)
	defer cartService.Close()
	checkoutService := service.NewCheckoutService(cartService, products, co, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
	}, router.Options{
		APIKey: cfg.Auth.APIKey,
		Session: middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
			MaxAge:     cfg.Storage.CartTTL,
		},
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Int("products", products.Size()).
			Str("storage", cfg.Storage.Driver).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
