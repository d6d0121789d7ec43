package service

import (
	"context"

	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	carts    CartService
	catalog  catalog.Catalog
	checkout *checkout.Checkout
	logger   zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts CartService,
	catalog catalog.Catalog,
	checkout *checkout.Checkout,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		carts:    carts,
		catalog:  catalog,
		checkout: checkout,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

// Submit builds the order message for the session's current cart.
func (s *checkoutService) Submit(ctx context.Context, sessionID string, form model.DeliveryForm) (*model.CheckoutResult, error) {
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := s.checkout.Submit(*state, form)
	if err != nil {
		s.logger.Debug().Err(err).Str("session_id", sessionID).Msg("checkout rejected")
		return nil, err
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Int("order_number", result.OrderNumber).
		Msg("checkout submitted")

	return result, nil
}

// Inquiry builds the enquiry message for one product.
func (s *checkoutService) Inquiry(ctx context.Context, productID string) (*model.InquiryResult, error) {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}

	return s.checkout.Inquiry(product)
}

// Contact builds the general enquiry link.
func (s *checkoutService) Contact(ctx context.Context) (*model.InquiryResult, error) {
	return s.checkout.Contact()
}
