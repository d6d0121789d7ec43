package service

import (
	"context"

	"storefront/internal/model"
)

// ProductService defines read operations on the product catalog.
type ProductService interface {
	// GetAll retrieves products with pagination, optionally filtered by category.
	GetAll(ctx context.Context, category string, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Reload re-reads the catalog documents.
	Reload(ctx context.Context) error
}

// CartService owns the live carts of all sessions. Every operation returns
// the cart snapshot after it was applied.
type CartService interface {
	// Get returns the cart of a session, loading it on first access.
	Get(ctx context.Context, sessionID string) (*model.CartState, error)

	// AddItem adds quantity units of a catalog product.
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*model.CartState, error)

	// UpdateQuantity sets the quantity of a line, never below one.
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*model.CartState, error)

	// RemoveItem removes a line.
	RemoveItem(ctx context.Context, sessionID, productID string) (*model.CartState, error)

	// Clear empties the cart.
	Clear(ctx context.Context, sessionID string) (*model.CartState, error)

	// SetOpen opens or closes the cart panel.
	SetOpen(ctx context.Context, sessionID string, open bool) (*model.CartState, error)

	// Toggle flips the cart panel.
	Toggle(ctx context.Context, sessionID string) (*model.CartState, error)

	// Discard forgets a session and deletes its persisted cart.
	Discard(ctx context.Context, sessionID string) error

	// Close stops background eviction.
	Close() error
}

// CheckoutService builds order hand-off messages.
type CheckoutService interface {
	// Submit validates the form against the session's cart and returns the
	// order message and link. The cart is left as it is.
	Submit(ctx context.Context, sessionID string, form model.DeliveryForm) (*model.CheckoutResult, error)

	// Inquiry returns the message and link for asking about one product.
	Inquiry(ctx context.Context, productID string) (*model.InquiryResult, error)

	// Contact returns the message and link for a general enquiry.
	Contact(ctx context.Context) (*model.InquiryResult, error)
}
