package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
}

// Options configures authentication and cart sessions.
type Options struct {
	// APIKey protects the admin routes. They are not mounted when it is empty.
	APIKey  string
	Session middleware.SessionOptions
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.Product.GetAll)
		r.Get("/products/{id}", h.Product.GetByID)
		r.Get("/products/{id}/inquiry", h.Checkout.Inquiry)
		r.Get("/contact", h.Checkout.Contact)

		// Cart and checkout routes operate on the caller's session
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(opts.Session, logger))

			r.Get("/cart", h.Cart.Get)
			r.Delete("/cart", h.Cart.Clear)
			r.Post("/cart/items", h.Cart.AddItem)
			r.Put("/cart/items/{id}", h.Cart.UpdateQuantity)
			r.Delete("/cart/items/{id}", h.Cart.RemoveItem)
			r.Post("/cart/open", h.Cart.Open)
			r.Post("/cart/close", h.Cart.Close)
			r.Post("/cart/toggle", h.Cart.Toggle)
			r.Delete("/cart/session", h.Cart.Discard)
			r.Post("/checkout", h.Checkout.Submit)
		})

		if opts.APIKey == "" {
			logger.Info().Msg("API key not set, admin routes disabled")
			return
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(opts.APIKey, logger))
			r.Post("/admin/catalog/reload", h.Product.Reload)
		})
	})

	return r
}
