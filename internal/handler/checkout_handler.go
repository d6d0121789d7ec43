package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
)

// CheckoutHandler handles order hand-off and enquiry requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Submit handles POST /api/checkout requests.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form model.DeliveryForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Submit(r.Context(), cartID(r), form)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Inquiry handles GET /api/products/{id}/inquiry requests.
func (h *CheckoutHandler) Inquiry(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Inquiry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Contact handles GET /api/contact requests.
func (h *CheckoutHandler) Contact(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Contact(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
