package handler

import (
	"net/http"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
)

// CartHandler handles requests on the caller's cart. The session is
// resolved by the CartSession middleware.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Get(r.Context(), cartID(r))
	h.respond(w, state, err)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	state, err := h.service.AddItem(r.Context(), cartID(r), req.ProductID, quantity)
	h.respond(w, state, err)
}

// UpdateQuantity handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "quantity is required", h.logger)
		return
	}

	state, err := h.service.UpdateQuantity(r.Context(), cartID(r), chi.URLParam(r, "id"), *req.Quantity)
	h.respond(w, state, err)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.RemoveItem(r.Context(), cartID(r), chi.URLParam(r, "id"))
	h.respond(w, state, err)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Clear(r.Context(), cartID(r))
	h.respond(w, state, err)
}

// Open handles POST /api/cart/open requests.
func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.SetOpen(r.Context(), cartID(r), true)
	h.respond(w, state, err)
}

// Close handles POST /api/cart/close requests.
func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.SetOpen(r.Context(), cartID(r), false)
	h.respond(w, state, err)
}

// Toggle handles POST /api/cart/toggle requests.
func (h *CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Toggle(r.Context(), cartID(r))
	h.respond(w, state, err)
}

// Discard handles DELETE /api/cart/session requests. The cart is deleted
// from storage and the session starts over empty.
func (h *CartHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Discard(r.Context(), cartID(r)); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) respond(w http.ResponseWriter, state *model.CartState, err error) {
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
