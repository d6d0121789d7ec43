package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Str("code", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error to its HTTP response.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		logger.Debug().Int("invalid_fields", len(verr.Fields)).Msg("validation failed")
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:   model.ErrCodeValidationFailed,
			Message: "Please correct the highlighted fields",
			Fields:  verr.Fields,
		})
		return
	}

	if errors.Is(err, service.ErrSessionRequired) {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "cart session id is required", logger)
		return
	}

	var derr *model.DomainError
	if errors.As(err, &derr) {
		writeError(w, statusForCode(derr.Code), derr.Code, derr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidQuantity, model.ErrCodeInvalidJSON, model.ErrCodeMissingField, model.ErrCodeInvalidParameter:
		return http.StatusBadRequest
	case model.ErrCodeEmptyCart:
		return http.StatusUnprocessableEntity
	case model.ErrCodeMessagingNotConfigured, model.ErrCodeCatalogUnavailable:
		return http.StatusServiceUnavailable
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// cartID returns the session id resolved by the CartSession middleware.
func cartID(r *http.Request) string {
	id, _ := middleware.CartIDFromContext(r.Context())
	return id
}
