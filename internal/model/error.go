package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Fields  FieldErrors `json:"fields,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON            = "INVALID_JSON"
	ErrCodeMissingField           = "MISSING_FIELD"
	ErrCodeInvalidParameter       = "INVALID_PARAMETER"
	ErrCodeProductNotFound        = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity        = "INVALID_QUANTITY"
	ErrCodeEmptyCart              = "EMPTY_CART"
	ErrCodeValidationFailed       = "VALIDATION_FAILED"
	ErrCodeMessagingNotConfigured = "MESSAGING_NOT_CONFIGURED"
	ErrCodeCatalogUnavailable     = "CATALOG_UNAVAILABLE"
	ErrCodeUnauthorised           = "UNAUTHORIZED"
	ErrCodeInternalError          = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be between 1 and 99")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrLinkNotConfigured  = NewDomainError(ErrCodeMessagingNotConfigured, "Messaging link not configured, please contact the site administrator")
	ErrCatalogUnavailable = NewDomainError(ErrCodeCatalogUnavailable, "Product catalog is not loaded")
)

// ValidationError carries field-level messages for a rejected delivery form.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "delivery form is invalid"
}
