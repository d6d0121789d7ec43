package model

// DeliveryForm holds the customer details collected at checkout. It is never persisted.
type DeliveryForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// CheckoutResult is returned after a successful checkout submission.
type CheckoutResult struct {
	OrderNumber int    `json:"orderNumber"`
	Message     string `json:"message"`
	URL         string `json:"url"`
}

// InquiryResult is the pre-filled message and link for asking about a single product.
type InquiryResult struct {
	ProductID string `json:"productId,omitempty"`
	Message   string `json:"message"`
	URL       string `json:"url"`
}
