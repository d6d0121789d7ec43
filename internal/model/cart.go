package model

// CartLineItem is one product entry in a cart with its quantity.
type CartLineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category,omitempty"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i CartLineItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartState is a point-in-time view of a cart including its derived totals.
type CartState struct {
	Items     []CartLineItem `json:"items"`
	ItemCount int            `json:"itemCount"`
	Total     float64        `json:"total"`
	IsOpen    bool           `json:"isOpen"`
}

// AddItemRequest represents the request payload for adding a product to the cart.
// A missing quantity means one unit.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// UpdateQuantityRequest represents the request payload for changing a line quantity.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}
