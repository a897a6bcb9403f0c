package model

import "time"

// CartItem is a single line in a shopping cart.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Category  string  `json:"category,omitempty"`
	Unit      string  `json:"unit"`
	Quantity  int     `json:"quantity"`
}

// Cart is a customer's shopping cart.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AddToCartRequest is the payload for adding a catalogue product to a cart.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

// UpdateQuantityRequest is the payload for changing a line quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is a cart together with its computed totals.
type CartResponse struct {
	Cart
	TotalItems int    `json:"totalItems"`
	TotalPrice string `json:"totalPrice"`
	Merged     *bool  `json:"merged,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Cart notices shown after an add.
const (
	CartNoticeAdded   = "Added to cart"
	CartNoticeUpdated = "Updated cart"
)

// CheckoutResponse carries the WhatsApp deep link for an order.
type CheckoutResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
	Total   string `json:"total"`
}
