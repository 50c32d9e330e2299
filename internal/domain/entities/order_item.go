package entities

import "github.com/shopspring/decimal"

// OrderItem is one catalog line within an order.
//
// Title and Price are copies taken from the catalog when the cart was
// validated; later catalog edits never change them.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	ImageURL  string          `json:"image_url,omitempty"`
}
