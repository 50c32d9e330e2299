package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment lifecycle of an order.
//
// Domain notes:
//   - Orders start as pending and move to confirmed when the payment provider
//     reports a completed payment.
//   - shipped is set by staff through the notify-shipped action.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus represents what the payment provider told us about an order.
//
// Transitions are unpaid -> paid or unpaid -> failed. A failure event never
// downgrades a paid order.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Region     string `json:"region,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order is one checkout transaction.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (provider_order_id-index): provider_order_id
//   - A guard item "order_number#<number>" keeps order numbers unique.
//
// Monetary representation:
//   - Subtotal, ShippingCost and Total are computed once at creation from
//     catalog prices. Total = Subtotal + ShippingCost.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	CustomerID      string          `json:"customer_id,omitempty"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  Address         `json:"billing_address"`
	Notes           string          `json:"notes,omitempty"`
	ProviderOrderID string          `json:"provider_order_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

// IsGuest reports whether the order is not linked to a customer profile.
func (o Order) IsGuest() bool {
	return o.CustomerID == ""
}
