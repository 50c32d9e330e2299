package response

import (
	"time"

	"storefront/internal/domain/entities"
)

// OrderSummaryResponse is what admin actions return about an order.
type OrderSummaryResponse struct {
	ID            string     `json:"id"`
	OrderNumber   string     `json:"orderNumber"`
	Email         string     `json:"email"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	Total         string     `json:"total"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func FromOrder(o entities.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Email:         o.Email,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Total:         o.Total.StringFixed(2),
		PaidAt:        o.PaidAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
