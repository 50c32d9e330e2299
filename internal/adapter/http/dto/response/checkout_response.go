package response

import (
	"storefront/internal/usecase"
	"storefront/internal/usecase/interfaces"
)

type CheckoutResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

func FromCheckoutResult(r usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{OrderID: r.OrderID, OrderNumber: r.OrderNumber}
}

type CheckoutStatusResponse struct {
	PaymentStatus string `json:"paymentStatus"`
	OrderStatus   string `json:"orderStatus"`
}

func FromCheckoutStatus(s usecase.CheckoutStatus) CheckoutStatusResponse {
	return CheckoutStatusResponse{PaymentStatus: string(s.PaymentStatus), OrderStatus: string(s.OrderStatus)}
}

type PaymentSessionResponse struct {
	CheckoutURL     string `json:"checkoutUrl"`
	ProviderOrderID string `json:"providerOrderId"`
}

func FromPaymentSession(s interfaces.PaymentSession) PaymentSessionResponse {
	return PaymentSessionResponse{CheckoutURL: s.CheckoutURL, ProviderOrderID: s.ProviderOrderID}
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}

type PongResponse struct {
	Message string `json:"message"`
}
