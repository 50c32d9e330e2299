package interfaces

import (
	"context"

	"storefront/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PaymentSessionRequest struct {
	OrderID     string
	OrderNumber string
	Email       string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Items       []entities.OrderItem
}

type PaymentSession struct {
	ProviderOrderID string
	CheckoutURL     string
}

// IPaymentGateway abstracts external payment providers (Revolut, Mercado Pago).
//
// The storefront uses it to open a hosted payment page for an order. The
// provider later reports the outcome through the payment webhook.
type IPaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req PaymentSessionRequest) (PaymentSession, error)
}

// IWebhookVerifier authenticates inbound payment webhook deliveries.
type IWebhookVerifier interface {
	Verify(body []byte, signatureHeader, timestampHeader string) error
}

// ProviderPayment is a payment as the provider's API reports it.
type ProviderPayment struct {
	ID                string
	Status            string
	ExternalReference string
}

// IPaymentStatusLookup fetches a payment from the provider. Used for
// notifications that only carry a payment id (Mercado Pago).
type IPaymentStatusLookup interface {
	GetPayment(ctx context.Context, paymentID string) (ProviderPayment, error)
}
