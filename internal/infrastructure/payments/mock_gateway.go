package payments

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/usecase/interfaces"
)

// MockGateway stands in for the provider when PAYMENT_GATEWAY_MOCK is on.
// It sends the customer straight to the redirect URL.
type MockGateway struct {
	redirectURL string
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway(redirectURL string) *MockGateway {
	log.Printf("[payment][gateway] mock mode enabled")
	return &MockGateway{redirectURL: redirectURL}
}

func (g *MockGateway) CreateCheckoutSession(_ context.Context, req interfaces.PaymentSessionRequest) (interfaces.PaymentSession, error) {
	id := fmt.Sprintf("mock-%d", time.Now().UTC().UnixNano())
	url := g.redirectURL
	if url != "" {
		url = withOrderID(url, req.OrderID)
	}
	log.Printf("[payment][gateway] mock create success order_id=%s provider_order_id=%s", req.OrderID, id)
	return interfaces.PaymentSession{ProviderOrderID: id, CheckoutURL: url}, nil
}
