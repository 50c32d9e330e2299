package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/usecase/interfaces"
)

const revolutOrdersPath = "/api/1.0/orders"

var ErrMissingPaymentAPISecret = errors.New("missing PAYMENT_API_SECRET")

// ProviderError is a non-2xx answer from a payment provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider returned status=%d body=%s", e.StatusCode, e.Body)
}

type revolutOrderRequest struct {
	Amount              int64  `json:"amount"`
	Currency            string `json:"currency"`
	MerchantOrderExtRef string `json:"merchant_order_ext_ref"`
	Email               string `json:"email,omitempty"`
	Description         string `json:"description,omitempty"`
	RedirectURL         string `json:"redirect_url,omitempty"`
}

type revolutOrderResponse struct {
	ID          string `json:"id"`
	PublicID    string `json:"public_id"`
	CheckoutURL string `json:"checkout_url"`
}

// RevolutGateway creates hosted checkout orders through the Revolut
// Merchant API.
type RevolutGateway struct {
	baseURL     string
	secret      string
	redirectURL string
	client      *http.Client
}

var _ interfaces.IPaymentGateway = (*RevolutGateway)(nil)

func NewRevolutGateway(baseURL, secret, redirectURL string, client *http.Client) (*RevolutGateway, error) {
	if strings.TrimSpace(secret) == "" {
		log.Printf("[payment][gateway] missing PAYMENT_API_SECRET")
		return nil, ErrMissingPaymentAPISecret
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	log.Printf("[payment][gateway] Revolut client initialized base_url=%s", baseURL)
	return &RevolutGateway{
		baseURL:     strings.TrimRight(baseURL, "/"),
		secret:      secret,
		redirectURL: redirectURL,
		client:      client,
	}, nil
}

func (g *RevolutGateway) CreateCheckoutSession(ctx context.Context, req interfaces.PaymentSessionRequest) (interfaces.PaymentSession, error) {
	payload := revolutOrderRequest{
		Amount:              toMinorUnits(req.Amount),
		Currency:            strings.ToUpper(req.Currency),
		MerchantOrderExtRef: req.OrderID,
		Email:               req.Email,
		Description:         req.Description,
	}
	if g.redirectURL != "" {
		payload.RedirectURL = withOrderID(g.redirectURL, req.OrderID)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return interfaces.PaymentSession{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+revolutOrdersPath, bytes.NewReader(b))
	if err != nil {
		return interfaces.PaymentSession{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.secret)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log.Printf("[payment][gateway] create order start order_id=%s amount_minor=%d currency=%s", req.OrderID, payload.Amount, payload.Currency)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		log.Printf("[payment][gateway] request failed order_id=%s err=%v", req.OrderID, err)
		return interfaces.PaymentSession{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return interfaces.PaymentSession{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[payment][gateway] provider rejected order_id=%s status=%d", req.OrderID, resp.StatusCode)
		return interfaces.PaymentSession{}, &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out revolutOrderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		log.Printf("[payment][gateway] response unmarshal failed order_id=%s err=%v", req.OrderID, err)
		return interfaces.PaymentSession{}, err
	}
	if out.ID == "" || out.CheckoutURL == "" {
		return interfaces.PaymentSession{}, fmt.Errorf("payment provider response without id or checkout_url: %s", string(body))
	}
	log.Printf("[payment][gateway] create order success order_id=%s provider_order_id=%s", req.OrderID, out.ID)
	return interfaces.PaymentSession{ProviderOrderID: out.ID, CheckoutURL: out.CheckoutURL}, nil
}
