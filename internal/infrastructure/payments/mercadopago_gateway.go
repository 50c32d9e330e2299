package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"storefront/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrInvalidMercadoPagoPaymentID   = errors.New("invalid mercado pago payment id")
)

// MercadoPagoGateway opens Checkout Pro preferences and reads payments back
// for notifications. The order id travels as external_reference so the
// payment can be matched back to the order.
type MercadoPagoGateway struct {
	client          preference.Client
	payments        payment.Client
	redirectURL     string
	notificationURL string
}

var (
	_ interfaces.IPaymentGateway      = (*MercadoPagoGateway)(nil)
	_ interfaces.IPaymentStatusLookup = (*MercadoPagoGateway)(nil)
)

func NewMercadoPagoGateway(accessToken, redirectURL, notificationURL string) (*MercadoPagoGateway, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		client:          preference.NewClient(cfg),
		payments:        payment.NewClient(cfg),
		redirectURL:     redirectURL,
		notificationURL: notificationURL,
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckoutSession(ctx context.Context, req interfaces.PaymentSessionRequest) (interfaces.PaymentSession, error) {
	log.Printf("[payment][gateway] create preference start order_id=%s items=%d", req.OrderID, len(req.Items))
	resp, err := g.client.Create(ctx, buildPreferenceRequest(req, g.redirectURL, g.notificationURL))
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed order_id=%s err=%v", req.OrderID, err)
		return interfaces.PaymentSession{}, err
	}
	log.Printf("[payment][gateway] create preference success order_id=%s preference_id=%s", req.OrderID, resp.ID)
	return interfaces.PaymentSession{ProviderOrderID: resp.ID, CheckoutURL: resp.InitPoint}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (interfaces.ProviderPayment, error) {
	id, err := strconv.Atoi(strings.TrimSpace(paymentID))
	if err != nil || id <= 0 {
		return interfaces.ProviderPayment{}, fmt.Errorf("%w: %q", ErrInvalidMercadoPagoPaymentID, paymentID)
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk get payment failed payment_id=%d err=%v", id, err)
		return interfaces.ProviderPayment{}, err
	}
	log.Printf("[payment][gateway] get payment success payment_id=%d status=%s status_detail=%s", resp.ID, resp.Status, resp.StatusDetail)
	return interfaces.ProviderPayment{
		ID:                strconv.Itoa(resp.ID),
		Status:            strings.ToLower(resp.Status),
		ExternalReference: resp.ExternalReference,
	}, nil
}

func buildPreferenceRequest(req interfaces.PaymentSessionRequest, redirectURL, notificationURL string) preference.Request {
	currency := strings.ToUpper(req.Currency)
	items := make([]preference.ItemRequest, 0, len(req.Items)+1)
	for _, it := range req.Items {
		items = append(items, preference.ItemRequest{
			ID:         it.ProductID,
			Title:      it.Title,
			Quantity:   it.Quantity,
			UnitPrice:  it.Price.InexactFloat64(),
			CurrencyID: currency,
			PictureURL: it.ImageURL,
		})
	}

	itemsTotal := decimal.Zero
	for _, it := range req.Items {
		itemsTotal = itemsTotal.Add(it.Total)
	}
	// Shipping, or the whole amount when items were not loaded.
	if rest := req.Amount.Sub(itemsTotal); rest.IsPositive() {
		title := "Shipping"
		if len(req.Items) == 0 {
			title = req.Description
		}
		items = append(items, preference.ItemRequest{
			ID:         req.OrderNumber,
			Title:      title,
			Quantity:   1,
			UnitPrice:  rest.InexactFloat64(),
			CurrencyID: currency,
		})
	}

	out := preference.Request{
		Items:             items,
		ExternalReference: req.OrderID,
		NotificationURL:   notificationURL,
	}
	if req.Email != "" {
		out.Payer = &preference.PayerRequest{Email: req.Email}
	}
	if redirectURL != "" {
		back := withOrderID(redirectURL, req.OrderID)
		out.BackURLs = &preference.BackURLsRequest{Success: back, Pending: back, Failure: back}
		out.AutoReturn = "approved"
	}
	return out
}
