package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
)

const (
	EventOrderCompleted     = "ORDER_COMPLETED"
	EventOrderCancelled     = "ORDER_CANCELLED"
	EventOrderPaymentFailed = "ORDER_PAYMENT_FAILED"
)

var (
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
	ErrMalformedWebhook        = errors.New("malformed webhook payload")
	ErrWebhookOrderNotFound    = errors.New("webhook order not found")
	ErrPaymentLookupFailed     = errors.New("payment lookup failed")
	ErrPaymentLookupDisabled   = errors.New("payment lookup not configured")
)

// Mercado Pago payment statuses acted upon. Anything else (pending,
// in_process, authorized, refunded) is acknowledged and ignored.
const (
	ProviderPaymentApproved  = "approved"
	ProviderPaymentRejected  = "rejected"
	ProviderPaymentCancelled = "cancelled"
)

const notificationTopicPayment = "payment"

type WebhookAction string

const (
	WebhookActionMarkedPaid   WebhookAction = "marked_paid"
	WebhookActionMarkedFailed WebhookAction = "marked_failed"
	WebhookActionIgnored      WebhookAction = "ignored"
)

type WebhookResult struct {
	Event   string
	OrderID string
	Action  WebhookAction
}

// PaymentNotification is a provider ping that only names a payment. The
// payment itself is fetched back from the provider before anything changes.
type PaymentNotification struct {
	Topic     string
	PaymentID string
}

type paymentWebhookPayload struct {
	Event               string `json:"event"`
	OrderID             string `json:"order_id"`
	MerchantOrderExtRef string `json:"merchant_order_ext_ref"`
}

// IPaymentWebhookUseCase reconciles payment provider notifications with
// stored orders.
//
// Requested behavior:
//   - reject deliveries whose signature does not verify
//   - completed payments mark the order paid and confirmed, then email the
//     customer
//   - cancelled or failed payments mark payment failed, unless already paid
//   - Mercado Pago notifications are resolved through the payments API and
//     matched to the order by external reference
type IPaymentWebhookUseCase interface {
	HandleEvent(ctx context.Context, rawBody []byte, signatureHeader, timestampHeader string) (WebhookResult, error)
	HandlePaymentNotification(ctx context.Context, n PaymentNotification) (WebhookResult, error)
}

type PaymentWebhookUseCase struct {
	verifier interfaces.IWebhookVerifier
	orders   interfaces.IOrderRepository
	mailer   interfaces.IMailer
	events   interfaces.IOrderEventPublisher
	store    StoreInfo
	lookup   interfaces.IPaymentStatusLookup
	now      func() time.Time
}

var _ IPaymentWebhookUseCase = (*PaymentWebhookUseCase)(nil)

// NewPaymentWebhookUseCase builds the reconciler. lookup may be nil when the
// configured provider pushes full events (Revolut).
func NewPaymentWebhookUseCase(verifier interfaces.IWebhookVerifier, orders interfaces.IOrderRepository, mailer interfaces.IMailer, events interfaces.IOrderEventPublisher, store StoreInfo, lookup interfaces.IPaymentStatusLookup) *PaymentWebhookUseCase {
	return &PaymentWebhookUseCase{
		verifier: verifier,
		orders:   orders,
		mailer:   mailer,
		events:   events,
		store:    store,
		lookup:   lookup,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentWebhookUseCase) HandleEvent(ctx context.Context, rawBody []byte, signatureHeader, timestampHeader string) (WebhookResult, error) {
	if u.verifier != nil {
		if err := u.verifier.Verify(rawBody, signatureHeader, timestampHeader); err != nil {
			log.Printf("[payment][webhook] signature rejected err=%v", err)
			return WebhookResult{}, fmt.Errorf("%w: %w", ErrInvalidWebhookSignature, err)
		}
	}

	var payload paymentWebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		log.Printf("[payment][webhook] payload unmarshal failed body_len=%d err=%v", len(rawBody), err)
		return WebhookResult{}, fmt.Errorf("%w: %w", ErrMalformedWebhook, err)
	}
	res := WebhookResult{Event: payload.Event, Action: WebhookActionIgnored}
	log.Printf("[payment][webhook] received event=%s provider_order_id=%s ref=%s", payload.Event, payload.OrderID, payload.MerchantOrderExtRef)

	switch payload.Event {
	case EventOrderCompleted, EventOrderCancelled, EventOrderPaymentFailed:
	default:
		log.Printf("[payment][webhook] unhandled event ignored event=%s", payload.Event)
		return res, nil
	}

	order, err := u.resolveOrder(ctx, payload)
	if err != nil {
		return res, err
	}
	res.OrderID = order.ID

	if payload.Event == EventOrderCompleted {
		return u.markPaid(ctx, order, res)
	}
	return u.markFailed(ctx, order, res)
}

func (u *PaymentWebhookUseCase) HandlePaymentNotification(ctx context.Context, n PaymentNotification) (WebhookResult, error) {
	res := WebhookResult{Event: n.Topic, Action: WebhookActionIgnored}
	if topic := strings.TrimSpace(n.Topic); topic != notificationTopicPayment {
		log.Printf("[payment][notification] topic ignored topic=%s id=%s", topic, n.PaymentID)
		return res, nil
	}
	paymentID := strings.TrimSpace(n.PaymentID)
	if paymentID == "" {
		log.Printf("[payment][notification] payment id missing")
		return res, ErrMalformedWebhook
	}
	if u.lookup == nil {
		log.Printf("[payment][notification] lookup not configured payment_id=%s", paymentID)
		return res, ErrPaymentLookupDisabled
	}

	pay, err := u.lookup.GetPayment(ctx, paymentID)
	if err != nil {
		log.Printf("[payment][notification] lookup failed payment_id=%s err=%v", paymentID, err)
		return res, fmt.Errorf("%w: %w", ErrPaymentLookupFailed, err)
	}
	res.Event = notificationTopicPayment + "." + pay.Status
	log.Printf("[payment][notification] received payment_id=%s status=%s ref=%s", paymentID, pay.Status, pay.ExternalReference)

	switch pay.Status {
	case ProviderPaymentApproved, ProviderPaymentRejected, ProviderPaymentCancelled:
	default:
		log.Printf("[payment][notification] status ignored payment_id=%s status=%s", paymentID, pay.Status)
		return res, nil
	}

	order, err := u.resolveOrder(ctx, paymentWebhookPayload{Event: res.Event, MerchantOrderExtRef: pay.ExternalReference})
	if err != nil {
		return res, err
	}
	res.OrderID = order.ID

	if pay.Status == ProviderPaymentApproved {
		return u.markPaid(ctx, order, res)
	}
	return u.markFailed(ctx, order, res)
}

func (u *PaymentWebhookUseCase) resolveOrder(ctx context.Context, p paymentWebhookPayload) (entities.Order, error) {
	var (
		o   entities.Order
		err error
	)
	if ref := strings.TrimSpace(p.MerchantOrderExtRef); ref != "" {
		o, err = u.orders.GetByID(ctx, ref)
	} else if pid := strings.TrimSpace(p.OrderID); pid != "" {
		o, err = u.orders.GetByProviderOrderID(ctx, pid)
	} else {
		log.Printf("[payment][webhook] payload without order reference event=%s", p.Event)
		return entities.Order{}, ErrMalformedWebhook
	}
	if err != nil {
		log.Printf("[payment][webhook] order lookup failed ref=%s provider_order_id=%s err=%v", p.MerchantOrderExtRef, p.OrderID, err)
		return entities.Order{}, err
	}
	if o.ID == "" {
		log.Printf("[payment][webhook] order not found ref=%s provider_order_id=%s", p.MerchantOrderExtRef, p.OrderID)
		return entities.Order{}, ErrWebhookOrderNotFound
	}
	return o, nil
}

func (u *PaymentWebhookUseCase) markPaid(ctx context.Context, order entities.Order, res WebhookResult) (WebhookResult, error) {
	updated, err := u.orders.MarkPaid(ctx, order.ID, u.now())
	if err != nil {
		log.Printf("[payment][webhook] mark paid failed order_id=%s err=%v", order.ID, err)
		return res, err
	}
	if updated.ID == "" {
		log.Printf("[payment][webhook] order vanished before mark paid order_id=%s", order.ID)
		return res, ErrWebhookOrderNotFound
	}
	res.Action = WebhookActionMarkedPaid
	log.Printf("[payment][webhook] order paid order_id=%s order_number=%s", updated.ID, updated.OrderNumber)

	u.sendConfirmation(ctx, updated)
	publishOrderEvent(ctx, u.events, entities.OrderEventPaid, updated)
	return res, nil
}

func (u *PaymentWebhookUseCase) markFailed(ctx context.Context, order entities.Order, res WebhookResult) (WebhookResult, error) {
	if order.PaymentStatus == entities.PaymentStatusPaid {
		log.Printf("[payment][webhook] failure event for paid order ignored order_id=%s event=%s", order.ID, res.Event)
		return res, nil
	}
	updated, err := u.orders.MarkPaymentFailed(ctx, order.ID)
	if errors.Is(err, interfaces.ErrOrderAlreadyPaid) {
		log.Printf("[payment][webhook] order became paid concurrently, failure ignored order_id=%s", order.ID)
		return res, nil
	}
	if err != nil {
		log.Printf("[payment][webhook] mark payment failed failed order_id=%s err=%v", order.ID, err)
		return res, err
	}
	if updated.ID == "" {
		log.Printf("[payment][webhook] order vanished before mark failed order_id=%s", order.ID)
		return res, ErrWebhookOrderNotFound
	}
	res.Action = WebhookActionMarkedFailed
	log.Printf("[payment][webhook] payment failed order_id=%s event=%s", updated.ID, res.Event)

	publishOrderEvent(ctx, u.events, entities.OrderEventPaymentFailed, updated)
	return res, nil
}

func (u *PaymentWebhookUseCase) sendConfirmation(ctx context.Context, o entities.Order) {
	if u.mailer == nil {
		return
	}
	items, err := u.orders.ListItems(ctx, o.ID)
	if err != nil {
		log.Printf("[payment][webhook] list items for email failed order_id=%s err=%v", o.ID, err)
	}
	msg, err := orderConfirmationEmail(u.store, o, items)
	if err != nil {
		log.Printf("[payment][webhook] render confirmation failed order_id=%s err=%v", o.ID, err)
		return
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		log.Printf("[payment][webhook] confirmation email failed order_id=%s err=%v", o.ID, err)
	}
}
