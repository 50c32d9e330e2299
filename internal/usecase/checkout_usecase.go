package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
)

var (
	ErrInvalidOrderID              = errors.New("invalid order id")
	ErrOrderNotFound               = errors.New("order not found")
	ErrOrderAlreadyPaid            = errors.New("order already paid")
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrPaymentProviderFailure      = errors.New("payment provider failure")
)

type CheckoutResult struct {
	OrderID     string
	OrderNumber string
}

type CheckoutStatus struct {
	PaymentStatus entities.PaymentStatus
	OrderStatus   entities.OrderStatus
}

// ICheckoutUseCase places orders and opens hosted payment sessions for them.
//
// Requested behavior:
//   - validate the cart against the catalog, persist the order, then
//     decrement inventory on a best-effort basis
//   - let the storefront poll the payment outcome of an order
//   - create a hosted payment page for an unpaid order
type ICheckoutUseCase interface {
	PlaceOrder(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error)
	GetStatus(ctx context.Context, orderID string) (CheckoutStatus, error)
	CreatePaymentSession(ctx context.Context, orderID string) (interfaces.PaymentSession, error)
}

type CheckoutUseCase struct {
	validator   IOrderValidator
	writer      IOrderWriter
	decrementer IInventoryDecrementer
	orders      interfaces.IOrderRepository
	gateway     interfaces.IPaymentGateway
	events      interfaces.IOrderEventPublisher
	currency    string
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(
	validator IOrderValidator,
	writer IOrderWriter,
	decrementer IInventoryDecrementer,
	orders interfaces.IOrderRepository,
	gateway interfaces.IPaymentGateway,
	events interfaces.IOrderEventPublisher,
	currency string,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		validator:   validator,
		writer:      writer,
		decrementer: decrementer,
		orders:      orders,
		gateway:     gateway,
		events:      events,
		currency:    currency,
	}
}

func (u *CheckoutUseCase) PlaceOrder(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	log.Printf("[checkout][usecase] place order start items=%d", len(cmd.Items))
	draft, err := u.validator.Validate(ctx, cmd)
	if err != nil {
		log.Printf("[checkout][usecase] validation failed err=%v", err)
		return CheckoutResult{}, err
	}

	order, _, err := u.writer.Write(ctx, draft)
	if err != nil {
		return CheckoutResult{}, err
	}

	// The order is committed; a client disconnect must not stop the follow-up.
	bg := context.WithoutCancel(ctx)
	u.decrementer.Apply(bg, draft.Lines)
	u.publish(bg, entities.OrderEventCreated, order)

	log.Printf("[checkout][usecase] order created order_id=%s order_number=%s total=%s", order.ID, order.OrderNumber, order.Total.StringFixed(2))
	return CheckoutResult{OrderID: order.ID, OrderNumber: order.OrderNumber}, nil
}

func (u *CheckoutUseCase) GetStatus(ctx context.Context, orderID string) (CheckoutStatus, error) {
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return CheckoutStatus{}, err
	}
	return CheckoutStatus{PaymentStatus: o.PaymentStatus, OrderStatus: o.Status}, nil
}

func (u *CheckoutUseCase) CreatePaymentSession(ctx context.Context, orderID string) (interfaces.PaymentSession, error) {
	if u.gateway == nil {
		log.Printf("[checkout][payment] gateway not configured order_id=%s", orderID)
		return interfaces.PaymentSession{}, ErrPaymentGatewayNotConfigured
	}
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return interfaces.PaymentSession{}, err
	}
	if o.PaymentStatus == entities.PaymentStatusPaid {
		log.Printf("[checkout][payment] order already paid order_id=%s", o.ID)
		return interfaces.PaymentSession{}, ErrOrderAlreadyPaid
	}

	items, err := u.orders.ListItems(ctx, o.ID)
	if err != nil {
		log.Printf("[checkout][payment] list items failed order_id=%s err=%v", o.ID, err)
		return interfaces.PaymentSession{}, err
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, interfaces.PaymentSessionRequest{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Email:       o.Email,
		Amount:      o.Total,
		Currency:    u.currency,
		Description: fmt.Sprintf("Order %s", o.OrderNumber),
		Items:       items,
	})
	if err != nil {
		log.Printf("[checkout][payment] provider create session failed order_id=%s err=%v", o.ID, err)
		return interfaces.PaymentSession{}, fmt.Errorf("%w: %w", ErrPaymentProviderFailure, err)
	}

	if session.ProviderOrderID != "" {
		// Webhooks can still be resolved through the merchant reference.
		if err := u.orders.SetProviderOrderID(ctx, o.ID, session.ProviderOrderID); err != nil {
			log.Printf("[checkout][payment] store provider order id failed order_id=%s provider_order_id=%s err=%v", o.ID, session.ProviderOrderID, err)
		}
	}
	log.Printf("[checkout][payment] session created order_id=%s provider_order_id=%s", o.ID, session.ProviderOrderID)
	return session, nil
}

func (u *CheckoutUseCase) loadOrder(ctx context.Context, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		log.Printf("[checkout][usecase] order lookup failed order_id=%s err=%v", orderID, err)
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *CheckoutUseCase) publish(ctx context.Context, t entities.OrderEventType, o entities.Order) {
	publishOrderEvent(ctx, u.events, t, o)
}

func publishOrderEvent(ctx context.Context, events interfaces.IOrderEventPublisher, t entities.OrderEventType, o entities.Order) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, entities.NewOrderEvent(t, o, time.Now().UTC())); err != nil {
		log.Printf("[order][events] publish failed type=%s order_id=%s err=%v", t, o.ID, err)
	}
}
