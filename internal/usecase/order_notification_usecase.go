package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
)

var ErrForbidden = errors.New("insufficient role")

// IOrderNotificationUseCase lets staff tell a customer their order shipped.
//
// The order is marked shipped before the email goes out. An email failure is
// reported to the caller.
type IOrderNotificationUseCase interface {
	NotifyShipped(ctx context.Context, actor entities.User, orderID, trackingNote string) (entities.Order, error)
}

type OrderNotificationUseCase struct {
	orders interfaces.IOrderRepository
	mailer interfaces.IMailer
	events interfaces.IOrderEventPublisher
	store  StoreInfo
}

var _ IOrderNotificationUseCase = (*OrderNotificationUseCase)(nil)

func NewOrderNotificationUseCase(orders interfaces.IOrderRepository, mailer interfaces.IMailer, events interfaces.IOrderEventPublisher, store StoreInfo) *OrderNotificationUseCase {
	return &OrderNotificationUseCase{orders: orders, mailer: mailer, events: events, store: store}
}

func (u *OrderNotificationUseCase) NotifyShipped(ctx context.Context, actor entities.User, orderID, trackingNote string) (entities.Order, error) {
	if !actor.HasAnyRole(entities.RoleAdmin, entities.RoleStaff) {
		log.Printf("[admin][orders] notify-shipped denied user_id=%s role=%s", actor.ID, actor.Role)
		return entities.Order{}, ErrForbidden
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		log.Printf("[admin][orders] order lookup failed order_id=%s err=%v", orderID, err)
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}

	updated, err := u.orders.UpdateStatus(ctx, o.ID, entities.OrderStatusShipped)
	if err != nil {
		log.Printf("[admin][orders] status update failed order_id=%s err=%v", o.ID, err)
		return entities.Order{}, err
	}

	msg, err := orderShippedEmail(u.store, updated, strings.TrimSpace(trackingNote))
	if err == nil {
		err = u.mailer.Send(ctx, msg)
	}
	if err != nil {
		log.Printf("[admin][orders] shipped email failed order_id=%s err=%v", o.ID, err)
		return updated, fmt.Errorf("%w: %w", ErrEmailDeliveryFailure, err)
	}

	publishOrderEvent(ctx, u.events, entities.OrderEventShipped, updated)
	log.Printf("[admin][orders] shipped notification sent order_id=%s by=%s", updated.ID, actor.Email)
	return updated, nil
}
