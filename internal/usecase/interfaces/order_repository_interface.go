package interfaces

import (
	"context"
	"time"

	"storefront/internal/domain/entities"
)

// IOrderRepository abstracts persistence for orders and their items.
//
// Lookups return a zero-value order and nil error when nothing matches.
// Create reports ErrDuplicateOrderNumber when the order number is taken.
// MarkPaymentFailed reports ErrOrderAlreadyPaid instead of downgrading a
// paid order.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	CreateItems(ctx context.Context, items []entities.OrderItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByProviderOrderID(ctx context.Context, providerOrderID string) (entities.Order, error)
	ListItems(ctx context.Context, orderID string) ([]entities.OrderItem, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.Order, error)
	MarkPaymentFailed(ctx context.Context, id string) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	SetProviderOrderID(ctx context.Context, id, providerOrderID string) error
}
