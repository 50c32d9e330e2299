package interfaces

import (
	"context"

	"storefront/internal/domain/entities"
)

// IOrderEventPublisher emits order lifecycle events to downstream consumers.
type IOrderEventPublisher interface {
	Publish(ctx context.Context, evt entities.OrderEvent) error
}
