package events

import (
	"context"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
)

// NoopPublisher drops events. Used when KAFKA_BROKERS is empty.
type NoopPublisher struct{}

var _ interfaces.IOrderEventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, entities.OrderEvent) error { return nil }
