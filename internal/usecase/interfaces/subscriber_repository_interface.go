package interfaces

import (
	"context"

	"storefront/internal/domain/entities"
)

// ISubscriberRepository stores newsletter subscriptions. Upsert never fails
// on an existing email; created is false in that case.
type ISubscriberRepository interface {
	Upsert(ctx context.Context, s entities.Subscriber) (created bool, err error)
}
