package interfaces

import (
	"context"

	"storefront/internal/domain/entities"
)

// ICustomerRepository looks up existing customer profiles. The email is
// expected to be lowercased by the caller.
type ICustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (entities.Customer, error)
}
