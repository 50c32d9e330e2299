package interfaces

import (
	"context"

	"storefront/internal/domain/entities"
)

// IAuthenticator resolves a bearer token to a user. Unknown tokens return
// ErrUnauthenticated.
type IAuthenticator interface {
	Authenticate(ctx context.Context, token string) (entities.User, error)
}
