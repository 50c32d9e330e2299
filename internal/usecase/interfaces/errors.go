package interfaces

import "errors"

// Errors repositories and collaborators report through these interfaces so
// that use cases can branch on them regardless of the backing store.
var (
	ErrDuplicateOrderNumber = errors.New("order number already exists")
	ErrOrderAlreadyPaid     = errors.New("order already paid")
	ErrUnauthenticated      = errors.New("unauthenticated")
)
