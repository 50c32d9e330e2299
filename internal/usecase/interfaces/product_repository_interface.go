package interfaces

import (
	"context"

	"storefront/internal/domain/entities"
)

// ProductQuery filters catalog listings. Only active products are returned.
type ProductQuery struct {
	Search string
	Limit  int
	Offset int
}

// IProductRepository abstracts catalog persistence.
//
// The storefront must be able to:
//   - read a product by id (zero value and nil error when it does not exist)
//   - list active products with a title search and paging
//   - decrement inventory only when the stored count still equals the
//     count observed during validation
type IProductRepository interface {
	GetByID(ctx context.Context, id string) (entities.Product, error)
	ListActive(ctx context.Context, q ProductQuery) ([]entities.Product, int, error)
	CompareAndDecrement(ctx context.Context, productID string, expected, quantity int) (entities.DecrementOutcome, error)
}
