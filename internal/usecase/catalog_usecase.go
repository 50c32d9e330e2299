package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
)

var ErrProductNotFound = errors.New("product not found")

const (
	defaultCatalogPageSize = 20
	maxCatalogPageSize     = 100
)

type ProductPage struct {
	Items []entities.Product
	Total int
}

// ICatalogUseCase exposes the active part of the catalog to the storefront.
type ICatalogUseCase interface {
	List(ctx context.Context, search string, limit, offset int) (ProductPage, error)
	Get(ctx context.Context, id string) (entities.Product, error)
}

type CatalogUseCase struct {
	products interfaces.IProductRepository
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(products interfaces.IProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

func (u *CatalogUseCase) List(ctx context.Context, search string, limit, offset int) (ProductPage, error) {
	if limit <= 0 {
		limit = defaultCatalogPageSize
	}
	if limit > maxCatalogPageSize {
		limit = maxCatalogPageSize
	}
	if offset < 0 {
		offset = 0
	}
	items, total, err := u.products.ListActive(ctx, interfaces.ProductQuery{
		Search: strings.TrimSpace(search),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return ProductPage{}, err
	}
	if items == nil {
		items = []entities.Product{}
	}
	return ProductPage{Items: items, Total: total}, nil
}

// Get hides non-active products behind ErrProductNotFound.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (entities.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, ErrProductNotFound
	}
	p, err := u.products.GetByID(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" || !p.IsActive() {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}
