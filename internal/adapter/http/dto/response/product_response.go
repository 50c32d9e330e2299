package response

import (
	"storefront/internal/domain/entities"
	"storefront/internal/usecase"
)

type ProductResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Slug           string `json:"slug,omitempty"`
	SKU            string `json:"sku,omitempty"`
	Description    string `json:"description,omitempty"`
	Price          string `json:"price"`
	InventoryCount int    `json:"inventoryCount"`
	InStock        bool   `json:"inStock"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

func FromProduct(p entities.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		SKU:            p.SKU,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		InventoryCount: p.InventoryCount,
		InStock:        p.InventoryCount > 0,
		ImageURL:       p.ImageURL,
	}
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

func FromProductPage(page usecase.ProductPage) ProductListResponse {
	items := make([]ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, FromProduct(p))
	}
	return ProductListResponse{Items: items, Total: page.Total}
}
