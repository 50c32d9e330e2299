package request

import (
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
)

type CheckoutItemRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	// Price is what the client displayed. Informational only.
	Price    *decimal.Decimal `json:"price,omitempty" swaggertype:"number"`
	Quantity int              `json:"quantity"`
}

type AddressRequest struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Region     string `json:"region,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CheckoutRequest is the cart submitted by the storefront. Field checks are
// left to the use case so each failure gets its own message.
type CheckoutRequest struct {
	Items           []CheckoutItemRequest `json:"items"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	ShippingAddress AddressRequest        `json:"shippingAddress"`
	Notes           string                `json:"notes,omitempty"`
}

func (r CheckoutRequest) ToCommand() usecase.CheckoutCommand {
	items := make([]usecase.CheckoutItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, usecase.CheckoutItem{
			ProductID:    strings.TrimSpace(it.ProductID),
			VariantID:    strings.TrimSpace(it.VariantID),
			ClaimedPrice: it.Price,
			Quantity:     it.Quantity,
		})
	}
	return usecase.CheckoutCommand{
		Items: items,
		Email: r.Email,
		Phone: r.Phone,
		ShippingAddress: entities.Address{
			Name:       r.ShippingAddress.Name,
			Line1:      r.ShippingAddress.Line1,
			Line2:      r.ShippingAddress.Line2,
			City:       r.ShippingAddress.City,
			PostalCode: r.ShippingAddress.PostalCode,
			Region:     r.ShippingAddress.Region,
			Country:    r.ShippingAddress.Country,
		},
		Notes: r.Notes,
	}
}
