package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrMissingContactInfo     = errors.New("email and phone are required")
	ErrIncompleteAddress      = errors.New("shipping address is incomplete")
	ErrInvalidQuantity        = errors.New("item quantity must be at least 1")
	ErrProductUnavailable     = errors.New("product is no longer available")
	ErrProductInactive        = errors.New("product is not available for purchase")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrValidatorNotConfigured = errors.New("order validator not configured")
)

// CheckoutItem is one cart line as submitted by the client. ClaimedPrice is
// what the client believed the price was; it is only logged.
type CheckoutItem struct {
	ProductID    string
	VariantID    string
	ClaimedPrice *decimal.Decimal
	Quantity     int
}

type CheckoutCommand struct {
	Items           []CheckoutItem
	Email           string
	Phone           string
	ShippingAddress entities.Address
	Notes           string
}

// DraftLine is a validated cart line priced from the catalog.
type DraftLine struct {
	ProductID         string
	VariantID         string
	Title             string
	ImageURL          string
	Price             decimal.Decimal
	Quantity          int
	ObservedInventory int
}

func (l DraftLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderDraft is the output of validation and the input of the order writer.
type OrderDraft struct {
	Lines           []DraftLine
	Email           string
	Phone           string
	ShippingAddress entities.Address
	Notes           string
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	Total           decimal.Decimal
}

// ItemRejection names the cart line that failed a catalog check. Err is one
// of ErrProductUnavailable, ErrProductInactive or ErrInsufficientStock.
type ItemRejection struct {
	ProductID string
	Title     string
	Available int
	Err       error
}

func (e *ItemRejection) Error() string {
	name := e.Title
	if name == "" {
		name = e.ProductID
	}
	switch {
	case errors.Is(e.Err, ErrInsufficientStock):
		if e.Available <= 0 {
			return fmt.Sprintf("%s is out of stock", name)
		}
		return fmt.Sprintf("only %d of %s available", e.Available, name)
	case errors.Is(e.Err, ErrProductInactive):
		return fmt.Sprintf("%s is not available for purchase", name)
	default:
		return fmt.Sprintf("product %s is no longer available", name)
	}
}

func (e *ItemRejection) Unwrap() error { return e.Err }

// IOrderValidator checks a submitted cart against the catalog and prices it.
// It has no side effects.
type IOrderValidator interface {
	Validate(ctx context.Context, cmd CheckoutCommand) (OrderDraft, error)
}

type OrderValidator struct {
	products     interfaces.IProductRepository
	shippingCost decimal.Decimal
}

var _ IOrderValidator = (*OrderValidator)(nil)

func NewOrderValidator(products interfaces.IProductRepository, shippingCost decimal.Decimal) *OrderValidator {
	return &OrderValidator{products: products, shippingCost: shippingCost}
}

func (v *OrderValidator) Validate(ctx context.Context, cmd CheckoutCommand) (OrderDraft, error) {
	if len(cmd.Items) == 0 {
		return OrderDraft{}, ErrEmptyCart
	}
	email := strings.TrimSpace(cmd.Email)
	phone := strings.TrimSpace(cmd.Phone)
	if email == "" || phone == "" {
		return OrderDraft{}, ErrMissingContactInfo
	}
	addr := trimAddress(cmd.ShippingAddress)
	if addr.Name == "" || addr.Line1 == "" || addr.City == "" || addr.PostalCode == "" {
		return OrderDraft{}, ErrIncompleteAddress
	}
	for _, it := range cmd.Items {
		if it.Quantity < 1 {
			return OrderDraft{}, ErrInvalidQuantity
		}
	}
	if v.products == nil {
		return OrderDraft{}, ErrValidatorNotConfigured
	}

	// Repeated cart entries for the same product are checked against the
	// combined quantity. Entries with the same variant collapse into one line.
	type lineKey struct{ productID, variantID string }
	lines := make([]DraftLine, 0, len(cmd.Items))
	lineIndex := make(map[lineKey]int, len(cmd.Items))
	catalog := make(map[string]entities.Product, len(cmd.Items))
	inventory := make(map[string]int, len(cmd.Items))
	reserved := make(map[string]int, len(cmd.Items))
	for _, it := range cmd.Items {
		p, seen := catalog[it.ProductID]
		if !seen {
			var err error
			p, err = v.products.GetByID(ctx, it.ProductID)
			if err != nil {
				log.Printf("[checkout][validator] product lookup failed product_id=%s err=%v", it.ProductID, err)
				return OrderDraft{}, err
			}
			if p.ID == "" {
				return OrderDraft{}, &ItemRejection{ProductID: it.ProductID, Err: ErrProductUnavailable}
			}
			if !p.IsActive() {
				return OrderDraft{}, &ItemRejection{ProductID: p.ID, Title: p.Title, Err: ErrProductInactive}
			}
			catalog[it.ProductID] = p
			inventory[p.ID] = p.InventoryCount
		}
		already := reserved[p.ID]
		if p.InventoryCount < already+it.Quantity {
			return OrderDraft{}, &ItemRejection{ProductID: p.ID, Title: p.Title, Available: max(p.InventoryCount, 0), Err: ErrInsufficientStock}
		}
		reserved[p.ID] = already + it.Quantity
		if it.ClaimedPrice != nil && !it.ClaimedPrice.Equal(p.Price) {
			log.Printf("[checkout][validator] client price ignored product_id=%s claimed=%s catalog=%s", p.ID, it.ClaimedPrice.StringFixed(2), p.Price.StringFixed(2))
		}

		key := lineKey{productID: p.ID, variantID: strings.TrimSpace(it.VariantID)}
		if i, ok := lineIndex[key]; ok {
			lines[i].Quantity += it.Quantity
			continue
		}
		lineIndex[key] = len(lines)
		lines = append(lines, DraftLine{
			ProductID: p.ID,
			VariantID: key.variantID,
			Title:     p.Title,
			ImageURL:  p.ImageURL,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
	}

	// Lines of the same product are decremented in order, so each one expects
	// the stock the earlier ones leave behind.
	subtotal := decimal.Zero
	consumed := make(map[string]int, len(inventory))
	for i := range lines {
		l := &lines[i]
		l.ObservedInventory = inventory[l.ProductID] - consumed[l.ProductID]
		consumed[l.ProductID] += l.Quantity
		subtotal = subtotal.Add(l.Total())
	}

	return OrderDraft{
		Lines:           lines,
		Email:           email,
		Phone:           phone,
		ShippingAddress: addr,
		Notes:           strings.TrimSpace(cmd.Notes),
		Subtotal:        subtotal,
		ShippingCost:    v.shippingCost,
		Total:           subtotal.Add(v.shippingCost),
	}, nil
}

func trimAddress(a entities.Address) entities.Address {
	return entities.Address{
		Name:       strings.TrimSpace(a.Name),
		Line1:      strings.TrimSpace(a.Line1),
		Line2:      strings.TrimSpace(a.Line2),
		City:       strings.TrimSpace(a.City),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Region:     strings.TrimSpace(a.Region),
		Country:    strings.TrimSpace(a.Country),
	}
}
