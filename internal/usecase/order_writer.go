package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrOrderPersistFailure = errors.New("failed to save order")

const maxOrderNumberAttempts = 3

// GenerateOrderNumber returns "EP-YYYYMMDD-NNNN" for the UTC date of t with a
// random four digit suffix in [1000, 9999].
func GenerateOrderNumber(t time.Time) string {
	return fmt.Sprintf("EP-%s-%d", t.UTC().Format("20060102"), 1000+rand.IntN(9000))
}

// IOrderWriter persists a validated draft as an order header plus items.
//
// Requested behavior:
//   - link the order to an existing customer by email, otherwise guest
//   - if the items cannot be stored, remove the header again
type IOrderWriter interface {
	Write(ctx context.Context, draft OrderDraft) (entities.Order, []entities.OrderItem, error)
}

type OrderWriter struct {
	orders         interfaces.IOrderRepository
	customers      interfaces.ICustomerRepository
	now            func() time.Time
	newID          func() string
	newOrderNumber func(time.Time) string
}

var _ IOrderWriter = (*OrderWriter)(nil)

func NewOrderWriter(orders interfaces.IOrderRepository, customers interfaces.ICustomerRepository) *OrderWriter {
	return &OrderWriter{
		orders:         orders,
		customers:      customers,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
		newOrderNumber: GenerateOrderNumber,
	}
}

func (w *OrderWriter) Write(ctx context.Context, draft OrderDraft) (entities.Order, []entities.OrderItem, error) {
	now := w.now()
	order := entities.Order{
		ID:              w.newID(),
		Email:           draft.Email,
		Phone:           draft.Phone,
		CustomerID:      w.resolveCustomerID(ctx, draft.Email),
		Status:          entities.OrderStatusPending,
		PaymentStatus:   entities.PaymentStatusUnpaid,
		Subtotal:        draft.Subtotal,
		ShippingCost:    draft.ShippingCost,
		Total:           draft.Total,
		ShippingAddress: draft.ShippingAddress,
		BillingAddress:  draft.ShippingAddress,
		Notes:           draft.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var (
		created entities.Order
		err     error
	)
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = w.newOrderNumber(now)
		created, err = w.orders.Create(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, interfaces.ErrDuplicateOrderNumber) {
			log.Printf("[checkout][writer] order number collision order_number=%s attempt=%d", order.OrderNumber, attempt)
			continue
		}
		break
	}
	if err != nil {
		log.Printf("[checkout][writer] order insert failed order_id=%s err=%v", order.ID, err)
		return entities.Order{}, nil, fmt.Errorf("%w: %w", ErrOrderPersistFailure, err)
	}

	items := make([]entities.OrderItem, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		items = append(items, entities.OrderItem{
			ID:        w.newID(),
			OrderID:   created.ID,
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Title:     l.Title,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Total:     l.Total(),
			ImageURL:  l.ImageURL,
		})
	}

	if err := w.orders.CreateItems(ctx, items); err != nil {
		log.Printf("[checkout][writer] items insert failed order_id=%s err=%v", created.ID, err)
		if delErr := w.orders.Delete(ctx, created.ID); delErr != nil {
			log.Printf("[checkout][writer] compensating delete failed order_id=%s err=%v", created.ID, delErr)
		}
		return entities.Order{}, nil, fmt.Errorf("%w: %w", ErrOrderPersistFailure, err)
	}

	log.Printf("[checkout][writer] order created order_id=%s order_number=%s items=%d guest=%t", created.ID, created.OrderNumber, len(items), created.IsGuest())
	return created, items, nil
}

func (w *OrderWriter) resolveCustomerID(ctx context.Context, email string) string {
	if w.customers == nil {
		return ""
	}
	c, err := w.customers.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		log.Printf("[checkout][writer] customer lookup failed, continuing as guest err=%v", err)
		return ""
	}
	return c.ID
}
