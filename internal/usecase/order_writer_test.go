package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
	mock_interfaces "storefront/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func sampleDraft() OrderDraft {
	price := decimal.RequireFromString("10.00")
	return OrderDraft{
		Lines: []DraftLine{{
			ProductID:         "p1",
			Title:             "Washing Machine",
			Price:             price,
			Quantity:          2,
			ObservedInventory: 5,
		}},
		Email:           "Buyer@Example.com",
		Phone:           "123",
		ShippingAddress: entities.Address{Name: "Jane", Line1: "1 Road", City: "Leeds", PostalCode: "LS1"},
		Subtotal:        decimal.RequireFromString("20.00"),
		ShippingCost:    decimal.Zero,
		Total:           decimal.RequireFromString("20.00"),
	}
}

func newTestWriter(orders *mock_interfaces.MockIOrderRepository, customers *mock_interfaces.MockICustomerRepository) *OrderWriter {
	w := NewOrderWriter(orders, customers)
	w.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	n := 0
	w.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return w
}

func returnOrder(_ context.Context, o entities.Order) (entities.Order, error) {
	return o, nil
}

func TestGenerateOrderNumber(t *testing.T) {
	re := regexp.MustCompile(`^EP-20240309-[1-9]\d{3}$`)
	at := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		if n := GenerateOrderNumber(at); !re.MatchString(n) {
			t.Fatalf("unexpected order number %q", n)
		}
	}
}

func TestOrderWriter_Write(t *testing.T) {
	t.Run("links existing customer and stores items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		w := newTestWriter(orders, customers)

		customers.EXPECT().FindByEmail(gomock.Any(), "buyer@example.com").Return(entities.Customer{ID: "cust-1"}, nil)
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			if o.Status != entities.OrderStatusPending || o.PaymentStatus != entities.PaymentStatusUnpaid {
				t.Fatalf("unexpected initial status: %s/%s", o.Status, o.PaymentStatus)
			}
			if o.CustomerID != "cust-1" {
				t.Fatalf("expected customer link, got %q", o.CustomerID)
			}
			if o.BillingAddress != o.ShippingAddress {
				t.Fatalf("billing address must copy shipping address")
			}
			if !regexp.MustCompile(`^EP-20240309-\d{4}$`).MatchString(o.OrderNumber) {
				t.Fatalf("unexpected order number %q", o.OrderNumber)
			}
			return o, nil
		})
		orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, items []entities.OrderItem) error {
			if len(items) != 1 || items[0].OrderID != "id-1" {
				t.Fatalf("unexpected items: %+v", items)
			}
			if !items[0].Total.Equal(decimal.RequireFromString("20.00")) {
				t.Fatalf("expected item total 20.00, got %s", items[0].Total)
			}
			return nil
		})

		order, items, err := w.Write(context.Background(), sampleDraft())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.ID != "id-1" || len(items) != 1 {
			t.Fatalf("unexpected result: %+v %+v", order, items)
		}
	})

	t.Run("customer lookup error falls back to guest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		w := newTestWriter(orders, customers)

		customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(entities.Customer{}, errors.New("db"))
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(returnOrder)
		orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Return(nil)

		order, _, err := w.Write(context.Background(), sampleDraft())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !order.IsGuest() {
			t.Fatalf("expected guest order, got customer %q", order.CustomerID)
		}
	})

	t.Run("retries on order number collision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		w := newTestWriter(orders, customers)
		seq := 0
		w.newOrderNumber = func(time.Time) string {
			seq++
			return fmt.Sprintf("EP-20240309-100%d", seq)
		}

		customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(entities.Customer{}, nil)
		var seen []string
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			seen = append(seen, o.OrderNumber)
			if len(seen) < 3 {
				return entities.Order{}, interfaces.ErrDuplicateOrderNumber
			}
			return o, nil
		})
		orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Return(nil)

		order, _, err := w.Write(context.Background(), sampleDraft())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.OrderNumber != "EP-20240309-1003" {
			t.Fatalf("expected third number, got %q (seen %v)", order.OrderNumber, seen)
		}
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		w := newTestWriter(orders, customers)

		customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(entities.Customer{}, nil)
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).Times(maxOrderNumberAttempts).Return(entities.Order{}, interfaces.ErrDuplicateOrderNumber)

		_, _, err := w.Write(context.Background(), sampleDraft())
		if !errors.Is(err, ErrOrderPersistFailure) || !errors.Is(err, interfaces.ErrDuplicateOrderNumber) {
			t.Fatalf("expected persist failure wrapping duplicate, got %v", err)
		}
	})

	t.Run("header insert failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		w := newTestWriter(orders, customers)

		customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(entities.Customer{}, nil)
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Order{}, errors.New("throttled"))

		_, _, err := w.Write(context.Background(), sampleDraft())
		if !errors.Is(err, ErrOrderPersistFailure) {
			t.Fatalf("expected ErrOrderPersistFailure, got %v", err)
		}
	})

	t.Run("items failure deletes the header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		w := newTestWriter(orders, customers)

		customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(entities.Customer{}, nil)
		gomock.InOrder(
			orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(returnOrder),
			orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Return(errors.New("items failed")),
			orders.EXPECT().Delete(gomock.Any(), "id-1").Return(nil),
		)

		_, items, err := w.Write(context.Background(), sampleDraft())
		if !errors.Is(err, ErrOrderPersistFailure) {
			t.Fatalf("expected ErrOrderPersistFailure, got %v", err)
		}
		if items != nil {
			t.Fatalf("expected no items, got %+v", items)
		}
	})

	t.Run("failed compensation still reports persist failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		w := newTestWriter(orders, customers)

		customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(entities.Customer{}, nil)
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(returnOrder)
		orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Return(errors.New("items failed"))
		orders.EXPECT().Delete(gomock.Any(), "id-1").Return(errors.New("delete failed"))

		_, _, err := w.Write(context.Background(), sampleDraft())
		if !errors.Is(err, ErrOrderPersistFailure) {
			t.Fatalf("expected ErrOrderPersistFailure, got %v", err)
		}
	})
}
