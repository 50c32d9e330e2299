package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
	mock_interfaces "storefront/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// memProducts is a minimal catalog with a real compare-and-decrement.
type memProducts struct {
	mu       sync.Mutex
	products map[string]entities.Product
	// readBarrier, when set, holds every GetByID until all readers arrived.
	readBarrier *sync.WaitGroup
}

var _ interfaces.IProductRepository = (*memProducts)(nil)

func newMemProducts(ps ...entities.Product) *memProducts {
	m := &memProducts{products: map[string]entities.Product{}}
	for _, p := range ps {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) GetByID(_ context.Context, id string) (entities.Product, error) {
	m.mu.Lock()
	p := m.products[id]
	m.mu.Unlock()
	if m.readBarrier != nil {
		m.readBarrier.Done()
		m.readBarrier.Wait()
	}
	return p, nil
}

func (m *memProducts) ListActive(_ context.Context, _ interfaces.ProductQuery) ([]entities.Product, int, error) {
	return nil, 0, nil
}

func (m *memProducts) CompareAndDecrement(_ context.Context, id string, expected, quantity int) (entities.DecrementOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.InventoryCount != expected {
		return entities.DecrementLostRace, nil
	}
	p.InventoryCount -= quantity
	m.products[id] = p
	return entities.DecrementApplied, nil
}

func (m *memProducts) inventory(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].InventoryCount
}

type checkoutFixture struct {
	uc        *CheckoutUseCase
	products  *memProducts
	orders    *mock_interfaces.MockIOrderRepository
	customers *mock_interfaces.MockICustomerRepository
	gateway   *mock_interfaces.MockIPaymentGateway
	events    *mock_interfaces.MockIOrderEventPublisher
}

func newCheckoutFixture(ctrl *gomock.Controller, products *memProducts) checkoutFixture {
	f := checkoutFixture{
		products:  products,
		orders:    mock_interfaces.NewMockIOrderRepository(ctrl),
		customers: mock_interfaces.NewMockICustomerRepository(ctrl),
		gateway:   mock_interfaces.NewMockIPaymentGateway(ctrl),
		events:    mock_interfaces.NewMockIOrderEventPublisher(ctrl),
	}
	f.uc = NewCheckoutUseCase(
		NewOrderValidator(products, decimal.Zero),
		NewOrderWriter(f.orders, f.customers),
		NewInventoryDecrementer(products),
		f.orders,
		f.gateway,
		f.events,
		"GBP",
	)
	return f
}

func TestCheckoutUseCase_PlaceOrder(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts(activeProduct("P1", "10.00", 5)))

		var stored entities.Order
		var storedItems []entities.OrderItem
		f.customers.EXPECT().FindByEmail(gomock.Any(), "buyer@example.com").Return(entities.Customer{}, nil)
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			stored = o
			return o, nil
		})
		f.orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, items []entities.OrderItem) error {
			storedItems = items
			return nil
		})
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, evt entities.OrderEvent) error {
			if evt.Type != entities.OrderEventCreated || evt.OrderID != stored.ID {
				t.Fatalf("unexpected event: %+v", evt)
			}
			return nil
		})

		res, err := f.uc.PlaceOrder(context.Background(), validCommand(CheckoutItem{ProductID: "P1", Quantity: 2}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.OrderID != stored.ID || res.OrderNumber != stored.OrderNumber {
			t.Fatalf("unexpected result %+v", res)
		}
		if !stored.Subtotal.Equal(decimal.RequireFromString("20.00")) ||
			!stored.ShippingCost.Equal(decimal.Zero) ||
			!stored.Total.Equal(decimal.RequireFromString("20.00")) {
			t.Fatalf("unexpected totals: %s + %s = %s", stored.Subtotal, stored.ShippingCost, stored.Total)
		}
		if len(storedItems) != 1 || storedItems[0].Quantity != 2 ||
			!storedItems[0].Price.Equal(decimal.RequireFromString("10.00")) ||
			!storedItems[0].Total.Equal(decimal.RequireFromString("20.00")) {
			t.Fatalf("unexpected items: %+v", storedItems)
		}
		if got := f.products.inventory("P1"); got != 3 {
			t.Fatalf("expected inventory 3, got %d", got)
		}
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts(activeProduct("P1", "10.00", 0)))

		_, err := f.uc.PlaceOrder(context.Background(), validCommand(CheckoutItem{ProductID: "P1", Quantity: 1}))
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
	})

	t.Run("persist failure skips inventory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts(activeProduct("P1", "10.00", 5)))

		f.customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(entities.Customer{}, nil)
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(returnOrder)
		f.orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
		f.orders.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.uc.PlaceOrder(context.Background(), validCommand(CheckoutItem{ProductID: "P1", Quantity: 1}))
		if !errors.Is(err, ErrOrderPersistFailure) {
			t.Fatalf("expected ErrOrderPersistFailure, got %v", err)
		}
		if got := f.products.inventory("P1"); got != 5 {
			t.Fatalf("inventory must be untouched, got %d", got)
		}
	})

	t.Run("event publish failure does not fail the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts(activeProduct("P1", "10.00", 5)))

		f.customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(entities.Customer{}, nil)
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(returnOrder)
		f.orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		if _, err := f.uc.PlaceOrder(context.Background(), validCommand(CheckoutItem{ProductID: "P1", Quantity: 1})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent checkouts for the last unit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		products := newMemProducts(activeProduct("P1", "10.00", 1))
		products.readBarrier = &sync.WaitGroup{}
		products.readBarrier.Add(2)
		f := newCheckoutFixture(ctrl, products)

		f.customers.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Times(2).Return(entities.Customer{}, nil)
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(returnOrder)
		f.orders.EXPECT().CreateItems(gomock.Any(), gomock.Any()).Times(2).Return(nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2).Return(nil)

		var wg sync.WaitGroup
		results := make([]CheckoutResult, 2)
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = f.uc.PlaceOrder(context.Background(), validCommand(CheckoutItem{ProductID: "P1", Quantity: 1}))
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				t.Fatalf("checkout %d failed: %v", i, err)
			}
		}
		if results[0].OrderID == results[1].OrderID {
			t.Fatalf("expected two distinct orders")
		}
		if got := f.products.inventory("P1"); got != 0 {
			t.Fatalf("expected exactly one decrement applied, inventory=%d", got)
		}
	})
}

func TestCheckoutUseCase_GetStatus(t *testing.T) {
	t.Run("missing order id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts())

		_, err := f.uc.GetStatus(context.Background(), " ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts())
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{}, nil)

		_, err := f.uc.GetStatus(context.Background(), "o-1")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts())
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{
			ID: "o-1", Status: entities.OrderStatusConfirmed, PaymentStatus: entities.PaymentStatusPaid,
		}, nil)

		st, err := f.uc.GetStatus(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.PaymentStatus != entities.PaymentStatusPaid || st.OrderStatus != entities.OrderStatusConfirmed {
			t.Fatalf("unexpected status %+v", st)
		}
	})
}

func TestCheckoutUseCase_CreatePaymentSession(t *testing.T) {
	unpaid := entities.Order{
		ID:            "o-1",
		OrderNumber:   "EP-20240309-1234",
		Email:         "buyer@example.com",
		PaymentStatus: entities.PaymentStatusUnpaid,
		Total:         decimal.RequireFromString("20.00"),
	}

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, nil, nil, nil, nil, nil, "GBP")
		_, err := uc.CreatePaymentSession(context.Background(), "o-1")
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts())
		paid := unpaid
		paid.PaymentStatus = entities.PaymentStatusPaid
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(paid, nil)

		_, err := f.uc.CreatePaymentSession(context.Background(), "o-1")
		if !errors.Is(err, ErrOrderAlreadyPaid) {
			t.Fatalf("expected ErrOrderAlreadyPaid, got %v", err)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts())
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(unpaid, nil)
		f.orders.EXPECT().ListItems(gomock.Any(), "o-1").Return(nil, nil)
		f.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(interfaces.PaymentSession{}, errors.New("502"))

		_, err := f.uc.CreatePaymentSession(context.Background(), "o-1")
		if !errors.Is(err, ErrPaymentProviderFailure) {
			t.Fatalf("expected ErrPaymentProviderFailure, got %v", err)
		}
	})

	t.Run("success stores provider order id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCheckoutFixture(ctrl, newMemProducts())
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(unpaid, nil)
		f.orders.EXPECT().ListItems(gomock.Any(), "o-1").Return([]entities.OrderItem{{ID: "i-1"}}, nil)
		f.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req interfaces.PaymentSessionRequest) (interfaces.PaymentSession, error) {
			if req.OrderID != "o-1" || req.Currency != "GBP" || !req.Amount.Equal(unpaid.Total) || len(req.Items) != 1 {
				t.Fatalf("unexpected session request: %+v", req)
			}
			return interfaces.PaymentSession{ProviderOrderID: "rev-1", CheckoutURL: "https://pay.example/rev-1"}, nil
		})
		f.orders.EXPECT().SetProviderOrderID(gomock.Any(), "o-1", "rev-1").Return(nil)

		s, err := f.uc.CreatePaymentSession(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.CheckoutURL != "https://pay.example/rev-1" {
			t.Fatalf("unexpected session %+v", s)
		}
	})
}
