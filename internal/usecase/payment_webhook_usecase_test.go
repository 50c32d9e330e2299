package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
	mock_interfaces "storefront/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type webhookFixture struct {
	uc       *PaymentWebhookUseCase
	verifier *mock_interfaces.MockIWebhookVerifier
	orders   *mock_interfaces.MockIOrderRepository
	mailer   *mock_interfaces.MockIMailer
	events   *mock_interfaces.MockIOrderEventPublisher
	lookup   *mock_interfaces.MockIPaymentStatusLookup
}

var webhookNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func newWebhookFixture(ctrl *gomock.Controller) webhookFixture {
	f := webhookFixture{
		verifier: mock_interfaces.NewMockIWebhookVerifier(ctrl),
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		mailer:   mock_interfaces.NewMockIMailer(ctrl),
		events:   mock_interfaces.NewMockIOrderEventPublisher(ctrl),
		lookup:   mock_interfaces.NewMockIPaymentStatusLookup(ctrl),
	}
	f.uc = NewPaymentWebhookUseCase(f.verifier, f.orders, f.mailer, f.events, StoreInfo{Name: "Appliance Store", URL: "https://store.example"}, f.lookup)
	f.uc.now = func() time.Time { return webhookNow }
	return f
}

func pendingOrder() entities.Order {
	return entities.Order{
		ID:            "o-1",
		OrderNumber:   "EP-20240309-4321",
		Email:         "buyer@example.com",
		Status:        entities.OrderStatusPending,
		PaymentStatus: entities.PaymentStatusUnpaid,
		Total:         decimal.RequireFromString("20.00"),
	}
}

func paidOrder() entities.Order {
	o := pendingOrder()
	o.Status = entities.OrderStatusConfirmed
	o.PaymentStatus = entities.PaymentStatusPaid
	o.PaidAt = &webhookNow
	return o
}

func TestPaymentWebhookUseCase_Signature(t *testing.T) {
	t.Run("bad signature mutates nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		body := []byte(`{"event":"ORDER_COMPLETED","merchant_order_ext_ref":"o-1"}`)
		f.verifier.EXPECT().Verify(body, "v1=deadbeef", "1700000000").Return(errors.New("mismatch"))

		_, err := f.uc.HandleEvent(context.Background(), body, "v1=deadbeef", "1700000000")
		if !errors.Is(err, ErrInvalidWebhookSignature) {
			t.Fatalf("expected ErrInvalidWebhookSignature, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)
		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.uc.HandleEvent(context.Background(), []byte(`{`), "", "")
		if !errors.Is(err, ErrMalformedWebhook) {
			t.Fatalf("expected ErrMalformedWebhook, got %v", err)
		}
	})

	t.Run("no verifier configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewPaymentWebhookUseCase(nil, orders, nil, nil, StoreInfo{}, nil)

		res, err := uc.HandleEvent(context.Background(), []byte(`{"event":"ORDER_AUTHORISED"}`), "", "")
		if err != nil || res.Action != WebhookActionIgnored {
			t.Fatalf("expected ignored event, got %+v %v", res, err)
		}
	})
}

func TestPaymentWebhookUseCase_Completed(t *testing.T) {
	t.Run("applied twice stays paid and emails twice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		body := []byte(`{"event":"ORDER_COMPLETED","order_id":"rev-1","merchant_order_ext_ref":"o-1"}`)
		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Times(2).Return(nil)
		gomock.InOrder(
			f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil),
			f.orders.EXPECT().MarkPaid(gomock.Any(), "o-1", webhookNow).Return(paidOrder(), nil),
			f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(paidOrder(), nil),
			f.orders.EXPECT().MarkPaid(gomock.Any(), "o-1", webhookNow).Return(paidOrder(), nil),
		)
		f.orders.EXPECT().ListItems(gomock.Any(), "o-1").Times(2).Return([]entities.OrderItem{{
			Title: "Dishwasher", Quantity: 2, Price: decimal.RequireFromString("10.00"), Total: decimal.RequireFromString("20.00"),
		}}, nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(func(_ context.Context, msg interfaces.EmailMessage) error {
			if len(msg.To) != 1 || msg.To[0] != "buyer@example.com" {
				t.Fatalf("unexpected recipients %v", msg.To)
			}
			if !strings.Contains(msg.Subject, "EP-20240309-4321") || !strings.Contains(msg.HTML, "Dishwasher") {
				t.Fatalf("unexpected email %+v", msg)
			}
			return nil
		})
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(func(_ context.Context, evt entities.OrderEvent) error {
			if evt.Type != entities.OrderEventPaid || evt.PaymentStatus != entities.PaymentStatusPaid {
				t.Fatalf("unexpected event %+v", evt)
			}
			return nil
		})

		for i := 0; i < 2; i++ {
			res, err := f.uc.HandleEvent(context.Background(), body, "v1=x", "1")
			if err != nil {
				t.Fatalf("delivery %d: unexpected error: %v", i, err)
			}
			if res.Action != WebhookActionMarkedPaid || res.OrderID != "o-1" {
				t.Fatalf("delivery %d: unexpected result %+v", i, res)
			}
		}
	})

	t.Run("resolves by provider order id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.orders.EXPECT().GetByProviderOrderID(gomock.Any(), "rev-1").Return(pendingOrder(), nil)
		f.orders.EXPECT().MarkPaid(gomock.Any(), "o-1", webhookNow).Return(paidOrder(), nil)
		f.orders.EXPECT().ListItems(gomock.Any(), "o-1").Return(nil, nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.uc.HandleEvent(context.Background(), []byte(`{"event":"ORDER_COMPLETED","order_id":"rev-1"}`), "", "")
		if err != nil {
			t.Fatalf("email failure must not fail the webhook: %v", err)
		}
		if res.Action != WebhookActionMarkedPaid {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Order{}, nil)

		_, err := f.uc.HandleEvent(context.Background(), []byte(`{"event":"ORDER_COMPLETED","merchant_order_ext_ref":"missing"}`), "", "")
		if !errors.Is(err, ErrWebhookOrderNotFound) {
			t.Fatalf("expected ErrWebhookOrderNotFound, got %v", err)
		}
	})

	t.Run("order deleted before mark paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
		f.orders.EXPECT().MarkPaid(gomock.Any(), "o-1", webhookNow).Return(entities.Order{}, nil)

		res, err := f.uc.HandleEvent(context.Background(), []byte(`{"event":"ORDER_COMPLETED","merchant_order_ext_ref":"o-1"}`), "", "")
		if !errors.Is(err, ErrWebhookOrderNotFound) {
			t.Fatalf("expected ErrWebhookOrderNotFound, got %v", err)
		}
		if res.Action != WebhookActionIgnored {
			t.Fatalf("nothing must be reported as paid, got %+v", res)
		}
	})

	t.Run("store failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		dbErr := errors.New("db")
		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
		f.orders.EXPECT().MarkPaid(gomock.Any(), "o-1", webhookNow).Return(entities.Order{}, dbErr)

		_, err := f.uc.HandleEvent(context.Background(), []byte(`{"event":"ORDER_COMPLETED","merchant_order_ext_ref":"o-1"}`), "", "")
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestPaymentWebhookUseCase_Failed(t *testing.T) {
	for _, event := range []string{EventOrderCancelled, EventOrderPaymentFailed} {
		t.Run(event+" marks unpaid order failed", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			f := newWebhookFixture(ctrl)

			failed := pendingOrder()
			failed.PaymentStatus = entities.PaymentStatusFailed
			f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
			f.orders.EXPECT().MarkPaymentFailed(gomock.Any(), "o-1").Return(failed, nil)
			f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			res, err := f.uc.HandleEvent(context.Background(), []byte(`{"event":"`+event+`","merchant_order_ext_ref":"o-1"}`), "", "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Action != WebhookActionMarkedFailed {
				t.Fatalf("unexpected result %+v", res)
			}
		})
	}

	t.Run("paid order is not downgraded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(paidOrder(), nil)

		res, err := f.uc.HandleEvent(context.Background(), []byte(`{"event":"ORDER_CANCELLED","merchant_order_ext_ref":"o-1"}`), "", "")
		if err != nil || res.Action != WebhookActionIgnored {
			t.Fatalf("expected ignored, got %+v %v", res, err)
		}
	})

	t.Run("paid concurrently is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
		f.orders.EXPECT().MarkPaymentFailed(gomock.Any(), "o-1").Return(entities.Order{}, interfaces.ErrOrderAlreadyPaid)

		res, err := f.uc.HandleEvent(context.Background(), []byte(`{"event":"ORDER_PAYMENT_FAILED","merchant_order_ext_ref":"o-1"}`), "", "")
		if err != nil || res.Action != WebhookActionIgnored {
			t.Fatalf("expected ignored, got %+v %v", res, err)
		}
	})

	t.Run("order deleted before mark failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
		f.orders.EXPECT().MarkPaymentFailed(gomock.Any(), "o-1").Return(entities.Order{}, nil)

		res, err := f.uc.HandleEvent(context.Background(), []byte(`{"event":"ORDER_CANCELLED","merchant_order_ext_ref":"o-1"}`), "", "")
		if !errors.Is(err, ErrWebhookOrderNotFound) {
			t.Fatalf("expected ErrWebhookOrderNotFound, got %v", err)
		}
		if res.Action != WebhookActionIgnored {
			t.Fatalf("nothing must be reported as failed, got %+v", res)
		}
	})
}

func TestPaymentWebhookUseCase_PaymentNotification(t *testing.T) {
	paymentNote := PaymentNotification{Topic: "payment", PaymentID: "987"}

	t.Run("approved payment marks order paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.lookup.EXPECT().GetPayment(gomock.Any(), "987").
			Return(interfaces.ProviderPayment{ID: "987", Status: ProviderPaymentApproved, ExternalReference: "o-1"}, nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
		f.orders.EXPECT().MarkPaid(gomock.Any(), "o-1", webhookNow).Return(paidOrder(), nil)
		f.orders.EXPECT().ListItems(gomock.Any(), "o-1").Return(nil, nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, evt entities.OrderEvent) error {
			if evt.Type != entities.OrderEventPaid {
				t.Fatalf("unexpected event %+v", evt)
			}
			return nil
		})

		res, err := f.uc.HandlePaymentNotification(context.Background(), paymentNote)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Action != WebhookActionMarkedPaid || res.OrderID != "o-1" || res.Event != "payment.approved" {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	for _, status := range []string{ProviderPaymentRejected, ProviderPaymentCancelled} {
		t.Run(status+" payment marks order failed", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			f := newWebhookFixture(ctrl)

			failed := pendingOrder()
			failed.PaymentStatus = entities.PaymentStatusFailed
			f.lookup.EXPECT().GetPayment(gomock.Any(), "987").
				Return(interfaces.ProviderPayment{ID: "987", Status: status, ExternalReference: "o-1"}, nil)
			f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pendingOrder(), nil)
			f.orders.EXPECT().MarkPaymentFailed(gomock.Any(), "o-1").Return(failed, nil)
			f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			res, err := f.uc.HandlePaymentNotification(context.Background(), paymentNote)
			if err != nil || res.Action != WebhookActionMarkedFailed {
				t.Fatalf("expected marked failed, got %+v %v", res, err)
			}
		})
	}

	t.Run("rejected payment does not downgrade paid order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.lookup.EXPECT().GetPayment(gomock.Any(), "987").
			Return(interfaces.ProviderPayment{ID: "987", Status: ProviderPaymentRejected, ExternalReference: "o-1"}, nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(paidOrder(), nil)

		res, err := f.uc.HandlePaymentNotification(context.Background(), paymentNote)
		if err != nil || res.Action != WebhookActionIgnored {
			t.Fatalf("expected ignored, got %+v %v", res, err)
		}
	})

	t.Run("pending payment is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.lookup.EXPECT().GetPayment(gomock.Any(), "987").
			Return(interfaces.ProviderPayment{ID: "987", Status: "in_process", ExternalReference: "o-1"}, nil)

		res, err := f.uc.HandlePaymentNotification(context.Background(), paymentNote)
		if err != nil || res.Action != WebhookActionIgnored {
			t.Fatalf("expected ignored, got %+v %v", res, err)
		}
	})

	t.Run("other topics are ignored without lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		res, err := f.uc.HandlePaymentNotification(context.Background(), PaymentNotification{Topic: "merchant_order", PaymentID: "1"})
		if err != nil || res.Action != WebhookActionIgnored {
			t.Fatalf("expected ignored, got %+v %v", res, err)
		}
	})

	t.Run("missing payment id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		_, err := f.uc.HandlePaymentNotification(context.Background(), PaymentNotification{Topic: "payment"})
		if !errors.Is(err, ErrMalformedWebhook) {
			t.Fatalf("expected ErrMalformedWebhook, got %v", err)
		}
	})

	t.Run("lookup failure is wrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		apiErr := errors.New("503")
		f.lookup.EXPECT().GetPayment(gomock.Any(), "987").Return(interfaces.ProviderPayment{}, apiErr)

		_, err := f.uc.HandlePaymentNotification(context.Background(), paymentNote)
		if !errors.Is(err, ErrPaymentLookupFailed) || !errors.Is(err, apiErr) {
			t.Fatalf("expected wrapped lookup error, got %v", err)
		}
	})

	t.Run("payment without external reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.lookup.EXPECT().GetPayment(gomock.Any(), "987").
			Return(interfaces.ProviderPayment{ID: "987", Status: ProviderPaymentApproved}, nil)

		_, err := f.uc.HandlePaymentNotification(context.Background(), paymentNote)
		if !errors.Is(err, ErrMalformedWebhook) {
			t.Fatalf("expected ErrMalformedWebhook, got %v", err)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newWebhookFixture(ctrl)

		f.lookup.EXPECT().GetPayment(gomock.Any(), "987").
			Return(interfaces.ProviderPayment{ID: "987", Status: ProviderPaymentApproved, ExternalReference: "gone"}, nil)
		f.orders.EXPECT().GetByID(gomock.Any(), "gone").Return(entities.Order{}, nil)

		_, err := f.uc.HandlePaymentNotification(context.Background(), paymentNote)
		if !errors.Is(err, ErrWebhookOrderNotFound) {
			t.Fatalf("expected ErrWebhookOrderNotFound, got %v", err)
		}
	})

	t.Run("lookup not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := NewPaymentWebhookUseCase(nil, mock_interfaces.NewMockIOrderRepository(ctrl), nil, nil, StoreInfo{}, nil)

		_, err := uc.HandlePaymentNotification(context.Background(), paymentNote)
		if !errors.Is(err, ErrPaymentLookupDisabled) {
			t.Fatalf("expected ErrPaymentLookupDisabled, got %v", err)
		}
	})
}
