package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/usecase/interfaces"
	mock_interfaces "storefront/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var testStore = StoreInfo{Name: "Appliance Store", URL: "https://store.example", AdminEmail: "admin@store.example"}

func validContact() ContactMessage {
	return ContactMessage{Name: "Ann", Email: "ann@example.com", Subject: "Delivery", Message: "When will it arrive?"}
}

func TestContactUseCase_Submit(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		uc := NewContactUseCase(nil, testStore)
		m := validContact()
		m.Message = "  "
		if err := uc.Submit(context.Background(), m); !errors.Is(err, ErrInvalidContactMessage) {
			t.Fatalf("expected ErrInvalidContactMessage, got %v", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		uc := NewContactUseCase(nil, testStore)
		m := validContact()
		m.Email = "ann@example"
		if err := uc.Submit(context.Background(), m); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("sends admin notification then auto-reply", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := NewContactUseCase(mailer, testStore)

		gomock.InOrder(
			mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg interfaces.EmailMessage) error {
				if msg.To[0] != "admin@store.example" || msg.ReplyTo != "ann@example.com" {
					t.Fatalf("unexpected admin email %+v", msg)
				}
				if !strings.Contains(msg.HTML, "When will it arrive?") {
					t.Fatalf("admin email misses the message body")
				}
				return nil
			}),
			mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg interfaces.EmailMessage) error {
				if msg.To[0] != "ann@example.com" {
					t.Fatalf("unexpected auto-reply %+v", msg)
				}
				return nil
			}),
		)

		if err := uc.Submit(context.Background(), validContact()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("admin notification failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := NewContactUseCase(mailer, testStore)

		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("provider down"))

		if err := uc.Submit(context.Background(), validContact()); !errors.Is(err, ErrEmailDeliveryFailure) {
			t.Fatalf("expected ErrEmailDeliveryFailure, got %v", err)
		}
	})

	t.Run("auto-reply failure is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := NewContactUseCase(mailer, testStore)

		gomock.InOrder(
			mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil),
			mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("bounced")),
		)

		if err := uc.Submit(context.Background(), validContact()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("admin address not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := NewContactUseCase(mailer, StoreInfo{Name: "Appliance Store"})

		if err := uc.Submit(context.Background(), validContact()); !errors.Is(err, ErrEmailDeliveryFailure) {
			t.Fatalf("expected ErrEmailDeliveryFailure, got %v", err)
		}
	})
}
