package usecase

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain/entities"
	mock_interfaces "storefront/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestNewsletterUseCase_Subscribe(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		uc := NewNewsletterUseCase(nil)
		for _, email := range []string{"", "no-at-sign", "a@b", "with space@example.com"} {
			if err := uc.Subscribe(context.Background(), email); !errors.Is(err, ErrInvalidEmail) {
				t.Fatalf("%q: expected ErrInvalidEmail, got %v", email, err)
			}
		}
	})

	t.Run("stores lowercased email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISubscriberRepository(ctrl)
		uc := NewNewsletterUseCase(repo)

		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s entities.Subscriber) (bool, error) {
			if s.Email != "fan@example.com" || s.Source != "website" || s.SubscribedAt.IsZero() {
				t.Fatalf("unexpected subscriber %+v", s)
			}
			return true, nil
		})

		if err := uc.Subscribe(context.Background(), " Fan@Example.COM "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("existing subscriber is not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISubscriberRepository(ctrl)
		uc := NewNewsletterUseCase(repo)

		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(false, nil)

		if err := uc.Subscribe(context.Background(), "fan@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISubscriberRepository(ctrl)
		uc := NewNewsletterUseCase(repo)

		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(false, errors.New("db"))

		if err := uc.Subscribe(context.Background(), "fan@example.com"); !errors.Is(err, ErrSubscriptionFailure) {
			t.Fatalf("expected ErrSubscriptionFailure, got %v", err)
		}
	})
}
