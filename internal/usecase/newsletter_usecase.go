package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
)

var ErrSubscriptionFailure = errors.New("failed to subscribe")

const defaultSubscriberSource = "website"

// INewsletterUseCase records newsletter sign-ups. Subscribing twice is not
// an error.
type INewsletterUseCase interface {
	Subscribe(ctx context.Context, email string) error
}

type NewsletterUseCase struct {
	subscribers interfaces.ISubscriberRepository
}

var _ INewsletterUseCase = (*NewsletterUseCase)(nil)

func NewNewsletterUseCase(subscribers interfaces.ISubscriberRepository) *NewsletterUseCase {
	return &NewsletterUseCase{subscribers: subscribers}
}

func (u *NewsletterUseCase) Subscribe(ctx context.Context, email string) error {
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	email = normalizeEmail(email)
	created, err := u.subscribers.Upsert(ctx, entities.Subscriber{
		Email:        email,
		Source:       defaultSubscriberSource,
		SubscribedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[newsletter][usecase] upsert failed err=%v", err)
		return fmt.Errorf("%w: %w", ErrSubscriptionFailure, err)
	}
	log.Printf("[newsletter][usecase] subscribed created=%t", created)
	return nil
}
