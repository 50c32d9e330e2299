package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"storefront/internal/usecase/interfaces"
)

var (
	ErrInvalidContactMessage = errors.New("name, email, subject and message are required")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrEmailDeliveryFailure  = errors.New("failed to send email")
)

type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
	Phone   string
}

// IContactUseCase forwards contact form submissions to the store.
//
// The admin notification must go out for the submission to succeed. The
// auto-reply to the sender is best effort.
type IContactUseCase interface {
	Submit(ctx context.Context, msg ContactMessage) error
}

type ContactUseCase struct {
	mailer interfaces.IMailer
	store  StoreInfo
}

var _ IContactUseCase = (*ContactUseCase)(nil)

func NewContactUseCase(mailer interfaces.IMailer, store StoreInfo) *ContactUseCase {
	return &ContactUseCase{mailer: mailer, store: store}
}

func (u *ContactUseCase) Submit(ctx context.Context, msg ContactMessage) error {
	msg = ContactMessage{
		Name:    strings.TrimSpace(msg.Name),
		Email:   strings.TrimSpace(msg.Email),
		Subject: strings.TrimSpace(msg.Subject),
		Message: strings.TrimSpace(msg.Message),
		Phone:   strings.TrimSpace(msg.Phone),
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return ErrInvalidContactMessage
	}
	if !isValidEmail(msg.Email) {
		return ErrInvalidEmail
	}
	if u.mailer == nil || u.store.AdminEmail == "" {
		log.Printf("[contact][usecase] admin email not configured")
		return ErrEmailDeliveryFailure
	}

	adminMsg, err := contactAdminEmail(u.store, msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDeliveryFailure, err)
	}
	if err := u.mailer.Send(ctx, adminMsg); err != nil {
		log.Printf("[contact][usecase] admin notification failed err=%v", err)
		return fmt.Errorf("%w: %w", ErrEmailDeliveryFailure, err)
	}

	reply, err := contactAutoReplyEmail(u.store, msg)
	if err == nil {
		err = u.mailer.Send(ctx, reply)
	}
	if err != nil {
		log.Printf("[contact][usecase] auto-reply failed err=%v", err)
	}
	log.Printf("[contact][usecase] submission forwarded subject=%q", msg.Subject)
	return nil
}
