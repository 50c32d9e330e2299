package email

import (
	"context"
	"log"

	"storefront/internal/usecase/interfaces"
)

// LogMailer only logs outgoing messages. Used when no email API key is set.
type LogMailer struct{}

var _ interfaces.IMailer = LogMailer{}

func (LogMailer) Send(_ context.Context, msg interfaces.EmailMessage) error {
	log.Printf("[email][log] to=%v reply_to=%q subject=%q", msg.To, msg.ReplyTo, msg.Subject)
	return nil
}
