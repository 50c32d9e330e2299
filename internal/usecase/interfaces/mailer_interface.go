package interfaces

import "context"

type EmailMessage struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// IMailer sends transactional email through the configured provider.
type IMailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}
