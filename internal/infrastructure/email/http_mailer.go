package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/usecase/interfaces"
)

var (
	ErrMissingAPIKey    = errors.New("email api key is required")
	ErrMissingFrom      = errors.New("email sender address is required")
	ErrNoRecipients     = errors.New("email has no recipients")
	ErrProviderRejected = errors.New("email provider rejected the message")
)

const defaultAPIURL = "https://api.resend.com"

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// HTTPMailer sends transactional email through a Resend-compatible API.
type HTTPMailer struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

var _ interfaces.IMailer = (*HTTPMailer)(nil)

func NewHTTPMailer(baseURL, apiKey, from string, client *http.Client) (*HTTPMailer, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if from == "" {
		return nil, ErrMissingFrom
	}
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPMailer{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		client:  client,
	}, nil
}

func (m *HTTPMailer) Send(ctx context.Context, msg interfaces.EmailMessage) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	payload, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[email][http] send failed status=%d subject=%q", resp.StatusCode, msg.Subject)
		return fmt.Errorf("%w: status %d: %s", ErrProviderRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
