package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"

	"storefront/internal/usecase/interfaces"
)

const signatureVersion = "v1"

var (
	ErrMissingSignature  = errors.New("missing webhook signature headers")
	ErrSignatureMismatch = errors.New("webhook signature mismatch")
)

// SignatureVerifier checks Revolut-style webhook signatures.
//
// The signed payload is "v1.<timestamp>.<raw body>" hashed with HMAC-SHA256
// and hex encoded. The signature header may carry several comma separated
// "v1=<hex>" entries during secret rotation; any match is accepted.
type SignatureVerifier struct {
	secret string
}

var _ interfaces.IWebhookVerifier = (*SignatureVerifier)(nil)

// NewSignatureVerifier returns a verifier for secret. An empty secret
// disables verification.
func NewSignatureVerifier(secret string) *SignatureVerifier {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		log.Printf("[payment][webhook] PAYMENT_WEBHOOK_SECRET not set; webhook signatures will NOT be verified")
	}
	return &SignatureVerifier{secret: secret}
}

func (v *SignatureVerifier) Enabled() bool {
	return v != nil && v.secret != ""
}

func (v *SignatureVerifier) Verify(body []byte, signatureHeader, timestampHeader string) error {
	if !v.Enabled() {
		return nil
	}
	signatureHeader = strings.TrimSpace(signatureHeader)
	timestampHeader = strings.TrimSpace(timestampHeader)
	if signatureHeader == "" || timestampHeader == "" {
		return ErrMissingSignature
	}

	expected := []byte(Sign(v.secret, timestampHeader, body))
	for _, part := range strings.Split(signatureHeader, ",") {
		version, sig, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || version != signatureVersion {
			continue
		}
		if hmac.Equal(expected, []byte(strings.ToLower(sig))) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

// Sign computes the hex signature for body sent at timestamp.
func Sign(secret, timestamp string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signatureVersion + "." + timestamp + "."))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
