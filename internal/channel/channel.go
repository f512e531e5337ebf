package channel

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// ErrBadSignature indicates a webhook whose signature did not verify
// against the channel's shared secret. The payload must not be trusted.
var ErrBadSignature = errors.New("webhook signature mismatch")

// Intent is a created-but-unconfirmed payment: the correlation reference
// plus whatever the buyer needs to complete it (redirect URL or QR target).
type Intent struct {
	Reference string
	Target    string
}

// Event is a normalized completion signal extracted from a gateway webhook.
type Event struct {
	Reference string
	Paid      bool
	Amount    float64
}

// Channel creates payment intents for one payment method. Completion is
// surfaced per-channel: push webhooks for the gateways, seller approval for
// the manual channel, and in every case funnels into the reconciliation
// engine's single ApplyPaymentResult entry point.
type Channel interface {
	Tag() model.PaymentMethod
	CreateIntent(ctx context.Context, order *model.Order, seller *model.Seller) (*Intent, error)
}

// Registry resolves the channel for an order's payment method.
type Registry struct {
	channels map[model.PaymentMethod]Channel
}

// NewRegistry indexes the provided channels by tag.
func NewRegistry(channels ...Channel) *Registry {
	indexed := make(map[model.PaymentMethod]Channel, len(channels))
	for _, ch := range channels {
		indexed[ch.Tag()] = ch
	}
	return &Registry{channels: indexed}
}

// Get returns the channel registered for the method.
func (r *Registry) Get(method model.PaymentMethod) (Channel, bool) {
	ch, ok := r.channels[method]
	return ch, ok
}

func signBody(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func verifySignature(secret, body []byte, signature string) bool {
	return hmac.Equal([]byte(signBody(secret, body)), []byte(signature))
}
