package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// HostedBillChannel integrates the hosted bill gateway: a bill is created
// per order and the gateway redirects the buyer to a hosted payment page.
type HostedBillChannel struct {
	baseURL    *url.URL
	secret     []byte
	httpClient *http.Client
	logger     *slog.Logger
}

type billRequest struct {
	OrderID     int64   `json:"order_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	PayerEmail  string  `json:"payer_email"`
	PayerPhone  string  `json:"payer_phone"`
}

type billResponse struct {
	BillCode   string `json:"bill_code"`
	PaymentURL string `json:"payment_url"`
}

type billWebhook struct {
	BillCode string  `json:"bill_code"`
	Paid     bool    `json:"paid"`
	Amount   float64 `json:"amount"`
}

// NewHostedBillChannel creates the gateway client with default timeout.
func NewHostedBillChannel(baseURL, secret string, logger *slog.Logger) (*HostedBillChannel, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse hosted bill url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("hosted bill url must be absolute")
	}
	return &HostedBillChannel{
		baseURL: parsed,
		secret:  []byte(secret),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *HostedBillChannel) Tag() model.PaymentMethod {
	return model.PaymentMethodHostedBill
}

// CreateIntent asks the gateway to create a bill for the order.
func (c *HostedBillChannel) CreateIntent(ctx context.Context, order *model.Order, _ *model.Seller) (*Intent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/bills")

	payload, err := json.Marshal(billRequest{
		OrderID:     order.ID,
		Amount:      order.TotalAmount,
		Description: fmt.Sprintf("order #%d", order.ID),
		PayerEmail:  order.BuyerEmail,
		PayerPhone:  order.BuyerPhone,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("bill gateway responded %d", resp.StatusCode)
	}

	var bill billResponse
	if err := json.NewDecoder(resp.Body).Decode(&bill); err != nil {
		return nil, fmt.Errorf("decode bill response: %w", err)
	}
	if bill.BillCode == "" {
		return nil, fmt.Errorf("bill gateway returned empty bill code")
	}

	return &Intent{Reference: bill.BillCode, Target: bill.PaymentURL}, nil
}

// ParseWebhook verifies the shared-secret signature and normalizes the
// payload. Callers must not act on the body unless this succeeds.
func (c *HostedBillChannel) ParseWebhook(body []byte, signature string) (*Event, error) {
	if !verifySignature(c.secret, body, signature) {
		return nil, ErrBadSignature
	}

	var hook billWebhook
	if err := json.Unmarshal(body, &hook); err != nil {
		return nil, fmt.Errorf("decode bill webhook: %w", err)
	}
	if hook.BillCode == "" {
		return nil, fmt.Errorf("bill webhook missing bill code")
	}

	return &Event{Reference: hook.BillCode, Paid: hook.Paid, Amount: hook.Amount}, nil
}
