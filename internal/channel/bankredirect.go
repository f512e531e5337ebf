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

// BankRedirectChannel integrates the bank redirect gateway: the buyer is
// sent to their bank and the gateway reports the outcome via webhook.
type BankRedirectChannel struct {
	baseURL    *url.URL
	secret     []byte
	httpClient *http.Client
	logger     *slog.Logger
}

type bankTxnRequest struct {
	OrderID  int64   `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Email    string  `json:"email"`
}

type bankTxnResponse struct {
	TransactionID string `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url"`
}

type bankWebhook struct {
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
}

// NewBankRedirectChannel creates the gateway client with default timeout.
func NewBankRedirectChannel(baseURL, secret string, logger *slog.Logger) (*BankRedirectChannel, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse bank redirect url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("bank redirect url must be absolute")
	}
	return &BankRedirectChannel{
		baseURL: parsed,
		secret:  []byte(secret),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *BankRedirectChannel) Tag() model.PaymentMethod {
	return model.PaymentMethodBankRedirect
}

// CreateIntent registers a transaction with the gateway and returns the
// bank redirect URL.
func (c *BankRedirectChannel) CreateIntent(ctx context.Context, order *model.Order, _ *model.Seller) (*Intent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/transactions")

	payload, err := json.Marshal(bankTxnRequest{
		OrderID:  order.ID,
		Amount:   order.TotalAmount,
		Currency: "MYR",
		Email:    order.BuyerEmail,
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
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("bank gateway responded %d", resp.StatusCode)
	}

	var txn bankTxnResponse
	if err := json.NewDecoder(resp.Body).Decode(&txn); err != nil {
		return nil, fmt.Errorf("decode transaction response: %w", err)
	}
	if txn.TransactionID == "" {
		return nil, fmt.Errorf("bank gateway returned empty transaction id")
	}

	return &Intent{Reference: txn.TransactionID, Target: txn.RedirectURL}, nil
}

// ParseWebhook verifies the shared-secret signature and normalizes the
// payload.
func (c *BankRedirectChannel) ParseWebhook(body []byte, signature string) (*Event, error) {
	if !verifySignature(c.secret, body, signature) {
		return nil, ErrBadSignature
	}

	var hook bankWebhook
	if err := json.Unmarshal(body, &hook); err != nil {
		return nil, fmt.Errorf("decode bank webhook: %w", err)
	}
	if hook.TransactionID == "" {
		return nil, fmt.Errorf("bank webhook missing transaction id")
	}

	return &Event{Reference: hook.TransactionID, Paid: hook.Status == "success", Amount: hook.Amount}, nil
}
