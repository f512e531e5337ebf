package notifier

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
)

// Template names understood by the mail relay.
const (
	TemplateOrderPaid       = "order_paid"
	TemplateOrderCancelled  = "order_cancelled"
	TemplateReceiptUploaded = "receipt_uploaded"
	TemplatePendingReceipts = "pending_receipts"
)

// Notifier delivers a templated message to a recipient. Callers treat it as
// fire-and-forget: failures are logged by the caller and never propagated.
type Notifier interface {
	Send(ctx context.Context, template, recipient string, data map[string]any) error
}

// HTTPNotifier implements Notifier against an HTTP mail relay.
type HTTPNotifier struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type sendRequest struct {
	Template  string         `json:"template"`
	Recipient string         `json:"recipient"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewHTTPNotifier creates an HTTP notifier client with default timeout.
func NewHTTPNotifier(baseURL string, logger *slog.Logger) (*HTTPNotifier, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse notifier url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("notifier url must be absolute")
	}
	return &HTTPNotifier{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts the message to the relay.
func (n *HTTPNotifier) Send(ctx context.Context, template, recipient string, data map[string]any) error {
	endpoint := *n.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/send")

	payload, err := json.Marshal(sendRequest{Template: template, Recipient: recipient, Data: data})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notifier responded %d", resp.StatusCode)
	}
	return nil
}
