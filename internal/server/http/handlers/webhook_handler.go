package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pasarmart/pasarmart/internal/channel"
	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// signatureHeader carries the gateway's HMAC signature over the raw body.
const signatureHeader = "X-Signature"

// WebhookHandler receives payment gateway callbacks. Responses follow
// webhook convention: 200 acknowledges the event, including duplicates,
// so gateways stop retrying.
type WebhookHandler struct {
	facade WebhookFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// HostedBill handles POST /api/webhooks/hostedbill.
func (h *WebhookHandler) HostedBill(c *gin.Context) {
	h.apply(c, model.PaymentMethodHostedBill, h.facade.ParseHostedBillWebhook)
}

// BankRedirect handles POST /api/webhooks/bankredirect.
func (h *WebhookHandler) BankRedirect(c *gin.Context) {
	h.apply(c, model.PaymentMethodBankRedirect, h.facade.ParseBankRedirectWebhook)
}

func (h *WebhookHandler) apply(c *gin.Context, method model.PaymentMethod, parse func([]byte, string) (*channel.Event, error)) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := parse(body, c.GetHeader(signatureHeader))
	if err != nil {
		if errors.Is(err, channel.ErrBadSignature) {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ApplyChannelEvent(c.Request.Context(), method, event); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
