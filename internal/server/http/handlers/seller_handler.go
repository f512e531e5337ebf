package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/server/http/dto"
)

// SellerHandler manages seller account settings.
type SellerHandler struct {
	facade SellerFacade
}

// NewSellerHandler constructs SellerHandler.
func NewSellerHandler(facade SellerFacade) *SellerHandler {
	return &SellerHandler{facade: facade}
}

// UpdateReminders handles PUT /api/seller/reminders.
func (h *SellerHandler) UpdateReminders(c *gin.Context) {
	sellerID := CurrentSellerID(c)

	var req dto.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.SetReminderFrequency(c.Request.Context(), sellerID, model.ReminderFrequency(req.Frequency))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}
