package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/server/http/dto"
)

// maxReceiptBytes bounds the accepted proof-of-payment upload size.
const maxReceiptBytes = 5 << 20

// defaultPendingLimit caps the seller review queue page.
const defaultPendingLimit = 50

// ReceiptHandler manages the manual channel receipt workflow.
type ReceiptHandler struct {
	facade ReceiptFacade
}

// NewReceiptHandler constructs ReceiptHandler.
func NewReceiptHandler(facade ReceiptFacade) *ReceiptHandler {
	return &ReceiptHandler{facade: facade}
}

// Upload handles POST /api/orders/:id/receipt.
func (h *ReceiptHandler) Upload(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptBytes+1))
	if err != nil || len(image) > maxReceiptBytes {
		c.Status(http.StatusBadRequest)
		return
	}

	receipt, err := h.facade.UploadReceipt(c.Request.Context(), orderID, image, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrUploadLimit):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toReceiptResponse(*receipt))
}

// Pending handles GET /api/seller/receipts.
func (h *ReceiptHandler) Pending(c *gin.Context) {
	sellerID := CurrentSellerID(c)
	receipts, err := h.facade.PendingReceipts(c.Request.Context(), sellerID, defaultPendingLimit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(receipts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, rec := range receipts {
		resp = append(resp, toReceiptResponse(rec))
	}
	c.JSON(http.StatusOK, resp)
}

// Approve handles POST /api/seller/receipts/:id/approve.
func (h *ReceiptHandler) Approve(c *gin.Context) {
	h.resolve(c, func(receiptID, sellerID int64) (*model.Order, error) {
		return h.facade.ApproveReceipt(c.Request.Context(), receiptID, sellerID)
	})
}

// Reject handles POST /api/seller/receipts/:id/reject.
func (h *ReceiptHandler) Reject(c *gin.Context) {
	var req dto.RejectReceiptRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
	}

	h.resolve(c, func(receiptID, sellerID int64) (*model.Order, error) {
		return h.facade.RejectReceipt(c.Request.Context(), receiptID, sellerID, req.Reason)
	})
}

func (h *ReceiptHandler) resolve(c *gin.Context, fn func(receiptID, sellerID int64) (*model.Order, error)) {
	sellerID := CurrentSellerID(c)
	receiptID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := fn(receiptID, sellerID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotOwner):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrReceiptClosed):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}
