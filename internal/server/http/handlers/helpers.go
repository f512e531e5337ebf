package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/server/http/dto"
	"github.com/pasarmart/pasarmart/internal/server/http/middleware"
)

// CurrentSellerID extracts the authenticated seller identifier from context.
func CurrentSellerID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.SellerIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		ProductID:     order.ProductID,
		Quantity:      order.Quantity,
		TotalAmount:   order.TotalAmount,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: string(order.PaymentMethod),
		ReceiptURL:    order.ReceiptURL,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func toReceiptResponse(rec model.Receipt) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		ID:         rec.ID,
		OrderID:    rec.OrderID,
		Amount:     rec.Amount,
		ImageURL:   rec.ImageURL,
		Status:     string(rec.Status),
		UploadedAt: rec.UploadedAt,
	}
}
