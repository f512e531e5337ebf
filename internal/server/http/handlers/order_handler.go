package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/server/http/dto"
	"github.com/pasarmart/pasarmart/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, intent, err := h.facade.CreateOrder(c.Request.Context(), usecase.NewOrder{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		BuyerID:         req.BuyerID,
		BuyerName:       req.BuyerName,
		BuyerEmail:      req.BuyerEmail,
		BuyerPhone:      req.BuyerPhone,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		Order: toOrderResponse(order),
		Payment: dto.PaymentIntentResponse{
			Reference: intent.Reference,
			Target:    intent.Target,
		},
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, history, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	changes := make([]dto.StatusChangeResponse, 0, len(history))
	for _, change := range history {
		changes = append(changes, dto.StatusChangeResponse{
			Status:      string(change.Status),
			Description: change.Description,
			Location:    change.Location,
			Actor:       change.Actor,
			CreatedAt:   change.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, dto.OrderDetailResponse{
		Order:   toOrderResponse(order),
		History: changes,
	})
}

// UpdateStatus handles POST /api/seller/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	sellerID := CurrentSellerID(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), sellerID, orderID, model.OrderStatus(req.Status), req.Description, req.Location)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotOwner):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}
