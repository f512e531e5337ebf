package dto

import "time"

// CreateOrderRequest describes buyer checkout payload.
type CreateOrderRequest struct {
	ProductID       int64  `json:"product_id"`
	Quantity        int    `json:"quantity"`
	BuyerID         *int64 `json:"buyer_id,omitempty"`
	BuyerName       string `json:"buyer_name"`
	BuyerEmail      string `json:"buyer_email"`
	BuyerPhone      string `json:"buyer_phone"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

// PaymentIntentResponse carries the channel handoff the buyer needs to pay.
type PaymentIntentResponse struct {
	Reference string `json:"reference"`
	Target    string `json:"target,omitempty"`
}

// OrderResponse represents a ledger order.
type OrderResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	Quantity      int       `json:"quantity"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method"`
	ReceiptURL    *string   `json:"receipt_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateOrderResponse is returned from checkout.
type CreateOrderResponse struct {
	Order   OrderResponse         `json:"order"`
	Payment PaymentIntentResponse `json:"payment"`
}

// StatusChangeResponse is one audit trail entry.
type StatusChangeResponse struct {
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderDetailResponse combines the order with its audit trail.
type OrderDetailResponse struct {
	Order   OrderResponse          `json:"order"`
	History []StatusChangeResponse `json:"history"`
}

// StatusUpdateRequest describes a seller fulfilment transition.
type StatusUpdateRequest struct {
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}
