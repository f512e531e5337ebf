package dto

import "time"

// ReceiptResponse describes an uploaded proof of payment.
type ReceiptResponse struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id"`
	Amount     float64   `json:"amount"`
	ImageURL   string    `json:"image_url"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// RejectReceiptRequest carries an optional rejection reason.
type RejectReceiptRequest struct {
	Reason string `json:"reason,omitempty"`
}
