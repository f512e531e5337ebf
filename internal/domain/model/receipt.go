package model

import "time"

// ReceiptStatus describes seller review state of an uploaded receipt.
type ReceiptStatus string

const (
	ReceiptStatusPending  ReceiptStatus = "pending"
	ReceiptStatusApproved ReceiptStatus = "approved"
	ReceiptStatusRejected ReceiptStatus = "rejected"
)

// MaxReceiptUploads caps upload attempts per order: the initial upload plus
// one re-upload after a rejection.
const MaxReceiptUploads = 2

// Receipt is one proof-of-payment upload for a manual-channel order.
type Receipt struct {
	ID         int64
	OrderID    int64
	SellerID   int64
	Amount     float64
	ImageURL   string
	Status     ReceiptStatus
	UploadedAt time.Time
	ResolvedAt *time.Time
}
