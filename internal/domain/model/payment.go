package model

import "time"

// PaymentMethod tags the channel an order is paid through.
type PaymentMethod string

const (
	PaymentMethodHostedBill    PaymentMethod = "hosted_bill"
	PaymentMethodBankRedirect  PaymentMethod = "bank_redirect"
	PaymentMethodManualReceipt PaymentMethod = "manual_receipt"
)

// Valid reports whether the value is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodHostedBill, PaymentMethodBankRedirect, PaymentMethodManualReceipt:
		return true
	}
	return false
}

// PaymentState describes the lifecycle of one payment intent attempt.
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
)

// PaymentOutcome is the normalized completion signal every channel reports.
type PaymentOutcome string

const (
	PaymentOutcomeSuccess PaymentOutcome = "success"
	PaymentOutcomeFailure PaymentOutcome = "failure"
)

// Payment is one intent attempt against an order. Retries create new rows.
// For a given (Channel, Reference) pair at most one row reaches completed.
type Payment struct {
	ID        int64
	OrderID   int64
	Channel   PaymentMethod
	Reference string
	Amount    float64
	Currency  string
	Status    PaymentState
	CreatedAt time.Time
	UpdatedAt time.Time
}
