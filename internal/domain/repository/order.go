package repository

import (
	"context"
	"time"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// OrderRepository describes persistence operations on the order ledger.
//
// Mutating methods that return a bool report whether the conditional write
// landed. A false with a nil error means another caller already applied an
// equivalent or conflicting transition and the operation degraded to a
// no-op, which is how duplicate webhooks and sweep races stay safe.
type OrderRepository interface {
	// Create reserves stock, inserts the order row and the initial
	// pending history row as a single transaction.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	History(ctx context.Context, orderID int64) ([]model.StatusChange, error)

	// MarkPaid sets payment_status=paid and advances status to paid when
	// the order is still pending. Orders already past paid only get the
	// payment_status correction; cancelled or already-paid orders are
	// untouched.
	MarkPaid(ctx context.Context, orderID int64, actor, description string) (bool, error)

	// MarkPaymentFailed records a failed attempt while leaving the order
	// pending so the buyer may retry.
	MarkPaymentFailed(ctx context.Context, orderID int64, actor, description string) (bool, error)

	// Cancel transitions pending->cancelled, releases reserved stock and
	// appends the history row, all exactly once. Returns
	// ErrOrderNotCancellable when the order is past pending.
	Cancel(ctx context.Context, orderID int64, reason, actor string) (bool, error)

	// AdvanceStatus applies a seller-driven fulfilment transition after
	// validating it against the transition table under a row lock.
	AdvanceStatus(ctx context.Context, orderID int64, next model.OrderStatus, actor, description, location string) (*model.Order, error)

	// ListExpired returns orders still awaiting payment created before
	// the cutoff, for the auto-cancel sweep.
	ListExpired(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)

	SetReceiptURL(ctx context.Context, orderID int64, url string) error
}
