package repository

import (
	"context"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// PaymentRepository describes persistence operations on payment intents.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByReference(ctx context.Context, channel model.PaymentMethod, reference string) (*model.Payment, error)
	LatestByOrder(ctx context.Context, orderID int64, channel model.PaymentMethod) (*model.Payment, error)

	// Complete and Fail move a pending intent to its terminal state.
	// Both are conditional writes: false means the intent already left
	// pending (duplicate delivery).
	Complete(ctx context.Context, id int64) (bool, error)
	Fail(ctx context.Context, id int64) (bool, error)
}
