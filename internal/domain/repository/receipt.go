package repository

import (
	"context"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// ReceiptRepository describes persistence operations on uploaded receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *model.Receipt) (*model.Receipt, error)
	GetByID(ctx context.Context, id int64) (*model.Receipt, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Receipt, error)

	// Resolve moves a pending receipt to approved or rejected. False with
	// a nil error means the receipt was already resolved.
	Resolve(ctx context.Context, id int64, status model.ReceiptStatus) (bool, error)

	// ListPendingBySeller returns up to limit pending receipts, oldest
	// first. A non-positive limit returns all.
	ListPendingBySeller(ctx context.Context, sellerID int64, limit int) ([]model.Receipt, error)
}
