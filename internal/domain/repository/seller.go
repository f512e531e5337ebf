package repository

import (
	"context"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// SellerRepository describes persistence operations for seller accounts.
type SellerRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Seller, error)
	GetByLogin(ctx context.Context, login string) (*model.Seller, error)
	UpdateReminderFrequency(ctx context.Context, sellerID int64, freq model.ReminderFrequency) error

	// ListWithPendingReceipts returns sellers whose reminders are enabled
	// and who have at least one pending receipt.
	ListWithPendingReceipts(ctx context.Context) ([]model.Seller, error)
}
