package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/domain/repository"
)

// SellerUseCase covers seller account settings the engine owns.
type SellerUseCase struct {
	sellers repository.SellerRepository
}

// NewSellerUseCase constructs SellerUseCase.
func NewSellerUseCase(sellers repository.SellerRepository) *SellerUseCase {
	return &SellerUseCase{sellers: sellers}
}

// SetReminderFrequency updates how often the seller is reminded about
// pending receipts.
func (u *SellerUseCase) SetReminderFrequency(ctx context.Context, sellerID int64, freq model.ReminderFrequency) error {
	if !freq.Valid() {
		return fmt.Errorf("%w: unknown reminder frequency %q", domainErrors.ErrValidation, freq)
	}
	return u.sellers.UpdateReminderFrequency(ctx, sellerID, freq)
}

// Get fetches a seller by identifier.
func (u *SellerUseCase) Get(ctx context.Context, id int64) (*model.Seller, error) {
	return u.sellers.GetByID(ctx, id)
}
