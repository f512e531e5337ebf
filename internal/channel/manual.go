package channel

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// ManualReceiptChannel has no programmatic completion signal. The intent
// only records the seller's payment target for display; completion happens
// through receipt upload and seller approval.
type ManualReceiptChannel struct{}

// NewManualReceiptChannel constructs the manual channel.
func NewManualReceiptChannel() *ManualReceiptChannel {
	return &ManualReceiptChannel{}
}

func (c *ManualReceiptChannel) Tag() model.PaymentMethod {
	return model.PaymentMethodManualReceipt
}

// CreateIntent generates a local correlation reference and surfaces the
// seller's QR/bank details to the buyer.
func (c *ManualReceiptChannel) CreateIntent(_ context.Context, _ *model.Order, seller *model.Seller) (*Intent, error) {
	if seller.PaymentTarget == "" {
		return nil, fmt.Errorf("seller %d has no payment target configured", seller.ID)
	}
	return &Intent{Reference: uuid.NewString(), Target: seller.PaymentTarget}, nil
}
