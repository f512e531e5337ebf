package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pasarmart/pasarmart/internal/adapter/blobstore"
	"github.com/pasarmart/pasarmart/internal/adapter/notifier"
	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/domain/repository"
)

// ReceiptUseCase drives the manual channel's human completion workflow:
// buyer uploads a proof of payment, seller approves or rejects it, and the
// decision funnels into the reconciliation engine.
type ReceiptUseCase struct {
	receipts  repository.ReceiptRepository
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	sellers   repository.SellerRepository
	blobs     blobstore.Store
	reconcile *ReconcileUseCase
	logger    *slog.Logger
}

// NewReceiptUseCase constructs ReceiptUseCase.
func NewReceiptUseCase(
	receipts repository.ReceiptRepository,
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	sellers repository.SellerRepository,
	blobs blobstore.Store,
	reconcile *ReconcileUseCase,
	logger *slog.Logger,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		receipts:  receipts,
		orders:    orders,
		payments:  payments,
		sellers:   sellers,
		blobs:     blobs,
		reconcile: reconcile,
		logger:    logger,
	}
}

// Upload stores a proof-of-payment image for a manual-channel order.
// At most one receipt may await review at a time, and a rejection permits
// exactly one re-upload.
func (u *ReceiptUseCase) Upload(ctx context.Context, orderID int64, image []byte, contentType string) (*model.Receipt, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty receipt image", domainErrors.ErrValidation)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod != model.PaymentMethodManualReceipt {
		return nil, fmt.Errorf("%w: order is not payable by receipt", domainErrors.ErrValidation)
	}
	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: order is not awaiting payment", domainErrors.ErrValidation)
	}

	existing, err := u.receipts.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	for _, rec := range existing {
		if rec.Status == model.ReceiptStatusPending {
			return nil, fmt.Errorf("%w: a receipt is already awaiting review", domainErrors.ErrValidation)
		}
	}
	if len(existing) >= model.MaxReceiptUploads {
		return nil, domainErrors.ErrUploadLimit
	}

	// A rejection closes the order's payment attempt; a re-upload opens a
	// fresh one so the seller's decision lands on a pending payment row.
	payment, err := u.payments.LatestByOrder(ctx, orderID, model.PaymentMethodManualReceipt)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if payment == nil || payment.Status != model.PaymentStatePending {
		if _, err := u.payments.Create(ctx, &model.Payment{
			OrderID:   orderID,
			Channel:   model.PaymentMethodManualReceipt,
			Reference: uuid.NewString(),
			Amount:    order.TotalAmount,
			Currency:  defaultCurrency,
		}); err != nil {
			return nil, err
		}
	}

	url, err := u.blobs.Save(ctx, uuid.NewString(), contentType, image)
	if err != nil {
		return nil, fmt.Errorf("store receipt image: %w", err)
	}

	receipt, err := u.receipts.Create(ctx, &model.Receipt{
		OrderID:  orderID,
		SellerID: order.SellerID,
		Amount:   order.TotalAmount,
		ImageURL: url,
	})
	if err != nil {
		return nil, err
	}

	if err := u.orders.SetReceiptURL(ctx, orderID, url); err != nil {
		return nil, err
	}

	u.notifySeller(ctx, order.SellerID, notifier.TemplateReceiptUploaded, map[string]any{
		"order_id":   orderID,
		"receipt_id": receipt.ID,
		"amount":     receipt.Amount,
	})

	return receipt, nil
}

// Approve resolves a pending receipt in the seller's favour and marks the
// order paid through the reconciliation entry point.
func (u *ReceiptUseCase) Approve(ctx context.Context, receiptID, sellerID int64) (*model.Order, error) {
	return u.resolve(ctx, receiptID, sellerID, model.ReceiptStatusApproved, "receipt approved by seller")
}

// Reject resolves a pending receipt against the buyer. The order stays
// pending so the buyer may upload a new receipt; only the sweeper or an
// explicit cancellation terminates it.
func (u *ReceiptUseCase) Reject(ctx context.Context, receiptID, sellerID int64, reason string) (*model.Order, error) {
	note := "receipt rejected by seller"
	if reason != "" {
		note = fmt.Sprintf("receipt rejected by seller: %s", reason)
	}
	return u.resolve(ctx, receiptID, sellerID, model.ReceiptStatusRejected, note)
}

func (u *ReceiptUseCase) resolve(ctx context.Context, receiptID, sellerID int64, status model.ReceiptStatus, note string) (*model.Order, error) {
	receipt, err := u.receipts.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.SellerID != sellerID {
		return nil, domainErrors.ErrNotOwner
	}

	applied, err := u.receipts.Resolve(ctx, receiptID, status)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domainErrors.ErrReceiptClosed
	}

	payment, err := u.payments.LatestByOrder(ctx, receipt.OrderID, model.PaymentMethodManualReceipt)
	if err != nil {
		return nil, err
	}

	outcome := model.PaymentOutcomeFailure
	if status == model.ReceiptStatusApproved {
		outcome = model.PaymentOutcomeSuccess
	}
	actor := fmt.Sprintf("seller:%d", sellerID)
	if err := u.reconcile.ApplyPaymentResult(ctx, model.PaymentMethodManualReceipt, payment.Reference, outcome, actor, note); err != nil {
		return nil, err
	}

	return u.orders.GetByID(ctx, receipt.OrderID)
}

// PendingForSeller lists receipts awaiting the seller's review.
func (u *ReceiptUseCase) PendingForSeller(ctx context.Context, sellerID int64, limit int) ([]model.Receipt, error) {
	return u.receipts.ListPendingBySeller(ctx, sellerID, limit)
}

// SellersAwaitingReview lists sellers with reminders enabled holding at
// least one pending receipt.
func (u *ReceiptUseCase) SellersAwaitingReview(ctx context.Context) ([]model.Seller, error) {
	return u.sellers.ListWithPendingReceipts(ctx)
}

func (u *ReceiptUseCase) notifySeller(ctx context.Context, sellerID int64, template string, data map[string]any) {
	seller, err := u.sellers.GetByID(ctx, sellerID)
	if err != nil {
		u.logger.Warn("load seller for notification failed",
			slog.Int64("seller", sellerID), slog.String("error", err.Error()))
		return
	}
	recipient := seller.Email
	u.reconcile.dispatch(func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := u.reconcile.notifier.Send(sendCtx, template, recipient, data); err != nil {
			u.logger.Warn("notification failed",
				slog.String("template", template),
				slog.Int64("seller", sellerID),
				slog.String("error", err.Error()))
		}
	})
}
