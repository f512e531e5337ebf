package app

import (
	"context"
	"fmt"
	"time"

	"github.com/pasarmart/pasarmart/internal/channel"
	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/usecase"
)

// MarketFacade aggregates the use cases behind one surface shared by the
// HTTP handlers and the background sweeper.
type MarketFacade struct {
	auth      *usecase.AuthUseCase
	reconcile *usecase.ReconcileUseCase
	receipts  *usecase.ReceiptUseCase
	sellers   *usecase.SellerUseCase
	hosted    *channel.HostedBillChannel
	bank      *channel.BankRedirectChannel
}

// NewMarketFacade constructs MarketFacade.
func NewMarketFacade(
	auth *usecase.AuthUseCase,
	reconcile *usecase.ReconcileUseCase,
	receipts *usecase.ReceiptUseCase,
	sellers *usecase.SellerUseCase,
	hosted *channel.HostedBillChannel,
	bank *channel.BankRedirectChannel,
) *MarketFacade {
	return &MarketFacade{
		auth:      auth,
		reconcile: reconcile,
		receipts:  receipts,
		sellers:   sellers,
		hosted:    hosted,
		bank:      bank,
	}
}

func (f *MarketFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) CreateOrder(ctx context.Context, in usecase.NewOrder) (*model.Order, *channel.Intent, error) {
	return f.reconcile.CreateOrder(ctx, in)
}

func (f *MarketFacade) Order(ctx context.Context, id int64) (*model.Order, []model.StatusChange, error) {
	return f.reconcile.GetOrder(ctx, id)
}

func (f *MarketFacade) CancelOrder(ctx context.Context, orderID int64, reason, actor string) error {
	return f.reconcile.CancelOrder(ctx, orderID, reason, actor)
}

func (f *MarketFacade) ExpiredOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return f.reconcile.ExpiredOrders(ctx, cutoff, limit)
}

// UpdateOrderStatus applies a seller-driven fulfilment transition after an
// ownership check.
func (f *MarketFacade) UpdateOrderStatus(ctx context.Context, sellerID, orderID int64, next model.OrderStatus, description, location string) (*model.Order, error) {
	order, _, err := f.reconcile.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != sellerID {
		return nil, domainErrors.ErrNotOwner
	}
	actor := fmt.Sprintf("seller:%d", sellerID)
	return f.reconcile.AdvanceShipping(ctx, orderID, next, description, location, actor)
}

func (f *MarketFacade) UploadReceipt(ctx context.Context, orderID int64, image []byte, contentType string) (*model.Receipt, error) {
	return f.receipts.Upload(ctx, orderID, image, contentType)
}

func (f *MarketFacade) ApproveReceipt(ctx context.Context, receiptID, sellerID int64) (*model.Order, error) {
	return f.receipts.Approve(ctx, receiptID, sellerID)
}

func (f *MarketFacade) RejectReceipt(ctx context.Context, receiptID, sellerID int64, reason string) (*model.Order, error) {
	return f.receipts.Reject(ctx, receiptID, sellerID, reason)
}

func (f *MarketFacade) PendingReceipts(ctx context.Context, sellerID int64, limit int) ([]model.Receipt, error) {
	return f.receipts.PendingForSeller(ctx, sellerID, limit)
}

func (f *MarketFacade) SellersAwaitingReview(ctx context.Context) ([]model.Seller, error) {
	return f.receipts.SellersAwaitingReview(ctx)
}

func (f *MarketFacade) SetReminderFrequency(ctx context.Context, sellerID int64, freq model.ReminderFrequency) error {
	return f.sellers.SetReminderFrequency(ctx, sellerID, freq)
}

func (f *MarketFacade) ParseHostedBillWebhook(body []byte, signature string) (*channel.Event, error) {
	return f.hosted.ParseWebhook(body, signature)
}

func (f *MarketFacade) ParseBankRedirectWebhook(body []byte, signature string) (*channel.Event, error) {
	return f.bank.ParseWebhook(body, signature)
}

func (f *MarketFacade) ApplyChannelEvent(ctx context.Context, method model.PaymentMethod, event *channel.Event) error {
	return f.reconcile.ApplyChannelEvent(ctx, method, event)
}
