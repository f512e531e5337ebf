package handlers

import (
	"context"

	"github.com/pasarmart/pasarmart/internal/channel"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.NewOrder) (*model.Order, *channel.Intent, error)
	Order(ctx context.Context, id int64) (*model.Order, []model.StatusChange, error)
	UpdateOrderStatus(ctx context.Context, sellerID, orderID int64, next model.OrderStatus, description, location string) (*model.Order, error)
}

// ReceiptFacade covers the manual channel review workflow.
type ReceiptFacade interface {
	UploadReceipt(ctx context.Context, orderID int64, image []byte, contentType string) (*model.Receipt, error)
	ApproveReceipt(ctx context.Context, receiptID, sellerID int64) (*model.Order, error)
	RejectReceipt(ctx context.Context, receiptID, sellerID int64, reason string) (*model.Order, error)
	PendingReceipts(ctx context.Context, sellerID int64, limit int) ([]model.Receipt, error)
}

// WebhookFacade verifies and applies gateway callbacks.
type WebhookFacade interface {
	ParseHostedBillWebhook(body []byte, signature string) (*channel.Event, error)
	ParseBankRedirectWebhook(body []byte, signature string) (*channel.Event, error)
	ApplyChannelEvent(ctx context.Context, method model.PaymentMethod, event *channel.Event) error
}

// SellerFacade provides seller account settings.
type SellerFacade interface {
	SetReminderFrequency(ctx context.Context, sellerID int64, freq model.ReminderFrequency) error
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	OrderFacade
	ReceiptFacade
	WebhookFacade
	SellerFacade
}
