package test

import (
	"context"
	"sync"
	"time"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// CancelCall records one auto-cancel request observed by the stub.
type CancelCall struct {
	OrderID int64
	Reason  string
	Actor   string
}

// WorkerFacadeStub mimics sweeper interactions with the market facade.
type WorkerFacadeStub struct {
	mu sync.Mutex

	Expired    []model.Order
	ExpiredFn  func(context.Context, time.Time, int) ([]model.Order, error)
	CancelFn   func(context.Context, int64, string, string) error
	Cancels    []CancelCall
	Sellers    []model.Seller
	SellersFn  func(context.Context) ([]model.Seller, error)
	Receipts   map[int64][]model.Receipt
	ReceiptsFn func(context.Context, int64, int) ([]model.Receipt, error)
}

// ExpiredOrders returns the configured batch.
func (s *WorkerFacadeStub) ExpiredOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.ExpiredFn != nil {
		return s.ExpiredFn(ctx, cutoff, limit)
	}
	return s.Expired, nil
}

// CancelOrder records cancellation requests.
func (s *WorkerFacadeStub) CancelOrder(ctx context.Context, orderID int64, reason, actor string) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, reason, actor)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cancels = append(s.Cancels, CancelCall{OrderID: orderID, Reason: reason, Actor: actor})
	return nil
}

// CancelCount reports how many cancellations were recorded.
func (s *WorkerFacadeStub) CancelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Cancels)
}

// SellersAwaitingReview returns the configured seller list.
func (s *WorkerFacadeStub) SellersAwaitingReview(ctx context.Context) ([]model.Seller, error) {
	if s.SellersFn != nil {
		return s.SellersFn(ctx)
	}
	return s.Sellers, nil
}

// PendingReceipts returns the configured receipts per seller.
func (s *WorkerFacadeStub) PendingReceipts(ctx context.Context, sellerID int64, limit int) ([]model.Receipt, error) {
	if s.ReceiptsFn != nil {
		return s.ReceiptsFn(ctx, sellerID, limit)
	}
	return s.Receipts[sellerID], nil
}

// SentNotification records one notifier call.
type SentNotification struct {
	Template  string
	Recipient string
	Data      map[string]any
}

// NotifierStub records notification sends.
type NotifierStub struct {
	mu     sync.Mutex
	SendFn func(context.Context, string, string, map[string]any) error
	Sent   []SentNotification
}

// Send records or delegates the notification.
func (s *NotifierStub) Send(ctx context.Context, template, recipient string, data map[string]any) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, template, recipient, data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentNotification{Template: template, Recipient: recipient, Data: data})
	return nil
}

// SentCount reports how many notifications were recorded.
func (s *NotifierStub) SentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sent)
}

// SentAt returns a copy of the notification at index i.
func (s *NotifierStub) SentAt(i int) SentNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Sent[i]
}

// NotificationLogStub is a controllable reminder throttle.
type NotificationLogStub struct {
	mu       sync.Mutex
	DueFn    func(int64, model.ReminderFrequency, time.Time) bool
	Notified []int64
}

// Due reports whether the seller is due for a reminder.
func (s *NotificationLogStub) Due(sellerID int64, freq model.ReminderFrequency, now time.Time) bool {
	if s.DueFn != nil {
		return s.DueFn(sellerID, freq, now)
	}
	return freq != model.ReminderOff
}

// MarkNotified records the seller as reminded.
func (s *NotificationLogStub) MarkNotified(sellerID int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notified = append(s.Notified, sellerID)
}
