package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests and lets individual
// methods be overridden.
type OrderRepositoryStub struct {
	mu      sync.Mutex
	Orders  map[int64]*model.Order
	Changes map[int64][]model.StatusChange
	Next    int64

	CreateFn            func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn           func(context.Context, int64) (*model.Order, error)
	MarkPaidFn          func(context.Context, int64, string, string) (bool, error)
	MarkPaymentFailedFn func(context.Context, int64, string, string) (bool, error)
	CancelFn            func(context.Context, int64, string, string) (bool, error)
	AdvanceStatusFn     func(context.Context, int64, model.OrderStatus, string, string, string) (*model.Order, error)
	ListExpiredFn       func(context.Context, time.Time, int) ([]model.Order, error)
	SetReceiptURLFn     func(context.Context, int64, string) error
}

// NewOrderRepositoryStub constructs the stub with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Orders:  make(map[int64]*model.Order),
		Changes: make(map[int64][]model.StatusChange),
		Next:    1,
	}
}

// Put seeds an order and its pending history row.
func (s *OrderRepositoryStub) Put(order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		order.ID = s.Next
		s.Next++
	} else if order.ID >= s.Next {
		s.Next = order.ID + 1
	}
	s.Orders[order.ID] = order
}

func (s *OrderRepositoryStub) appendChange(orderID int64, status model.OrderStatus, actor, description string) {
	s.Changes[orderID] = append(s.Changes[orderID], model.StatusChange{
		OrderID:     orderID,
		Status:      status,
		Actor:       actor,
		Description: description,
		CreatedAt:   time.Now(),
	})
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = s.Next
	s.Next++
	order.Status = model.OrderStatusPending
	order.PaymentStatus = model.PaymentStatusPending
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.Orders[order.ID] = order
	s.appendChange(order.ID, model.OrderStatusPending, model.ActorSystem, "order created")
	return order, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *OrderRepositoryStub) History(ctx context.Context, orderID int64) ([]model.StatusChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StatusChange(nil), s.Changes[orderID]...), nil
}

func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, orderID int64, actor, description string) (bool, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID, actor, description)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus == model.PaymentStatusPaid {
		return false, nil
	}
	order.Status = model.OrderStatusPaid
	order.PaymentStatus = model.PaymentStatusPaid
	s.appendChange(orderID, model.OrderStatusPaid, actor, description)
	return true, nil
}

func (s *OrderRepositoryStub) MarkPaymentFailed(ctx context.Context, orderID int64, actor, description string) (bool, error) {
	if s.MarkPaymentFailedFn != nil {
		return s.MarkPaymentFailedFn(ctx, orderID, actor, description)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus == model.PaymentStatusPaid {
		return false, nil
	}
	order.PaymentStatus = model.PaymentStatusFailed
	s.appendChange(orderID, model.OrderStatusPending, actor, description)
	return true, nil
}

func (s *OrderRepositoryStub) Cancel(ctx context.Context, orderID int64, reason, actor string) (bool, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, reason, actor)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.Status == model.OrderStatusCancelled {
		return false, nil
	}
	if order.Status != model.OrderStatusPending {
		return false, domainErrors.ErrOrderNotCancellable
	}
	order.Status = model.OrderStatusCancelled
	s.appendChange(orderID, model.OrderStatusCancelled, actor, reason)
	return true, nil
}

func (s *OrderRepositoryStub) AdvanceStatus(ctx context.Context, orderID int64, next model.OrderStatus, actor, description, location string) (*model.Order, error) {
	if s.AdvanceStatusFn != nil {
		return s.AdvanceStatusFn(ctx, orderID, next, actor, description, location)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, domainErrors.ErrInvalidTransition
	}
	order.Status = next
	s.appendChange(orderID, next, actor, description)
	copied := *order
	return &copied, nil
}

func (s *OrderRepositoryStub) ListExpired(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.ListExpiredFn != nil {
		return s.ListExpiredFn(ctx, cutoff, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, order := range s.Orders {
		if order.Status == model.OrderStatusPending && order.CreatedAt.Before(cutoff) {
			out = append(out, *order)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *OrderRepositoryStub) SetReceiptURL(ctx context.Context, orderID int64, url string) error {
	if s.SetReceiptURLFn != nil {
		return s.SetReceiptURLFn(ctx, orderID, url)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.ReceiptURL = &url
	return nil
}

// PaymentRepositoryStub keeps payment intents in-memory.
type PaymentRepositoryStub struct {
	mu       sync.Mutex
	Payments map[int64]*model.Payment
	Next     int64

	GetByReferenceFn func(context.Context, model.PaymentMethod, string) (*model.Payment, error)
	CompleteFn       func(context.Context, int64) (bool, error)
	FailFn           func(context.Context, int64) (bool, error)
}

// NewPaymentRepositoryStub constructs the stub with initialized maps.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Payments: make(map[int64]*model.Payment), Next: 1}
}

func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Payments {
		if p.Channel == payment.Channel && p.Reference == payment.Reference {
			return nil, domainErrors.ErrValidation
		}
	}
	payment.ID = s.Next
	s.Next++
	payment.Status = model.PaymentStatePending
	payment.CreatedAt = time.Now()
	s.Payments[payment.ID] = payment
	return payment, nil
}

func (s *PaymentRepositoryStub) GetByReference(ctx context.Context, channel model.PaymentMethod, reference string) (*model.Payment, error) {
	if s.GetByReferenceFn != nil {
		return s.GetByReferenceFn(ctx, channel, reference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Payments {
		if p.Channel == channel && p.Reference == reference {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) LatestByOrder(ctx context.Context, orderID int64, channel model.PaymentMethod) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *model.Payment
	for _, p := range s.Payments {
		if p.OrderID == orderID && p.Channel == channel {
			if latest == nil || p.ID > latest.ID {
				latest = p
			}
		}
	}
	if latest == nil {
		return nil, domainErrors.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *PaymentRepositoryStub) Complete(ctx context.Context, id int64) (bool, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, id)
	}
	return s.transition(id, model.PaymentStateCompleted)
}

func (s *PaymentRepositoryStub) Fail(ctx context.Context, id int64) (bool, error) {
	if s.FailFn != nil {
		return s.FailFn(ctx, id)
	}
	return s.transition(id, model.PaymentStateFailed)
}

func (s *PaymentRepositoryStub) transition(id int64, state model.PaymentState) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Payments[id]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if p.Status != model.PaymentStatePending {
		return false, nil
	}
	p.Status = state
	return true, nil
}

// ReceiptRepositoryStub keeps receipts in-memory.
type ReceiptRepositoryStub struct {
	mu       sync.Mutex
	Receipts map[int64]*model.Receipt
	Next     int64

	ResolveFn func(context.Context, int64, model.ReceiptStatus) (bool, error)
}

// NewReceiptRepositoryStub constructs the stub with initialized maps.
func NewReceiptRepositoryStub() *ReceiptRepositoryStub {
	return &ReceiptRepositoryStub{Receipts: make(map[int64]*model.Receipt), Next: 1}
}

func (s *ReceiptRepositoryStub) Create(ctx context.Context, receipt *model.Receipt) (*model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	receipt.ID = s.Next
	s.Next++
	receipt.Status = model.ReceiptStatusPending
	receipt.UploadedAt = time.Now()
	s.Receipts[receipt.ID] = receipt
	return receipt, nil
}

func (s *ReceiptRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.Receipts[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *ReceiptRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Receipt
	for _, rec := range s.Receipts {
		if rec.OrderID == orderID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (s *ReceiptRepositoryStub) Resolve(ctx context.Context, id int64, status model.ReceiptStatus) (bool, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, id, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.Receipts[id]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if rec.Status != model.ReceiptStatusPending {
		return false, nil
	}
	rec.Status = status
	return true, nil
}

func (s *ReceiptRepositoryStub) ListPendingBySeller(ctx context.Context, sellerID int64, limit int) ([]model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Receipt
	for _, rec := range s.Receipts {
		if rec.SellerID == sellerID && rec.Status == model.ReceiptStatusPending {
			out = append(out, *rec)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// InventoryRepositoryStub keeps product stock in-memory.
type InventoryRepositoryStub struct {
	mu       sync.Mutex
	Products map[int64]*model.Product
}

// NewInventoryRepositoryStub constructs the stub with initialized maps.
func NewInventoryRepositoryStub() *InventoryRepositoryStub {
	return &InventoryRepositoryStub{Products: make(map[int64]*model.Product)}
}

func (s *InventoryRepositoryStub) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.Products[id]
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

// SellerRepositoryStub keeps sellers in-memory.
type SellerRepositoryStub struct {
	mu      sync.Mutex
	Sellers map[int64]*model.Seller
	ByLogin map[string]*model.Seller

	ListWithPendingReceiptsFn func(context.Context) ([]model.Seller, error)
}

// NewSellerRepositoryStub constructs the stub with initialized maps.
func NewSellerRepositoryStub() *SellerRepositoryStub {
	return &SellerRepositoryStub{
		Sellers: make(map[int64]*model.Seller),
		ByLogin: make(map[string]*model.Seller),
	}
}

// Put seeds a seller.
func (s *SellerRepositoryStub) Put(seller *model.Seller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sellers[seller.ID] = seller
	s.ByLogin[seller.Login] = seller
}

func (s *SellerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Seller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seller, ok := s.Sellers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *seller
	return &copied, nil
}

func (s *SellerRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Seller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seller, ok := s.ByLogin[login]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *seller
	return &copied, nil
}

func (s *SellerRepositoryStub) UpdateReminderFrequency(ctx context.Context, sellerID int64, freq model.ReminderFrequency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seller, ok := s.Sellers[sellerID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	seller.ReminderFrequency = freq
	return nil
}

func (s *SellerRepositoryStub) ListWithPendingReceipts(ctx context.Context) ([]model.Seller, error) {
	if s.ListWithPendingReceiptsFn != nil {
		return s.ListWithPendingReceiptsFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Seller
	for _, seller := range s.Sellers {
		if seller.ReminderFrequency != model.ReminderOff {
			out = append(out, *seller)
		}
	}
	return out, nil
}
