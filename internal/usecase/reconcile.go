package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pasarmart/pasarmart/internal/adapter/notifier"
	"github.com/pasarmart/pasarmart/internal/channel"
	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/domain/repository"
)

const (
	defaultCurrency = "MYR"
	notifyTimeout   = 5 * time.Second

	// amountTolerance absorbs float representation noise when comparing a
	// gateway-reported amount against the stored intent amount.
	amountTolerance = 0.005
)

// NewOrder carries validated buyer input for order creation.
type NewOrder struct {
	ProductID       int64
	Quantity        int
	BuyerID         *int64
	BuyerName       string
	BuyerEmail      string
	BuyerPhone      string
	ShippingAddress string
	PaymentMethod   model.PaymentMethod
}

// ReconcileUseCase owns the order state machine: it creates orders with a
// pessimistic stock reservation, normalizes completion signals from every
// payment channel into one idempotent entry point, and compensates
// inventory on cancellation.
type ReconcileUseCase struct {
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	inventory repository.InventoryRepository
	sellers   repository.SellerRepository
	channels  *channel.Registry
	notifier  notifier.Notifier
	logger    *slog.Logger

	// dispatch runs best-effort side work off the caller's path.
	dispatch func(func())
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	inventory repository.InventoryRepository,
	sellers repository.SellerRepository,
	channels *channel.Registry,
	n notifier.Notifier,
	logger *slog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		orders:    orders,
		payments:  payments,
		inventory: inventory,
		sellers:   sellers,
		channels:  channels,
		notifier:  n,
		logger:    logger,
		dispatch:  func(fn func()) { go fn() },
	}
}

// CreateOrder validates input, reserves stock, writes the ledger row and
// asks the payment channel for an intent. The total is computed once here
// and never recomputed. No partial state survives a failure: stock
// reservation and the ledger insert share a transaction, and an intent
// failure cancels the order through the normal compensation path.
func (u *ReconcileUseCase) CreateOrder(ctx context.Context, in NewOrder) (*model.Order, *channel.Intent, error) {
	if err := ValidateNewOrder(in); err != nil {
		return nil, nil, err
	}

	product, err := u.inventory.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if in.Quantity > product.Available {
		return nil, nil, domainErrors.ErrInsufficientStock
	}

	seller, err := u.sellers.GetByID(ctx, product.SellerID)
	if err != nil {
		return nil, nil, err
	}

	ch, ok := u.channels.Get(in.PaymentMethod)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unsupported payment method %q", domainErrors.ErrValidation, in.PaymentMethod)
	}

	order := &model.Order{
		ProductID:       product.ID,
		SellerID:        product.SellerID,
		BuyerID:         in.BuyerID,
		Quantity:        in.Quantity,
		TotalAmount:     product.Price*float64(in.Quantity) + product.ShippingFee,
		PaymentMethod:   in.PaymentMethod,
		BuyerName:       in.BuyerName,
		BuyerEmail:      in.BuyerEmail,
		BuyerPhone:      in.BuyerPhone,
		ShippingAddress: in.ShippingAddress,
	}

	order, err = u.orders.Create(ctx, order)
	if err != nil {
		return nil, nil, err
	}

	intent, err := ch.CreateIntent(ctx, order, seller)
	if err != nil {
		if _, cancelErr := u.orders.Cancel(ctx, order.ID, "payment intent creation failed", model.ActorSystem); cancelErr != nil {
			u.logger.Error("compensating cancel failed",
				slog.Int64("order", order.ID), slog.String("error", cancelErr.Error()))
		}
		return nil, nil, fmt.Errorf("create payment intent: %w", err)
	}

	if _, err := u.payments.Create(ctx, &model.Payment{
		OrderID:   order.ID,
		Channel:   in.PaymentMethod,
		Reference: intent.Reference,
		Amount:    order.TotalAmount,
		Currency:  defaultCurrency,
	}); err != nil {
		if _, cancelErr := u.orders.Cancel(ctx, order.ID, "payment record creation failed", model.ActorSystem); cancelErr != nil {
			u.logger.Error("compensating cancel failed",
				slog.Int64("order", order.ID), slog.String("error", cancelErr.Error()))
		}
		return nil, nil, fmt.Errorf("record payment: %w", err)
	}

	return order, intent, nil
}

// ApplyPaymentResult is the single entry point for every channel's
// completion signal: gateway webhooks, seller receipt decisions and manual
// overrides. It is idempotent: duplicate deliveries and signals for
// already-cancelled orders degrade to successful no-ops.
func (u *ReconcileUseCase) ApplyPaymentResult(ctx context.Context, method model.PaymentMethod, reference string, outcome model.PaymentOutcome, actor, note string) error {
	payment, err := u.payments.GetByReference(ctx, method, reference)
	if err != nil {
		return err
	}

	if outcome == model.PaymentOutcomeSuccess {
		if _, err := u.payments.Complete(ctx, payment.ID); err != nil {
			return err
		}
		applied, err := u.orders.MarkPaid(ctx, payment.OrderID, actor, note)
		if err != nil {
			return err
		}
		if applied {
			u.notifyBuyer(ctx, payment.OrderID, notifier.TemplateOrderPaid, map[string]any{
				"order_id": payment.OrderID,
			})
		}
		return nil
	}

	if _, err := u.payments.Fail(ctx, payment.ID); err != nil {
		return err
	}
	_, err = u.orders.MarkPaymentFailed(ctx, payment.OrderID, actor, note)
	return err
}

// ApplyChannelEvent reconciles a verified webhook payload. An amount that
// does not match the stored intent is applied as a failure outcome and
// logged, never silently accepted.
func (u *ReconcileUseCase) ApplyChannelEvent(ctx context.Context, method model.PaymentMethod, event *channel.Event) error {
	payment, err := u.payments.GetByReference(ctx, method, event.Reference)
	if err != nil {
		return err
	}

	outcome := model.PaymentOutcomeFailure
	note := "payment failed at gateway"
	switch {
	case math.Abs(event.Amount-payment.Amount) > amountTolerance:
		u.logger.Warn("webhook amount mismatch",
			slog.String("channel", string(method)),
			slog.String("reference", event.Reference),
			slog.Float64("reported", event.Amount),
			slog.Float64("expected", payment.Amount),
			slog.String("error", domainErrors.ErrChannelIntegrity.Error()))
		note = "payment amount mismatch"
	case event.Paid:
		outcome = model.PaymentOutcomeSuccess
		note = "payment confirmed by gateway"
	}

	return u.ApplyPaymentResult(ctx, method, event.Reference, outcome, model.ActorSystem, note)
}

// CancelOrder terminates a pending order and releases its reserved stock
// exactly once. Paid orders must go through the return path instead.
func (u *ReconcileUseCase) CancelOrder(ctx context.Context, orderID int64, reason, actor string) error {
	applied, err := u.orders.Cancel(ctx, orderID, reason, actor)
	if err != nil {
		return err
	}
	if applied {
		u.notifyBuyer(ctx, orderID, notifier.TemplateOrderCancelled, map[string]any{
			"order_id": orderID,
			"reason":   reason,
		})
	}
	return nil
}

// AdvanceShipping applies a seller-driven fulfilment transition. Paid and
// cancelled have dedicated entry points and are rejected here.
func (u *ReconcileUseCase) AdvanceShipping(ctx context.Context, orderID int64, next model.OrderStatus, description, location, actor string) (*model.Order, error) {
	if !next.Valid() || next == model.OrderStatusPending || next == model.OrderStatusPaid || next == model.OrderStatusCancelled {
		return nil, domainErrors.ErrInvalidTransition
	}
	return u.orders.AdvanceStatus(ctx, orderID, next, actor, description, location)
}

// GetOrder returns the order with its status history.
func (u *ReconcileUseCase) GetOrder(ctx context.Context, id int64) (*model.Order, []model.StatusChange, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := u.orders.History(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, history, nil
}

// ExpiredOrders lists orders still awaiting payment created before cutoff.
func (u *ReconcileUseCase) ExpiredOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return u.orders.ListExpired(ctx, cutoff, limit)
}

// notifyBuyer sends a best-effort notification off the caller's path.
// Failures are logged and swallowed.
func (u *ReconcileUseCase) notifyBuyer(ctx context.Context, orderID int64, template string, data map[string]any) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		u.logger.Warn("load order for notification failed",
			slog.Int64("order", orderID), slog.String("error", err.Error()))
		return
	}
	recipient := order.BuyerEmail
	u.dispatch(func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := u.notifier.Send(sendCtx, template, recipient, data); err != nil {
			u.logger.Warn("notification failed",
				slog.String("template", template),
				slog.Int64("order", orderID),
				slog.String("error", err.Error()))
		}
	})
}
