package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pasarmart/pasarmart/internal/adapter/notifier"
	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// MarketFacade exposes the subset of application functionality required by
// the sweeper.
type MarketFacade interface {
	ExpiredOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
	CancelOrder(ctx context.Context, orderID int64, reason, actor string) error
	SellersAwaitingReview(ctx context.Context) ([]model.Seller, error)
	PendingReceipts(ctx context.Context, sellerID int64, limit int) ([]model.Receipt, error)
}

// Report summarizes one sweep run.
type Report struct {
	SellersChecked  int   `json:"sellers_checked"`
	EmailsSent      int   `json:"emails_sent"`
	OrdersCancelled int64 `json:"orders_cancelled"`
}

// receiptSummaryLimit caps how many receipts a reminder email lists.
const receiptSummaryLimit = 5

// Sweeper periodically cancels orders stuck unpaid past the deadline and
// reminds sellers about receipts awaiting review. Every order and every
// seller is processed independently; one failure never aborts the batch.
type Sweeper struct {
	facade   MarketFacade
	notifier notifier.Notifier
	log      NotificationLog
	interval time.Duration
	deadline time.Duration
	batch    int
	workers  int
	logger   *slog.Logger

	now    func() time.Time
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the sweeper.
func NewSweeper(facade MarketFacade, n notifier.Notifier, log NotificationLog, interval, deadline time.Duration, batch, workers int, logger *slog.Logger) *Sweeper {
	if workers <= 0 {
		workers = 1
	}
	if batch <= 0 {
		batch = 1
	}
	return &Sweeper{
		facade:   facade,
		notifier: n,
		log:      log,
		interval: interval,
		deadline: deadline,
		batch:    batch,
		workers:  workers,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches the background sweep loop.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop waits for the loop to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report := s.RunOnce(ctx)
			s.logger.Info("sweep finished",
				slog.Int64("orders_cancelled", report.OrdersCancelled),
				slog.Int("sellers_checked", report.SellersChecked),
				slog.Int("emails_sent", report.EmailsSent),
			)
		}
	}
}

// RunOnce executes a single sweep: expired-order cancellation followed by
// the reminder pass. It is also the entry point for the manual trigger.
func (s *Sweeper) RunOnce(ctx context.Context) Report {
	var report Report
	report.OrdersCancelled = s.cancelExpired(ctx)
	report.SellersChecked, report.EmailsSent = s.remindSellers(ctx)
	return report
}

func (s *Sweeper) cancelExpired(ctx context.Context) int64 {
	cutoff := s.now().Add(-s.deadline)
	orders, err := s.facade.ExpiredOrders(ctx, cutoff, s.batch)
	if err != nil {
		s.logger.Error("list expired orders failed", slog.String("error", err.Error()))
		return 0
	}

	var cancelled atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, order := range orders {
		order := order
		g.Go(func() error {
			// Failures are isolated per order; the error is logged and
			// the rest of the batch continues.
			if err := s.facade.CancelOrder(gctx, order.ID, "payment timeout", model.ActorSystem); err != nil {
				s.logger.Error("auto-cancel failed",
					slog.Int64("order", order.ID), slog.String("error", err.Error()))
				return nil
			}
			cancelled.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return cancelled.Load()
}

func (s *Sweeper) remindSellers(ctx context.Context) (checked, sent int) {
	sellers, err := s.facade.SellersAwaitingReview(ctx)
	if err != nil {
		s.logger.Error("list sellers awaiting review failed", slog.String("error", err.Error()))
		return 0, 0
	}

	now := s.now()
	for _, seller := range sellers {
		checked++
		if !s.log.Due(seller.ID, seller.ReminderFrequency, now) {
			continue
		}

		receipts, err := s.facade.PendingReceipts(ctx, seller.ID, receiptSummaryLimit)
		if err != nil {
			s.logger.Error("list pending receipts failed",
				slog.Int64("seller", seller.ID), slog.String("error", err.Error()))
			continue
		}
		if len(receipts) == 0 {
			continue
		}

		summary := make([]map[string]any, 0, len(receipts))
		for _, rec := range receipts {
			summary = append(summary, map[string]any{
				"receipt_id":  rec.ID,
				"order_id":    rec.OrderID,
				"amount":      rec.Amount,
				"uploaded_at": rec.UploadedAt,
			})
		}

		sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = s.notifier.Send(sendCtx, notifier.TemplatePendingReceipts, seller.Email, map[string]any{
			"pending":  len(receipts),
			"receipts": summary,
		})
		cancel()
		if err != nil {
			s.logger.Warn("reminder send failed",
				slog.Int64("seller", seller.ID), slog.String("error", err.Error()))
			continue
		}

		s.log.MarkNotified(seller.ID, now)
		sent++
	}
	return checked, sent
}
