package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/pasarmart/pasarmart/internal/domain/model"
	testhelpers "github.com/pasarmart/pasarmart/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestSweeper_RunOnceCancelsExpiredOrders(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Expired: []model.Order{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	sweeper := NewSweeper(facade, &testhelpers.NotifierStub{}, NewReminderThrottle(), time.Minute, 3*time.Minute, 10, 2, testLogger())

	report := sweeper.RunOnce(context.Background())

	if report.OrdersCancelled != 3 {
		t.Fatalf("expected 3 cancelled, got %d", report.OrdersCancelled)
	}
	if facade.CancelCount() != 3 {
		t.Fatalf("expected 3 cancel calls, got %d", facade.CancelCount())
	}
	for _, call := range facade.Cancels {
		if call.Reason != "payment timeout" {
			t.Fatalf("unexpected cancel reason %q", call.Reason)
		}
		if call.Actor != model.ActorSystem {
			t.Fatalf("unexpected cancel actor %q", call.Actor)
		}
	}
}

func TestSweeper_CancelFailureDoesNotAbortBatch(t *testing.T) {
	var mu sync.Mutex
	var attempted []int64
	facade := &testhelpers.WorkerFacadeStub{
		Expired: []model.Order{{ID: 1}, {ID: 2}, {ID: 3}},
		CancelFn: func(ctx context.Context, orderID int64, reason, actor string) error {
			mu.Lock()
			attempted = append(attempted, orderID)
			mu.Unlock()
			if orderID == 2 {
				return errors.New("boom")
			}
			return nil
		},
	}
	sweeper := NewSweeper(facade, &testhelpers.NotifierStub{}, NewReminderThrottle(), time.Minute, 3*time.Minute, 10, 1, testLogger())

	report := sweeper.RunOnce(context.Background())

	if report.OrdersCancelled != 2 {
		t.Fatalf("expected 2 cancelled, got %d", report.OrdersCancelled)
	}
	if len(attempted) != 3 {
		t.Fatalf("expected all 3 orders attempted, got %d", len(attempted))
	}
}

func TestSweeper_ReminderPassSendsAndMarks(t *testing.T) {
	notifier := &testhelpers.NotifierStub{}
	log := &testhelpers.NotificationLogStub{}
	facade := &testhelpers.WorkerFacadeStub{
		Sellers: []model.Seller{
			{ID: 1, Email: "a@shop.my", ReminderFrequency: model.ReminderEvery30m},
			{ID: 2, Email: "b@shop.my", ReminderFrequency: model.ReminderOff},
		},
		Receipts: map[int64][]model.Receipt{
			1: {{ID: 10, OrderID: 100, Amount: 50}},
			2: {{ID: 11, OrderID: 101, Amount: 60}},
		},
	}
	sweeper := NewSweeper(facade, notifier, log, time.Minute, 3*time.Minute, 10, 2, testLogger())

	report := sweeper.RunOnce(context.Background())

	if report.SellersChecked != 2 {
		t.Fatalf("expected 2 sellers checked, got %d", report.SellersChecked)
	}
	if report.EmailsSent != 1 {
		t.Fatalf("expected 1 email sent, got %d", report.EmailsSent)
	}
	if notifier.SentCount() != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.SentCount())
	}
	sent := notifier.SentAt(0)
	if sent.Recipient != "a@shop.my" {
		t.Fatalf("unexpected recipient %q", sent.Recipient)
	}
	if len(log.Notified) != 1 || log.Notified[0] != 1 {
		t.Fatalf("expected seller 1 marked notified, got %v", log.Notified)
	}
}

func TestSweeper_ReminderSkipsSellerWithoutPendingReceipts(t *testing.T) {
	notifier := &testhelpers.NotifierStub{}
	facade := &testhelpers.WorkerFacadeStub{
		Sellers: []model.Seller{{ID: 1, Email: "a@shop.my", ReminderFrequency: model.ReminderEvery30m}},
	}
	sweeper := NewSweeper(facade, notifier, &testhelpers.NotificationLogStub{}, time.Minute, 3*time.Minute, 10, 2, testLogger())

	report := sweeper.RunOnce(context.Background())

	if report.EmailsSent != 0 {
		t.Fatalf("expected no emails, got %d", report.EmailsSent)
	}
	if notifier.SentCount() != 0 {
		t.Fatalf("expected no notifications, got %d", notifier.SentCount())
	}
}

func TestSweeper_SendFailureDoesNotMarkNotified(t *testing.T) {
	notifier := &testhelpers.NotifierStub{
		SendFn: func(context.Context, string, string, map[string]any) error {
			return errors.New("smtp down")
		},
	}
	log := &testhelpers.NotificationLogStub{}
	facade := &testhelpers.WorkerFacadeStub{
		Sellers:  []model.Seller{{ID: 1, Email: "a@shop.my", ReminderFrequency: model.ReminderEvery30m}},
		Receipts: map[int64][]model.Receipt{1: {{ID: 10, OrderID: 100}}},
	}
	sweeper := NewSweeper(facade, notifier, log, time.Minute, 3*time.Minute, 10, 2, testLogger())

	report := sweeper.RunOnce(context.Background())

	if report.EmailsSent != 0 {
		t.Fatalf("expected no successful emails, got %d", report.EmailsSent)
	}
	if len(log.Notified) != 0 {
		t.Fatalf("expected seller not marked notified, got %v", log.Notified)
	}
}

func TestSweeper_CutoffUsesDeadline(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var gotCutoff time.Time
	facade := &testhelpers.WorkerFacadeStub{
		ExpiredFn: func(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
			gotCutoff = cutoff
			return nil, nil
		},
	}
	sweeper := NewSweeper(facade, &testhelpers.NotifierStub{}, NewReminderThrottle(), time.Minute, 3*time.Minute, 10, 2, testLogger())
	sweeper.now = func() time.Time { return fixed }

	sweeper.RunOnce(context.Background())

	want := fixed.Add(-3 * time.Minute)
	if !gotCutoff.Equal(want) {
		t.Fatalf("expected cutoff %v, got %v", want, gotCutoff)
	}
}

func TestSweeper_StartStop(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{}
	sweeper := NewSweeper(facade, &testhelpers.NotifierStub{}, NewReminderThrottle(), 5*time.Millisecond, 3*time.Minute, 10, 2, testLogger())

	sweeper.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	sweeper.Stop()
}
