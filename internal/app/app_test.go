package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pasarmart/pasarmart/internal/config"
	testhelpers "github.com/pasarmart/pasarmart/internal/test"
	"github.com/pasarmart/pasarmart/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	srv := newHTTPServer(serverParams{
		Config: &config.Config{RunAddress: "127.0.0.1:18080"},
		Router: router,
	})

	if srv.Addr != "127.0.0.1:18080" {
		t.Fatalf("unexpected addr %q", srv.Addr)
	}
	if srv.Handler == nil {
		t.Fatal("expected handler to be set")
	}
}

func TestNewReminderLog(t *testing.T) {
	log := newReminderLog()
	if log == nil {
		t.Fatal("expected notification log")
	}
	if _, ok := log.(*worker.ReminderThrottle); !ok {
		t.Fatalf("unexpected implementation %T", log)
	}
}

func TestNewSweeper(t *testing.T) {
	sweeper := newSweeper(sweeperParams{
		Facade:   &testhelpers.WorkerFacadeStub{},
		Notifier: &testhelpers.NotifierStub{},
		Log:      &testhelpers.NotificationLogStub{},
		Config: &config.Config{
			SweepInterval:      time.Minute,
			AutoCancelDeadline: 3 * time.Minute,
			SweepBatchSize:     8,
			SweepWorkers:       2,
		},
		Logger: discardLogger(),
	})
	if sweeper == nil {
		t.Fatal("expected sweeper")
	}

	report := sweeper.RunOnce(context.Background())
	if report.OrdersCancelled != 0 || report.SellersChecked != 0 {
		t.Fatalf("unexpected report for empty facade %+v", report)
	}
}

func TestRegisterLifecycle(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	sweeper := worker.NewSweeper(
		&testhelpers.WorkerFacadeStub{},
		&testhelpers.NotifierStub{},
		&testhelpers.NotificationLogStub{},
		time.Hour, 3*time.Minute, 8, 1,
		discardLogger(),
	)
	srv := &http.Server{Addr: "127.0.0.1:0"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     srv,
		Sweeper:    sweeper,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one lifecycle hook, got %d", len(recorder.Hooks))
	}
	hook := recorder.Hooks[0]

	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start: %v", err)
	}
	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("on stop: %v", err)
	}
}
