package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/pasarmart/pasarmart/internal/app"
	"github.com/pasarmart/pasarmart/internal/config"
	"github.com/pasarmart/pasarmart/internal/domain/repository"
	"github.com/pasarmart/pasarmart/internal/storage/postgres"
	"github.com/pasarmart/pasarmart/internal/test"
	"github.com/pasarmart/pasarmart/internal/worker"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		NotifierAddress:     "http://localhost",
		HostedBillAddress:   "http://localhost",
		HostedBillSecret:    "billsecret",
		BankRedirectAddress: "http://localhost",
		BankRedirectSecret:  "banksecret",
		TokenSecret:         "secret",
		ReceiptDir:          t.TempDir(),
		ReceiptBaseURL:      "/receipts",
		SweepInterval:       time.Millisecond,
		AutoCancelDeadline:  time.Millisecond,
		SweepBatchSize:      1,
		SweepWorkers:        1,
		ShutdownTimeout:     time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.MarketFacade
	var sweeper *worker.Sweeper
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(test.NewOrderRepositoryStub())),
			fx.Replace(repository.PaymentRepository(test.NewPaymentRepositoryStub())),
			fx.Replace(repository.ReceiptRepository(test.NewReceiptRepositoryStub())),
			fx.Replace(repository.InventoryRepository(test.NewInventoryRepositoryStub())),
			fx.Replace(repository.SellerRepository(test.NewSellerRepositoryStub())),
		),
		fx.Populate(&facade),
		fx.Populate(&sweeper),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected market facade instance")
	}
	if sweeper == nil {
		t.Fatal("expected sweeper instance")
	}
}
