package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	NotifierAddress     string
	HostedBillAddress   string
	HostedBillSecret    string
	BankRedirectAddress string
	BankRedirectSecret  string
	TokenSecret         string
	ReceiptDir          string
	ReceiptBaseURL      string
	SweepInterval       time.Duration
	AutoCancelDeadline  time.Duration
	SweepBatchSize      int
	SweepWorkers        int
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultTokenSecret        = "change-me-in-production"
	defaultSweepInterval      = 5 * time.Minute
	defaultAutoCancelDeadline = 3 * time.Minute
	defaultSweepBatchSize     = 64
	defaultSweepWorkers       = 4
	defaultShutdownTimeout    = 10 * time.Second
	defaultReceiptDir         = "receipts"
	defaultReceiptBaseURL     = "/receipts"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		NotifierAddress:     getString(lookup, "NOTIFIER_ADDRESS", ""),
		HostedBillAddress:   getString(lookup, "HOSTED_BILL_ADDRESS", ""),
		HostedBillSecret:    getString(lookup, "HOSTED_BILL_SECRET", ""),
		BankRedirectAddress: getString(lookup, "BANK_REDIRECT_ADDRESS", ""),
		BankRedirectSecret:  getString(lookup, "BANK_REDIRECT_SECRET", ""),
		TokenSecret:         getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		ReceiptDir:          getString(lookup, "RECEIPT_DIR", defaultReceiptDir),
		ReceiptBaseURL:      getString(lookup, "RECEIPT_BASE_URL", defaultReceiptBaseURL),
		SweepInterval:       getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		AutoCancelDeadline:  getDuration(lookup, "AUTO_CANCEL_DEADLINE", defaultAutoCancelDeadline),
		SweepBatchSize:      getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		SweepWorkers:        getInt(lookup, "SWEEP_WORKERS", defaultSweepWorkers),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("pasarmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sweepIntervalStr   = cfg.SweepInterval.String()
		cancelDeadlineStr  = cfg.AutoCancelDeadline.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.NotifierAddress, "n", cfg.NotifierAddress, "Notification service base URL")
	fs.StringVar(&cfg.HostedBillAddress, "hosted-bill", cfg.HostedBillAddress, "Hosted bill provider base URL")
	fs.StringVar(&cfg.HostedBillSecret, "hosted-bill-secret", cfg.HostedBillSecret, "Hosted bill webhook signing secret")
	fs.StringVar(&cfg.BankRedirectAddress, "bank-redirect", cfg.BankRedirectAddress, "Bank redirect provider base URL")
	fs.StringVar(&cfg.BankRedirectSecret, "bank-redirect-secret", cfg.BankRedirectSecret, "Bank redirect webhook signing secret")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.ReceiptDir, "receipt-dir", cfg.ReceiptDir, "Directory for uploaded receipt files")
	fs.StringVar(&cfg.ReceiptBaseURL, "receipt-base-url", cfg.ReceiptBaseURL, "Public base URL for receipt files")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between background sweeps")
	fs.StringVar(&cancelDeadlineStr, "cancel-deadline", cancelDeadlineStr, "Unpaid order auto-cancel deadline")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum expired orders per sweep")
	fs.IntVar(&cfg.SweepWorkers, "sweep-workers", cfg.SweepWorkers, "Number of concurrent cancellation workers")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.AutoCancelDeadline, err = time.ParseDuration(cancelDeadlineStr); err != nil {
		return nil, fmt.Errorf("invalid cancel deadline: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.SweepWorkers <= 0 {
		cfg.SweepWorkers = defaultSweepWorkers
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.AutoCancelDeadline <= 0 {
		cfg.AutoCancelDeadline = defaultAutoCancelDeadline
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.HostedBillAddress == "" {
		return nil, fmt.Errorf("hosted bill provider address must be provided")
	}

	if cfg.BankRedirectAddress == "" {
		return nil, fmt.Errorf("bank redirect provider address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
