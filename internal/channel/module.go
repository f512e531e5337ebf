package channel

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/pasarmart/pasarmart/internal/config"
)

// Module wires the payment channels and their registry into the fx graph.
var Module = fx.Options(
	fx.Provide(newHostedBill, newBankRedirect, NewManualReceiptChannel, newRegistry),
)

type channelParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newHostedBill(p channelParams) (*HostedBillChannel, error) {
	return NewHostedBillChannel(p.Config.HostedBillAddress, p.Config.HostedBillSecret, p.Logger)
}

func newBankRedirect(p channelParams) (*BankRedirectChannel, error) {
	return NewBankRedirectChannel(p.Config.BankRedirectAddress, p.Config.BankRedirectSecret, p.Logger)
}

func newRegistry(hosted *HostedBillChannel, bank *BankRedirectChannel, manual *ManualReceiptChannel) *Registry {
	return NewRegistry(hosted, bank, manual)
}
