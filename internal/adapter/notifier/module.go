package notifier

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/pasarmart/pasarmart/internal/config"
)

// Module exposes the notifier implementation to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	return NewHTTPNotifier(p.Config.NotifierAddress, p.Logger)
}
