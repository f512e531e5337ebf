package blobstore

import (
	"go.uber.org/fx"

	"github.com/pasarmart/pasarmart/internal/config"
)

// Module exposes the blob store implementation to the fx graph.
var Module = fx.Provide(newStore)

func newStore(cfg *config.Config) (Store, error) {
	return NewFileStore(cfg.ReceiptDir, cfg.ReceiptBaseURL)
}
