package di

import (
	"github.com/pasarmart/pasarmart/internal/adapter/blobstore"
	"github.com/pasarmart/pasarmart/internal/adapter/notifier"
	"github.com/pasarmart/pasarmart/internal/app"
	"github.com/pasarmart/pasarmart/internal/channel"
	"github.com/pasarmart/pasarmart/internal/config"
	"github.com/pasarmart/pasarmart/internal/logger"
	"github.com/pasarmart/pasarmart/internal/pkg/auth"
	"github.com/pasarmart/pasarmart/internal/server/http/handlers"
	"github.com/pasarmart/pasarmart/internal/server/http/router"
	"github.com/pasarmart/pasarmart/internal/storage/postgres"
	"github.com/pasarmart/pasarmart/internal/usecase"
	"github.com/pasarmart/pasarmart/internal/worker"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notifier.Module,
		blobstore.Module,
		channel.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketFacade) handlers.MarketFacade { return f }),
		fx.Provide(func(f *app.MarketFacade) worker.MarketFacade { return f }),
		fx.Provide(func(s *worker.Sweeper) handlers.SweepRunner { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
