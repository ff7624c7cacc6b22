// Package server wires configuration, storage and services together and
// runs the BMIC lookup HTTP server until it receives a shutdown signal.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bmic/internal/logging"
	"github.com/dmitrijs2005/bmic/internal/server/api"
	"github.com/dmitrijs2005/bmic/internal/server/config"
	"github.com/dmitrijs2005/bmic/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bmic/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	accountService *services.AccountService
	avatarService  *services.AvatarService
}

// NewApp selects PostgreSQL when a DSN is configured and the in-memory
// directory otherwise.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger = logger.With("module", "server")

	var rm repomanager.RepositoryManager
	if c.DatabaseDSN != "" {
		pg, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = pg
	} else {
		logger.Warn(ctx, "no database configured, accounts are kept in memory")
		rm = repomanager.NewMemoryRepositoryManager()
	}

	if c.SecretKey == "" {
		logger.Warn(ctx, "no secret key configured, tokens will not survive a restart")
	}

	as, err := services.NewAccountService(rm, c)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}

	return &App{
		config:         c,
		logger:         logger,
		repomanager:    rm,
		accountService: as,
		avatarService:  services.NewAvatarService(c),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves until a signal arrives or ctx is cancelled, then releases the
// storage.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := api.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accountService, app.avatarService)
		return s.Run(gctx)
	})

	err := g.Wait()

	if cerr := app.repomanager.Close(); cerr != nil {
		app.logger.Error(ctx, "closing storage failed", "error", cerr)
	}

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")

	return err
}
