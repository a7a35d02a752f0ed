// Package server initializes and runs the archive server: database,
// realtime hub, entry service and the public HTTP endpoint.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/server/config"
	"github.com/kalajat/archive/internal/server/entries"
	"github.com/kalajat/archive/internal/server/export"
	"github.com/kalajat/archive/internal/server/httpapi"
	"github.com/kalajat/archive/internal/server/realtime"
	"github.com/kalajat/archive/internal/server/shared/db"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	manager      db.RepositoryManager
	entryService *entries.Service
	exporter     *export.Exporter
	hub          *realtime.Hub
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hub := realtime.NewHub()
	es := entries.NewService(manager.Entries(), hub, logger)
	ex := export.NewExporter(cfg, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		manager:      manager,
		entryService: es,
		exporter:     ex,
		hub:          hub,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(
		app.config.EndpointAddrHTTP, app.logger,
		app.entryService, app.exporter, app.hub,
		app.config.SecretKey, app.config.TokenValidityDuration,
	)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
