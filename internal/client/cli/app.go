package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/kalajat/archive/internal/analysis"
	"github.com/kalajat/archive/internal/client/appconfig"
	"github.com/kalajat/archive/internal/client/backend"
	"github.com/kalajat/archive/internal/client/config"
	"github.com/kalajat/archive/internal/client/kv"
	"github.com/kalajat/archive/internal/client/remote"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
	"github.com/kalajat/archive/internal/store"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    *store.Store
	remote   *remote.Backend // nil in local mode
	slots    kv.Store
	analyzer *analysis.Analyzer
	appCfg   models.AppConfig
	user     *models.Identity
	Mode     Mode
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	resolved, err := backend.Resolve(ctx, c, logger)
	if err != nil {
		log.Printf("error initializing storage: %s", err.Error())
		return nil, err
	}

	appCfg, err := appconfig.Load(ctx, resolved.Slots)
	if err != nil {
		return nil, err
	}

	analyzer, err := analysis.New(ctx, c.GenAIAPIKey, c.GenAIModel, logger)
	if err != nil {
		log.Printf("analysis disabled: %s", err.Error())
	}

	mode := ModeLocal
	if resolved.Remote != nil {
		mode = ModeRemote
	}

	return &App{
		config:   c,
		logger:   logger,
		store:    store.New(resolved.Backend, logger),
		remote:   resolved.Remote,
		slots:    resolved.Slots,
		analyzer: analyzer,
		appCfg:   appCfg,
		Mode:     mode,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run() {
	ctx := context.Background()
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if err := a.store.Close(); err != nil {
		log.Printf("close error: %v", err)
	}
	if err := a.slots.Close(); err != nil {
		log.Printf("close error: %v", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}
