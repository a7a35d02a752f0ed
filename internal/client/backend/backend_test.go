package backend

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalajat/archive/internal/client/config"
	"github.com/kalajat/archive/internal/client/kv"
	"github.com/kalajat/archive/internal/client/local"
	"github.com/kalajat/archive/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StateDir = t.TempDir()
	return cfg
}

func TestResolve_LocalFileMode(t *testing.T) {
	cfg := baseConfig(t)

	r, err := Resolve(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	assert.Nil(t, r.Remote)
	assert.IsType(t, &local.Backend{}, r.Backend)
	assert.IsType(t, &kv.FileStore{}, r.Slots)
}

func TestResolve_LocalSQLiteMode(t *testing.T) {
	cfg := baseConfig(t)
	cfg.StateDir = filepath.Join(cfg.StateDir, "nested")
	cfg.LocalStore = config.LocalStoreSQLite

	r, err := Resolve(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Slots.Close() })
	assert.Nil(t, r.Remote)
	assert.IsType(t, &kv.SQLiteStore{}, r.Slots)
}

func TestResolve_RemoteMode(t *testing.T) {
	cfg := baseConfig(t)
	cfg.ServerEndpoint = "http://127.0.0.1:8080"

	r, err := Resolve(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	require.NotNil(t, r.Remote)
	assert.Equal(t, r.Remote, r.Backend, "remote handle and backend must be the same instance")
	assert.NotNil(t, r.Slots, "slots are local even in remote mode")
}

func TestResolve_UnknownStore(t *testing.T) {
	cfg := baseConfig(t)
	cfg.LocalStore = "redis"

	_, err := Resolve(context.Background(), cfg, testLogger())
	assert.Error(t, err)
}
