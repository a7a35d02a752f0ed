package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "", cfg.ServerEndpoint)
	assert.False(t, cfg.RemoteConfigured())
	assert.Equal(t, ".kalajat", cfg.StateDir)
	assert.Equal(t, LocalStoreFile, cfg.LocalStore)
	assert.Equal(t, time.Second, cfg.PollInterval)
}

func TestRemoteConfigured(t *testing.T) {
	cfg := &Config{ServerEndpoint: "http://127.0.0.1:8080"}
	assert.True(t, cfg.RemoteConfigured())
}

func TestApplyJson_OverlaysOnlySetFields(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	jc := &JsonConfig{
		ServerEndpoint: "http://example:9090",
		LocalStore:     LocalStoreSQLite,
	}
	applyJson(cfg, jc)

	assert.Equal(t, "http://example:9090", cfg.ServerEndpoint)
	assert.Equal(t, LocalStoreSQLite, cfg.LocalStore)
	// untouched fields keep defaults
	assert.Equal(t, ".kalajat", cfg.StateDir)
	assert.Equal(t, time.Second, cfg.PollInterval)
}

func TestParseFlags_Overlay(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-s", "http://flag:1234", "-p", "3", "-b", "sqlite"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://flag:1234", cfg.ServerEndpoint)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, LocalStoreSQLite, cfg.LocalStore)
}

func TestParseJson_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"state_dir":"/tmp/arc","poll_interval":"2s"}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "/tmp/arc", cfg.StateDir)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
}
