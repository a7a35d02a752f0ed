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

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, "archive", cfg.S3Bucket)
}

func TestApplyJson_OverlaysOnlySetFields(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	applyJson(cfg, &JsonConfig{EndpointAddrHTTP: ":9999", SecretKey: "other"})

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "other", cfg.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
}

func TestParseFlags_Overlay(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-a", ":7070", "-t", "30"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidityDuration)
}

func TestParseJson_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_dsn":"postgres://x","token_validity_duration":"1h"}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-config=" + path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
}
