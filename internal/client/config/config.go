// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Backend selection is decided once at startup: remote when a server
// endpoint is configured, local otherwise. There is no failover mid-session.
const (
	LocalStoreFile   = "file"
	LocalStoreSQLite = "sqlite"
)

// Config holds runtime settings for the archive CLI.
//
// Fields:
//   - ServerEndpoint: base URL of the hosted backend ("http://host:port").
//     Empty means no remote configuration → local fallback storage.
//   - StateDir: directory for local state (slot files or the sqlite db).
//   - LocalStore: which kv implementation backs local mode ("file"/"sqlite").
//   - PollInterval: local subscription poll period.
//   - GenAIAPIKey / GenAIModel: analyzer credentials; empty key disables
//     analysis entirely.
type Config struct {
	ServerEndpoint string
	StateDir       string
	LocalStore     string
	PollInterval   time.Duration
	GenAIAPIKey    string
	GenAIModel     string
}

// RemoteConfigured reports whether the remote backend should be used.
func (c *Config) RemoteConfigured() bool {
	return c.ServerEndpoint != ""
}

// LoadDefaults populates c with local-mode defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpoint = ""
	c.StateDir = ".kalajat"
	c.LocalStore = LocalStoreFile
	c.PollInterval = time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
