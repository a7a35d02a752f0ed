// Package appconfig manages the admin-editable application settings stored
// in a dedicated local slot: load at start, save on change, no global
// singleton. The admin gate is a bcrypt hash kept alongside the settings.
package appconfig

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/kalajat/archive/internal/client/kv"
	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/models"
)

// Load reads the AppConfig slot, returning defaults when the slot is empty.
func Load(ctx context.Context, store kv.Store) (models.AppConfig, error) {
	raw, ok, err := store.Get(ctx, kv.SlotAppConfig)
	if err != nil {
		return models.AppConfig{}, fmt.Errorf("load app config: %w", err)
	}
	if !ok || raw == "" {
		return models.DefaultAppConfig(), nil
	}

	var cfg models.AppConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return models.AppConfig{}, fmt.Errorf("decode app config: %w", err)
	}
	return cfg, nil
}

// Save persists cfg to its slot.
func Save(ctx context.Context, store kv.Store, cfg models.AppConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode app config: %w", err)
	}
	if err := store.Set(ctx, kv.SlotAppConfig, string(data)); err != nil {
		return fmt.Errorf("save app config: %w", err)
	}
	return nil
}

// SetAdminPassword hashes password into cfg. The hash replaces any previous
// one.
func SetAdminPassword(cfg *models.AppConfig, password []byte) error {
	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	cfg.AdminPasswordHash = string(hash)
	return nil
}

// CheckAdminPassword verifies password against the stored hash. A config
// without a hash accepts nothing.
func CheckAdminPassword(cfg models.AppConfig, password []byte) error {
	if cfg.AdminPasswordHash == "" {
		return common.ErrorUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), password); err != nil {
		return common.ErrorUnauthorized
	}
	return nil
}
