// Package backend resolves which persistence backend the client uses. The
// decision happens exactly once at startup, based on whether a server
// endpoint is configured; call sites never branch on the backend kind again.
package backend

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kalajat/archive/internal/client/config"
	"github.com/kalajat/archive/internal/client/kv"
	"github.com/kalajat/archive/internal/client/local"
	"github.com/kalajat/archive/internal/client/remote"
	"github.com/kalajat/archive/internal/filex"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/store"
)

// Resolved bundles the active backend with the handles only some modes have.
// Slots is always present: app settings and the guest identity live in local
// slots even when entries go to the server.
type Resolved struct {
	Backend store.Backend
	Remote  *remote.Backend // non-nil only in remote mode
	Slots   kv.Store
}

// Resolve builds the kv slot store and picks the entry backend.
func Resolve(ctx context.Context, cfg *config.Config, log logging.Logger) (*Resolved, error) {
	slots, err := newSlotStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RemoteConfigured() {
		r := remote.New(cfg.ServerEndpoint, log)
		return &Resolved{Backend: r, Remote: r, Slots: slots}, nil
	}

	return &Resolved{
		Backend: local.New(slots, cfg.PollInterval, log),
		Slots:   slots,
	}, nil
}

func newSlotStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.LocalStore {
	case config.LocalStoreFile, "":
		return kv.NewFileStore(cfg.StateDir)
	case config.LocalStoreSQLite:
		if _, err := filex.EnsureDir(cfg.StateDir); err != nil {
			return nil, err
		}
		return kv.NewSQLiteStore(ctx, filepath.Join(cfg.StateDir, "archive.db"))
	default:
		return nil, fmt.Errorf("unknown local store backend %q", cfg.LocalStore)
	}
}
