// Package kv provides the client's persisted string-keyed slots. Two
// implementations exist: a per-key file store (with change notification via
// fsnotify) and a SQLite-backed store. The local entry backend and the app
// config layer sit on top of this interface and assume nothing beyond
// "persisted key-value string storage" plus an optional change signal.
package kv

import "context"

// Slot keys used across the client.
const (
	SlotEntries   = "entries"
	SlotAppConfig = "app_config"
	SlotGuestUser = "guest_user"
)

// Store is a persisted mapping of slot keys to string values.
type Store interface {
	// Get returns the value for key and whether the slot exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set persists value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Watch returns a channel that ticks whenever the persisted state may
	// have changed outside this handle, plus a cancel func releasing the
	// watch. A nil channel (with nil error) means the implementation has no
	// notification mechanism and callers must rely on polling alone.
	Watch(ctx context.Context) (<-chan struct{}, func(), error)

	Close() error
}
