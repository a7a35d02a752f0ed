// Package store is the single point of truth for the entry collection. It
// validates drafts, abstracts over which backend is active (hosted server or
// local fallback) and fans change notifications out to subscribers, so
// callers stay backend-agnostic.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
)

// Backend is the persistence contract implemented by both the remote client
// and the local fallback. Subscribe must deliver one initial callback with
// the current state immediately, then one callback per detected change, each
// carrying the full list ordered by timestamp descending. The returned
// cancel func stops all future callbacks and releases backend resources.
type Backend interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, onChange func([]models.Entry)) (func(), error)
	Close() error
}

// Store owns the canonical entry list. The backend is fixed at construction
// for the process lifetime: if the remote backend is configured but
// unreachable, errors surface to the caller instead of silently falling back
// to local storage.
type Store struct {
	backend Backend
	log     logging.Logger

	now func() time.Time // test seam
}

func New(backend Backend, log logging.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log.With("module", "store"),
		now:     time.Now,
	}
}

// Create validates the draft, stamps it and hands it to the backend.
// Validation failures are reported as common.ErrValidation before any
// backend call; backend failures as common.ErrPersistence. Subscribers are
// notified through the backend's own change propagation, not synchronously
// here.
func (s *Store) Create(ctx context.Context, draft models.Entry) (*models.Entry, error) {
	if strings.TrimSpace(draft.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrValidation)
	}
	if !draft.Category.Valid() {
		return nil, fmt.Errorf("%w: invalid category %q", common.ErrValidation, draft.Category)
	}

	draft.VictimName = strings.TrimSpace(draft.VictimName)
	draft.Content = strings.TrimSpace(draft.Content)
	if draft.Timestamp == 0 {
		draft.Timestamp = s.now().UnixMilli()
	}

	created, err := s.backend.Create(ctx, &draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}

	s.log.Debug(ctx, "entry created", "id", created.ID, "category", string(created.Category))
	return created, nil
}

// Delete removes an entry by id. Deleting an id that does not exist is a
// no-op, not an error; only backend unavailability fails.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return nil
}

// Subscribe registers onChange for the full, timestamp-descending entry list.
// The callback fires once immediately with the current state and then on
// every change until the returned cancel func is invoked.
func (s *Store) Subscribe(ctx context.Context, onChange func([]models.Entry)) (func(), error) {
	cancel, err := s.backend.Subscribe(ctx, onChange)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return cancel, nil
}

// Close releases backend resources.
func (s *Store) Close() error {
	return s.backend.Close()
}
