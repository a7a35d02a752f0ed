// Package local is the fallback persistence backend used when no server
// endpoint is configured. It emulates the hosted backend's subscribe/notify
// contract on top of a kv.Store: writes go to a single serialized slot, and
// subscribers combine a fixed-interval poll with the store's change signal
// so edits from another process propagate without waiting for the poll.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kalajat/archive/internal/client/kv"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
)

// DefaultPollInterval bounds how stale a subscriber's view can get when the
// underlying store has no change notification.
const DefaultPollInterval = time.Second

// Backend persists the entry list under kv.SlotEntries.
type Backend struct {
	store        kv.Store
	log          logging.Logger
	pollInterval time.Duration

	mu       sync.Mutex
	watchers map[int]chan struct{}
	nextID   int

	newID func() string // test seam
}

func New(store kv.Store, pollInterval time.Duration, log logging.Logger) *Backend {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Backend{
		store:        store,
		log:          log.With("module", "local_backend"),
		pollInterval: pollInterval,
		watchers:     make(map[int]chan struct{}),
		newID:        func() string { return ulid.Make().String() },
	}
}

func (b *Backend) load(ctx context.Context) ([]models.Entry, string, error) {
	raw, ok, err := b.store.Get(ctx, kv.SlotEntries)
	if err != nil {
		return nil, "", err
	}
	if !ok || raw == "" {
		return []models.Entry{}, "", nil
	}

	var entries []models.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, "", fmt.Errorf("decode stored entries: %w", err)
	}
	return entries, raw, nil
}

func (b *Backend) save(ctx context.Context, entries []models.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := b.store.Set(ctx, kv.SlotEntries, string(data)); err != nil {
		return err
	}
	b.notifyLocal()
	return nil
}

// notifyLocal wakes in-process subscribers right after a write, so the
// submitting client sees its own entry without waiting for the poll.
func (b *Backend) notifyLocal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Create assigns a fresh ULID (time-ordered, collision-free against existing
// ids), prepends the entry and persists the whole sequence.
func (b *Backend) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	entries, _, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	e := *entry
	e.ID = b.newID()
	entries = append([]models.Entry{e}, entries...)

	if err := b.save(ctx, entries); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes the entry with the given id if present. An absent id is a
// no-op and does not touch the stored sequence.
func (b *Backend) Delete(ctx context.Context, id string) error {
	entries, _, err := b.load(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return b.save(ctx, kept)
}

// Subscribe delivers the current snapshot immediately, then re-reads the
// slot on every poll tick, store change signal or in-process write, invoking
// onChange only when the stored content actually changed. The returned
// cancel func stops the timer, the store watch and the goroutine; it must be
// called to avoid leaks.
func (b *Backend) Subscribe(ctx context.Context, onChange func([]models.Entry)) (func(), error) {
	entries, lastRaw, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	onChange(sortDescending(entries))

	watchCh, watchCancel, err := b.store.Watch(ctx)
	if err != nil {
		return nil, err
	}

	localCh := make(chan struct{}, 1)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = localCh
	b.mu.Unlock()

	subCtx, cancelCtx := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(b.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-subCtx.Done():
				return
			case <-ticker.C:
			case <-watchCh:
			case <-localCh:
			}

			entries, raw, err := b.load(subCtx)
			if err != nil {
				if subCtx.Err() == nil {
					b.log.Warn(subCtx, "reload failed", "error", err.Error())
				}
				continue
			}
			if raw == lastRaw {
				continue
			}
			lastRaw = raw
			onChange(sortDescending(entries))
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			cancelCtx()
			watchCancel()
			b.mu.Lock()
			delete(b.watchers, id)
			b.mu.Unlock()
			<-done
		})
	}
	return cancel, nil
}

func (b *Backend) Close() error {
	return b.store.Close()
}

// sortDescending orders newest first; equal timestamps keep stored order.
func sortDescending(entries []models.Entry) []models.Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}
