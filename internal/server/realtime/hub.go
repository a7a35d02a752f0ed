// Package realtime fans change notifications out to watch sessions. The hub
// carries no payload: a tick means "state changed, re-query and push". This
// keeps the hub independent of query shape and makes missed ticks harmless:
// sessions always push the latest snapshot, never a delta.
package realtime

import "sync"

type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan struct{})}
}

// Register adds a subscriber and returns its tick channel plus a cancel
// func. The channel holds at most one pending tick; notifications arriving
// while one is pending are coalesced.
func (h *Hub) Register() (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan struct{}, 1)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
	return ch, cancel
}

// Notify ticks every registered subscriber without blocking.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len reports the number of registered subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
