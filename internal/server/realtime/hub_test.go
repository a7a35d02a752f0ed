package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_NotifyReachesAllSubscribers(t *testing.T) {
	h := NewHub()

	ch1, cancel1 := h.Register()
	ch2, cancel2 := h.Register()
	defer cancel1()
	defer cancel2()

	h.Notify()

	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
}

func TestHub_TicksCoalesce(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Register()
	defer cancel()

	h.Notify()
	h.Notify()
	h.Notify()

	assert.Len(t, ch, 1, "pending ticks must coalesce, not pile up")
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	h := NewHub()

	_, cancel := h.Register()
	assert.Equal(t, 1, h.Len())

	cancel()
	assert.Equal(t, 0, h.Len())

	// notifying with no subscribers is fine
	h.Notify()
}
