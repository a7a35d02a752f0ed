package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
)

type fakeBackend struct {
	created   []*models.Entry
	deleted   []string
	createErr error
	deleteErr error
	subErr    error
	cancelled bool
	closed    bool
}

func (f *fakeBackend) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	e.ID = "assigned"
	f.created = append(f.created, e)
	return e, nil
}

func (f *fakeBackend) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) Subscribe(ctx context.Context, onChange func([]models.Entry)) (func(), error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	onChange(nil)
	return func() { f.cancelled = true }, nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func newStore(backend Backend) *Store {
	s := New(backend, testLogger())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestCreate_RejectsEmptyContent(t *testing.T) {
	backend := &fakeBackend{}
	s := newStore(backend)

	_, err := s.Create(context.Background(), models.Entry{Content: "  ", Category: models.CategorySlip})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, backend.created, "validation must fail before any backend call")
}

func TestCreate_RejectsInvalidCategory(t *testing.T) {
	backend := &fakeBackend{}
	s := newStore(backend)

	_, err := s.Create(context.Background(), models.Entry{Content: "x", Category: "pun"})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, backend.created)
}

func TestCreate_AssignsTimestampAndTrims(t *testing.T) {
	backend := &fakeBackend{}
	s := newStore(backend)

	created, err := s.Create(context.Background(), models.Entry{
		VictimName: " سالم ",
		Content:    " قالها ",
		Category:   models.CategorySlip,
	})
	require.NoError(t, err)
	assert.Equal(t, "assigned", created.ID)
	assert.Equal(t, "سالم", created.VictimName)
	assert.Equal(t, "قالها", created.Content)
	assert.Equal(t, int64(1700000000000), created.Timestamp)
}

func TestCreate_KeepsPresetTimestamp(t *testing.T) {
	backend := &fakeBackend{}
	s := newStore(backend)

	created, err := s.Create(context.Background(), models.Entry{
		Content:   "x",
		Category:  models.CategoryJoke,
		Timestamp: 42,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.Timestamp)
}

func TestCreate_WrapsBackendError(t *testing.T) {
	backend := &fakeBackend{createErr: errors.New("connection refused")}
	s := newStore(backend)

	_, err := s.Create(context.Background(), models.Entry{Content: "x", Category: models.CategorySlip})
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestDelete_PassesThroughAndWraps(t *testing.T) {
	backend := &fakeBackend{}
	s := newStore(backend)

	require.NoError(t, s.Delete(context.Background(), "missing-id"))
	assert.Equal(t, []string{"missing-id"}, backend.deleted)

	backend.deleteErr = errors.New("down")
	assert.ErrorIs(t, s.Delete(context.Background(), "id"), common.ErrPersistence)
}

func TestSubscribe_DelegatesAndCancels(t *testing.T) {
	backend := &fakeBackend{}
	s := newStore(backend)

	calls := 0
	cancel, err := s.Subscribe(context.Background(), func([]models.Entry) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "initial snapshot must be delivered immediately")

	cancel()
	assert.True(t, backend.cancelled)

	backend.subErr = errors.New("dial error")
	_, err = s.Subscribe(context.Background(), func([]models.Entry) {})
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestClose(t *testing.T) {
	backend := &fakeBackend{}
	s := newStore(backend)
	require.NoError(t, s.Close())
	assert.True(t, backend.closed)
}
