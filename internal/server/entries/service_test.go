package entries

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
	"github.com/kalajat/archive/internal/server/realtime"
)

type fakeRepo struct {
	entries   []models.Entry
	createErr error
	deleteErr error
}

func (f *fakeRepo) Create(_ context.Context, entry *models.Entry) (*models.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.entries = append([]models.Entry{*entry}, f.entries...)
	return entry, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeRepo) List(_ context.Context) ([]models.Entry, error) {
	return f.entries, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestService(repo Repository) (*Service, *realtime.Hub) {
	hub := realtime.NewHub()
	svc := NewService(repo, hub, testLogger())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, hub
}

func TestServiceCreate_AssignsIDTimestampAndIdentity(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestService(repo)

	user := models.Identity{UID: "u1", DisplayName: "ضيف", Email: "g@example.com"}
	created, err := svc.Create(context.Background(), user, models.Entry{
		VictimName: "  سالم  ",
		Content:    "  قال كلجة  ",
		Category:   models.CategorySlip,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "سالم", created.VictimName)
	assert.Equal(t, "قال كلجة", created.Content)
	assert.Equal(t, int64(1700000000000), created.Timestamp)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, "ضيف", created.UserName)
	assert.Equal(t, "g@example.com", created.UserEmail)
}

func TestServiceCreate_Validation(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestService(repo)

	tests := []struct {
		name  string
		draft models.Entry
	}{
		{"empty content", models.Entry{Content: "   ", Category: models.CategorySlip}},
		{"bad category", models.Entry{Content: "ok", Category: "riddle"}},
		{"all is not storable", models.Entry{Content: "ok", Category: models.CategoryAll}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), models.Identity{UID: "u"}, tt.draft)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Empty(t, repo.entries)
		})
	}
}

func TestServiceCreate_NotifiesHub(t *testing.T) {
	repo := &fakeRepo{}
	svc, hub := newTestService(repo)

	ch, cancel := hub.Register()
	defer cancel()

	_, err := svc.Create(context.Background(), models.Identity{UID: "u"}, models.Entry{
		Content: "نكتة", Category: models.CategoryJoke,
	})
	require.NoError(t, err)

	select {
	case <-ch:
	default:
		t.Fatal("expected a hub notification after create")
	}
}

func TestServiceCreate_RepositoryError(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("db down")}
	svc, hub := newTestService(repo)

	ch, cancel := hub.Register()
	defer cancel()

	_, err := svc.Create(context.Background(), models.Identity{UID: "u"}, models.Entry{
		Content: "c", Category: models.CategorySlip,
	})
	require.Error(t, err)

	select {
	case <-ch:
		t.Fatal("failed create must not notify watchers")
	default:
	}
}

func TestServiceDelete_IdempotentAndNotifies(t *testing.T) {
	repo := &fakeRepo{entries: []models.Entry{{ID: "e1"}}}
	svc, hub := newTestService(repo)

	ch, cancel := hub.Register()
	defer cancel()

	require.NoError(t, svc.Delete(context.Background(), "e1"))
	require.NoError(t, svc.Delete(context.Background(), "no-such-id"))
	assert.Empty(t, repo.entries)

	select {
	case <-ch:
	default:
		t.Fatal("expected a hub notification after delete")
	}
}
