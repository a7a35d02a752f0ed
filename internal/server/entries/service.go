package entries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
	"github.com/kalajat/archive/internal/server/realtime"
)

// Service owns entry semantics on the server: validation, id assignment and
// change notification. Every successful write pokes the hub so watch
// sessions push a fresh snapshot.
type Service struct {
	repo Repository
	hub  *realtime.Hub
	log  logging.Logger

	now func() time.Time // test seam
}

func NewService(repo Repository, hub *realtime.Hub, log logging.Logger) *Service {
	return &Service{
		repo: repo,
		hub:  hub,
		log:  log.With("module", "entries_service"),
		now:  time.Now,
	}
}

// Create validates the draft, assigns a uuid and the creator identity,
// stores the entry and notifies watchers.
func (s *Service) Create(ctx context.Context, user models.Identity, draft models.Entry) (*models.Entry, error) {
	if strings.TrimSpace(draft.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrValidation)
	}
	if !draft.Category.Valid() {
		return nil, fmt.Errorf("%w: invalid category %q", common.ErrValidation, draft.Category)
	}

	draft.ID = uuid.NewString()
	draft.VictimName = strings.TrimSpace(draft.VictimName)
	draft.Content = strings.TrimSpace(draft.Content)
	if draft.Timestamp == 0 {
		draft.Timestamp = s.now().UnixMilli()
	}
	draft.UserID = user.UID
	draft.UserName = user.DisplayName
	draft.UserEmail = user.Email
	draft.UserPhoto = user.PhotoURL

	created, err := s.repo.Create(ctx, &draft)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	s.hub.Notify()
	s.log.Info(ctx, "entry created", "id", created.ID, "category", string(created.Category))
	return created, nil
}

// Delete removes an entry by id and notifies watchers. Deleting an unknown
// id succeeds without notification side effects beyond a snapshot push.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}
	s.hub.Notify()
	return nil
}

// List returns the current snapshot, newest first.
func (s *Service) List(ctx context.Context) ([]models.Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return entries, nil
}
