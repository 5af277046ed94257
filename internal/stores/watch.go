package stores

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/logging"
	"tradermind/internal/models"
	"tradermind/internal/store"
)

const watchPrefix = "watch"

// WatchStore manages the watch list.
type WatchStore struct {
	items   *store.Collection[models.Watch]
	watches []models.Watch
	logger  zerolog.Logger
}

// NewWatchStore creates a watch store backed by the given storage backend.
func NewWatchStore(backend store.Backend, logger zerolog.Logger) *WatchStore {
	return &WatchStore{
		items:  store.NewCollection[models.Watch](backend, watchPrefix),
		logger: logging.WithStore(logger, watchPrefix),
	}
}

// Watches returns the in-memory collection.
func (s *WatchStore) Watches() []models.Watch {
	return s.watches
}

// Find returns the watch with the given id, or ErrNotFound.
func (s *WatchStore) Find(id string) (models.Watch, error) {
	for _, w := range s.watches {
		if w.ID == id {
			return w, nil
		}
	}
	return models.Watch{}, apperrors.ErrNotFound
}

// AddWatch puts a symbol under observation with its initial status labels.
func (s *WatchStore) AddWatch(ctx context.Context, symbol string, statuses []models.WatchStatus) (models.Watch, error) {
	for _, status := range statuses {
		if !models.ValidWatchStatus(status) {
			return models.Watch{}, apperrors.NewValidationError("status", status, "unknown watch status")
		}
	}

	watch := models.Watch{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		Statuses:    statuses,
		Notes:       []models.WatchNote{},
		LastUpdated: time.Now(),
	}

	if err := s.items.Set(ctx, watch.ID, watch); err != nil {
		return models.Watch{}, err
	}
	s.watches = append(s.watches, watch)
	logging.LogMutation(s.logger, watchPrefix, "addWatch", watch.ID)
	return watch, nil
}

// UpdateStatuses replaces a watch's status labels and bumps LastUpdated.
func (s *WatchStore) UpdateStatuses(ctx context.Context, id string, statuses []models.WatchStatus) (models.Watch, error) {
	for _, status := range statuses {
		if !models.ValidWatchStatus(status) {
			return models.Watch{}, apperrors.NewValidationError("status", status, "unknown watch status")
		}
	}
	return s.mutate(ctx, id, "updateStatuses", func(w *models.Watch) error {
		w.Statuses = statuses
		w.LastUpdated = time.Now()
		return nil
	})
}

// AddNote appends a status-tagged note and bumps LastUpdated.
func (s *WatchStore) AddNote(ctx context.Context, watchID, content string, status models.WatchStatus) (models.Watch, error) {
	if !models.ValidWatchStatus(status) {
		return models.Watch{}, apperrors.NewValidationError("status", status, "unknown watch status")
	}

	note := models.WatchNote{
		ID:        uuid.NewString(),
		Content:   content,
		Status:    status,
		CreatedAt: time.Now(),
	}
	return s.mutate(ctx, watchID, "addNote", func(w *models.Watch) error {
		w.Notes = append(w.Notes, note)
		w.LastUpdated = time.Now()
		return nil
	})
}

// UpdateNote replaces a note's content and status, keeping its identity.
func (s *WatchStore) UpdateNote(ctx context.Context, watchID, noteID, content string, status models.WatchStatus) (models.Watch, error) {
	if !models.ValidWatchStatus(status) {
		return models.Watch{}, apperrors.NewValidationError("status", status, "unknown watch status")
	}
	return s.mutate(ctx, watchID, "updateNote", func(w *models.Watch) error {
		for i := range w.Notes {
			if w.Notes[i].ID == noteID {
				w.Notes[i].Content = content
				w.Notes[i].Status = status
				w.LastUpdated = time.Now()
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
}

// RemoveNote deletes a note. Deletion does not bump LastUpdated; only new
// information counts as activity.
func (s *WatchStore) RemoveNote(ctx context.Context, watchID, noteID string) (models.Watch, error) {
	return s.mutate(ctx, watchID, "removeNote", func(w *models.Watch) error {
		kept := w.Notes[:0]
		found := false
		for _, n := range w.Notes {
			if n.ID == noteID {
				found = true
				continue
			}
			kept = append(kept, n)
		}
		if !found {
			return apperrors.ErrNotFound
		}
		w.Notes = kept
		return nil
	})
}

// RemoveWatch deletes a watch entirely.
func (s *WatchStore) RemoveWatch(ctx context.Context, id string) error {
	idx := -1
	for i, w := range s.watches {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrNotFound
	}

	if err := s.items.Remove(ctx, id); err != nil {
		return err
	}
	s.watches = append(s.watches[:idx], s.watches[idx+1:]...)
	logging.LogMutation(s.logger, watchPrefix, "removeWatch", id)
	return nil
}

// Load replaces the in-memory state with all persisted watches, most
// recently updated first.
func (s *WatchStore) Load(ctx context.Context) error {
	watches, err := s.items.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load watches, starting empty")
		s.watches = nil
		return nil
	}
	sort.SliceStable(watches, func(i, j int) bool {
		return watches[i].LastUpdated.After(watches[j].LastUpdated)
	})
	s.watches = watches
	return nil
}

// Restore persists the given watches verbatim and replaces in-memory state.
func (s *WatchStore) Restore(ctx context.Context, watches []models.Watch) error {
	for _, w := range watches {
		if err := s.items.Set(ctx, w.ID, w); err != nil {
			return err
		}
	}
	s.watches = append([]models.Watch(nil), watches...)
	return nil
}

// Clear removes every watch, durable and in-memory.
func (s *WatchStore) Clear(ctx context.Context) error {
	if err := s.items.Clear(ctx); err != nil {
		return err
	}
	s.watches = nil
	return nil
}

func (s *WatchStore) mutate(ctx context.Context, id, op string, fn func(*models.Watch) error) (models.Watch, error) {
	idx := -1
	for i, w := range s.watches {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Watch{}, apperrors.ErrNotFound
	}

	updated := s.watches[idx]
	updated.Statuses = append([]models.WatchStatus(nil), updated.Statuses...)
	updated.Notes = append([]models.WatchNote(nil), updated.Notes...)
	if err := fn(&updated); err != nil {
		return models.Watch{}, err
	}

	if err := s.items.Set(ctx, id, updated); err != nil {
		return models.Watch{}, err
	}
	s.watches[idx] = updated
	logging.LogMutation(s.logger, watchPrefix, op, id)
	return updated, nil
}
