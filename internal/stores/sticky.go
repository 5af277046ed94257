package stores

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/logging"
	"tradermind/internal/models"
	"tradermind/internal/store"
)

const stickyPrefix = "note"

// stickyColors is the palette a new note's color is drawn from.
var stickyColors = []string{"yellow", "green", "blue", "pink", "purple"}

// StickyStore manages short-lived reminder notes.
type StickyStore struct {
	items  *store.Collection[models.StickyNote]
	notes  []models.StickyNote
	logger zerolog.Logger
}

// NewStickyStore creates a sticky note store backed by the given storage backend.
func NewStickyStore(backend store.Backend, logger zerolog.Logger) *StickyStore {
	return &StickyStore{
		items:  store.NewCollection[models.StickyNote](backend, stickyPrefix),
		logger: logging.WithStore(logger, "sticky"),
	}
}

// Notes returns the in-memory collection.
func (s *StickyStore) Notes() []models.StickyNote {
	return s.notes
}

// Find returns the note with the given id, or ErrNotFound.
func (s *StickyStore) Find(id string) (models.StickyNote, error) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return models.StickyNote{}, apperrors.ErrNotFound
}

// AddNote creates a note under a tag with a randomly picked color.
func (s *StickyStore) AddNote(ctx context.Context, tag, text string) (models.StickyNote, error) {
	note := models.StickyNote{
		ID:        uuid.NewString(),
		Text:      text,
		Tag:       tag,
		CreatedAt: time.Now(),
		Color:     stickyColors[rand.Intn(len(stickyColors))],
	}

	if err := s.items.Set(ctx, note.ID, note); err != nil {
		return models.StickyNote{}, err
	}
	s.notes = append(s.notes, note)
	logging.LogMutation(s.logger, stickyPrefix, "addNote", note.ID)
	return note, nil
}

// UpdateNote replaces a note's text, keeping tag, color and creation time.
func (s *StickyStore) UpdateNote(ctx context.Context, id, text string) (models.StickyNote, error) {
	for i, n := range s.notes {
		if n.ID != id {
			continue
		}
		updated := n
		updated.Text = text
		if err := s.items.Set(ctx, id, updated); err != nil {
			return models.StickyNote{}, err
		}
		s.notes[i] = updated
		logging.LogMutation(s.logger, stickyPrefix, "updateNote", id)
		return updated, nil
	}
	return models.StickyNote{}, apperrors.ErrNotFound
}

// RemoveNote deletes a note.
func (s *StickyStore) RemoveNote(ctx context.Context, id string) error {
	idx := -1
	for i, n := range s.notes {
		if n.ID == id {
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
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	logging.LogMutation(s.logger, stickyPrefix, "removeNote", id)
	return nil
}

// Load replaces the in-memory state with all persisted notes, newest first.
func (s *StickyStore) Load(ctx context.Context) error {
	notes, err := s.items.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load sticky notes, starting empty")
		s.notes = nil
		return nil
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	s.notes = notes
	return nil
}

// Restore persists the given notes verbatim and replaces in-memory state.
func (s *StickyStore) Restore(ctx context.Context, notes []models.StickyNote) error {
	for _, n := range notes {
		if err := s.items.Set(ctx, n.ID, n); err != nil {
			return err
		}
	}
	s.notes = append([]models.StickyNote(nil), notes...)
	return nil
}

// Clear removes every note, durable and in-memory.
func (s *StickyStore) Clear(ctx context.Context) error {
	if err := s.items.Clear(ctx); err != nil {
		return err
	}
	s.notes = nil
	return nil
}
