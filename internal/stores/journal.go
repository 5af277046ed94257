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

const journalPrefix = "entry"

// JournalStore manages free-form journal entries.
type JournalStore struct {
	items   *store.Collection[models.JournalEntry]
	entries []models.JournalEntry
	logger  zerolog.Logger
}

// NewJournalStore creates a journal store backed by the given storage backend.
func NewJournalStore(backend store.Backend, logger zerolog.Logger) *JournalStore {
	return &JournalStore{
		items:  store.NewCollection[models.JournalEntry](backend, journalPrefix),
		logger: logging.WithStore(logger, "journal"),
	}
}

// Entries returns the in-memory collection.
func (s *JournalStore) Entries() []models.JournalEntry {
	return s.entries
}

// Find returns the entry with the given id, or ErrNotFound.
func (s *JournalStore) Find(id string) (models.JournalEntry, error) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, apperrors.ErrNotFound
}

// AddEntry records a new journal entry, prepended so the newest shows first.
func (s *JournalStore) AddEntry(ctx context.Context, date time.Time, content string) (models.JournalEntry, error) {
	if date.IsZero() {
		date = time.Now()
	}
	entry := models.JournalEntry{ID: uuid.NewString(), Date: date, Content: content}

	if err := s.items.Set(ctx, entry.ID, entry); err != nil {
		return models.JournalEntry{}, err
	}
	s.entries = append([]models.JournalEntry{entry}, s.entries...)
	logging.LogMutation(s.logger, journalPrefix, "addEntry", entry.ID)
	return entry, nil
}

// UpdateEntry replaces an entry's content, keeping its identity and date.
func (s *JournalStore) UpdateEntry(ctx context.Context, id, content string) (models.JournalEntry, error) {
	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		updated := e
		updated.Content = content
		if err := s.items.Set(ctx, id, updated); err != nil {
			return models.JournalEntry{}, err
		}
		s.entries[i] = updated
		logging.LogMutation(s.logger, journalPrefix, "updateEntry", id)
		return updated, nil
	}
	return models.JournalEntry{}, apperrors.ErrNotFound
}

// DeleteEntry removes an entry.
func (s *JournalStore) DeleteEntry(ctx context.Context, id string) error {
	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
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
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	logging.LogMutation(s.logger, journalPrefix, "deleteEntry", id)
	return nil
}

// Load replaces the in-memory state with all persisted entries, newest first.
func (s *JournalStore) Load(ctx context.Context) error {
	entries, err := s.items.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load journal entries, starting empty")
		s.entries = nil
		return nil
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	s.entries = entries
	return nil
}

// Restore persists the given entries verbatim and replaces in-memory state.
func (s *JournalStore) Restore(ctx context.Context, entries []models.JournalEntry) error {
	for _, e := range entries {
		if err := s.items.Set(ctx, e.ID, e); err != nil {
			return err
		}
	}
	s.entries = append([]models.JournalEntry(nil), entries...)
	return nil
}

// Clear removes every entry, durable and in-memory.
func (s *JournalStore) Clear(ctx context.Context) error {
	if err := s.items.Clear(ctx); err != nil {
		return err
	}
	s.entries = nil
	return nil
}
