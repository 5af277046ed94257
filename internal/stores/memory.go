package stores

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/imaging"
	"tradermind/internal/logging"
	"tradermind/internal/models"
	"tradermind/internal/store"
)

const memoryPrefix = "memory"

// MemoryStore manages reference images ("memories"): screenshots of setups
// worth keeping, with a caption and free-form tags.
type MemoryStore struct {
	items    *store.Collection[models.MemoryItem]
	memories []models.MemoryItem
	logger   zerolog.Logger
}

// NewMemoryStore creates a memory store backed by the given storage backend.
func NewMemoryStore(backend store.Backend, logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		items:  store.NewCollection[models.MemoryItem](backend, memoryPrefix),
		logger: logging.WithStore(logger, memoryPrefix),
	}
}

// Memories returns the in-memory collection.
func (s *MemoryStore) Memories() []models.MemoryItem {
	return s.memories
}

// Find returns the memory with the given id, or ErrNotFound.
func (s *MemoryStore) Find(id string) (models.MemoryItem, error) {
	for _, m := range s.memories {
		if m.ID == id {
			return m, nil
		}
	}
	return models.MemoryItem{}, apperrors.ErrNotFound
}

// AddMemory ingests an image and stores it with caption and tags. Reference
// images keep fidelity over size, so the bounds are looser than trade notes.
func (s *MemoryStore) AddMemory(ctx context.Context, image []byte, text string, tags []string) (models.MemoryItem, error) {
	encoded, err := imaging.Process(image, imaging.MemoryOptions())
	if err != nil {
		return models.MemoryItem{}, err
	}

	memory := models.MemoryItem{
		ID:        uuid.NewString(),
		ImageData: encoded,
		Text:      text,
		Tags:      append([]string(nil), tags...),
		CreatedAt: time.Now(),
	}
	if memory.Tags == nil {
		memory.Tags = []string{}
	}

	if err := s.items.Set(ctx, memory.ID, memory); err != nil {
		return models.MemoryItem{}, err
	}
	s.memories = append(s.memories, memory)
	logging.LogMutation(s.logger, memoryPrefix, "addMemory", memory.ID)
	return memory, nil
}

// UpdateMemory replaces caption and tags, keeping identity and image.
func (s *MemoryStore) UpdateMemory(ctx context.Context, id, text string, tags []string) (models.MemoryItem, error) {
	for i, m := range s.memories {
		if m.ID != id {
			continue
		}
		updated := m
		updated.Text = text
		if tags != nil {
			updated.Tags = append([]string(nil), tags...)
		}
		if err := s.items.Set(ctx, id, updated); err != nil {
			return models.MemoryItem{}, err
		}
		s.memories[i] = updated
		logging.LogMutation(s.logger, memoryPrefix, "updateMemory", id)
		return updated, nil
	}
	return models.MemoryItem{}, apperrors.ErrNotFound
}

// DeleteMemory removes a memory.
func (s *MemoryStore) DeleteMemory(ctx context.Context, id string) error {
	idx := -1
	for i, m := range s.memories {
		if m.ID == id {
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
	s.memories = append(s.memories[:idx], s.memories[idx+1:]...)
	logging.LogMutation(s.logger, memoryPrefix, "deleteMemory", id)
	return nil
}

// Load replaces the in-memory state with all persisted memories, newest first.
func (s *MemoryStore) Load(ctx context.Context) error {
	memories, err := s.items.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load memories, starting empty")
		s.memories = nil
		return nil
	}
	sort.SliceStable(memories, func(i, j int) bool {
		return memories[i].CreatedAt.After(memories[j].CreatedAt)
	})
	s.memories = memories
	return nil
}

// Restore persists the given memories verbatim and replaces in-memory state.
func (s *MemoryStore) Restore(ctx context.Context, memories []models.MemoryItem) error {
	for _, m := range memories {
		if err := s.items.Set(ctx, m.ID, m); err != nil {
			return err
		}
	}
	s.memories = append([]models.MemoryItem(nil), memories...)
	return nil
}

// Clear removes every memory, durable and in-memory.
func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := s.items.Clear(ctx); err != nil {
		return err
	}
	s.memories = nil
	return nil
}
