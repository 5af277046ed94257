package stores

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/logging"
	"tradermind/internal/metrics"
	"tradermind/internal/models"
	"tradermind/internal/store"
)

const (
	tagPrefix      = "tag"
	tradeTagPrefix = "trade-tag"
)

// TagStore manages tags and their many-to-many assignments to trades.
type TagStore struct {
	tags       *store.Collection[models.Tag]
	tradeTags  *store.Collection[models.TradeTag]
	tagList    []models.Tag
	assignList []models.TradeTag
	logger     zerolog.Logger
}

// NewTagStore creates a tag store backed by the given storage backend.
func NewTagStore(backend store.Backend, logger zerolog.Logger) *TagStore {
	return &TagStore{
		tags:      store.NewCollection[models.Tag](backend, tagPrefix),
		tradeTags: store.NewCollection[models.TradeTag](backend, tradeTagPrefix),
		logger:    logging.WithStore(logger, tagPrefix),
	}
}

// Tags returns the in-memory tag collection.
func (s *TagStore) Tags() []models.Tag {
	return s.tagList
}

// TradeTags returns the in-memory assignment collection.
func (s *TagStore) TradeTags() []models.TradeTag {
	return s.assignList
}

// AddTag creates a tag with a display color token.
func (s *TagStore) AddTag(ctx context.Context, name, color string) (models.Tag, error) {
	if name == "" {
		return models.Tag{}, apperrors.NewValidationError("name", name, "tag name must not be empty")
	}

	tag := models.Tag{ID: uuid.NewString(), Name: name, Color: color}
	if err := s.tags.Set(ctx, tag.ID, tag); err != nil {
		return models.Tag{}, err
	}
	s.tagList = append(s.tagList, tag)
	logging.LogMutation(s.logger, tagPrefix, "addTag", tag.ID)
	return tag, nil
}

// RemoveTag deletes a tag and cascades to every assignment that references it.
func (s *TagStore) RemoveTag(ctx context.Context, id string) error {
	idx := -1
	for i, t := range s.tagList {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrNotFound
	}

	if err := s.tags.Remove(ctx, id); err != nil {
		return err
	}
	for _, tt := range s.assignList {
		if tt.TagID != id {
			continue
		}
		if err := s.tradeTags.Remove(ctx, tt.ID); err != nil {
			return err
		}
	}

	s.tagList = append(s.tagList[:idx], s.tagList[idx+1:]...)
	kept := s.assignList[:0]
	for _, tt := range s.assignList {
		if tt.TagID != id {
			kept = append(kept, tt)
		}
	}
	s.assignList = kept
	logging.LogMutation(s.logger, tagPrefix, "removeTag", id)
	return nil
}

// AssignTag attaches a tag to a trade, stamped with the assignment time.
func (s *TagStore) AssignTag(ctx context.Context, tradeID, tagID string) (models.TradeTag, error) {
	tt := models.TradeTag{
		ID:      uuid.NewString(),
		TagID:   tagID,
		TradeID: tradeID,
		Date:    time.Now(),
	}
	if err := s.tradeTags.Set(ctx, tt.ID, tt); err != nil {
		return models.TradeTag{}, err
	}
	s.assignList = append(s.assignList, tt)
	logging.LogMutation(s.logger, tradeTagPrefix, "assignTag", tt.ID)
	return tt, nil
}

// UnassignTag removes the assignment between a trade and a tag, if any.
func (s *TagStore) UnassignTag(ctx context.Context, tradeID, tagID string) error {
	idx := -1
	for i, tt := range s.assignList {
		if tt.TradeID == tradeID && tt.TagID == tagID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrNotFound
	}

	if err := s.tradeTags.Remove(ctx, s.assignList[idx].ID); err != nil {
		return err
	}
	s.assignList = append(s.assignList[:idx], s.assignList[idx+1:]...)
	logging.LogMutation(s.logger, tradeTagPrefix, "unassignTag", tradeID)
	return nil
}

// TagsForTrade returns the tags currently assigned to a trade.
func (s *TagStore) TagsForTrade(tradeID string) []models.Tag {
	assigned := make(map[string]bool)
	for _, tt := range s.assignList {
		if tt.TradeID == tradeID {
			assigned[tt.TagID] = true
		}
	}
	var tags []models.Tag
	for _, tag := range s.tagList {
		if assigned[tag.ID] {
			tags = append(tags, tag)
		}
	}
	return tags
}

// UsageCounts counts assignments in [start, end] grouped by tag name.
func (s *TagStore) UsageCounts(start, end time.Time) map[string]int {
	return metrics.TagUsageCounts(s.tagList, s.assignList, start, end)
}

// Load replaces in-memory state with all persisted tags (sorted by name) and
// assignments (newest first).
func (s *TagStore) Load(ctx context.Context) error {
	tags, err := s.tags.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load tags, starting empty")
		tags = nil
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	s.tagList = tags

	tradeTags, err := s.tradeTags.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load tag assignments, starting empty")
		tradeTags = nil
	}
	sort.SliceStable(tradeTags, func(i, j int) bool {
		return tradeTags[i].Date.After(tradeTags[j].Date)
	})
	s.assignList = tradeTags
	return nil
}

// Restore persists the given tags and assignments verbatim and replaces
// in-memory state.
func (s *TagStore) Restore(ctx context.Context, tags []models.Tag, tradeTags []models.TradeTag) error {
	for _, t := range tags {
		if err := s.tags.Set(ctx, t.ID, t); err != nil {
			return err
		}
	}
	for _, tt := range tradeTags {
		if err := s.tradeTags.Set(ctx, tt.ID, tt); err != nil {
			return err
		}
	}
	s.tagList = append([]models.Tag(nil), tags...)
	s.assignList = append([]models.TradeTag(nil), tradeTags...)
	return nil
}

// Clear removes all tags and assignments, durable and in-memory.
func (s *TagStore) Clear(ctx context.Context) error {
	if err := s.tags.Clear(ctx); err != nil {
		return err
	}
	if err := s.tradeTags.Clear(ctx); err != nil {
		return err
	}
	s.tagList = nil
	s.assignList = nil
	return nil
}
