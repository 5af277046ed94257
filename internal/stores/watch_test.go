package stores

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/models"
	"tradermind/internal/store"
)

func newTestWatchStore() *WatchStore {
	return NewWatchStore(store.NewMemoryBackend(), zerolog.Nop())
}

func TestAddWatch(t *testing.T) {
	s := newTestWatchStore()
	ctx := context.Background()

	watch, err := s.AddWatch(ctx, "NVDA", []models.WatchStatus{models.StatusWatching})
	require.NoError(t, err)

	assert.NotEmpty(t, watch.ID)
	assert.Equal(t, "NVDA", watch.Symbol)
	assert.False(t, watch.LastUpdated.IsZero())
}

func TestAddWatchRejectsUnknownStatus(t *testing.T) {
	s := newTestWatchStore()

	_, err := s.AddWatch(context.Background(), "NVDA", []models.WatchStatus{"BOGUS"})
	var valErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestWatchNotesLifecycle(t *testing.T) {
	s := newTestWatchStore()
	ctx := context.Background()

	watch, err := s.AddWatch(ctx, "NVDA", []models.WatchStatus{models.StatusWatching})
	require.NoError(t, err)
	before := watch.LastUpdated

	time.Sleep(time.Millisecond)
	watch, err = s.AddNote(ctx, watch.ID, "holding the 20d", models.StatusSetupSuccess)
	require.NoError(t, err)
	require.Len(t, watch.Notes, 1)
	assert.True(t, watch.LastUpdated.After(before), "adding a note bumps LastUpdated")

	noteID := watch.Notes[0].ID
	watch, err = s.UpdateNote(ctx, watch.ID, noteID, "failed the retest", models.StatusFailed)
	require.NoError(t, err)
	assert.Equal(t, "failed the retest", watch.Notes[0].Content)
	assert.Equal(t, models.StatusFailed, watch.Notes[0].Status)

	bumped := watch.LastUpdated
	watch, err = s.RemoveNote(ctx, watch.ID, noteID)
	require.NoError(t, err)
	assert.Empty(t, watch.Notes)
	assert.Equal(t, bumped, watch.LastUpdated, "removing a note does not bump LastUpdated")

	_, err = s.RemoveNote(ctx, watch.ID, noteID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateStatuses(t *testing.T) {
	s := newTestWatchStore()
	ctx := context.Background()

	watch, err := s.AddWatch(ctx, "NVDA", []models.WatchStatus{models.StatusWatching})
	require.NoError(t, err)

	watch, err = s.UpdateStatuses(ctx, watch.ID, []models.WatchStatus{models.StatusTip, models.StatusSetupSuccess})
	require.NoError(t, err)
	assert.Equal(t, []models.WatchStatus{models.StatusTip, models.StatusSetupSuccess}, watch.Statuses)

	_, err = s.UpdateStatuses(ctx, watch.ID, []models.WatchStatus{"NOPE"})
	var valErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestWatchLoadSortsByLastUpdated(t *testing.T) {
	backend := store.NewMemoryBackend()
	s := NewWatchStore(backend, zerolog.Nop())
	ctx := context.Background()

	older := models.Watch{ID: "w1", Symbol: "OLD", LastUpdated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.Watch{ID: "w2", Symbol: "NEW", LastUpdated: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Restore(ctx, []models.Watch{older, newer}))

	reloaded := NewWatchStore(backend, zerolog.Nop())
	require.NoError(t, reloaded.Load(ctx))

	watches := reloaded.Watches()
	require.Len(t, watches, 2)
	assert.Equal(t, "w2", watches[0].ID)
}

func TestRemoveWatch(t *testing.T) {
	s := newTestWatchStore()
	ctx := context.Background()

	watch, err := s.AddWatch(ctx, "NVDA", nil)
	require.NoError(t, err)

	require.NoError(t, s.RemoveWatch(ctx, watch.ID))
	assert.Empty(t, s.Watches())
	assert.ErrorIs(t, s.RemoveWatch(ctx, watch.ID), apperrors.ErrNotFound)
}
