package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tradermind/internal/errors"
)

type record struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	sqlite, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Backend{
		"sqlite": sqlite,
		"memory": NewMemoryBackend(),
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := NewCollection[record](backend, "rec")

			require.NoError(t, coll.Set(ctx, "a", record{ID: "a", Value: 1}))
			require.NoError(t, coll.Set(ctx, "b", record{ID: "b", Value: 2}))

			got, err := coll.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, record{ID: "a", Value: 1}, got)

			all, err := coll.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)
		})
	}
}

func TestCollectionGetMissing(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			coll := NewCollection[record](backend, "rec")
			_, err := coll.Get(context.Background(), "nope")
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	}
}

func TestCollectionSetOverwrites(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := NewCollection[record](backend, "rec")

			require.NoError(t, coll.Set(ctx, "a", record{ID: "a", Value: 1}))
			require.NoError(t, coll.Set(ctx, "a", record{ID: "a", Value: 9}))

			got, err := coll.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, 9, got.Value)

			all, err := coll.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestCollectionGetAllIdempotent(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := NewCollection[record](backend, "rec")

			for i, id := range []string{"a", "b", "c"} {
				require.NoError(t, coll.Set(ctx, id, record{ID: id, Value: i}))
			}

			first, err := coll.GetAll(ctx)
			require.NoError(t, err)
			second, err := coll.GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, first, second, "repeated scans without writes must agree")
		})
	}
}

func TestCollectionRemove(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := NewCollection[record](backend, "rec")

			require.NoError(t, coll.Set(ctx, "a", record{ID: "a"}))
			require.NoError(t, coll.Remove(ctx, "a"))

			_, err := coll.Get(ctx, "a")
			assert.ErrorIs(t, err, apperrors.ErrNotFound)

			// Removing an absent id is not an error.
			assert.NoError(t, coll.Remove(ctx, "a"))
		})
	}
}

func TestCollectionPrefixIsolation(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			tags := NewCollection[record](backend, "tag")
			assignments := NewCollection[record](backend, "trade-tag")

			require.NoError(t, tags.Set(ctx, "1", record{ID: "1"}))
			require.NoError(t, assignments.Set(ctx, "2", record{ID: "2"}))

			tagItems, err := tags.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, tagItems, 1, "tag scan must not pick up trade-tag keys")

			require.NoError(t, tags.Clear(ctx))

			left, err := assignments.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, left, 1, "clearing tags must not touch trade-tags")
		})
	}
}

func TestCollectionClear(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := NewCollection[record](backend, "rec")

			for _, id := range []string{"a", "b", "c"} {
				require.NoError(t, coll.Set(ctx, id, record{ID: id}))
			}
			require.NoError(t, coll.Clear(ctx))

			all, err := coll.GetAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	backend, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	coll := NewCollection[record](backend, "rec")
	require.NoError(t, coll.Set(ctx, "a", record{ID: "a", Value: 42}))
	require.NoError(t, backend.Close())

	reopened, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := NewCollection[record](reopened, "rec").Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 42, got.Value)
}

func TestEscapeLike(t *testing.T) {
	ctx := context.Background()
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "like.db"))
	require.NoError(t, err)
	defer backend.Close()

	// A literal % in the prefix must not act as a wildcard.
	require.NoError(t, backend.Set(ctx, "a%b:1", []byte("x")))
	require.NoError(t, backend.Set(ctx, "aXb:1", []byte("y")))

	keys, err := backend.Keys(ctx, "a%b:")
	require.NoError(t, err)
	assert.Equal(t, []string{"a%b:1"}, keys)
}

func TestIDFromKey(t *testing.T) {
	assert.Equal(t, "abc", IDFromKey("trade", "trade:abc"))
	assert.Equal(t, "x:y", IDFromKey("trade", "trade:x:y"))
}
