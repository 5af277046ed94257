// Package store provides data persistence interfaces and implementations.
//
// Persistence is key-value: every record is serialized to JSON and stored
// under a "{prefix}:{id}" key. A Collection binds one record type to one
// prefix; the Backend below it is swappable (SQLite for real use, an
// in-memory map for tests).
package store

import (
	"context"
	"encoding/json"
	"strings"

	apperrors "tradermind/internal/errors"
)

// Backend is the raw key-value storage underneath all collections.
// Operations are single-item-atomic; there is no cross-item transaction.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Collection is a typed, key-prefixed view of a Backend.
type Collection[T any] struct {
	backend Backend
	prefix  string
}

// NewCollection creates a collection storing records of type T under the
// given key prefix.
func NewCollection[T any](backend Backend, prefix string) *Collection[T] {
	return &Collection[T]{backend: backend, prefix: prefix}
}

// Prefix returns the collection's key prefix.
func (c *Collection[T]) Prefix() string {
	return c.prefix
}

func (c *Collection[T]) key(id string) string {
	return c.prefix + ":" + id
}

// Get retrieves the record with the given id. Returns ErrNotFound when the
// key is absent.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	data, ok, err := c.backend.Get(ctx, c.key(id))
	if err != nil {
		return zero, apperrors.NewStorageError("get", c.key(id), err)
	}
	if !ok {
		return zero, apperrors.ErrNotFound
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, apperrors.NewStorageError("decode", c.key(id), err)
	}
	return value, nil
}

// Set writes the record under the given id, replacing any previous value.
func (c *Collection[T]) Set(ctx context.Context, id string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewStorageError("encode", c.key(id), err)
	}
	if err := c.backend.Set(ctx, c.key(id), data); err != nil {
		return apperrors.NewStorageError("set", c.key(id), err)
	}
	return nil
}

// Remove deletes the record with the given id. Removing an absent id is not
// an error.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	if err := c.backend.Delete(ctx, c.key(id)); err != nil {
		return apperrors.NewStorageError("remove", c.key(id), err)
	}
	return nil
}

// GetAll returns every record under the collection's prefix. Records that
// fail to decode are skipped; the caller decides whether to log them.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	keys, err := c.backend.Keys(ctx, c.prefix+":")
	if err != nil {
		return nil, apperrors.NewStorageError("keys", c.prefix, err)
	}

	items := make([]T, 0, len(keys))
	for _, key := range keys {
		data, ok, err := c.backend.Get(ctx, key)
		if err != nil {
			return nil, apperrors.NewStorageError("get", key, err)
		}
		if !ok {
			continue
		}
		var value T
		if err := json.Unmarshal(data, &value); err != nil {
			continue
		}
		items = append(items, value)
	}
	return items, nil
}

// Clear removes every record under the collection's prefix.
func (c *Collection[T]) Clear(ctx context.Context) error {
	keys, err := c.backend.Keys(ctx, c.prefix+":")
	if err != nil {
		return apperrors.NewStorageError("keys", c.prefix, err)
	}
	for _, key := range keys {
		if err := c.backend.Delete(ctx, key); err != nil {
			return apperrors.NewStorageError("clear", key, err)
		}
	}
	return nil
}

// IDFromKey strips the collection prefix from a full storage key.
func IDFromKey(prefix, key string) string {
	return strings.TrimPrefix(key, prefix+":")
}
