package stores

import (
	"context"

	"github.com/rs/zerolog"

	"tradermind/internal/store"
)

// Stores bundles every domain store over one shared backend.
type Stores struct {
	Trades   *TradeStore
	Watches  *WatchStore
	Tags     *TagStore
	Journal  *JournalStore
	Memories *MemoryStore
	Sticky   *StickyStore
	Settings *SettingsStore
}

// NewStores wires all domain stores onto a single backend.
func NewStores(backend store.Backend, logger zerolog.Logger) *Stores {
	return &Stores{
		Trades:   NewTradeStore(backend, logger),
		Watches:  NewWatchStore(backend, logger),
		Tags:     NewTagStore(backend, logger),
		Journal:  NewJournalStore(backend, logger),
		Memories: NewMemoryStore(backend, logger),
		Sticky:   NewStickyStore(backend, logger),
		Settings: NewSettingsStore(backend, logger),
	}
}

// LoadAll hydrates every store from the backend. Individual stores degrade
// to empty state on read failures, so this only fails on hard errors.
func (s *Stores) LoadAll(ctx context.Context) error {
	if err := s.Trades.Load(ctx); err != nil {
		return err
	}
	if err := s.Watches.Load(ctx); err != nil {
		return err
	}
	if err := s.Tags.Load(ctx); err != nil {
		return err
	}
	if err := s.Journal.Load(ctx); err != nil {
		return err
	}
	if err := s.Memories.Load(ctx); err != nil {
		return err
	}
	if err := s.Sticky.Load(ctx); err != nil {
		return err
	}
	return s.Settings.Load(ctx)
}
