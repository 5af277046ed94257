// Package backup moves the full journal state in and out of portable files.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/models"
	"tradermind/internal/stores"
)

// Document is the portable snapshot of every store, keyed by store name.
// Records keep their identities through an export/import round trip. The
// tradeTag key carries the tag assignment join records alongside the stores
// they link.
type Document struct {
	ExportedAt time.Time              `json:"exportedAt"`
	Trades     []models.Trade         `json:"trade"`
	Watches    []models.Watch         `json:"watch"`
	Tags       []models.Tag           `json:"tag"`
	TradeTags  []models.TradeTag      `json:"tradeTag"`
	Journal    []models.JournalEntry  `json:"journal"`
	Memories   []models.MemoryItem    `json:"memory"`
	Sticky     []models.StickyNote    `json:"sticky"`
	Settings   models.GeneralSettings `json:"generalSettings"`
}

// Manager exports and imports snapshots against a set of stores.
type Manager struct {
	stores *stores.Stores
	logger zerolog.Logger
}

// NewManager creates a backup manager.
func NewManager(s *stores.Stores, logger zerolog.Logger) *Manager {
	return &Manager{stores: s, logger: logger.With().Str("component", "backup").Logger()}
}

// Snapshot captures the current state of every store.
func (m *Manager) Snapshot() Document {
	return Document{
		ExportedAt: time.Now(),
		Trades:     m.stores.Trades.Trades(),
		Watches:    m.stores.Watches.Watches(),
		Tags:       m.stores.Tags.Tags(),
		TradeTags:  m.stores.Tags.TradeTags(),
		Journal:    m.stores.Journal.Entries(),
		Memories:   m.stores.Memories.Memories(),
		Sticky:     m.stores.Sticky.Notes(),
		Settings:   m.stores.Settings.Settings(),
	}
}

// Export writes the snapshot as indented JSON into dir, named
// tradermind-export-YYYY-MM-DD.json, and returns the file path.
func (m *Manager) Export(dir string) (string, error) {
	doc := m.Snapshot()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode backup")
	}

	name := fmt.Sprintf("tradermind-export-%s.json", doc.ExportedAt.Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.Wrapf(err, "failed to write %s", path)
	}

	m.logger.Info().Str("path", path).
		Int("trades", len(doc.Trades)).
		Int("watches", len(doc.Watches)).
		Msg("Exported backup")
	return path, nil
}

// Import parses the document and replaces every store's contents with it.
// The document is validated in full before any store is touched, so a
// malformed file never leaves the journal partially overwritten.
func (m *Manager) Import(ctx context.Context, data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrap(apperrors.ErrImportFormat, err.Error())
	}
	if err := validate(doc); err != nil {
		return err
	}

	if err := m.restoreAll(ctx, doc); err != nil {
		return err
	}
	m.logger.Info().
		Int("trades", len(doc.Trades)).
		Int("watches", len(doc.Watches)).
		Int("journal", len(doc.Journal)).
		Msg("Imported backup")
	return nil
}

// ImportFile reads and imports a backup file.
func (m *Manager) ImportFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Wrapf(err, "failed to read %s", path)
	}
	return m.Import(ctx, data)
}

func (m *Manager) restoreAll(ctx context.Context, doc Document) error {
	if err := m.stores.Trades.Clear(ctx); err != nil {
		return err
	}
	if err := m.stores.Trades.Restore(ctx, doc.Trades); err != nil {
		return err
	}

	if err := m.stores.Watches.Clear(ctx); err != nil {
		return err
	}
	if err := m.stores.Watches.Restore(ctx, doc.Watches); err != nil {
		return err
	}

	if err := m.stores.Tags.Clear(ctx); err != nil {
		return err
	}
	if err := m.stores.Tags.Restore(ctx, doc.Tags, doc.TradeTags); err != nil {
		return err
	}

	if err := m.stores.Journal.Clear(ctx); err != nil {
		return err
	}
	if err := m.stores.Journal.Restore(ctx, doc.Journal); err != nil {
		return err
	}

	if err := m.stores.Memories.Clear(ctx); err != nil {
		return err
	}
	if err := m.stores.Memories.Restore(ctx, doc.Memories); err != nil {
		return err
	}

	if err := m.stores.Sticky.Clear(ctx); err != nil {
		return err
	}
	if err := m.stores.Sticky.Restore(ctx, doc.Sticky); err != nil {
		return err
	}

	if err := m.stores.Settings.Clear(ctx); err != nil {
		return err
	}
	return m.stores.Settings.Restore(ctx, doc.Settings)
}

// validate rejects documents whose records are missing identities. IDs are
// the storage keys, so a blank one would silently collide.
func validate(doc Document) error {
	for _, t := range doc.Trades {
		if t.ID == "" {
			return apperrors.Wrap(apperrors.ErrImportFormat, "trade with empty id")
		}
	}
	for _, w := range doc.Watches {
		if w.ID == "" {
			return apperrors.Wrap(apperrors.ErrImportFormat, "watch with empty id")
		}
	}
	for _, t := range doc.Tags {
		if t.ID == "" {
			return apperrors.Wrap(apperrors.ErrImportFormat, "tag with empty id")
		}
	}
	for _, tt := range doc.TradeTags {
		if tt.ID == "" {
			return apperrors.Wrap(apperrors.ErrImportFormat, "tag assignment with empty id")
		}
	}
	for _, e := range doc.Journal {
		if e.ID == "" {
			return apperrors.Wrap(apperrors.ErrImportFormat, "journal entry with empty id")
		}
	}
	for _, mem := range doc.Memories {
		if mem.ID == "" {
			return apperrors.Wrap(apperrors.ErrImportFormat, "memory with empty id")
		}
	}
	for _, n := range doc.Sticky {
		if n.ID == "" {
			return apperrors.Wrap(apperrors.ErrImportFormat, "sticky note with empty id")
		}
	}
	return nil
}
