// Package stores holds the domain state containers.
//
// Each store owns one in-memory collection, which is the read path, and
// mirrors every mutation to the durable item store as a full-record
// write-through. The durable copy is only read back by Load at startup.
// Mutations are not serialized against each other: two overlapping mutations
// of the same entity race and the later write wins. Single-user CLI usage
// makes this acceptable, but it is a real property of the design.
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

const tradePrefix = "trade"

// TradeStore manages trades and their action and note logs.
type TradeStore struct {
	items  *store.Collection[models.Trade]
	trades []models.Trade
	logger zerolog.Logger
}

// NewTradeStore creates a trade store backed by the given storage backend.
func NewTradeStore(backend store.Backend, logger zerolog.Logger) *TradeStore {
	return &TradeStore{
		items:  store.NewCollection[models.Trade](backend, tradePrefix),
		logger: logging.WithStore(logger, tradePrefix),
	}
}

// Trades returns the in-memory collection.
func (s *TradeStore) Trades() []models.Trade {
	return s.trades
}

// Find returns the trade with the given id, or ErrNotFound.
func (s *TradeStore) Find(id string) (models.Trade, error) {
	for _, t := range s.trades {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trade{}, apperrors.ErrNotFound
}

// AddTrade opens a new trade from its first action. A single buy or sell
// always leaves a nonzero signed position, so the trade starts active.
func (s *TradeStore) AddTrade(ctx context.Context, symbol, setupType string, action models.TradeAction) (models.Trade, error) {
	action.ID = uuid.NewString()
	if action.Date.IsZero() {
		action.Date = time.Now()
	}

	trade := models.Trade{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Actions:   []models.TradeAction{action},
		Notes:     []models.TradeNote{},
		IsActive:  true,
		SetupType: setupType,
	}

	if err := s.items.Set(ctx, trade.ID, trade); err != nil {
		return models.Trade{}, err
	}
	s.trades = append(s.trades, trade)
	logging.LogMutation(s.logger, tradePrefix, "addTrade", trade.ID)
	return trade, nil
}

// AddAction appends an action to a trade and recomputes its active state.
func (s *TradeStore) AddAction(ctx context.Context, tradeID string, action models.TradeAction) (models.Trade, error) {
	action.ID = uuid.NewString()
	if action.Date.IsZero() {
		action.Date = time.Now()
	}

	return s.mutate(ctx, tradeID, "addAction", func(trade *models.Trade) error {
		trade.Actions = append(trade.Actions, action)
		trade.IsActive = trade.NetShares() > 0
		return nil
	})
}

// UpdateAction replaces the matching action in place, keeping its identity,
// and recomputes the active state from the full updated list.
func (s *TradeStore) UpdateAction(ctx context.Context, tradeID, actionID string, updated models.TradeAction) (models.Trade, error) {
	return s.mutate(ctx, tradeID, "updateAction", func(trade *models.Trade) error {
		found := false
		for i := range trade.Actions {
			if trade.Actions[i].ID == actionID {
				updated.ID = actionID
				trade.Actions[i] = updated
				found = true
				break
			}
		}
		if !found {
			return apperrors.ErrNotFound
		}
		trade.IsActive = trade.NetShares() > 0
		return nil
	})
}

// RemoveAction deletes an action from a trade.
func (s *TradeStore) RemoveAction(ctx context.Context, tradeID, actionID string) (models.Trade, error) {
	return s.mutate(ctx, tradeID, "removeAction", func(trade *models.Trade) error {
		kept := trade.Actions[:0]
		found := false
		for _, a := range trade.Actions {
			if a.ID == actionID {
				found = true
				continue
			}
			kept = append(kept, a)
		}
		if !found {
			return apperrors.ErrNotFound
		}
		trade.Actions = kept
		trade.IsActive = trade.NetShares() > 0
		return nil
	})
}

// AddNote attaches a note to a trade. A non-nil image payload is validated
// and compressed before being embedded; rejection surfaces as an ImageError.
func (s *TradeStore) AddNote(ctx context.Context, tradeID, text string, image []byte) (models.Trade, error) {
	note := models.TradeNote{
		ID:   uuid.NewString(),
		Text: text,
		Date: time.Now(),
	}
	if len(image) > 0 {
		encoded, err := imaging.Process(image, imaging.TradeNoteOptions())
		if err != nil {
			return models.Trade{}, err
		}
		note.Image = encoded
	}

	return s.mutate(ctx, tradeID, "addNote", func(trade *models.Trade) error {
		trade.Notes = append(trade.Notes, note)
		return nil
	})
}

// RemoveNote deletes a note from a trade.
func (s *TradeStore) RemoveNote(ctx context.Context, tradeID, noteID string) (models.Trade, error) {
	return s.mutate(ctx, tradeID, "removeNote", func(trade *models.Trade) error {
		kept := trade.Notes[:0]
		found := false
		for _, n := range trade.Notes {
			if n.ID == noteID {
				found = true
				continue
			}
			kept = append(kept, n)
		}
		if !found {
			return apperrors.ErrNotFound
		}
		trade.Notes = kept
		return nil
	})
}

// RemoveTrade deletes a trade entirely.
func (s *TradeStore) RemoveTrade(ctx context.Context, tradeID string) error {
	idx := -1
	for i, t := range s.trades {
		if t.ID == tradeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrNotFound
	}

	if err := s.items.Remove(ctx, tradeID); err != nil {
		return err
	}
	s.trades = append(s.trades[:idx], s.trades[idx+1:]...)
	logging.LogMutation(s.logger, tradePrefix, "removeTrade", tradeID)
	return nil
}

// Load replaces the in-memory state with all persisted trades, newest last
// action first. Invoked once at startup; afterwards the in-memory copy is
// the sole source of truth until the next start.
func (s *TradeStore) Load(ctx context.Context) error {
	trades, err := s.items.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load trades, starting empty")
		s.trades = nil
		return nil
	}
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].LastActionDate().After(trades[j].LastActionDate())
	})
	s.trades = trades
	return nil
}

// Restore persists the given trades verbatim, preserving identities, and
// replaces the in-memory state. Used by import.
func (s *TradeStore) Restore(ctx context.Context, trades []models.Trade) error {
	for _, t := range trades {
		if err := s.items.Set(ctx, t.ID, t); err != nil {
			return err
		}
	}
	s.trades = append([]models.Trade(nil), trades...)
	return nil
}

// Clear removes every trade, durable and in-memory.
func (s *TradeStore) Clear(ctx context.Context) error {
	if err := s.items.Clear(ctx); err != nil {
		return err
	}
	s.trades = nil
	return nil
}

// mutate applies fn to the identified trade, persists the entire updated
// record, and replaces the in-memory entry. The full record is written, not
// a delta.
func (s *TradeStore) mutate(ctx context.Context, tradeID, op string, fn func(*models.Trade) error) (models.Trade, error) {
	idx := -1
	for i, t := range s.trades {
		if t.ID == tradeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Trade{}, apperrors.ErrNotFound
	}

	updated := cloneTrade(s.trades[idx])
	if err := fn(&updated); err != nil {
		return models.Trade{}, err
	}

	if err := s.items.Set(ctx, tradeID, updated); err != nil {
		return models.Trade{}, err
	}
	s.trades[idx] = updated
	logging.LogMutation(s.logger, tradePrefix, op, tradeID)
	return updated, nil
}

func cloneTrade(t models.Trade) models.Trade {
	out := t
	out.Actions = append([]models.TradeAction(nil), t.Actions...)
	out.Notes = append([]models.TradeNote(nil), t.Notes...)
	return out
}
