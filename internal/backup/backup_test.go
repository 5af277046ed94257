package backup

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/metrics"
	"tradermind/internal/models"
	"tradermind/internal/store"
	"tradermind/internal/stores"
)

func seedStores(t *testing.T) *stores.Stores {
	t.Helper()
	s := stores.NewStores(store.NewMemoryBackend(), zerolog.Nop())
	ctx := context.Background()

	_, err := s.Trades.AddTrade(ctx, "AAPL", "breakout", models.TradeAction{
		Type: models.ActionBuy, Price: 100, Quantity: 10, Date: time.Now(),
	})
	require.NoError(t, err)

	_, err = s.Watches.AddWatch(ctx, "NVDA", []models.WatchStatus{models.StatusWatching})
	require.NoError(t, err)

	tag, err := s.Tags.AddTag(ctx, "earnings", "blue")
	require.NoError(t, err)
	_, err = s.Tags.AssignTag(ctx, s.Trades.Trades()[0].ID, tag.ID)
	require.NoError(t, err)

	_, err = s.Journal.AddEntry(ctx, time.Now(), "solid day")
	require.NoError(t, err)

	_, err = s.Sticky.AddNote(ctx, "rules", "wait for the close")
	require.NoError(t, err)

	_, err = s.Settings.SetAccountSize(ctx, 50000)
	require.NoError(t, err)

	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := seedStores(t)
	manager := NewManager(source, zerolog.Nop())

	dir := t.TempDir()
	path, err := manager.Export(dir)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "tradermind-export-")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Import into a completely separate set of stores.
	target := stores.NewStores(store.NewMemoryBackend(), zerolog.Nop())
	require.NoError(t, NewManager(target, zerolog.Nop()).Import(ctx, data))

	assert.Len(t, target.Trades.Trades(), 1)
	assert.Len(t, target.Watches.Watches(), 1)
	assert.Len(t, target.Tags.Tags(), 1)
	assert.Len(t, target.Tags.TradeTags(), 1)
	assert.Len(t, target.Journal.Entries(), 1)
	assert.Len(t, target.Sticky.Notes(), 1)
	assert.Equal(t, 50000.0, target.Settings.Settings().AccountSize)

	// Identities survive the round trip.
	assert.Equal(t, source.Trades.Trades()[0].ID, target.Trades.Trades()[0].ID)
	assert.Equal(t, source.Trades.Trades()[0].Actions[0].ID, target.Trades.Trades()[0].Actions[0].ID)

	// Derived metrics are unchanged on the imported data.
	srcPnL := metrics.CalculatePnL(source.Trades.Trades()[0].Actions)
	dstPnL := metrics.CalculatePnL(target.Trades.Trades()[0].Actions)
	assert.Equal(t, srcPnL, dstPnL)
}

// The document is keyed by store name; external consumers depend on these
// exact keys.
func TestDocumentKeyedByStoreName(t *testing.T) {
	data, err := json.Marshal(Document{})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"trade", "watch", "tag", "tradeTag", "journal", "memory", "sticky", "generalSettings", "exportedAt"} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 9)
}

func TestImportReplacesExistingData(t *testing.T) {
	ctx := context.Background()
	source := seedStores(t)

	snapshot, err := NewManager(source, zerolog.Nop()).Export(t.TempDir())
	require.NoError(t, err)

	target := seedStores(t)
	_, err = target.Trades.AddTrade(ctx, "DOOMED", "", models.TradeAction{
		Type: models.ActionBuy, Price: 1, Quantity: 1, Date: time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, target.Trades.Trades(), 2)

	require.NoError(t, NewManager(target, zerolog.Nop()).ImportFile(ctx, snapshot))

	require.Len(t, target.Trades.Trades(), 1)
	assert.Equal(t, "AAPL", target.Trades.Trades()[0].Symbol)
}

func TestImportRejectsMalformedDocument(t *testing.T) {
	ctx := context.Background()
	target := seedStores(t)
	manager := NewManager(target, zerolog.Nop())

	err := manager.Import(ctx, []byte("{not json"))
	assert.ErrorIs(t, err, apperrors.ErrImportFormat)

	err = manager.Import(ctx, []byte(`{"trade":[{"symbol":"NOID"}]}`))
	assert.ErrorIs(t, err, apperrors.ErrImportFormat)

	// Existing data is untouched after a rejected import.
	assert.Len(t, target.Trades.Trades(), 1)
	assert.Equal(t, "AAPL", target.Trades.Trades()[0].Symbol)
}

func TestWriteClosedTradesCSV(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	trades := []models.Trade{
		{
			ID: "closed", Symbol: "AAPL", SetupType: "breakout", IsActive: false,
			Actions: []models.TradeAction{
				{Type: models.ActionBuy, Price: 100, Quantity: 10, Date: day1},
				{Type: models.ActionSell, Price: 110, Quantity: 10, Date: day2},
			},
		},
		{
			ID: "open", Symbol: "TSLA", IsActive: true,
			Actions: []models.TradeAction{
				{Type: models.ActionBuy, Price: 200, Quantity: 5, Date: day1},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, WriteClosedTradesCSV(trades, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus the single closed trade")

	assert.Equal(t, []string{"symbol", "setup_type", "actions", "opened", "closed", "pnl"}, rows[0])
	assert.Equal(t, "AAPL", rows[1][0])
	assert.Equal(t, "2024-03-01", rows[1][3])
	assert.Equal(t, "2024-03-05", rows[1][4])
	assert.Equal(t, "100", rows[1][5])
}
