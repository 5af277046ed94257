package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradermind/internal/models"
)

func closedTrade(symbol string, actions ...models.TradeAction) models.Trade {
	return models.Trade{ID: symbol, Symbol: symbol, Actions: actions, IsActive: false}
}

func TestMonthStats(t *testing.T) {
	trades := []models.Trade{
		closedTrade("WIN",
			buy(10, 100, day(1)),
			sell(13, 100, day(5)),
		),
		closedTrade("LOSS",
			buy(10, 100, day(2)),
			sell(9, 100, day(10)),
		),
	}

	stats := MonthStats(trades, day(15), 100000)

	assert.Equal(t, 2, stats.TotalTrades)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.InDelta(t, 200.0, stats.PnL, 1e-9)
	assert.InDelta(t, 50.0, stats.WinRate(), 1e-9)
	require.NotNil(t, stats.PercentChange)
	assert.InDelta(t, 0.2, *stats.PercentChange, 1e-9)
}

func TestMonthStatsSkipsActiveAndForeignMonths(t *testing.T) {
	active := closedTrade("OPEN", buy(10, 100, day(3)))
	active.IsActive = true

	trades := []models.Trade{
		active,
		closedTrade("FEB",
			buy(10, 100, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)),
			sell(15, 100, time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)),
		),
		// Opened in February, closed in March: attributed to March.
		closedTrade("SPAN",
			buy(10, 100, time.Date(2024, 2, 25, 10, 0, 0, 0, time.UTC)),
			sell(11, 100, day(4)),
		),
	}

	stats := MonthStats(trades, day(15), 100000)
	assert.Equal(t, 1, stats.TotalTrades)
	assert.InDelta(t, 100.0, stats.PnL, 1e-9)
}

func TestDayStats(t *testing.T) {
	trades := []models.Trade{
		closedTrade("A", buy(10, 100, day(1)), sell(12, 100, day(2))),
		closedTrade("B", buy(10, 100, day(1)), sell(12, 100, day(3))),
	}

	stats := DayStats(trades, day(2), 0)
	assert.Equal(t, 1, stats.TotalTrades)
	assert.InDelta(t, 200.0, stats.PnL, 1e-9)
	assert.Nil(t, stats.PercentChange, "no account size configured")
}

func TestDayStatsBreakEvenCountsAsLoss(t *testing.T) {
	trades := []models.Trade{
		closedTrade("FLAT", buy(10, 100, day(1)), sell(10, 100, day(2))),
	}

	stats := DayStats(trades, day(2), 100000)
	assert.Equal(t, 0, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
}

func TestDayStatsEmptyBucket(t *testing.T) {
	stats := DayStats(nil, day(1), 100000)
	assert.Equal(t, 0, stats.TotalTrades)
	assert.Equal(t, 0.0, stats.WinRate())
	assert.Nil(t, stats.PercentChange)
}

func TestTagUsageCounts(t *testing.T) {
	tags := []models.Tag{
		{ID: "t1", Name: "breakout"},
		{ID: "t2", Name: "reversal"},
	}
	tradeTags := []models.TradeTag{
		{ID: "a1", TagID: "t1", TradeID: "tr1", Date: day(1)},
		{ID: "a2", TagID: "t1", TradeID: "tr2", Date: day(5)},
		{ID: "a3", TagID: "t2", TradeID: "tr1", Date: day(5)},
		{ID: "a4", TagID: "t1", TradeID: "tr3", Date: day(25)},
		{ID: "a5", TagID: "missing", TradeID: "tr1", Date: day(5)},
	}

	counts := TagUsageCounts(tags, tradeTags, day(1), day(10))

	assert.Equal(t, map[string]int{"breakout": 2, "reversal": 1}, counts)
}
