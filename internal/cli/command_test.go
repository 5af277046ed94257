package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradermind/internal/config"
	"tradermind/internal/models"
	"tradermind/internal/store"
	"tradermind/internal/stores"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	s := stores.NewStores(store.NewMemoryBackend(), zerolog.Nop())
	return &App{
		Config: &config.Config{
			Storage: config.StorageConfig{DataDir: t.TempDir(), DatabaseFile: "journal.db"},
			Logging: config.LoggingConfig{Level: "info", Console: true, File: true},
		},
		Logger: zerolog.Nop(),
		Stores: s,
	}
}

func TestConfigShowRendersBooleans(t *testing.T) {
	app := newTestApp(t)
	cmd := newConfigCmd(app)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"show"})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "File:      true")
	assert.Contains(t, out, "Console:   true")
	assert.NotContains(t, out, "%!s")
}

func TestTradeShowRendersRiskReward(t *testing.T) {
	app := newTestApp(t)

	stop, target := 90.0, 120.0
	trade, err := app.Stores.Trades.AddTrade(context.Background(), "AAPL", "breakout", models.TradeAction{
		Type:        models.ActionBuy,
		Price:       100,
		Quantity:    10,
		Date:        time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		StopLoss:    &stop,
		TargetPrice: &target,
	})
	require.NoError(t, err)

	cmd := newTradeShowCmd(app)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{trade.ID})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "R/R")
	// Risk 10, reward 20.
	assert.Contains(t, out, "1:2.00")
}

func TestTradeShowOmitsRiskRewardWithoutTarget(t *testing.T) {
	app := newTestApp(t)

	stop := 90.0
	trade, err := app.Stores.Trades.AddTrade(context.Background(), "TSLA", "", models.TradeAction{
		Type:     models.ActionBuy,
		Price:    100,
		Quantity: 5,
		Date:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		StopLoss: &stop,
	})
	require.NoError(t, err)

	cmd := newTradeShowCmd(app)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{trade.ID})
	require.NoError(t, cmd.Execute())

	assert.NotContains(t, buf.String(), "1:")
}
