package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradermind/internal/models"
)

func buy(price, qty float64, date time.Time) models.TradeAction {
	return models.TradeAction{Type: models.ActionBuy, Price: price, Quantity: qty, Date: date}
}

func sell(price, qty float64, date time.Time) models.TradeAction {
	return models.TradeAction{Type: models.ActionSell, Price: price, Quantity: qty, Date: date}
}

func buyWithStop(price, qty, stop float64, date time.Time) models.TradeAction {
	a := buy(price, qty, date)
	a.StopLoss = &stop
	return a
}

var day = func(n int) time.Time {
	return time.Date(2024, 3, n, 10, 0, 0, 0, time.UTC)
}

func TestComputePosition(t *testing.T) {
	t.Run("single buy", func(t *testing.T) {
		pos := ComputePosition([]models.TradeAction{buy(10, 100, day(1))})
		assert.Equal(t, 100.0, pos.Shares)
		assert.Equal(t, 1000.0, pos.CostBasis)
		assert.Equal(t, 10.0, pos.AvgPrice)
	})

	t.Run("averaging up", func(t *testing.T) {
		pos := ComputePosition([]models.TradeAction{
			buy(10, 100, day(1)),
			buy(20, 100, day(2)),
		})
		assert.Equal(t, 200.0, pos.Shares)
		assert.Equal(t, 15.0, pos.AvgPrice)
	})

	t.Run("sell removes at average price", func(t *testing.T) {
		pos := ComputePosition([]models.TradeAction{
			buy(10, 100, day(1)),
			buy(20, 100, day(2)),
			sell(25, 100, day(3)),
		})
		assert.Equal(t, 100.0, pos.Shares)
		assert.Equal(t, 15.0, pos.AvgPrice)
	})

	t.Run("flat position has zero average", func(t *testing.T) {
		pos := ComputePosition([]models.TradeAction{
			buy(10, 100, day(1)),
			sell(12, 100, day(2)),
		})
		assert.Equal(t, 0.0, pos.Shares)
		assert.Equal(t, 0.0, pos.AvgPrice)
	})

	t.Run("order is by date, not insertion", func(t *testing.T) {
		// The sell dated after the buy folds last even when listed first.
		pos := ComputePosition([]models.TradeAction{
			sell(12, 50, day(3)),
			buy(10, 100, day(1)),
		})
		assert.Equal(t, 50.0, pos.Shares)
		assert.Equal(t, 10.0, pos.AvgPrice)
	})

	t.Run("empty", func(t *testing.T) {
		pos := ComputePosition(nil)
		assert.Equal(t, 0.0, pos.Shares)
		assert.Equal(t, 0.0, pos.AvgPrice)
	})
}

func TestCalculatePnL(t *testing.T) {
	t.Run("closed winner", func(t *testing.T) {
		pnl := CalculatePnL([]models.TradeAction{
			buy(10, 100, day(1)),
			sell(12, 100, day(2)),
		})
		assert.InDelta(t, 200.0, pnl, 1e-9)
	})

	t.Run("closed loser", func(t *testing.T) {
		pnl := CalculatePnL([]models.TradeAction{
			buy(10, 100, day(1)),
			sell(9, 100, day(2)),
		})
		assert.InDelta(t, -100.0, pnl, 1e-9)
	})

	t.Run("break even", func(t *testing.T) {
		pnl := CalculatePnL([]models.TradeAction{
			buy(10, 100, day(1)),
			sell(10, 100, day(2)),
		})
		assert.InDelta(t, 0.0, pnl, 1e-9)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculatePnL(nil))
	})
}

func TestCalculateRiskPercentage(t *testing.T) {
	t.Run("uses latest buy with stop", func(t *testing.T) {
		risk := CalculateRiskPercentage([]models.TradeAction{
			buyWithStop(20, 50, 18, day(1)),
		})
		assert.InDelta(t, 10.0, risk, 1e-9)
	})

	t.Run("later buy wins", func(t *testing.T) {
		risk := CalculateRiskPercentage([]models.TradeAction{
			buyWithStop(20, 50, 18, day(1)),
			buyWithStop(100, 50, 95, day(2)),
		})
		assert.InDelta(t, 5.0, risk, 1e-9)
	})

	t.Run("no stop means zero risk", func(t *testing.T) {
		risk := CalculateRiskPercentage([]models.TradeAction{
			buy(20, 50, day(1)),
			sell(22, 50, day(2)),
		})
		assert.Equal(t, 0.0, risk)
	})

	t.Run("zero entry price guarded", func(t *testing.T) {
		risk := CalculateRiskPercentage([]models.TradeAction{
			buyWithStop(0, 50, 0, day(1)),
		})
		assert.Equal(t, 0.0, risk)
	})
}

func TestSuggestShares(t *testing.T) {
	t.Run("standard sizing", func(t *testing.T) {
		// 100k account, 1% risk = 1000 at risk; 2 per share -> 500 shares.
		assert.Equal(t, 500, SuggestShares(20, 18, 100000, 1))
	})

	t.Run("floors fractional shares", func(t *testing.T) {
		assert.Equal(t, 333, SuggestShares(10, 7, 100000, 1))
	})

	t.Run("entry equals stop", func(t *testing.T) {
		assert.Equal(t, 0, SuggestShares(20, 20, 100000, 1))
	})

	t.Run("no account size", func(t *testing.T) {
		assert.Equal(t, 0, SuggestShares(20, 18, 0, 1))
	})

	t.Run("no risk budget", func(t *testing.T) {
		assert.Equal(t, 0, SuggestShares(20, 18, 100000, 0))
	})
}

func TestRiskReward(t *testing.T) {
	assert.InDelta(t, 2.0, RiskReward(100, 95, 110), 1e-9)
	assert.Equal(t, 0.0, RiskReward(100, 100, 110))
}
