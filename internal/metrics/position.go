// Package metrics computes derived trade metrics.
//
// Every function here is a pure function of its inputs. The position model is
// average-cost: a sell removes shares at the running average price, not by
// FIFO/LIFO lot matching, so the realized/unrealized split is approximate.
// Downstream reports depend on this model; do not switch it to lot accounting.
package metrics

import (
	"math"
	"sort"

	"tradermind/internal/models"
)

// Position is the running state derived from a trade's action history.
type Position struct {
	Shares    float64
	CostBasis float64
	AvgPrice  float64
}

// ComputePosition folds the actions in chronological order. Buys add
// price*quantity to the cost basis; sells remove quantity shares at the
// current average price. AvgPrice is 0 whenever Shares is 0.
func ComputePosition(actions []models.TradeAction) Position {
	ordered := sortedByDate(actions)

	var pos Position
	for _, a := range ordered {
		switch a.Type {
		case models.ActionBuy:
			pos.Shares += a.Quantity
			pos.CostBasis += a.Price * a.Quantity
		case models.ActionSell:
			pos.CostBasis -= pos.AvgPrice * a.Quantity
			pos.Shares -= a.Quantity
		}
		if pos.Shares != 0 {
			pos.AvgPrice = pos.CostBasis / pos.Shares
		} else {
			pos.AvgPrice = 0
		}
	}
	return pos
}

// CalculatePnL is the signed cash flow over the full action list: sells
// contribute +price*quantity, buys -price*quantity. It treats the whole
// history as closed, so it is only meaningful once the trade is inactive;
// on a partially open trade it mixes unrealized exposure into the number.
func CalculatePnL(actions []models.TradeAction) float64 {
	var pnl float64
	for _, a := range actions {
		switch a.Type {
		case models.ActionBuy:
			pnl -= a.Price * a.Quantity
		case models.ActionSell:
			pnl += a.Price * a.Quantity
		}
	}
	return pnl
}

// CalculateRiskPercentage reports the risk of the most recent buy action that
// carries a stop-loss: (entry - stop) / entry * 100. When no buy has a stop
// set, risk is 0, not unknown.
func CalculateRiskPercentage(actions []models.TradeAction) float64 {
	ordered := sortedByDate(actions)

	for i := len(ordered) - 1; i >= 0; i-- {
		a := ordered[i]
		if a.Type != models.ActionBuy || a.StopLoss == nil {
			continue
		}
		if a.Price == 0 {
			return 0
		}
		return (a.Price - *a.StopLoss) / a.Price * 100
	}
	return 0
}

// SuggestShares sizes a position from the configured account risk: max risk
// amount is accountSize*riskPerTrade/100, and the suggestion is that amount
// divided by the per-share risk, floored. Returns 0 when entry equals stop
// or any input makes the computation undefined.
func SuggestShares(entryPrice, stopLoss, accountSize, riskPerTrade float64) int {
	riskPerShare := math.Abs(entryPrice - stopLoss)
	if riskPerShare == 0 || accountSize <= 0 || riskPerTrade <= 0 {
		return 0
	}
	maxRiskAmount := accountSize * riskPerTrade / 100
	return int(math.Floor(maxRiskAmount / riskPerShare))
}

// RiskReward returns the reward-to-risk ratio of an entry with a stop and a
// target, or 0 when the stop distance is zero.
func RiskReward(entryPrice, stopLoss, targetPrice float64) float64 {
	risk := math.Abs(entryPrice - stopLoss)
	if risk == 0 {
		return 0
	}
	return math.Abs(targetPrice-entryPrice) / risk
}

// sortedByDate returns a copy of actions in chronological order. The action
// log keeps insertion order and dates are user-editable, so the order must
// be re-derived here rather than trusted.
func sortedByDate(actions []models.TradeAction) []models.TradeAction {
	ordered := make([]models.TradeAction, len(actions))
	copy(ordered, actions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return ordered
}
