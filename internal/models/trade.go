// Package models defines the domain records of the trading journal.
package models

import "time"

// ActionType is the direction of a trade action.
type ActionType string

const (
	ActionBuy  ActionType = "buy"
	ActionSell ActionType = "sell"
)

// TradeAction is a single buy or sell event belonging to a trade.
type TradeAction struct {
	ID          string     `json:"id"`
	Type        ActionType `json:"type"`
	Price       float64    `json:"price"`
	Quantity    float64    `json:"quantity"`
	Date        time.Time  `json:"date"`
	StopLoss    *float64   `json:"stopLoss,omitempty"`
	TargetPrice *float64   `json:"targetPrice,omitempty"`
	Note        string     `json:"notes,omitempty"`
}

// SignedQuantity returns the quantity with buys positive and sells negative.
func (a TradeAction) SignedQuantity() float64 {
	if a.Type == ActionSell {
		return -a.Quantity
	}
	return a.Quantity
}

// TradeNote is an annotation attached to a trade, optionally carrying an
// embedded image as a base64 data URL.
type TradeNote struct {
	ID    string    `json:"id"`
	Text  string    `json:"text"`
	Date  time.Time `json:"date"`
	Image string    `json:"image,omitempty"`
}

// Trade is a position on a symbol, built from an ordered action log.
// Actions keep insertion order; computations that need chronological order
// sort by the Date field, since the log does not enforce monotonic dates.
type Trade struct {
	ID        string        `json:"id"`
	Symbol    string        `json:"symbol"`
	Actions   []TradeAction `json:"actions"`
	Notes     []TradeNote   `json:"notes"`
	IsActive  bool          `json:"isActive"`
	SetupType string        `json:"setupType,omitempty"`
}

// NetShares is the signed sum of action quantities.
func (t Trade) NetShares() float64 {
	var total float64
	for _, a := range t.Actions {
		total += a.SignedQuantity()
	}
	return total
}

// LastActionDate returns the latest action date, or the zero time when the
// trade has no actions. Used as the close time of inactive trades.
func (t Trade) LastActionDate() time.Time {
	var last time.Time
	for _, a := range t.Actions {
		if a.Date.After(last) {
			last = a.Date
		}
	}
	return last
}
