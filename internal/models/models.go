package models

import "time"

// Tag classifies trades; Color is a display token, not interpreted here.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TradeTag joins a trade to a tag. Date is the assignment time and drives
// the tag usage report.
type TradeTag struct {
	ID      string    `json:"id"`
	TagID   string    `json:"tagId"`
	TradeID string    `json:"tradeId"`
	Date    time.Time `json:"date"`
}

// JournalEntry is a free-form dated journal record.
type JournalEntry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
}

// MemoryItem is a reference image with a caption and free-form tags.
// ImageData is a base64 data URL, compressed at ingestion.
type MemoryItem struct {
	ID        string    `json:"id"`
	ImageData string    `json:"imageData"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// StickyNote is a short tagged note with a display color assigned at creation.
type StickyNote struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"createdAt"`
	Color     string    `json:"color"`
}

// GeneralSettings is the singleton settings record read by position sizing
// and percentage-change reporting.
type GeneralSettings struct {
	AccountSize  float64 `json:"accountSize"`
	RiskPerTrade float64 `json:"riskPerTrade"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() GeneralSettings {
	return GeneralSettings{AccountSize: 100000, RiskPerTrade: 1}
}
