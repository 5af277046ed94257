package models

import "time"

// WatchStatus labels the state of a watched symbol.
type WatchStatus string

const (
	StatusSetupSuccess WatchStatus = "SETUP_SUCCESS"
	StatusTip          WatchStatus = "TIP"
	StatusWatching     WatchStatus = "WATCHING"
	StatusFailed       WatchStatus = "FAILED"
)

// ValidWatchStatus reports whether s is one of the known status labels.
func ValidWatchStatus(s WatchStatus) bool {
	switch s {
	case StatusSetupSuccess, StatusTip, StatusWatching, StatusFailed:
		return true
	}
	return false
}

// WatchNote is a dated observation on a watched symbol, carrying the status
// that held at the time of writing.
type WatchNote struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	Status    WatchStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Watch is a symbol under observation, independent of any trade.
type Watch struct {
	ID          string        `json:"id"`
	Symbol      string        `json:"symbol"`
	Statuses    []WatchStatus `json:"statuses"`
	Notes       []WatchNote   `json:"notes"`
	LastUpdated time.Time     `json:"lastUpdated"`
}
