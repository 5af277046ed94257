package metrics

import (
	"time"

	"tradermind/internal/models"
)

// PeriodStats aggregates closed trades over a calendar bucket.
// PercentChange is nil when no account size is configured or the bucket is
// empty.
type PeriodStats struct {
	TotalTrades   int
	Wins          int
	Losses        int
	PnL           float64
	PercentChange *float64
}

// WinRate returns wins as a percentage of total trades, 0 for an empty bucket.
func (s PeriodStats) WinRate() float64 {
	if s.TotalTrades == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalTrades) * 100
}

// DayStats aggregates the trades closed on the given calendar day. A trade
// belongs to the day of its latest action: the outcome is attributed to when
// the position closed, not when it opened.
func DayStats(trades []models.Trade, date time.Time, accountSize float64) PeriodStats {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	return bucketStats(trades, dayStart, dayEnd, accountSize)
}

// MonthStats aggregates the trades closed within the given calendar month.
func MonthStats(trades []models.Trade, date time.Time, accountSize float64) PeriodStats {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	return bucketStats(trades, monthStart, monthEnd, accountSize)
}

func bucketStats(trades []models.Trade, start, end time.Time, accountSize float64) PeriodStats {
	var stats PeriodStats

	for _, trade := range trades {
		if trade.IsActive || len(trade.Actions) == 0 {
			continue
		}
		closed := trade.LastActionDate()
		if closed.Before(start) || !closed.Before(end) {
			continue
		}

		pnl := CalculatePnL(trade.Actions)
		stats.TotalTrades++
		stats.PnL += pnl
		if pnl > 0 {
			stats.Wins++
		} else {
			// Break-even trades count as losses.
			stats.Losses++
		}
	}

	if stats.TotalTrades > 0 && accountSize > 0 {
		change := stats.PnL / accountSize * 100
		stats.PercentChange = &change
	}

	return stats
}

// TagUsageCounts counts tag assignments whose assignment date falls within
// [start, end], grouped by tag name. Grouping is by name, not id: if two tags
// end up sharing a name after a rename their counts merge.
func TagUsageCounts(tags []models.Tag, tradeTags []models.TradeTag, start, end time.Time) map[string]int {
	names := make(map[string]string, len(tags))
	for _, tag := range tags {
		names[tag.ID] = tag.Name
	}

	counts := make(map[string]int)
	for _, tt := range tradeTags {
		if tt.Date.Before(start) || tt.Date.After(end) {
			continue
		}
		name, ok := names[tt.TagID]
		if !ok {
			continue
		}
		counts[name]++
	}
	return counts
}
