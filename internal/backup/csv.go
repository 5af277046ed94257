package backup

import (
	"os"

	"github.com/gocarina/gocsv"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/metrics"
	"tradermind/internal/models"
)

// TradeRow is one closed trade in the CSV report.
type TradeRow struct {
	Symbol    string  `csv:"symbol"`
	SetupType string  `csv:"setup_type"`
	Actions   int     `csv:"actions"`
	Opened    string  `csv:"opened"`
	Closed    string  `csv:"closed"`
	PnL       float64 `csv:"pnl"`
}

// ExportClosedTradesCSV writes every closed trade with its realized profit
// and loss to a CSV file.
func (m *Manager) ExportClosedTradesCSV(path string) error {
	return WriteClosedTradesCSV(m.stores.Trades.Trades(), path)
}

// WriteClosedTradesCSV writes the closed trades among the given trades to a
// CSV file.
func WriteClosedTradesCSV(trades []models.Trade, path string) error {
	var rows []TradeRow
	for _, t := range trades {
		if t.IsActive || len(t.Actions) == 0 {
			continue
		}
		opened := t.Actions[0].Date
		for _, a := range t.Actions {
			if a.Date.Before(opened) {
				opened = a.Date
			}
		}
		rows = append(rows, TradeRow{
			Symbol:    t.Symbol,
			SetupType: t.SetupType,
			Actions:   len(t.Actions),
			Opened:    opened.Format("2006-01-02"),
			Closed:    t.LastActionDate().Format("2006-01-02"),
			PnL:       metrics.CalculatePnL(t.Actions),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return apperrors.Wrap(err, "failed to write CSV")
	}
	return nil
}
