package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/metrics"
)

// addReportCommands adds derived-metrics report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Performance reports",
		Long:  "Daily and monthly statistics derived from closed trades.",
	}

	cmd.AddCommand(newReportDayCmd(app))
	cmd.AddCommand(newReportMonthCmd(app))
	cmd.AddCommand(newReportTagsCmd(app))

	rootCmd.AddCommand(cmd)
}

func parseReportDate(cmd *cobra.Command) (time.Time, error) {
	dateStr, _ := cmd.Flags().GetString("date")
	if dateStr == "" {
		return time.Now(), nil
	}
	date, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date", dateStr, "expected YYYY-MM-DD")
	}
	return date, nil
}

func printStats(output *Output, title string, stats metrics.PeriodStats) {
	output.Bold(title)
	output.Printf("  Trades:    %d\n", stats.TotalTrades)
	output.Printf("  Wins:      %d\n", stats.Wins)
	output.Printf("  Losses:    %d\n", stats.Losses)
	if stats.TotalTrades > 0 {
		output.Printf("  Win Rate:  %.1f%%\n", stats.WinRate())
	}
	output.Printf("  P&L:       %s\n", output.FormatPnL(stats.PnL))
	if stats.PercentChange != nil {
		output.Printf("  Change:    %s\n", output.FormatPercent(*stats.PercentChange))
	}
}

func newReportDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Stats for trades closed on a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			date, err := parseReportDate(cmd)
			if err != nil {
				return err
			}

			settings := app.Stores.Settings.Settings()
			stats := metrics.DayStats(app.Stores.Trades.Trades(), date, settings.AccountSize)

			if output.IsJSON() {
				return output.JSON(stats)
			}
			printStats(output, "Day Report - "+FormatDate(date), stats)
			return nil
		},
	}
	cmd.Flags().String("date", "", "Day to report on (YYYY-MM-DD, default today)")
	return cmd
}

func newReportMonthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Stats for trades closed in a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			date, err := parseReportDate(cmd)
			if err != nil {
				return err
			}

			settings := app.Stores.Settings.Settings()
			stats := metrics.MonthStats(app.Stores.Trades.Trades(), date, settings.AccountSize)

			if output.IsJSON() {
				return output.JSON(stats)
			}
			printStats(output, "Month Report - "+date.Format("January 2006"), stats)
			return nil
		},
	}
	cmd.Flags().String("date", "", "Any day in the month (YYYY-MM-DD, default today)")
	return cmd
}

func newReportTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag usage counts for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			date, err := parseReportDate(cmd)
			if err != nil {
				return err
			}

			start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
			end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
			counts := app.Stores.Tags.UsageCounts(start, end)

			if output.IsJSON() {
				return output.JSON(counts)
			}
			if len(counts) == 0 {
				output.Info("No tag assignments in %s.", date.Format("January 2006"))
				return nil
			}

			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				if counts[names[i]] != counts[names[j]] {
					return counts[names[i]] > counts[names[j]]
				}
				return names[i] < names[j]
			})

			output.Bold("Tag Usage - %s", date.Format("January 2006"))
			table := NewTable(output, "Tag", "Assignments")
			for _, name := range names {
				table.AddRow(name, fmt.Sprintf("%d", counts[name]))
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().String("date", "", "Any day in the month (YYYY-MM-DD, default today)")
	return cmd
}
