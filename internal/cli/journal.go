package cli

import (
	"time"

	"github.com/spf13/cobra"

	apperrors "tradermind/internal/errors"
)

// addJournalCommands adds journal commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Daily journal",
		Long:  "Record and review free-form dated journal entries.",
	}

	add := &cobra.Command{
		Use:     "add <content>",
		Short:   "Add a journal entry",
		Example: `  tradermind journal add "Choppy open, stayed flat until the trend confirmed."`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			dateStr, _ := cmd.Flags().GetString("date")

			var date time.Time
			if dateStr != "" {
				parsed, err := ParseDate(dateStr)
				if err != nil {
					return apperrors.NewValidationError("date", dateStr, "expected YYYY-MM-DD")
				}
				date = parsed
			}

			entry, err := app.Stores.Journal.AddEntry(cmd.Context(), date, args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Success("✓ Entry added (%s)", ShortID(entry.ID))
			return nil
		},
	}
	add.Flags().String("date", "", "Entry date (YYYY-MM-DD, default now)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			limit, _ := cmd.Flags().GetInt("limit")

			entries := app.Stores.Journal.Entries()
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}
			if len(entries) == 0 {
				output.Info("No journal entries.")
				return nil
			}
			for _, e := range entries {
				output.Bold("%s  %s", FormatDate(e.Date), output.DimText(ShortID(e.ID)))
				output.Printf("  %s\n\n", e.Content)
			}
			return nil
		},
	}
	list.Flags().Int("limit", 0, "Show at most this many entries")

	update := &cobra.Command{
		Use:   "update <entry-id> <content>",
		Short: "Replace an entry's content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			entry, err := app.Stores.Journal.UpdateEntry(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Success("✓ Entry updated")
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <entry-id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Stores.Journal.DeleteEntry(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("✓ Entry removed")
			return nil
		},
	}

	cmd.AddCommand(add, list, update, rm)
	rootCmd.AddCommand(cmd)
}
