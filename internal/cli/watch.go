package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tradermind/internal/models"
)

// addWatchCommands adds watch list commands.
func addWatchCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch list management",
		Long: `Track symbols under observation with status labels and notes.

Valid statuses: SETUP_SUCCESS, TIP, WATCHING, FAILED.`,
	}

	cmd.AddCommand(newWatchAddCmd(app))
	cmd.AddCommand(newWatchListCmd(app))
	cmd.AddCommand(newWatchStatusCmd(app))
	cmd.AddCommand(newWatchNoteCmd(app))
	cmd.AddCommand(newWatchRemoveCmd(app))

	rootCmd.AddCommand(cmd)
}

func parseStatuses(raw []string) []models.WatchStatus {
	statuses := make([]models.WatchStatus, len(raw))
	for i, s := range raw {
		statuses[i] = models.WatchStatus(strings.ToUpper(s))
	}
	return statuses
}

func newWatchAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <symbol>",
		Short:   "Put a symbol under observation",
		Example: `  tradermind watch add NVDA --status WATCHING`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			raw, _ := cmd.Flags().GetStringSlice("status")

			watch, err := app.Stores.Watches.AddWatch(cmd.Context(), strings.ToUpper(args[0]), parseStatuses(raw))
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(watch)
			}
			output.Success("✓ Watching %s (%s)", watch.Symbol, ShortID(watch.ID))
			return nil
		},
	}
	cmd.Flags().StringSlice("status", []string{string(models.StatusWatching)}, "Status labels")
	return cmd
}

func newWatchListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List watched symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			watches := app.Stores.Watches.Watches()

			if output.IsJSON() {
				return output.JSON(watches)
			}
			if len(watches) == 0 {
				output.Info("Watch list is empty.")
				return nil
			}

			table := NewTable(output, "ID", "Symbol", "Statuses", "Notes", "Updated")
			for _, w := range watches {
				labels := make([]string, len(w.Statuses))
				for i, s := range w.Statuses {
					labels[i] = string(s)
				}
				table.AddRow(
					ShortID(w.ID),
					w.Symbol,
					strings.Join(labels, ","),
					fmt.Sprintf("%d", len(w.Notes)),
					FormatDate(w.LastUpdated),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newWatchStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <watch-id>",
		Short: "Replace a watch's status labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			raw, _ := cmd.Flags().GetStringSlice("status")

			watch, err := app.Stores.Watches.UpdateStatuses(cmd.Context(), args[0], parseStatuses(raw))
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(watch)
			}
			output.Success("✓ Statuses updated for %s", watch.Symbol)
			return nil
		},
	}
	cmd.Flags().StringSlice("status", nil, "Status labels")
	return cmd
}

func newWatchNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage watch notes",
	}

	add := &cobra.Command{
		Use:   "add <watch-id> <content>",
		Short: "Add a status-tagged note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			status, _ := cmd.Flags().GetString("status")

			watch, err := app.Stores.Watches.AddNote(cmd.Context(), args[0], args[1], models.WatchStatus(strings.ToUpper(status)))
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(watch)
			}
			output.Success("✓ Note added to %s", watch.Symbol)
			return nil
		},
	}
	add.Flags().String("status", string(models.StatusWatching), "Status for this note")

	update := &cobra.Command{
		Use:   "update <watch-id> <note-id> <content>",
		Short: "Update a note's content and status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			status, _ := cmd.Flags().GetString("status")

			watch, err := app.Stores.Watches.UpdateNote(cmd.Context(), args[0], args[1], args[2], models.WatchStatus(strings.ToUpper(status)))
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(watch)
			}
			output.Success("✓ Note updated on %s", watch.Symbol)
			return nil
		},
	}
	update.Flags().String("status", string(models.StatusWatching), "Status for this note")

	rm := &cobra.Command{
		Use:   "rm <watch-id> <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			watch, err := app.Stores.Watches.RemoveNote(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(watch)
			}
			output.Success("✓ Note removed from %s", watch.Symbol)
			return nil
		},
	}

	cmd.AddCommand(add, update, rm)
	return cmd
}

func newWatchRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <watch-id>",
		Short: "Stop watching a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Stores.Watches.RemoveWatch(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("✓ Watch removed")
			return nil
		},
	}
}
