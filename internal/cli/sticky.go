package cli

import (
	"github.com/spf13/cobra"
)

// addStickyCommands adds sticky note commands.
func addStickyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "sticky",
		Short: "Sticky notes",
		Long:  "Quick tagged reminders, colored at random on creation.",
	}

	add := &cobra.Command{
		Use:     "add <text>",
		Short:   "Add a sticky note",
		Example: `  tradermind sticky add "Size down during earnings week" --tag discipline`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			tag, _ := cmd.Flags().GetString("tag")

			note, err := app.Stores.Sticky.AddNote(cmd.Context(), tag, args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(note)
			}
			output.Success("✓ Sticky added (%s, %s)", ShortID(note.ID), note.Color)
			return nil
		},
	}
	add.Flags().String("tag", "", "Grouping tag")

	list := &cobra.Command{
		Use:   "list",
		Short: "List sticky notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			tagFilter, _ := cmd.Flags().GetString("tag")

			notes := app.Stores.Sticky.Notes()
			if tagFilter != "" {
				filtered := notes[:0:0]
				for _, n := range notes {
					if n.Tag == tagFilter {
						filtered = append(filtered, n)
					}
				}
				notes = filtered
			}

			if output.IsJSON() {
				return output.JSON(notes)
			}
			if len(notes) == 0 {
				output.Info("No sticky notes.")
				return nil
			}

			table := NewTable(output, "ID", "Tag", "Text", "Color", "Created")
			for _, n := range notes {
				table.AddRow(ShortID(n.ID), n.Tag, TruncateString(n.Text, 50), n.Color, FormatDate(n.CreatedAt))
			}
			table.Render()
			return nil
		},
	}
	list.Flags().String("tag", "", "Only notes with this tag")

	update := &cobra.Command{
		Use:   "update <note-id> <text>",
		Short: "Replace a note's text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			note, err := app.Stores.Sticky.UpdateNote(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(note)
			}
			output.Success("✓ Sticky updated")
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <note-id>",
		Short: "Delete a sticky note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Stores.Sticky.RemoveNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("✓ Sticky removed")
			return nil
		},
	}

	cmd.AddCommand(add, list, update, rm)
	rootCmd.AddCommand(cmd)
}
