package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// addTagCommands adds tag commands.
func addTagCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag management",
		Long:  "Create tags and assign them to trades.",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			color, _ := cmd.Flags().GetString("color")

			tag, err := app.Stores.Tags.AddTag(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(tag)
			}
			output.Success("✓ Tag created: %s (%s)", tag.Name, ShortID(tag.ID))
			return nil
		},
	}
	add.Flags().String("color", "blue", "Display color token")

	list := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			tags := app.Stores.Tags.Tags()

			if output.IsJSON() {
				return output.JSON(tags)
			}
			if len(tags) == 0 {
				output.Info("No tags defined.")
				return nil
			}

			assignments := make(map[string]int)
			for _, tt := range app.Stores.Tags.TradeTags() {
				assignments[tt.TagID]++
			}

			table := NewTable(output, "ID", "Name", "Color", "Trades")
			for _, t := range tags {
				table.AddRow(ShortID(t.ID), t.Name, t.Color, fmt.Sprintf("%d", assignments[t.ID]))
			}
			table.Render()
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <tag-id>",
		Short: "Delete a tag and its trade assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Stores.Tags.RemoveTag(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("✓ Tag removed")
			return nil
		},
	}

	assign := &cobra.Command{
		Use:   "assign <trade-id> <tag-id>",
		Short: "Attach a tag to a trade",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Stores.Trades.Find(args[0]); err != nil {
				return err
			}
			tt, err := app.Stores.Tags.AssignTag(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(tt)
			}
			output.Success("✓ Tag assigned")
			return nil
		},
	}

	unassign := &cobra.Command{
		Use:   "unassign <trade-id> <tag-id>",
		Short: "Detach a tag from a trade",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Stores.Tags.UnassignTag(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			output.Success("✓ Tag unassigned")
			return nil
		},
	}

	cmd.AddCommand(add, list, rm, assign, unassign)
	rootCmd.AddCommand(cmd)
}
