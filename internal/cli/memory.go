package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/imaging"
)

// addMemoryCommands adds memory (reference image) commands.
func addMemoryCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Reference image library",
		Long:  "Keep annotated chart screenshots for later review.",
	}

	add := &cobra.Command{
		Use:     "add <image-path>",
		Short:   "Store a reference image",
		Example: `  tradermind memory add breakout.png --text "Clean cup and handle" --tag breakout --tag daily`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			text, _ := cmd.Flags().GetString("text")
			tags, _ := cmd.Flags().GetStringSlice("tag")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return apperrors.Wrapf(err, "failed to read %s", args[0])
			}

			memory, err := app.Stores.Memories.AddMemory(cmd.Context(), data, text, tags)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(memory)
			}
			output.Success("✓ Memory stored (%s)", ShortID(memory.ID))
			return nil
		},
	}
	add.Flags().String("text", "", "Caption")
	add.Flags().StringSlice("tag", nil, "Free-form tags")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored memories, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			tagFilter, _ := cmd.Flags().GetString("tag")

			memories := app.Stores.Memories.Memories()
			if tagFilter != "" {
				filtered := memories[:0:0]
				for _, m := range memories {
					for _, t := range m.Tags {
						if strings.EqualFold(t, tagFilter) {
							filtered = append(filtered, m)
							break
						}
					}
				}
				memories = filtered
			}

			if output.IsJSON() {
				return output.JSON(memories)
			}
			if len(memories) == 0 {
				output.Info("No memories stored.")
				return nil
			}

			table := NewTable(output, "ID", "Caption", "Tags", "Size", "Created")
			for _, m := range memories {
				size := "-"
				if w, h, err := imaging.DataURLSize(m.ImageData); err == nil {
					size = fmt.Sprintf("%dx%d", w, h)
				}
				table.AddRow(ShortID(m.ID), TruncateString(m.Text, 40), strings.Join(m.Tags, ","), size, FormatDate(m.CreatedAt))
			}
			table.Render()
			return nil
		},
	}
	list.Flags().String("tag", "", "Only memories carrying this tag")

	update := &cobra.Command{
		Use:   "update <memory-id>",
		Short: "Update a memory's caption and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			text, _ := cmd.Flags().GetString("text")
			var tags []string
			if cmd.Flags().Changed("tag") {
				tags, _ = cmd.Flags().GetStringSlice("tag")
			}

			memory, err := app.Stores.Memories.UpdateMemory(cmd.Context(), args[0], text, tags)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(memory)
			}
			output.Success("✓ Memory updated")
			return nil
		},
	}
	update.Flags().String("text", "", "Caption")
	update.Flags().StringSlice("tag", nil, "Replacement tags")

	rm := &cobra.Command{
		Use:   "rm <memory-id>",
		Short: "Delete a memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Stores.Memories.DeleteMemory(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("✓ Memory removed")
			return nil
		},
	}

	cmd.AddCommand(add, list, update, rm)
	rootCmd.AddCommand(cmd)
}
