package cli

import (
	"github.com/spf13/cobra"
)

// addBackupCommands adds export/import commands.
func addBackupCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and import journal data",
		Long: `Move the full journal state in and out of portable JSON files.

Import replaces all existing data; records keep their identities through an
export/import round trip.`,
	}

	export := &cobra.Command{
		Use:     "export",
		Short:   "Export everything to a JSON file",
		Example: `  tradermind backup export --dir ~/backups`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			dir, _ := cmd.Flags().GetString("dir")

			path, err := app.Backup.Export(dir)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Success("✓ Exported to %s", path)
			return nil
		},
	}
	export.Flags().String("dir", ".", "Directory to write the backup into")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a backup file, replacing all data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Backup.ImportFile(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("✓ Imported %s", args[0])
			output.Warning("Previous data has been replaced.")
			return nil
		},
	}

	csv := &cobra.Command{
		Use:   "csv <file>",
		Short: "Export closed trades with P&L as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Backup.ExportClosedTradesCSV(args[0]); err != nil {
				return err
			}
			output.Success("✓ Wrote %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(export, importCmd, csv)
	rootCmd.AddCommand(cmd)
}
