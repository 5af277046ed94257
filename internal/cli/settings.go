package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/metrics"
)

// addSettingsCommands adds general settings commands.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "General settings",
		Long:  "Account size and risk per trade, used for position sizing.",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			settings := app.Stores.Settings.Settings()
			if output.IsJSON() {
				return output.JSON(settings)
			}
			output.Bold("General Settings")
			output.Printf("  Account Size:    %s\n", FormatCurrency(settings.AccountSize))
			output.Printf("  Risk Per Trade:  %.2f%%\n", settings.RiskPerTrade)
			output.Printf("  Risk Amount:     %s\n", FormatCurrency(settings.AccountSize*settings.RiskPerTrade/100))
			return nil
		},
	}

	account := &cobra.Command{
		Use:   "account-size <amount>",
		Short: "Set the account size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			size, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return apperrors.NewValidationError("accountSize", args[0], "must be a number")
			}
			settings, err := app.Stores.Settings.SetAccountSize(cmd.Context(), size)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(settings)
			}
			output.Success("✓ Account size set to %s", FormatCurrency(settings.AccountSize))
			return nil
		},
	}

	risk := &cobra.Command{
		Use:   "risk <percent>",
		Short: "Set the risk per trade percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			pct, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return apperrors.NewValidationError("riskPerTrade", args[0], "must be a number")
			}
			settings, err := app.Stores.Settings.SetRiskPerTrade(cmd.Context(), pct)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(settings)
			}
			output.Success("✓ Risk per trade set to %.2f%%", settings.RiskPerTrade)
			return nil
		},
	}

	size := &cobra.Command{
		Use:     "size <entry> <stop>",
		Short:   "Suggest a share count for an entry and stop",
		Example: `  tradermind settings size 180.50 175.00`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			entry, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return apperrors.NewValidationError("entry", args[0], "must be a number")
			}
			stop, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return apperrors.NewValidationError("stop", args[1], "must be a number")
			}

			settings := app.Stores.Settings.Settings()
			shares := metrics.SuggestShares(entry, stop, settings.AccountSize, settings.RiskPerTrade)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"entry":           entry,
					"stop":            stop,
					"suggestedShares": shares,
				})
			}
			output.Printf("Entry %s, stop %s, risking %.2f%% of %s:\n",
				FormatCurrency(entry), FormatCurrency(stop),
				settings.RiskPerTrade, FormatCurrency(settings.AccountSize))
			output.Bold("  %d shares", shares)
			return nil
		},
	}

	cmd.AddCommand(show, account, risk, size)
	rootCmd.AddCommand(cmd)
}
