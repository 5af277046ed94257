package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/metrics"
	"tradermind/internal/models"
)

// addTradeCommands adds trade management commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade management",
		Long:  "Open trades, record buy/sell actions, and attach notes.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeActionCmd(app))
	cmd.AddCommand(newTradeNoteCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeRemoveCmd(app))

	rootCmd.AddCommand(cmd)
}

// parseAction reads and validates the shared action flags.
func parseAction(cmd *cobra.Command) (models.TradeAction, error) {
	actionType, _ := cmd.Flags().GetString("type")
	price, _ := cmd.Flags().GetFloat64("price")
	quantity, _ := cmd.Flags().GetFloat64("quantity")
	dateStr, _ := cmd.Flags().GetString("date")
	stopLoss, _ := cmd.Flags().GetFloat64("stop-loss")
	target, _ := cmd.Flags().GetFloat64("target")
	note, _ := cmd.Flags().GetString("note")

	action := models.TradeAction{
		Type: models.ActionType(strings.ToLower(actionType)),
		Note: note,
	}
	if action.Type != models.ActionBuy && action.Type != models.ActionSell {
		return models.TradeAction{}, apperrors.NewValidationError("type", actionType, "must be buy or sell")
	}
	if price <= 0 {
		return models.TradeAction{}, apperrors.NewValidationError("price", price, "must be positive")
	}
	if quantity <= 0 {
		return models.TradeAction{}, apperrors.NewValidationError("quantity", quantity, "must be positive")
	}
	action.Price = price
	action.Quantity = quantity

	if dateStr != "" {
		date, err := ParseDate(dateStr)
		if err != nil {
			return models.TradeAction{}, apperrors.NewValidationError("date", dateStr, "expected YYYY-MM-DD")
		}
		action.Date = date
	}
	if cmd.Flags().Changed("stop-loss") {
		if stopLoss <= 0 {
			return models.TradeAction{}, apperrors.NewValidationError("stop-loss", stopLoss, "must be positive")
		}
		action.StopLoss = &stopLoss
	}
	if cmd.Flags().Changed("target") {
		if target <= 0 {
			return models.TradeAction{}, apperrors.NewValidationError("target", target, "must be positive")
		}
		action.TargetPrice = &target
	}
	return action, nil
}

func addActionFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "buy", "Action type (buy or sell)")
	cmd.Flags().Float64("price", 0, "Execution price")
	cmd.Flags().Float64("quantity", 0, "Number of shares")
	cmd.Flags().String("date", "", "Action date (YYYY-MM-DD, default now)")
	cmd.Flags().Float64("stop-loss", 0, "Stop loss price")
	cmd.Flags().Float64("target", 0, "Target price")
	cmd.Flags().String("note", "", "Short note on the action")
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Open a new trade with its first action",
		Example: `  tradermind trade add AAPL --price 180.50 --quantity 100
  tradermind trade add TSLA --price 250 --quantity 50 --stop-loss 240 --setup breakout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			action, err := parseAction(cmd)
			if err != nil {
				return err
			}
			setupType, _ := cmd.Flags().GetString("setup")

			trade, err := app.Stores.Trades.AddTrade(cmd.Context(), strings.ToUpper(args[0]), setupType, action)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade opened: %s (%s)", trade.Symbol, ShortID(trade.ID))
			return nil
		},
	}
	addActionFlags(cmd)
	cmd.Flags().String("setup", "", "Setup type label")
	return cmd
}

func newTradeActionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Manage trade actions",
	}

	add := &cobra.Command{
		Use:   "add <trade-id>",
		Short: "Record a buy or sell on a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			action, err := parseAction(cmd)
			if err != nil {
				return err
			}
			trade, err := app.Stores.Trades.AddAction(cmd.Context(), args[0], action)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Action recorded on %s", trade.Symbol)
			if !trade.IsActive {
				output.Info("Position is now closed, P&L: %s", output.FormatPnL(metrics.CalculatePnL(trade.Actions)))
			}
			return nil
		},
	}
	addActionFlags(add)

	update := &cobra.Command{
		Use:   "update <trade-id> <action-id>",
		Short: "Replace an action in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			action, err := parseAction(cmd)
			if err != nil {
				return err
			}
			trade, err := app.Stores.Trades.UpdateAction(cmd.Context(), args[0], args[1], action)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Action updated on %s", trade.Symbol)
			return nil
		},
	}
	addActionFlags(update)

	rm := &cobra.Command{
		Use:   "rm <trade-id> <action-id>",
		Short: "Delete an action",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trade, err := app.Stores.Trades.RemoveAction(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Action removed from %s", trade.Symbol)
			return nil
		},
	}

	cmd.AddCommand(add, update, rm)
	return cmd
}

func newTradeNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage trade notes",
	}

	add := &cobra.Command{
		Use:   "add <trade-id> <text>",
		Short: "Attach a note, optionally with an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			imagePath, _ := cmd.Flags().GetString("image")

			var image []byte
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return apperrors.Wrapf(err, "failed to read %s", imagePath)
				}
				image = data
			}

			trade, err := app.Stores.Trades.AddNote(cmd.Context(), args[0], args[1], image)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Note added to %s", trade.Symbol)
			return nil
		},
	}
	add.Flags().String("image", "", "Path to an image to embed")

	rm := &cobra.Command{
		Use:   "rm <trade-id> <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trade, err := app.Stores.Trades.RemoveNote(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Note removed from %s", trade.Symbol)
			return nil
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			activeOnly, _ := cmd.Flags().GetBool("active")
			closedOnly, _ := cmd.Flags().GetBool("closed")

			var trades []models.Trade
			for _, t := range app.Stores.Trades.Trades() {
				if activeOnly && !t.IsActive {
					continue
				}
				if closedOnly && t.IsActive {
					continue
				}
				trades = append(trades, t)
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Symbol", "Setup", "Shares", "Avg Price", "P&L", "Status", "Last Action")
			for _, t := range trades {
				pos := metrics.ComputePosition(t.Actions)
				status := output.Green("ACTIVE")
				pnl := "-"
				if !t.IsActive {
					status = output.DimText("CLOSED")
					pnl = output.FormatPnL(metrics.CalculatePnL(t.Actions))
				}
				table.AddRow(
					ShortID(t.ID),
					t.Symbol,
					TruncateString(t.SetupType, 12),
					FormatShares(pos.Shares),
					FormatCurrency(pos.AvgPrice),
					pnl,
					status,
					FormatDate(t.LastActionDate()),
				)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Bool("active", false, "Only active trades")
	cmd.Flags().Bool("closed", false, "Only closed trades")
	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a trade with its actions, notes and metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trade, err := app.Stores.Trades.Find(args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}

			pos := metrics.ComputePosition(trade.Actions)
			settings := app.Stores.Settings.Settings()

			output.Bold("%s (%s)", trade.Symbol, ShortID(trade.ID))
			if trade.SetupType != "" {
				output.Printf("  Setup:      %s\n", trade.SetupType)
			}
			output.Printf("  Shares:     %s\n", FormatShares(pos.Shares))
			output.Printf("  Avg Price:  %s\n", FormatCurrency(pos.AvgPrice))
			if trade.IsActive {
				risk := metrics.CalculateRiskPercentage(trade.Actions)
				output.Printf("  Risk:       %.2f%%\n", risk)
			} else {
				output.Printf("  P&L:        %s\n", output.FormatPnL(metrics.CalculatePnL(trade.Actions)))
			}
			output.Println()

			output.Bold("Actions")
			table := NewTable(output, "ID", "Type", "Price", "Qty", "Stop", "Target", "R/R", "Date")
			for _, a := range trade.Actions {
				stop, target, rr := "-", "-", "-"
				if a.StopLoss != nil {
					stop = FormatCurrency(*a.StopLoss)
				}
				if a.TargetPrice != nil {
					target = FormatCurrency(*a.TargetPrice)
				}
				if a.StopLoss != nil && a.TargetPrice != nil {
					rr = FormatRiskReward(metrics.RiskReward(a.Price, *a.StopLoss, *a.TargetPrice))
				}
				actionType := output.Green(strings.ToUpper(string(a.Type)))
				if a.Type == models.ActionSell {
					actionType = output.Red(strings.ToUpper(string(a.Type)))
				}
				table.AddRow(
					ShortID(a.ID),
					actionType,
					FormatCurrency(a.Price),
					FormatShares(a.Quantity),
					stop,
					target,
					rr,
					FormatDate(a.Date),
				)
			}
			table.Render()

			if len(trade.Notes) > 0 {
				output.Println()
				output.Bold("Notes")
				for _, n := range trade.Notes {
					marker := ""
					if n.Image != "" {
						marker = " [image]"
					}
					output.Printf("  %s  %s%s\n", output.DimText(FormatDateTime(n.Date)), n.Text, marker)
				}
			}

			if tags := app.Stores.Tags.TagsForTrade(trade.ID); len(tags) > 0 {
				names := make([]string, len(tags))
				for i, tag := range tags {
					names[i] = tag.Name
				}
				output.Println()
				output.Printf("Tags: %s\n", strings.Join(names, ", "))
			}

			if trade.IsActive && settings.AccountSize > 0 {
				for i := len(trade.Actions) - 1; i >= 0; i-- {
					a := trade.Actions[i]
					if a.Type == models.ActionBuy && a.StopLoss != nil {
						suggested := metrics.SuggestShares(a.Price, *a.StopLoss, settings.AccountSize, settings.RiskPerTrade)
						output.Println()
						output.Dim("Suggested size at this risk: %d shares", suggested)
						break
					}
				}
			}
			return nil
		},
	}
}

func newTradeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Stores.Trades.RemoveTrade(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("✓ Trade removed")
			return nil
		},
	}
}
