package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradermind/internal/backup"
	"tradermind/internal/config"
	"tradermind/internal/logging"
	"tradermind/internal/store"
	"tradermind/internal/stores"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-06-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Backend store.Backend
	Stores  *stores.Stores
	Backup  *backup.Manager
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	backend, err := store.NewSQLiteBackend(cfg.DatabasePath())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open database, falling back to in-memory storage")
		app.Backend = store.NewMemoryBackend()
	} else {
		app.Backend = backend
		logger.Debug().Str("path", cfg.DatabasePath()).Msg("SQLite backend initialized")
	}

	app.Stores = stores.NewStores(app.Backend, logger)
	app.Backup = backup.NewManager(app.Stores, logger)

	rootCmd := &cobra.Command{
		Use:   "tradermind",
		Short: "TraderMind - personal trading journal CLI",
		Long: `TraderMind is a personal trading journal for the command line.

It tracks trades and their buy/sell actions, watch lists, tags, daily journal
entries, reference images and sticky notes, and derives position, risk and
performance metrics from the raw action log.

Use 'tradermind help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return app.Stores.LoadAll(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Backend.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/tradermind)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addWatchCommands(rootCmd, app)
	addTagCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)
	addMemoryCommands(rootCmd, app)
	addStickyCommands(rootCmd, app)
	addSettingsCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addBackupCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("TraderMind v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Storage")
			output.Printf("  Data dir:  %s\n", app.Config.Storage.DataDir)
			output.Printf("  Database:  %s\n", app.Config.DatabasePath())
			output.Println()
			output.Bold("Logging")
			output.Printf("  Level:     %s\n", app.Config.Logging.Level)
			output.Printf("  Console:   %v\n", app.Config.Logging.Console)
			output.Printf("  File:      %v\n", app.Config.Logging.File)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
