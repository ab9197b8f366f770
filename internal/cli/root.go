package cli

import (
	"context"
	"fmt"

	"github.com/andy/rebancariza/internal/app"
	"github.com/spf13/cobra"
)

var (
	appInstance *app.App
	ownsApp     bool

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "rebancariza",
	Short: "Client fees, payment alerts and balance from the terminal",
	Long: `Rebancariza keeps a small roster of paying clients: their monthly fee,
payment date and standing. It flags overdue and upcoming payments and charts
a projected balance.

By default, running rebancariza without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Help output should not prompt for the database password
		if appInstance != nil || cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		a, err := app.New(cmd.Context(), app.Options{ConfigPath: configPath, Verbose: verbose})
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		appInstance = a
		ownsApp = true
		return nil
	},
	RunE: launchTUI,
}

// Execute runs the root command
func Execute() error {
	defer closeApp()
	return rootCmd.ExecuteContext(context.Background())
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
	ownsApp = false
}

func closeApp() {
	if appInstance != nil && ownsApp {
		if err := appInstance.Close(); err != nil {
			appInstance.Log.Error().Err(err).Msg("close failed")
		}
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/rebancariza/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log to stderr")

	// Add all subcommands
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
