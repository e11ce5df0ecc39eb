// Package cmd provides the CLI commands for pomotray.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath   string
	settingsPath string
	noHistory    bool
	jsonOutput   bool
)

// errNoTerminal is returned when the interactive timer is started without
// a terminal attached.
var errNoTerminal = errors.New(`the interactive timer needs a terminal; use "pomotray headless"`)

var isTerminal = func() bool {
	return term.IsTerminal(os.Stdout.Fd()) && term.IsTerminal(os.Stdin.Fd())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomotray",
	Short: "pomotray - a resident work/break timer",
	Long: `pomotray alternates work and break phases, counting down once per
second and notifying you when a phase ends.

Run "pomotray" with no arguments to open the interactive timer.
Space or a click starts and pauses, r resets, s opens the settings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cleanupServices()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.pomotray/config.toml)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to the duration settings file (default: next to the executable)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record completed phases")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomotray\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(historyCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errNoTerminal
	}

	ctx, cancel := setupSignalHandler()
	defer cancel()

	app.logger.Info("starting interactive timer", "settings", app.settingsRep.Path())
	return tui.Run(ctx, tui.Options{
		Settings: app.settings,
		History:  app.history,
		Notifier: app.notifier,
		Theme:    &app.config.Theme,
		Logger:   app.logger,
	})
}
