package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/adapters/headless"
)

var headlessAutoStart bool

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the timer without a UI",
	Long: `Run the timer in the background. Phase switches raise desktop
notifications and status changes are printed as lines.

On Unix, SIGUSR1 starts or pauses the timer and SIGUSR2 resets it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := setupSignalHandler()
		defer cancel()

		commands := make(chan headless.Command, 1)
		if len(controlSignals) > 0 {
			sigChan := make(chan os.Signal, 1)
			for sig := range controlSignals {
				signal.Notify(sigChan, sig)
			}
			defer signal.Stop(sigChan)

			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case sig := <-sigChan:
						select {
						case commands <- controlSignals[sig]:
						case <-ctx.Done():
							return
						}
					}
				}
			}()
		}

		app.logger.Info("starting headless timer", "settings", app.settingsRep.Path(), "pid", os.Getpid())
		runner := headless.New(headless.Options{
			Settings:  app.settings,
			History:   app.history,
			Notifier:  app.notifier,
			Out:       cmd.OutOrStdout(),
			Logger:    app.logger,
			AutoStart: headlessAutoStart,
		})
		return runner.Run(ctx, commands)
	},
}

func init() {
	headlessCmd.Flags().BoolVar(&headlessAutoStart, "autostart", true, "Start counting immediately")
}
