package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/services"
)

var (
	setWork  int
	setBreak int
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the phase durations",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the phase durations in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := app.settings.Load(context.Background())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using defaults\n", err)
		}
		return printSettings(cmd.OutOrStdout(), d, app.settingsRep.Path())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the phase durations",
	Long: `Change the work and/or break duration in minutes.
Work must be 1-120 minutes and break 1-60 minutes. A flag that is not
given keeps its current value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("work") && !cmd.Flags().Changed("break") {
			return errors.New("nothing to change: pass --work and/or --break")
		}

		ctx := context.Background()
		current, _ := app.settings.Load(ctx)
		work, brk := current.WorkMinutes(), current.BreakMinutes()
		if cmd.Flags().Changed("work") {
			work = setWork
		}
		if cmd.Flags().Changed("break") {
			brk = setBreak
		}

		d, err := app.settings.Save(ctx, work, brk)
		if err != nil {
			return err
		}
		return printSettings(cmd.OutOrStdout(), d, app.settingsRep.Path())
	},
}

var settingsPresetCmd = &cobra.Command{
	Use:   "preset [name]",
	Short: "List the presets or apply one by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, p := range domain.Presets {
				fmt.Fprintf(out, "%-10s %3d / %d minutes\n", p.Name, p.WorkMinutes, p.BreakMinutes)
			}
			return nil
		}

		ctx := context.Background()
		timerApp := services.NewApp(ctx, app.settings, nil, nil, app.logger)
		preset, err := timerApp.ApplyPreset(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Applied preset %s\n", preset.Name)
		return printSettings(out, app.settings.Committed(), app.settingsRep.Path())
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), app.settingsRep.Path())
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().IntVarP(&setWork, "work", "w", domain.DefaultWorkMinutes, "Work phase in minutes (1-120)")
	settingsSetCmd.Flags().IntVarP(&setBreak, "break", "b", domain.DefaultBreakMinutes, "Break phase in minutes (1-60)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPresetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}

// printSettings writes the durations as text or, with --json, as an object.
func printSettings(w io.Writer, d domain.Durations, path string) error {
	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"work_minutes":  d.WorkMinutes(),
			"break_minutes": d.BreakMinutes(),
			"path":          path,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "Work:  %d minutes\n", d.WorkMinutes())
	fmt.Fprintf(w, "Break: %d minutes\n", d.BreakMinutes())
	fmt.Fprintf(w, "File:  %s\n", path)
	return nil
}
