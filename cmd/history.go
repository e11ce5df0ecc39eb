package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/adapters/git"
	"github.com/xvierd/pomotray/internal/domain"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed phases",
	Long:  `Show today's totals and the phases completed in the last days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.history == nil {
			return errors.New("history is disabled")
		}

		ctx := context.Background()
		stats, err := app.history.Today(ctx)
		if err != nil {
			return err
		}
		records, err := app.history.Recent(ctx, historyDays)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputHistoryJSON(cmd.OutOrStdout(), stats, records)
		}
		printHistoryText(cmd.OutOrStdout(), stats, records)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 7, "Number of days to list")
}

func outputHistoryJSON(w io.Writer, stats *domain.DailyStats, records []*domain.PhaseRecord) error {
	phases := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		phases = append(phases, map[string]interface{}{
			"id":           r.ID,
			"phase":        string(r.Phase),
			"duration":     r.Duration.String(),
			"completed_at": r.CompletedAt.Format("2006-01-02T15:04:05"),
			"git_branch":   r.GitBranch,
			"git_commit":   r.GitCommit,
		})
	}
	result := map[string]interface{}{
		"today": map[string]interface{}{
			"work_phases":     stats.WorkPhases,
			"breaks":          stats.Breaks,
			"total_work_time": stats.TotalWorkTime.String(),
		},
		"phases": phases,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printHistoryText(w io.Writer, stats *domain.DailyStats, records []*domain.PhaseRecord) {
	fmt.Fprintln(w, "Today:")
	fmt.Fprintf(w, "   Work phases: %d\n", stats.WorkPhases)
	fmt.Fprintf(w, "   Breaks: %d\n", stats.Breaks)
	fmt.Fprintf(w, "   Total work time: %s\n", stats.TotalWorkTime)

	if len(records) == 0 {
		fmt.Fprintln(w, "\nNo completed phases yet.")
		return
	}

	fmt.Fprintln(w)
	for _, r := range records {
		line := fmt.Sprintf("%s  %-5s  %s", r.CompletedAt.Format("2006-01-02 15:04"), r.Phase.Label(), r.Duration)
		if r.GitBranch != "" {
			line += fmt.Sprintf("  %s (%s)", r.GitBranch, git.ShortCommit(r.GitCommit))
		}
		fmt.Fprintln(w, line)
	}
}
