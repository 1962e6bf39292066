package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkurihara/planboard/internal/cli/formatter"
)

func newStatsCmd(app *App) *cobra.Command {
	var asOfStr string

	cmd := &cobra.Command{
		Use:   "stats PROJECT_ID",
		Short: "Show schedule analytics for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			asOf := time.Now().UTC()
			if asOfStr != "" {
				asOf, err = time.Parse(dateLayout, asOfStr)
				if err != nil {
					return fmt.Errorf("invalid as-of date %q: %w", asOfStr, err)
				}
			}

			stats, err := app.Stats.ComputeStats(ctx, projectID, asOf)
			if err != nil {
				return err
			}
			counts, err := app.Progress.AggregateCounts(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Printf("Working days: %d of %d elapsed, %d remaining (%d calendar days)\n",
				stats.ElapsedWorkingDays, stats.WorkingDays, stats.RemainingWorkingDays, stats.TotalDays)
			fmt.Printf("Expected: %s\n", formatter.ProgressBar(stats.ExpectedProgress))
			fmt.Printf("Actual:   %s\n", formatter.ProgressBar(stats.ActualProgress))
			fmt.Printf("Achievement rate: %d%%\n", stats.AchievementRate)
			fmt.Printf("Nodes: %d total, %d not started, %d in progress, %d delayed, %d completed\n",
				counts.Total, counts.NotStarted, counts.InProgress, counts.Delayed, counts.Completed)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfStr, "as-of", "", "Evaluate as of this date (YYYY-MM-DD, default today)")

	return cmd
}
