// Package cli provides CLI commands for the shiftplan application.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/shiftplan/internal/adapters/cli"
	"github.com/example/shiftplan/internal/app"
	"github.com/example/shiftplan/internal/wire"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Generate and manage weekly shift schedules",
	Long:  "Run the weekly allocation, save its assignments and export them",
}

var scheduleRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate the schedule for a week",
	Long: `Rotate last week's shifts, fill the planned machine positions and print
the report. Without --week or --date the week starting next Monday is
scheduled.

--save stores the assignments and writes the printable document. A week
that is already saved is only replaced with --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetInt("week")
		date, _ := cmd.Flags().GetString("date")
		save, _ := cmd.Flags().GetBool("save")
		force, _ := cmd.Flags().GetBool("force")
		doc, _ := cmd.Flags().GetBool("doc")

		week, weekStart, err := resolveWeek(week, date, time.Now())
		if err != nil {
			return err
		}

		_, err = wire.ScheduleAdapter().Run(context.Background(), cliadapter.RunOptions{
			Week:      week,
			WeekStart: weekStart,
			Save:      save,
			Force:     force,
			Document:  doc,
		})
		return err
	},
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved assignments",
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetInt("week")
		return wire.ScheduleAdapter().Show(context.Background(), week)
	},
}

var scheduleExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved assignments to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetInt("week")
		out, _ := cmd.Flags().GetString("out")
		return wire.ScheduleAdapter().Export(context.Background(), week, out)
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded scheduling runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.ScheduleAdapter().Runs(context.Background(), limit)
	},
}

// resolveWeek picks the target week from the flags. An explicit week wins
// over a date; with neither, the week starting the Monday after now is used.
// A zero weekStart lets the service derive the Monday from the week number.
func resolveWeek(week int, date string, now time.Time) (int, time.Time, error) {
	if week != 0 {
		if week < 1 || week > 53 {
			return 0, time.Time{}, fmt.Errorf("%w: %d (must be between 1 and 53)", app.ErrInvalidWeek, week)
		}
		return week, time.Time{}, nil
	}

	if date != "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD): %w", date, err)
		}
		return app.WeekOf(t), t, nil
	}

	monday := app.NextMonday(now)
	return app.WeekOf(monday), monday, nil
}

// ScheduleCmd returns the schedule command
func ScheduleCmd() *cobra.Command {
	scheduleRunCmd.Flags().IntP("week", "w", 0, "ISO week to schedule (default: next week)")
	scheduleRunCmd.Flags().String("date", "", "Schedule the week containing this date (YYYY-MM-DD)")
	scheduleRunCmd.Flags().BoolP("save", "s", false, "Save assignments and write the schedule document")
	scheduleRunCmd.Flags().BoolP("force", "f", false, "Replace a week that is already saved")
	scheduleRunCmd.Flags().Bool("doc", false, "Write the schedule document without saving")
	scheduleRunCmd.MarkFlagsMutuallyExclusive("week", "date")

	scheduleShowCmd.Flags().IntP("week", "w", 0, "Only show this week")

	scheduleExportCmd.Flags().IntP("week", "w", 0, "Only export this week")
	scheduleExportCmd.Flags().StringP("out", "o", "output/final_assignments.csv", "Output CSV file")

	scheduleCmd.AddCommand(scheduleRunCmd)
	scheduleCmd.AddCommand(scheduleShowCmd)
	scheduleCmd.AddCommand(scheduleExportCmd)

	return scheduleCmd
}

// RunsCmd returns the runs command
func RunsCmd() *cobra.Command {
	runsCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return runsCmd
}
