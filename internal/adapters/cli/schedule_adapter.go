// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/example/shiftplan/internal/app"
	"github.com/example/shiftplan/internal/ports/primary"
)

var (
	okTag   = color.New(color.FgGreen).Sprint("✓")
	warnTag = color.New(color.FgYellow).Sprint("!")
)

// shiftOrder is the order shifts are printed in.
var shiftOrder = []string{"night", "day", "evening"}

func statusTag(status string) string {
	tag := "[" + status + "]"
	switch status {
	case primary.BrigadeFull:
		return color.New(color.FgGreen).Sprint(tag)
	case primary.BrigadeIncomplete:
		return color.New(color.FgYellow).Sprint(tag)
	case primary.BrigadeEmpty:
		return color.New(color.FgRed).Sprint(tag)
	}
	return tag
}

// ScheduleAdapter is a thin adapter that translates CLI operations to ScheduleService calls.
// It depends only on the ScheduleService interface, enabling easy testing with mocks.
type ScheduleAdapter struct {
	service primary.ScheduleService
	out     io.Writer
}

// NewScheduleAdapter creates a new ScheduleAdapter with the given service.
func NewScheduleAdapter(service primary.ScheduleService, out io.Writer) *ScheduleAdapter {
	return &ScheduleAdapter{
		service: service,
		out:     out,
	}
}

// RunOptions controls a scheduling run from the command line.
type RunOptions struct {
	Week      int
	WeekStart time.Time
	Save      bool
	Force     bool
	Document  bool
}

// Run generates a week's schedule, prints the report and optionally saves
// it and writes the printable document.
func (a *ScheduleAdapter) Run(ctx context.Context, opts RunOptions) (*primary.Schedule, error) {
	schedule, err := a.service.GenerateSchedule(ctx, primary.GenerateScheduleRequest{
		Week:      opts.Week,
		WeekStart: opts.WeekStart,
	})
	if err != nil {
		return nil, err
	}

	a.printReport(schedule)

	if opts.Save {
		resp, err := a.service.SaveSchedule(ctx, primary.SaveScheduleRequest{
			Schedule: schedule,
			Force:    opts.Force,
		})
		if errors.Is(err, app.ErrWeekExists) {
			return schedule, fmt.Errorf("%w (use --force to replace it)", err)
		}
		if err != nil {
			return schedule, fmt.Errorf("failed to save schedule: %w", err)
		}
		verb := "Saved"
		if resp.Replaced {
			verb = "Replaced"
		}
		fmt.Fprintf(a.out, "%s %s %d assignments for week %d\n", okTag, verb, resp.Saved, resp.Week)
	}

	if opts.Document || opts.Save {
		path, err := a.service.WriteDocument(ctx, schedule)
		switch {
		case err == nil:
			fmt.Fprintf(a.out, "%s Schedule document written to %s\n", okTag, path)
		case opts.Save:
			// The assignments are already stored; a missing document is not fatal.
			fmt.Fprintf(a.out, "%s Schedule document not written: %v\n", warnTag, err)
		default:
			return schedule, fmt.Errorf("failed to write schedule document: %w", err)
		}
	}

	return schedule, nil
}

func (a *ScheduleAdapter) printReport(s *primary.Schedule) {
	fmt.Fprintln(a.out)
	for _, line := range s.Summary {
		fmt.Fprintln(a.out, line)
	}

	if s.MissingHistory {
		fmt.Fprintf(a.out, "\n%s No shift history for week %d; every position stays vacant\n", warnTag, s.Week-1)
	}
	if len(s.UnknownMachines) > 0 {
		fmt.Fprintf(a.out, "%s Plan references unknown machines: %s\n", warnTag, strings.Join(s.UnknownMachines, ", "))
	}

	for _, shift := range shiftOrder {
		a.printShift(shift, s)
	}

	if len(s.Problems) > 0 {
		fmt.Fprintln(a.out, "\nProblem brigades:")
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  SHIFT\tMACHINE\tTYPE\tASSIGNED\tMISSING\tSTATUS")
		for _, b := range s.Problems {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%d/%d\t%d\t%s\n",
				b.Shift, b.MachineID, b.MachineType, b.Assigned, b.Required, b.Missing, statusTag(b.Status))
		}
		w.Flush()
	}

	if len(s.Disbanded) > 0 {
		fmt.Fprintln(a.out, "\nDisbanded teams:")
		for _, d := range s.Disbanded {
			fmt.Fprintf(a.out, "  [%s] %s: %d of %d, released %s\n",
				d.Shift, d.MachineID, d.Assigned, d.Required, strings.Join(d.Released, ", "))
		}
	}

	if len(s.Unplaced) > 0 {
		fmt.Fprintln(a.out, "\nWithout shift:")
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tNAME\tROTATED TO\tPRIMARY\tQUALIFIED")
		for _, u := range s.Unplaced {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", u.WorkerID, u.Name, u.Shift, u.Primary, strings.Join(u.Qualified, ","))
		}
		w.Flush()
	}
	fmt.Fprintln(a.out)
}

// printShift prints the bound and vacant positions of one shift.
func (a *ScheduleAdapter) printShift(shift string, s *primary.Schedule) {
	var rows []*primary.Assignment
	for _, as := range s.Assignments {
		if as.Shift == shift {
			rows = append(rows, as)
		}
	}
	vacant := 0
	for _, as := range s.Unfilled {
		if as.Shift == shift {
			rows = append(rows, as)
			vacant++
		}
	}
	if len(rows) == 0 {
		return
	}

	fmt.Fprintf(a.out, "\n%s shift (%d positions, %d vacant):\n", strings.ToUpper(shift[:1])+shift[1:], len(rows), vacant)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  MACHINE\tPOSITION\tMIN RANK\tWORKER")
	for _, as := range rows {
		who := color.New(color.FgRed).Sprint("vacant")
		if as.WorkerID != "" {
			who = as.WorkerID + " " + as.WorkerName
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n", as.MachineID, as.Position, as.MinRank, who)
	}
	w.Flush()
}

// Show lists the saved assignments of a week.
func (a *ScheduleAdapter) Show(ctx context.Context, week int) error {
	assignments, err := a.service.ListAssignments(ctx, week)
	if err != nil {
		return fmt.Errorf("failed to list assignments: %w", err)
	}

	if len(assignments) == 0 {
		fmt.Fprintln(a.out, "No saved assignments found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WEEK\tSHIFT\tMACHINE\tTYPE\tPOSITION\tMIN RANK\tWORKER\tNAME")
	for _, as := range assignments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			as.Week, as.Shift, as.MachineID, as.MachineType, as.Position, as.MinRank, as.WorkerID, as.WorkerName)
	}
	return w.Flush()
}

// Export writes saved assignments to a CSV file.
func (a *ScheduleAdapter) Export(ctx context.Context, week int, path string) error {
	n, err := a.service.ExportAssignments(ctx, primary.ExportAssignmentsRequest{Week: week, Path: path})
	if err != nil {
		return fmt.Errorf("failed to export assignments: %w", err)
	}

	fmt.Fprintf(a.out, "%s Exported %d assignments to %s\n", okTag, n, path)
	return nil
}

// Runs lists recorded scheduling runs.
func (a *ScheduleAdapter) Runs(ctx context.Context, limit int) error {
	runs, err := a.service.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No scheduling runs found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tWEEK\tCANDIDATES\tFILLED\tUNPLACED\tDISBANDED\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d/%d\t%d\t%d\t%s\n",
			r.ID, r.Week, r.Candidates, r.Filled, r.Required, r.Unplaced, r.Disbanded, r.CreatedAt)
	}
	return w.Flush()
}
