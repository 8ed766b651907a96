package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/shiftplan/internal/ports/primary"
	"github.com/example/shiftplan/internal/ports/secondary"
)

func TestScheduleService_GenerateSchedule(t *testing.T) {
	f := newTestScheduleService()
	ctx := context.Background()

	schedule, err := f.service.GenerateSchedule(ctx, primary.GenerateScheduleRequest{Week: 10})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if schedule.RunID != "run-1" {
		t.Errorf("expected run ID 'run-1', got %q", schedule.RunID)
	}
	if len(schedule.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(schedule.Assignments))
	}
	first := schedule.Assignments[0]
	if first.Position != "assistant" || first.WorkerID != "2" || first.WorkerName != "Petrov" {
		t.Errorf("unexpected first assignment: %+v", first)
	}
	if first.MachineType != "flat_printing" || first.MinRank != 1 {
		t.Errorf("expected slot details on assignment, got %+v", first)
	}
	if len(schedule.Unfilled) != 0 {
		t.Errorf("expected no unfilled positions, got %d", len(schedule.Unfilled))
	}
	if len(schedule.Unplaced) != 1 || schedule.Unplaced[0].WorkerID != "3" {
		t.Errorf("expected worker 3 unplaced, got %+v", schedule.Unplaced)
	}
	if len(schedule.Brigades) != 1 || schedule.Brigades[0].Status != primary.BrigadeFull {
		t.Errorf("expected one full brigade, got %+v", schedule.Brigades)
	}
	if len(schedule.Problems) != 0 {
		t.Errorf("expected no problem brigades, got %d", len(schedule.Problems))
	}
	if !strings.Contains(schedule.Document, "Period: Mon 02.03.2026 - Fri 06.03.2026") {
		t.Errorf("expected ISO week period in document:\n%s", schedule.Document)
	}
	if !strings.Contains(strings.Join(schedule.Summary, "\n"), "Filled positions: 2") {
		t.Errorf("unexpected summary: %v", schedule.Summary)
	}

	if len(f.runs.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(f.runs.runs))
	}
	run := f.runs.runs[0]
	if run.ID != "run-1" || run.Week != 10 || run.Required != 2 || run.Filled != 2 || run.Unplaced != 1 || run.Candidates != 3 {
		t.Errorf("unexpected run record: %+v", run)
	}

	if len(f.metrics.runs) != 1 || f.metrics.flushed != 1 {
		t.Fatalf("expected one observed and flushed run, got %d/%d", len(f.metrics.runs), f.metrics.flushed)
	}
	stats := f.metrics.runs[0]
	if stats.Outcome != "ok" || stats.Week != 10 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	for _, sh := range stats.Shifts {
		if sh.Shift == "day" && (sh.Required != 2 || sh.Filled != 2) {
			t.Errorf("unexpected day stats: %+v", sh)
		}
	}
}

func TestScheduleService_GenerateSchedule_InvalidWeek(t *testing.T) {
	for _, week := range []int{0, -1, 54} {
		f := newTestScheduleService()

		_, err := f.service.GenerateSchedule(context.Background(), primary.GenerateScheduleRequest{Week: week})
		if !errors.Is(err, ErrInvalidWeek) {
			t.Errorf("week %d: expected ErrInvalidWeek, got %v", week, err)
		}
		if len(f.metrics.runs) != 1 || f.metrics.runs[0].Outcome != "error" {
			t.Errorf("week %d: expected an error outcome in metrics", week)
		}
		if len(f.runs.runs) != 0 {
			t.Errorf("week %d: failed run must not be recorded", week)
		}
	}
}

func TestScheduleService_GenerateSchedule_LoadFailure(t *testing.T) {
	f := newTestScheduleService()
	f.catalog.loadErr = errStorage

	_, err := f.service.GenerateSchedule(context.Background(), primary.GenerateScheduleRequest{Week: 10})
	if !errors.Is(err, ErrBoundaryIO) || !errors.Is(err, errStorage) {
		t.Errorf("expected wrapped boundary error, got %v", err)
	}
}

func TestScheduleService_GenerateSchedule_MissingHistory(t *testing.T) {
	f := newTestScheduleService()
	f.catalog.snap.Plan = append(f.catalog.snap.Plan, &secondary.PlanRecord{MachineID: "1", Week: 12, Night: true})

	schedule, err := f.service.GenerateSchedule(context.Background(), primary.GenerateScheduleRequest{Week: 12})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !schedule.MissingHistory {
		t.Error("expected MissingHistory for a week without prior history")
	}
	if len(schedule.Assignments) != 0 || len(schedule.Unfilled) != 2 {
		t.Errorf("expected every position vacant, got %d bound / %d vacant", len(schedule.Assignments), len(schedule.Unfilled))
	}
}

func TestScheduleService_GenerateSchedule_RunLogFailureIsNotFatal(t *testing.T) {
	f := newTestScheduleService()
	f.runs.createErr = errStorage
	f.metrics.flushErr = errStorage

	if _, err := f.service.GenerateSchedule(context.Background(), primary.GenerateScheduleRequest{Week: 10}); err != nil {
		t.Errorf("expected run to succeed, got %v", err)
	}
}

func TestScheduleService_SaveSchedule(t *testing.T) {
	f := newTestScheduleService()
	ctx := context.Background()

	schedule, err := f.service.GenerateSchedule(ctx, primary.GenerateScheduleRequest{Week: 10})
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	resp, err := f.service.SaveSchedule(ctx, primary.SaveScheduleRequest{Schedule: schedule})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Saved != 2 || resp.Replaced {
		t.Errorf("unexpected response: %+v", resp)
	}
	if got := f.assignments.weeks[10][0].RunID; got != "run-1" {
		t.Errorf("expected run ID on saved rows, got %q", got)
	}

	_, err = f.service.SaveSchedule(ctx, primary.SaveScheduleRequest{Schedule: schedule})
	if !errors.Is(err, ErrWeekExists) {
		t.Errorf("expected ErrWeekExists, got %v", err)
	}

	resp, err = f.service.SaveSchedule(ctx, primary.SaveScheduleRequest{Schedule: schedule, Force: true})
	if err != nil {
		t.Fatalf("expected forced save to succeed, got %v", err)
	}
	if !resp.Replaced {
		t.Error("expected Replaced on forced save")
	}
}

func TestScheduleService_SaveSchedule_Errors(t *testing.T) {
	tests := []struct {
		name     string
		schedule *primary.Schedule
		setup    func(*scheduleFixture)
		wantErr  error
	}{
		{
			name:     "nil schedule",
			schedule: nil,
			wantErr:  ErrNothingToSave,
		},
		{
			name:     "no bound positions",
			schedule: &primary.Schedule{Week: 10},
			wantErr:  ErrNothingToSave,
		},
		{
			name:     "storage failure",
			schedule: &primary.Schedule{Week: 10, Assignments: []*primary.Assignment{{Week: 10, Shift: "day", WorkerID: "1"}}},
			setup:    func(f *scheduleFixture) { f.assignments.replaceErr = errStorage },
			wantErr:  ErrBoundaryIO,
		},
		{
			name:     "existence check failure",
			schedule: &primary.Schedule{Week: 10, Assignments: []*primary.Assignment{{Week: 10, Shift: "day", WorkerID: "1"}}},
			setup:    func(f *scheduleFixture) { f.assignments.existsErr = errStorage },
			wantErr:  ErrBoundaryIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestScheduleService()
			if tt.setup != nil {
				tt.setup(f)
			}
			_, err := f.service.SaveSchedule(context.Background(), primary.SaveScheduleRequest{Schedule: tt.schedule})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestScheduleService_WriteDocument(t *testing.T) {
	f := newTestScheduleService()
	ctx := context.Background()

	schedule, err := f.service.GenerateSchedule(ctx, primary.GenerateScheduleRequest{Week: 10})
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	path, err := f.service.WriteDocument(ctx, schedule)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path != "out/schedule_week_10.txt" {
		t.Errorf("unexpected path %q", path)
	}
	if f.documents.docs["schedule_week_10.txt"] != schedule.Document {
		t.Error("expected document content to be written")
	}

	if _, err := f.service.WriteDocument(ctx, &primary.Schedule{Week: 11}); !errors.Is(err, ErrNothingToSave) {
		t.Errorf("expected ErrNothingToSave for empty document, got %v", err)
	}

	f.documents.err = errStorage
	if _, err := f.service.WriteDocument(ctx, schedule); !errors.Is(err, ErrBoundaryIO) {
		t.Errorf("expected ErrBoundaryIO, got %v", err)
	}
}

func TestScheduleService_ListAndExportAssignments(t *testing.T) {
	f := newTestScheduleService()
	ctx := context.Background()

	if _, err := f.service.ExportAssignments(ctx, primary.ExportAssignmentsRequest{Week: 10, Path: "out.csv"}); !errors.Is(err, ErrNothingToSave) {
		t.Errorf("expected ErrNothingToSave before saving, got %v", err)
	}

	schedule, err := f.service.GenerateSchedule(ctx, primary.GenerateScheduleRequest{Week: 10})
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	if _, err := f.service.SaveSchedule(ctx, primary.SaveScheduleRequest{Schedule: schedule}); err != nil {
		t.Fatalf("SaveSchedule failed: %v", err)
	}

	list, err := f.service.ListAssignments(ctx, 10)
	if err != nil {
		t.Fatalf("ListAssignments failed: %v", err)
	}
	if len(list) != 2 || list[1].WorkerName != "Ivanov" {
		t.Errorf("unexpected assignments: %+v", list)
	}

	n, err := f.service.ExportAssignments(ctx, primary.ExportAssignmentsRequest{Path: "out.csv"})
	if err != nil {
		t.Fatalf("ExportAssignments failed: %v", err)
	}
	if n != 2 || f.sink.path != "out.csv" || len(f.sink.records) != 2 {
		t.Errorf("unexpected export: n=%d path=%q rows=%d", n, f.sink.path, len(f.sink.records))
	}

	if _, err := f.service.ExportAssignments(ctx, primary.ExportAssignmentsRequest{}); err == nil {
		t.Error("expected error for empty export path")
	}
}

func TestScheduleService_ListRuns(t *testing.T) {
	f := newTestScheduleService()
	ctx := context.Background()

	ids := []string{"run-a", "run-b"}
	for _, id := range ids {
		f.service.newID = func() string { return id }
		if _, err := f.service.GenerateSchedule(ctx, primary.GenerateScheduleRequest{Week: 10}); err != nil {
			t.Fatalf("GenerateSchedule failed: %v", err)
		}
	}

	runs, err := f.service.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-b" {
		t.Errorf("expected newest run first, got %+v", runs)
	}

	f.runs.listErr = errStorage
	if _, err := f.service.ListRuns(ctx, 0); !errors.Is(err, ErrBoundaryIO) {
		t.Errorf("expected ErrBoundaryIO, got %v", err)
	}
}
