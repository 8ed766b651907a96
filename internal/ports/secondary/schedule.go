package secondary

import (
	"context"
	"time"
)

// AssignmentRepository defines the secondary port for saved schedules.
type AssignmentRepository interface {
	// WeekExists reports whether assignments are stored for week.
	WeekExists(ctx context.Context, week int) (bool, error)

	// ReplaceWeek deletes the week's assignments and stores records.
	ReplaceWeek(ctx context.Context, week int, records []*AssignmentRecord) error

	// List retrieves assignments matching the given filters.
	List(ctx context.Context, filters AssignmentFilters) ([]*AssignmentRecord, error)
}

// AssignmentRecord represents a saved bound position.
type AssignmentRecord struct {
	Week        int
	Shift       string
	MachineID   string
	MachineType string
	Position    string
	MinRank     int
	WorkerID    string
	WorkerName  string
	RunID       string
	CreatedAt   string
}

// AssignmentFilters contains filter options for querying assignments.
// A zero Week lists every week.
type AssignmentFilters struct {
	Week int
}

// AssignmentSink writes assignment rows to an external file.
type AssignmentSink interface {
	WriteAssignments(ctx context.Context, path string, records []*AssignmentRecord) error
}

// RunRepository defines the secondary port for the scheduling run log.
type RunRepository interface {
	// Create persists a run.
	Create(ctx context.Context, run *RunRecord) error

	// List retrieves the most recent runs, newest first. Zero limit means all.
	List(ctx context.Context, limit int) ([]*RunRecord, error)
}

// RunRecord represents one scheduling run.
type RunRecord struct {
	ID         string
	Week       int
	Candidates int
	Required   int
	Filled     int
	Unplaced   int
	Disbanded  int
	CreatedAt  string
}

// DocumentWriter stores rendered schedule documents.
type DocumentWriter interface {
	// WriteDocument stores content under name and returns the final path.
	WriteDocument(ctx context.Context, name, content string) (string, error)
}

// MetricsRecorder receives per-run statistics.
type MetricsRecorder interface {
	ObserveRun(stats RunStats)
	// Flush exports the collected metrics, if an export target is configured.
	Flush() error
}

// RunStats summarizes one scheduling run for metrics.
type RunStats struct {
	Week       int
	Outcome    string // "ok" or "error"
	Duration   time.Duration
	Candidates int
	Unplaced   int
	Shifts     []ShiftStats
}

// ShiftStats holds per-shift slot counts of a run.
type ShiftStats struct {
	Shift      string
	Required   int
	Filled     int
	Disbanded  int
	Backfilled int
}
