// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"time"
)

// ScheduleService defines the primary port for weekly scheduling.
type ScheduleService interface {
	// GenerateSchedule runs rotation, allocation and reporting for one week.
	GenerateSchedule(ctx context.Context, req GenerateScheduleRequest) (*Schedule, error)

	// SaveSchedule persists the bound positions of a generated schedule.
	SaveSchedule(ctx context.Context, req SaveScheduleRequest) (*SaveScheduleResponse, error)

	// WriteDocument writes the printable schedule and returns its path.
	WriteDocument(ctx context.Context, schedule *Schedule) (string, error)

	// ListAssignments lists saved assignments; week 0 lists all weeks.
	ListAssignments(ctx context.Context, week int) ([]*Assignment, error)

	// ExportAssignments writes saved assignments to a CSV file.
	ExportAssignments(ctx context.Context, req ExportAssignmentsRequest) (int, error)

	// ListRuns lists recorded scheduling runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
}

// GenerateScheduleRequest contains parameters for a scheduling run.
type GenerateScheduleRequest struct {
	Week      int
	WeekStart time.Time // any day of the week; the document uses its Monday
}

// Schedule is the outcome of one scheduling run.
type Schedule struct {
	RunID     string
	Week      int
	WeekStart time.Time

	Summary     []string
	Assignments []*Assignment // bound positions, sorted by shift, machine, position
	Unfilled    []*Assignment // vacant positions
	Brigades    []*Brigade
	Problems    []*Brigade
	Unplaced    []*UnplacedWorker
	Disbanded   []*DisbandedTeam

	MissingHistory  bool
	UnknownMachines []string
	Document        string // empty when the week has no positions
}

// Assignment is one position of a schedule, bound or vacant.
type Assignment struct {
	Week        int
	Shift       string
	MachineID   string
	MachineType string
	Position    string
	MinRank     int
	WorkerID    string
	WorkerName  string
}

// Brigade status values.
const (
	BrigadeFull       = "full"
	BrigadeIncomplete = "incomplete"
	BrigadeEmpty      = "empty"
)

// Brigade summarizes one machine team in one shift.
type Brigade struct {
	Week        int
	Shift       string
	MachineID   string
	MachineType string
	Required    int
	Assigned    int
	Missing     int
	Status      string
}

// UnplacedWorker is a candidate left without a shift.
type UnplacedWorker struct {
	WorkerID  string
	Name      string
	Shift     string
	Primary   string
	Qualified []string
}

// DisbandedTeam is a team released as not viable.
type DisbandedTeam struct {
	Shift     string
	MachineID string
	Required  int
	Assigned  int
	Released  []string
}

// SaveScheduleRequest contains parameters for saving a schedule.
type SaveScheduleRequest struct {
	Schedule *Schedule
	Force    bool // replace a week that is already saved
}

// SaveScheduleResponse contains the result of saving a schedule.
type SaveScheduleResponse struct {
	Week     int
	Saved    int
	Replaced bool
}

// ExportAssignmentsRequest contains parameters for exporting assignments.
type ExportAssignmentsRequest struct {
	Week int
	Path string
}

// Run is a recorded scheduling run.
type Run struct {
	ID         string
	Week       int
	Candidates int
	Required   int
	Filled     int
	Unplaced   int
	Disbanded  int
	CreatedAt  string
}
