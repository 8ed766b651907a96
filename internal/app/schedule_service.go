// Package app contains the application services that orchestrate the scheduling pipeline.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/shiftplan/internal/core/allocation"
	"github.com/example/shiftplan/internal/core/report"
	"github.com/example/shiftplan/internal/core/rotation"
	"github.com/example/shiftplan/internal/core/roster"
	"github.com/example/shiftplan/internal/logging"
	"github.com/example/shiftplan/internal/ports/primary"
	"github.com/example/shiftplan/internal/ports/secondary"
)

// ScheduleOptions configures the scheduling pipeline.
type ScheduleOptions struct {
	Professions   []roster.Profession
	VacancyMarker string
	Engine        *allocation.Engine
}

// ScheduleServiceImpl implements the ScheduleService interface.
type ScheduleServiceImpl struct {
	catalogRepo    secondary.CatalogRepository
	assignmentRepo secondary.AssignmentRepository
	runRepo        secondary.RunRepository
	documents      secondary.DocumentWriter
	sink           secondary.AssignmentSink
	metrics        secondary.MetricsRecorder
	logger         logging.Logger

	professions   []roster.Profession
	vacancyMarker string
	engine        *allocation.Engine

	now   func() time.Time
	newID func() string
}

// NewScheduleService creates a new ScheduleService with injected dependencies.
func NewScheduleService(
	catalogRepo secondary.CatalogRepository,
	assignmentRepo secondary.AssignmentRepository,
	runRepo secondary.RunRepository,
	documents secondary.DocumentWriter,
	sink secondary.AssignmentSink,
	metrics secondary.MetricsRecorder,
	logger logging.Logger,
	opts ScheduleOptions,
) *ScheduleServiceImpl {
	if len(opts.Professions) == 0 {
		opts.Professions = roster.DefaultProfessions
	}
	if opts.Engine == nil {
		opts.Engine = allocation.NewEngine()
	}
	return &ScheduleServiceImpl{
		catalogRepo:    catalogRepo,
		assignmentRepo: assignmentRepo,
		runRepo:        runRepo,
		documents:      documents,
		sink:           sink,
		metrics:        metrics,
		logger:         logger,
		professions:    opts.Professions,
		vacancyMarker:  opts.VacancyMarker,
		engine:         opts.Engine,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

var _ primary.ScheduleService = (*ScheduleServiceImpl)(nil)

// DocumentName returns the file name of a week's schedule document.
func DocumentName(week int) string {
	return fmt.Sprintf("schedule_week_%d.txt", week)
}

// GenerateSchedule runs the pipeline for one week and records the run.
func (s *ScheduleServiceImpl) GenerateSchedule(ctx context.Context, req primary.GenerateScheduleRequest) (*primary.Schedule, error) {
	start := s.now()
	schedule, stats, err := s.generate(ctx, req)
	stats.Week = req.Week
	stats.Duration = s.now().Sub(start)
	if err != nil {
		stats.Outcome = "error"
		s.logger.Error("scheduling run failed", "week", req.Week, "error", err)
	} else {
		stats.Outcome = "ok"
	}

	s.metrics.ObserveRun(stats)
	if flushErr := s.metrics.Flush(); flushErr != nil {
		s.logger.Warn("failed to export metrics", "error", flushErr)
	}

	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleServiceImpl) generate(ctx context.Context, req primary.GenerateScheduleRequest) (*primary.Schedule, secondary.RunStats, error) {
	var stats secondary.RunStats
	week := req.Week

	// 1. Validate target week
	if week < 1 || week > 53 {
		return nil, stats, fmt.Errorf("%w: %d (must be between 1 and 53)", ErrInvalidWeek, week)
	}

	// 2. Load catalog
	snap, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: failed to load catalog: %w", ErrBoundaryIO, err)
	}
	cat, skipped := buildCatalog(snap, s.professions)
	if skipped > 0 {
		s.logger.Warn("skipped history rows with unknown shift", "count", skipped)
	}

	runID := s.newID()
	s.logger.Info("scheduling run started", "run_id", runID, "week", week)

	// 3. Rotate and expand the plan
	planned := rotation.Plan(cat, week)
	if planned.MissingHistory {
		s.logger.Warn("no shift history for previous week", "week", week-1)
	}
	for _, id := range planned.UnknownMachines {
		s.logger.Warn("plan references unknown machine", "machine_id", id, "week", week)
	}

	// 4. Allocate
	slots := planned.Slots
	state, err := s.engine.Allocate(planned.Candidates, slots)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to allocate week %d: %w", week, err)
	}
	for _, d := range state.Disbanded {
		s.logger.Info("team disbanded", "shift", d.Shift, "machine_id", d.MachineID,
			"assigned", d.Assigned, "required", d.Required)
	}

	// 5. Report
	builder := report.NewBuilder(report.Input{
		Slots:      slots,
		Workers:    cat.Workers,
		Candidates: planned.Candidates,
		State:      state,
		PlanLong:   planned.PlanLong,
	}, report.WithVacancyMarker(s.vacancyMarker))

	weekStart := req.WeekStart
	if weekStart.IsZero() {
		weekStart = ISOWeekMonday(s.now().Year(), week)
	}
	weekStart = report.MondayOf(weekStart)

	schedule := &primary.Schedule{
		RunID:           runID,
		Week:            week,
		WeekStart:       weekStart,
		MissingHistory:  planned.MissingHistory,
		UnknownMachines: planned.UnknownMachines,
	}
	for _, row := range builder.FinalAssignments() {
		schedule.Assignments = append(schedule.Assignments, s.assignmentFromRow(row, slots))
	}
	for _, slot := range builder.UnfilledPositions() {
		schedule.Unfilled = append(schedule.Unfilled, slotToAssignment(slot, ""))
	}
	for _, b := range builder.BrigadeSummary() {
		schedule.Brigades = append(schedule.Brigades, brigadeToDTO(b))
	}
	for _, p := range builder.ProblemBrigades() {
		dto := brigadeToDTO(p.BrigadeRow)
		dto.Missing = p.Missing
		dto.Status = string(p.Status)
		schedule.Problems = append(schedule.Problems, dto)
	}
	for _, u := range builder.UnplacedCandidates() {
		schedule.Unplaced = append(schedule.Unplaced, &primary.UnplacedWorker{
			WorkerID:  u.WorkerID,
			Name:      u.Name,
			Shift:     string(u.Shift),
			Primary:   string(u.Primary),
			Qualified: professionNames(u.Qualified),
		})
	}
	for _, d := range state.Disbanded {
		schedule.Disbanded = append(schedule.Disbanded, &primary.DisbandedTeam{
			Shift:     string(d.Shift),
			MachineID: d.MachineID,
			Required:  d.Required,
			Assigned:  d.Assigned,
			Released:  d.Released,
		})
	}
	schedule.Summary = builder.TextSummary(week)
	schedule.Document, _ = builder.ScheduleDocument(week, weekStart)

	// 6. Record the run
	stats = runStats(slots, state, len(planned.Candidates))
	run := &secondary.RunRecord{
		ID:         runID,
		Week:       week,
		Candidates: len(planned.Candidates),
		Unplaced:   len(state.Unplaced),
		Disbanded:  len(state.Disbanded),
	}
	for _, sh := range stats.Shifts {
		run.Required += sh.Required
		run.Filled += sh.Filled
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.Warn("failed to record run", "run_id", runID, "error", err)
	}

	s.logger.Info("scheduling run finished", "run_id", runID, "week", week,
		"required", run.Required, "filled", run.Filled, "unplaced", run.Unplaced)

	return schedule, stats, nil
}

func runStats(slots roster.ShiftSlots, state *allocation.State, candidates int) secondary.RunStats {
	stats := secondary.RunStats{Candidates: candidates, Unplaced: len(state.Unplaced)}
	for _, shift := range roster.Shifts {
		sh := secondary.ShiftStats{
			Shift:      string(shift),
			Required:   len(slots[shift]),
			Backfilled: state.Backfilled[shift],
		}
		for _, slot := range slots[shift] {
			if !slot.Vacant() {
				sh.Filled++
			}
		}
		for _, d := range state.Disbanded {
			if d.Shift == shift {
				sh.Disbanded++
			}
		}
		stats.Shifts = append(stats.Shifts, sh)
	}
	return stats
}

func (s *ScheduleServiceImpl) assignmentFromRow(row report.AssignmentRow, slots roster.ShiftSlots) *primary.Assignment {
	a := &primary.Assignment{
		Week:       row.Week,
		Shift:      string(row.Shift),
		MachineID:  row.MachineID,
		Position:   row.Position,
		WorkerID:   row.WorkerID,
		WorkerName: row.Name,
	}
	for _, slot := range slots[row.Shift] {
		if slot.MachineID == row.MachineID && slot.Position == row.Position && slot.WorkerID == row.WorkerID {
			a.MachineType = slot.MachineType
			a.MinRank = slot.MinRank
			break
		}
	}
	return a
}

func slotToAssignment(slot roster.Slot, name string) *primary.Assignment {
	return &primary.Assignment{
		Week:        slot.Week,
		Shift:       string(slot.Shift),
		MachineID:   slot.MachineID,
		MachineType: slot.MachineType,
		Position:    slot.Position,
		MinRank:     slot.MinRank,
		WorkerID:    slot.WorkerID,
		WorkerName:  name,
	}
}

func brigadeToDTO(b report.BrigadeRow) *primary.Brigade {
	dto := &primary.Brigade{
		Week:        b.Week,
		Shift:       string(b.Shift),
		MachineID:   b.MachineID,
		MachineType: b.MachineType,
		Required:    b.Required,
		Assigned:    b.Assigned,
		Missing:     b.Required - b.Assigned,
	}
	switch {
	case b.Assigned == b.Required:
		dto.Status = primary.BrigadeFull
	case b.Assigned == 0:
		dto.Status = primary.BrigadeEmpty
	default:
		dto.Status = primary.BrigadeIncomplete
	}
	return dto
}

// SaveSchedule stores the bound positions of a schedule, refusing to
// replace a saved week unless forced.
func (s *ScheduleServiceImpl) SaveSchedule(ctx context.Context, req primary.SaveScheduleRequest) (*primary.SaveScheduleResponse, error) {
	if req.Schedule == nil || len(req.Schedule.Assignments) == 0 {
		return nil, ErrNothingToSave
	}
	week := req.Schedule.Week

	exists, err := s.assignmentRepo.WeekExists(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoundaryIO, err)
	}
	if exists && !req.Force {
		return nil, fmt.Errorf("%w: week %d", ErrWeekExists, week)
	}

	records := make([]*secondary.AssignmentRecord, 0, len(req.Schedule.Assignments))
	for _, a := range req.Schedule.Assignments {
		records = append(records, &secondary.AssignmentRecord{
			Week:        a.Week,
			Shift:       a.Shift,
			MachineID:   a.MachineID,
			MachineType: a.MachineType,
			Position:    a.Position,
			MinRank:     a.MinRank,
			WorkerID:    a.WorkerID,
			WorkerName:  a.WorkerName,
			RunID:       req.Schedule.RunID,
		})
	}

	if err := s.assignmentRepo.ReplaceWeek(ctx, week, records); err != nil {
		return nil, fmt.Errorf("%w: failed to save week %d: %w", ErrBoundaryIO, week, err)
	}

	s.logger.Info("schedule saved", "week", week, "rows", len(records), "replaced", exists, "run_id", req.Schedule.RunID)

	return &primary.SaveScheduleResponse{
		Week:     week,
		Saved:    len(records),
		Replaced: exists,
	}, nil
}

// WriteDocument writes the printable schedule of a generated week.
func (s *ScheduleServiceImpl) WriteDocument(ctx context.Context, schedule *primary.Schedule) (string, error) {
	if schedule == nil || schedule.Document == "" {
		return "", fmt.Errorf("%w: no positions to print", ErrNothingToSave)
	}

	path, err := s.documents.WriteDocument(ctx, DocumentName(schedule.Week), schedule.Document)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBoundaryIO, err)
	}

	s.logger.Info("schedule document written", "week", schedule.Week, "path", path)
	return path, nil
}

// ListAssignments lists saved assignments; week 0 lists all weeks.
func (s *ScheduleServiceImpl) ListAssignments(ctx context.Context, week int) ([]*primary.Assignment, error) {
	records, err := s.assignmentRepo.List(ctx, secondary.AssignmentFilters{Week: week})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoundaryIO, err)
	}

	out := make([]*primary.Assignment, len(records))
	for i, r := range records {
		out[i] = &primary.Assignment{
			Week:        r.Week,
			Shift:       r.Shift,
			MachineID:   r.MachineID,
			MachineType: r.MachineType,
			Position:    r.Position,
			MinRank:     r.MinRank,
			WorkerID:    r.WorkerID,
			WorkerName:  r.WorkerName,
		}
	}
	return out, nil
}

// ExportAssignments writes saved assignments to a CSV file.
func (s *ScheduleServiceImpl) ExportAssignments(ctx context.Context, req primary.ExportAssignmentsRequest) (int, error) {
	if req.Path == "" {
		return 0, fmt.Errorf("export path is required")
	}

	records, err := s.assignmentRepo.List(ctx, secondary.AssignmentFilters{Week: req.Week})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBoundaryIO, err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: no saved assignments", ErrNothingToSave)
	}

	if err := s.sink.WriteAssignments(ctx, req.Path, records); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBoundaryIO, err)
	}
	return len(records), nil
}

// ListRuns lists recorded scheduling runs, newest first.
func (s *ScheduleServiceImpl) ListRuns(ctx context.Context, limit int) ([]*primary.Run, error) {
	records, err := s.runRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoundaryIO, err)
	}

	out := make([]*primary.Run, len(records))
	for i, r := range records {
		out[i] = &primary.Run{
			ID:         r.ID,
			Week:       r.Week,
			Candidates: r.Candidates,
			Required:   r.Required,
			Filled:     r.Filled,
			Unplaced:   r.Unplaced,
			Disbanded:  r.Disbanded,
			CreatedAt:  r.CreatedAt,
		}
	}
	return out, nil
}
