package app

import (
	"context"
	"errors"
	"time"

	"github.com/example/shiftplan/internal/logging"
	"github.com/example/shiftplan/internal/ports/secondary"
)

var (
	_ secondary.CatalogRepository    = (*mockCatalogRepository)(nil)
	_ secondary.CatalogSource        = (*mockCatalogSource)(nil)
	_ secondary.AssignmentRepository = (*mockAssignmentRepository)(nil)
	_ secondary.AssignmentSink       = (*mockAssignmentSink)(nil)
	_ secondary.RunRepository        = (*mockRunRepository)(nil)
	_ secondary.DocumentWriter       = (*mockDocumentWriter)(nil)
	_ secondary.MetricsRecorder      = (*mockMetricsRecorder)(nil)
)

// mockCatalogRepository implements secondary.CatalogRepository for testing.
type mockCatalogRepository struct {
	snap       *secondary.CatalogSnapshot
	loadErr    error
	replaceErr error
}

func (m *mockCatalogRepository) Replace(ctx context.Context, snap *secondary.CatalogSnapshot) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.snap = snap
	return nil
}

func (m *mockCatalogRepository) Load(ctx context.Context) (*secondary.CatalogSnapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.snap == nil {
		return &secondary.CatalogSnapshot{}, nil
	}
	return m.snap, nil
}

// mockCatalogSource implements secondary.CatalogSource for testing.
type mockCatalogSource struct {
	snap           *secondary.CatalogSnapshot
	err            error
	gotDir         string
	gotProfessions []string
}

func (m *mockCatalogSource) ReadCatalog(ctx context.Context, dir string, professions []string) (*secondary.CatalogSnapshot, error) {
	m.gotDir = dir
	m.gotProfessions = professions
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

// mockAssignmentRepository implements secondary.AssignmentRepository for testing.
type mockAssignmentRepository struct {
	weeks      map[int][]*secondary.AssignmentRecord
	existsErr  error
	replaceErr error
	listErr    error
}

func newMockAssignmentRepository() *mockAssignmentRepository {
	return &mockAssignmentRepository{weeks: make(map[int][]*secondary.AssignmentRecord)}
}

func (m *mockAssignmentRepository) WeekExists(ctx context.Context, week int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return len(m.weeks[week]) > 0, nil
}

func (m *mockAssignmentRepository) ReplaceWeek(ctx context.Context, week int, records []*secondary.AssignmentRecord) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.weeks[week] = records
	return nil
}

func (m *mockAssignmentRepository) List(ctx context.Context, filters secondary.AssignmentFilters) ([]*secondary.AssignmentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if filters.Week != 0 {
		return m.weeks[filters.Week], nil
	}
	var out []*secondary.AssignmentRecord
	for week := 1; week <= 53; week++ {
		out = append(out, m.weeks[week]...)
	}
	return out, nil
}

// mockAssignmentSink implements secondary.AssignmentSink for testing.
type mockAssignmentSink struct {
	path    string
	records []*secondary.AssignmentRecord
	err     error
}

func (m *mockAssignmentSink) WriteAssignments(ctx context.Context, path string, records []*secondary.AssignmentRecord) error {
	if m.err != nil {
		return m.err
	}
	m.path = path
	m.records = records
	return nil
}

// mockRunRepository implements secondary.RunRepository for testing.
type mockRunRepository struct {
	runs      []*secondary.RunRecord
	createErr error
	listErr   error
}

func (m *mockRunRepository) Create(ctx context.Context, run *secondary.RunRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRunRepository) List(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.RunRecord, 0, len(m.runs))
	for i := len(m.runs) - 1; i >= 0; i-- {
		out = append(out, m.runs[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// mockDocumentWriter implements secondary.DocumentWriter for testing.
type mockDocumentWriter struct {
	docs map[string]string
	err  error
}

func (m *mockDocumentWriter) WriteDocument(ctx context.Context, name, content string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.docs == nil {
		m.docs = make(map[string]string)
	}
	m.docs[name] = content
	return "out/" + name, nil
}

// mockMetricsRecorder implements secondary.MetricsRecorder for testing.
type mockMetricsRecorder struct {
	runs     []secondary.RunStats
	flushed  int
	flushErr error
}

func (m *mockMetricsRecorder) ObserveRun(stats secondary.RunStats) {
	m.runs = append(m.runs, stats)
}

func (m *mockMetricsRecorder) Flush() error {
	m.flushed++
	return m.flushErr
}

var errStorage = errors.New("disk on fire")

// testSnapshot is a small catalog: one flat printing machine needing two
// positions in the day shift of week 10. Workers 1 and 2 rotate from
// evening into day, worker 3 from night into evening.
func testSnapshot() *secondary.CatalogSnapshot {
	return &secondary.CatalogSnapshot{
		Workers: []*secondary.WorkerRecord{
			{ID: "1", Name: "Ivanov", Ranks: map[string]int{"flat_printing": 1}},
			{ID: "2", Name: "Petrov", Ranks: map[string]int{"flat_printing": 1}},
			{ID: "3", Name: "Sidorov", Ranks: map[string]int{"inkjet_printing": 2}},
		},
		Equipment: []*secondary.EquipmentRecord{
			{ID: "1", MachineType: "flat_printing"},
		},
		Requirements: []*secondary.RequirementRecord{
			{MachineType: "flat_printing", Position: "printer", MinRank: 1},
			{MachineType: "flat_printing", Position: "assistant", MinRank: 1},
		},
		Plan: []*secondary.PlanRecord{
			{MachineID: "1", Week: 10, Day: true},
		},
		History: []*secondary.HistoryRecord{
			{WorkerID: "1", Week: 9, Shift: "evening"},
			{WorkerID: "2", Week: 9, Shift: "evening"},
			{WorkerID: "3", Week: 9, Shift: "night"},
		},
	}
}

type scheduleFixture struct {
	service     *ScheduleServiceImpl
	catalog     *mockCatalogRepository
	assignments *mockAssignmentRepository
	runs        *mockRunRepository
	documents   *mockDocumentWriter
	sink        *mockAssignmentSink
	metrics     *mockMetricsRecorder
}

func newTestScheduleService() *scheduleFixture {
	f := &scheduleFixture{
		catalog:     &mockCatalogRepository{snap: testSnapshot()},
		assignments: newMockAssignmentRepository(),
		runs:        &mockRunRepository{},
		documents:   &mockDocumentWriter{},
		sink:        &mockAssignmentSink{},
		metrics:     &mockMetricsRecorder{},
	}
	f.service = NewScheduleService(f.catalog, f.assignments, f.runs, f.documents, f.sink, f.metrics,
		logging.NewNop(), ScheduleOptions{})
	f.service.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	f.service.newID = func() string { return "run-1" }
	return f
}
