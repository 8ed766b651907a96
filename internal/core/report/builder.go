// Package report aggregates allocated slots into tables and text.
// This is part of the Functional Core - no I/O, only pure functions.
package report

import (
	"cmp"
	"slices"

	"github.com/example/shiftplan/internal/core/allocation"
	"github.com/example/shiftplan/internal/core/roster"
)

// DefaultVacancyMarker replaces the worker on unbound positions in documents.
const DefaultVacancyMarker = "-- VACANT --"

// Status tags a problem brigade.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusEmpty      Status = "empty"
)

// AssignmentRow is one bound position in the final assignment table.
type AssignmentRow struct {
	Week      int
	Shift     roster.Shift
	MachineID string
	Position  string
	WorkerID  string
	Name      string
}

// BrigadeRow summarizes one machine team in one shift and week.
type BrigadeRow struct {
	Week        int
	Shift       roster.Shift
	MachineID   string
	MachineType string
	Required    int
	Assigned    int
}

// ProblemRow is a brigade that is not fully staffed.
type ProblemRow struct {
	BrigadeRow
	Missing int
	Status  Status
}

// UnplacedRow is a candidate left without a shift.
type UnplacedRow struct {
	WorkerID  string
	Name      string
	Shift     roster.Shift
	Primary   roster.Profession
	Qualified []roster.Profession
}

// Input is everything the builder consumes. Slots are treated as frozen.
type Input struct {
	Slots      roster.ShiftSlots
	Workers    []roster.Worker
	Candidates []roster.Candidate
	State      *allocation.State
	PlanLong   []roster.PlanRow
}

// Builder produces report tables from one finished allocation run.
type Builder struct {
	in      Input
	all     []roster.Slot
	names   map[string]string
	marker  string
	summary []BrigadeRow
}

// Option configures a Builder.
type Option func(*Builder)

// WithVacancyMarker sets the text printed for unbound positions.
func WithVacancyMarker(marker string) Option {
	return func(b *Builder) {
		if marker != "" {
			b.marker = marker
		}
	}
}

// NewBuilder creates a report builder over a finished run.
func NewBuilder(in Input, opts ...Option) *Builder {
	if in.State == nil {
		in.State = allocation.NewState()
	}
	b := &Builder{
		in:     in,
		all:    in.Slots.All(),
		names:  make(map[string]string, len(in.Workers)),
		marker: DefaultVacancyMarker,
	}
	for _, w := range in.Workers {
		b.names[w.ID] = w.Name
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Slots returns every slot (night, day, evening), bound or vacant.
func (b *Builder) Slots() []roster.Slot {
	return append([]roster.Slot(nil), b.all...)
}

// FinalAssignments returns the bound slots with worker names, sorted by
// shift, machine and position.
func (b *Builder) FinalAssignments() []AssignmentRow {
	var rows []AssignmentRow
	for _, s := range b.all {
		if s.Vacant() {
			continue
		}
		rows = append(rows, AssignmentRow{
			Week:      s.Week,
			Shift:     s.Shift,
			MachineID: s.MachineID,
			Position:  s.Position,
			WorkerID:  s.WorkerID,
			Name:      b.names[s.WorkerID],
		})
	}
	slices.SortStableFunc(rows, func(a, c AssignmentRow) int {
		return cmp.Or(
			cmp.Compare(a.Shift, c.Shift),
			roster.CompareIDs(a.MachineID, c.MachineID),
			cmp.Compare(a.Position, c.Position),
		)
	})
	return rows
}

// UnfilledPositions returns the vacant slots in concatenation order.
func (b *Builder) UnfilledPositions() []roster.Slot {
	var out []roster.Slot
	for _, s := range b.all {
		if s.Vacant() {
			out = append(out, s)
		}
	}
	return out
}

type brigadeKey struct {
	week    int
	shift   roster.Shift
	machine string
	mtype   string
}

// BrigadeSummary groups all slots by week, shift, machine and type. The
// result is kept for TextSummary.
func (b *Builder) BrigadeSummary() []BrigadeRow {
	pos := make(map[brigadeKey]int)
	var rows []BrigadeRow
	for _, s := range b.all {
		k := brigadeKey{s.Week, s.Shift, s.MachineID, s.MachineType}
		i, ok := pos[k]
		if !ok {
			i = len(rows)
			pos[k] = i
			rows = append(rows, BrigadeRow{Week: s.Week, Shift: s.Shift, MachineID: s.MachineID, MachineType: s.MachineType})
		}
		rows[i].Required++
		if !s.Vacant() {
			rows[i].Assigned++
		}
	}
	slices.SortStableFunc(rows, func(a, c BrigadeRow) int {
		return cmp.Or(
			cmp.Compare(a.Week, c.Week),
			cmp.Compare(a.Shift, c.Shift),
			roster.CompareIDs(a.MachineID, c.MachineID),
		)
	})
	b.summary = rows
	return append([]BrigadeRow(nil), rows...)
}

// ProblemBrigades returns incomplete and empty brigades sorted by week,
// shift, status, missing headcount (descending) and machine.
func (b *Builder) ProblemBrigades() []ProblemRow {
	summary := b.summary
	if summary == nil {
		summary = b.BrigadeSummary()
	}

	var rows []ProblemRow
	for _, r := range summary {
		switch {
		case r.Assigned > 0 && r.Assigned < r.Required:
			rows = append(rows, ProblemRow{BrigadeRow: r, Missing: r.Required - r.Assigned, Status: StatusIncomplete})
		case r.Assigned == 0 && r.Required > 0:
			rows = append(rows, ProblemRow{BrigadeRow: r, Missing: r.Required, Status: StatusEmpty})
		}
	}
	slices.SortStableFunc(rows, func(a, c ProblemRow) int {
		return cmp.Or(
			cmp.Compare(a.Week, c.Week),
			cmp.Compare(a.Shift, c.Shift),
			cmp.Compare(a.Status, c.Status),
			cmp.Compare(c.Missing, a.Missing),
			roster.CompareIDs(a.MachineID, c.MachineID),
		)
	})
	return rows
}

// UnplacedCandidates lists candidates absent from the global exclusivity set.
func (b *Builder) UnplacedCandidates() []UnplacedRow {
	var rows []UnplacedRow
	for _, c := range b.in.Candidates {
		if b.in.State.IsAssigned(c.WorkerID) {
			continue
		}
		row := UnplacedRow{WorkerID: c.WorkerID, Shift: c.Shift}
		if c.Worker != nil {
			row.Name = c.Worker.Name
			row.Primary = c.Worker.Primary
			row.Qualified = append([]roster.Profession(nil), c.Worker.Qualified...)
		}
		rows = append(rows, row)
	}
	return rows
}
