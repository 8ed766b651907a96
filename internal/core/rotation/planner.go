// Package rotation derives a week's candidate pool and vacant slots.
// This is part of the Functional Core - no I/O, only pure functions.
package rotation

import (
	"github.com/example/shiftplan/internal/core/roster"
)

// Result is the output of planning one target week.
type Result struct {
	Week       int
	Candidates []roster.Candidate
	Slots      roster.ShiftSlots
	PlanLong   []roster.PlanRow

	// MissingHistory is set when no history exists for the previous week.
	// The pool is then empty and every slot stays vacant.
	MissingHistory bool
	// UnknownMachines lists plan machines absent from the equipment catalog.
	UnknownMachines []string
}

// Plan builds the candidate pool and the vacant slots for targetWeek.
// The caller validates targetWeek > 0.
func Plan(catalog roster.Catalog, targetWeek int) Result {
	planLong, unknown := ExpandPlan(catalog.Plan, catalog.Machines, targetWeek)
	candidates := BuildCandidates(catalog.History, catalog.Workers, targetWeek)

	return Result{
		Week:            targetWeek,
		Candidates:      candidates,
		Slots:           BuildSlots(planLong, catalog.Requirements),
		PlanLong:        planLong,
		MissingHistory:  len(candidates) == 0,
		UnknownMachines: unknown,
	}
}

// BuildCandidates rotates the previous week's history into this week's pool.
// History order is preserved.
func BuildCandidates(history []roster.HistoryEntry, workers []roster.Worker, targetWeek int) []roster.Candidate {
	byID := make(map[string]*roster.Worker, len(workers))
	for i := range workers {
		byID[workers[i].ID] = &workers[i]
	}

	var candidates []roster.Candidate
	for _, h := range history {
		if h.Week != targetWeek-1 {
			continue
		}
		candidates = append(candidates, roster.Candidate{
			WorkerID:  h.WorkerID,
			Week:      targetWeek,
			PrevShift: h.Shift,
			Shift:     h.Shift.Next(),
			Worker:    byID[h.WorkerID],
		})
	}
	return candidates
}

// ExpandPlan turns plan entries for week into long-form rows, one per
// active machine and shift. Machines missing from the equipment catalog
// are skipped and returned separately.
func ExpandPlan(plan []roster.PlanEntry, machines []roster.Machine, week int) ([]roster.PlanRow, []string) {
	types := make(map[string]string, len(machines))
	for _, m := range machines {
		types[m.ID] = m.Type
	}

	var (
		rows    []roster.PlanRow
		unknown []string
		seen    = make(map[string]bool)
	)
	for _, p := range plan {
		if p.Week != week {
			continue
		}
		machineType, ok := types[p.MachineID]
		if !ok {
			if !seen[p.MachineID] {
				seen[p.MachineID] = true
				unknown = append(unknown, p.MachineID)
			}
			continue
		}
		for _, s := range roster.Shifts {
			if !p.RunsOn(s) {
				continue
			}
			rows = append(rows, roster.PlanRow{
				MachineID:   p.MachineID,
				Shift:       s,
				MachineType: machineType,
				Week:        week,
			})
		}
	}
	return rows, unknown
}

// BuildSlots fans each plan row out into one vacant slot per requirement
// row of its machine type. A type without requirements yields no slots.
func BuildSlots(planLong []roster.PlanRow, requirements []roster.Requirement) roster.ShiftSlots {
	byType := make(map[string][]roster.Requirement)
	for _, r := range requirements {
		byType[r.MachineType] = append(byType[r.MachineType], r)
	}

	slots := roster.NewShiftSlots()
	for _, row := range planLong {
		for _, req := range byType[row.MachineType] {
			slots[row.Shift] = append(slots[row.Shift], roster.Slot{
				Week:        row.Week,
				Shift:       row.Shift,
				MachineID:   row.MachineID,
				MachineType: row.MachineType,
				Position:    req.Position,
				MinRank:     req.MinRank,
			})
		}
	}
	return slots
}

// RequiredCount returns how many slots a machine of machineType needs per shift.
func RequiredCount(requirements []roster.Requirement, machineType string) int {
	n := 0
	for _, r := range requirements {
		if r.MachineType == machineType {
			n++
		}
	}
	return n
}
