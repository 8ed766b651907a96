package allocation

import (
	"slices"

	"github.com/example/shiftplan/internal/core/roster"
)

type workerSet map[string]struct{}

func (s workerSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s workerSet) sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.SortFunc(out, roster.CompareIDs)
	return out
}

// DisbandedTeam records a team released by the viability check.
type DisbandedTeam struct {
	Shift     roster.Shift
	MachineID string
	Required  int
	Assigned  int
	Released  []string
}

// State is the allocation state of one run: the per-shift bound sets and
// the global exclusivity set that is their union.
type State struct {
	bound  map[roster.Shift]workerSet
	global workerSet

	// Disbanded lists teams released during stabilization, in order.
	Disbanded []DisbandedTeam
	// Backfilled counts slots filled by the backfill pass per shift.
	Backfilled map[roster.Shift]int
	// Unplaced lists candidates that ended the run without a shift.
	Unplaced []roster.Candidate
}

// NewState returns an empty allocation state.
func NewState() *State {
	st := &State{
		bound:      make(map[roster.Shift]workerSet, len(roster.Shifts)),
		global:     make(workerSet),
		Backfilled: make(map[roster.Shift]int, len(roster.Shifts)),
	}
	for _, s := range roster.Shifts {
		st.bound[s] = make(workerSet)
	}
	return st
}

// Bound returns the workers bound in shift s, sorted by ID.
func (st *State) Bound(s roster.Shift) []string {
	return st.bound[s].sorted()
}

// Global returns the global exclusivity set, sorted by ID.
func (st *State) Global() []string {
	return st.global.sorted()
}

// IsAssigned reports whether the worker holds a shift this week.
func (st *State) IsAssigned(workerID string) bool {
	return st.global.has(workerID)
}

// available reports whether a worker may still be bound in target:
// not bound there already and not bound to any other shift.
func (st *State) available(workerID string, target roster.Shift) bool {
	return !st.bound[target].has(workerID) && !st.global.has(workerID)
}

func (st *State) bind(target roster.Shift, workerID string) {
	st.bound[target][workerID] = struct{}{}
}

func (st *State) release(target roster.Shift, workerID string) {
	delete(st.bound[target], workerID)
	delete(st.global, workerID)
}

// absorb merges a finished shift's bound set into the global set.
func (st *State) absorb(target roster.Shift) {
	for id := range st.bound[target] {
		st.global[id] = struct{}{}
	}
}
