package allocation

import (
	"fmt"

	"github.com/example/shiftplan/internal/core/roster"
)

// Engine fills slot sets through ordered matching rounds.
type Engine struct {
	rounds []Round
}

// Option configures an Engine.
type Option func(*Engine)

// WithRounds replaces the base round order.
func WithRounds(rounds []Round) Option {
	return func(e *Engine) {
		e.rounds = append([]Round(nil), rounds...)
	}
}

// NewEngine creates an engine using DefaultRounds unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rounds: DefaultRounds}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rounds returns the engine's base round order.
func (e *Engine) Rounds() []Round {
	return append([]Round(nil), e.rounds...)
}

// Allocate fills the vacant slots of every shift in place and returns the
// resulting state. Shifts are processed day, evening, night. Slots that are
// already bound are left untouched and count toward exclusivity.
func (e *Engine) Allocate(candidates []roster.Candidate, slots roster.ShiftSlots) (*State, error) {
	for _, r := range e.rounds {
		if !r.Mode.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMode, r.Mode)
		}
	}

	st := NewState()
	for _, s := range roster.Shifts {
		for _, slot := range slots[s] {
			if !slot.Vacant() {
				st.bind(s, slot.WorkerID)
			}
		}
		st.absorb(s)
	}

	for _, s := range roster.Shifts {
		if err := e.allocateShift(st, candidates, slots[s], s); err != nil {
			return nil, fmt.Errorf("failed to allocate %s shift: %w", s, err)
		}
	}

	for _, c := range candidates {
		if !st.global.has(c.WorkerID) {
			st.Unplaced = append(st.Unplaced, c)
		}
	}
	return st, nil
}

func (e *Engine) allocateShift(st *State, pool []roster.Candidate, slots []roster.Slot, target roster.Shift) error {
	vacant := vacantIndexes(slots, nil)
	for _, r := range RoundsFor(e.rounds, target) {
		if len(vacant) == 0 {
			break
		}
		var err error
		vacant, err = fill(st, pool, slots, vacant, r.Mode, target, r.Source)
		if err != nil {
			return err
		}
	}

	st.Disbanded = append(st.Disbanded, disband(st, slots, target)...)

	// Backfill draws only on the shift's own pool, unlike the main rounds.
	incomplete := make(map[string]bool)
	for _, t := range Teams(slots) {
		if t.Incomplete() {
			incomplete[t.MachineID] = true
		}
	}
	if len(incomplete) > 0 {
		idx := vacantIndexes(slots, incomplete)
		left, err := fill(st, pool, slots, idx, ModeAnyQualified, target, target)
		if err != nil {
			return err
		}
		st.Backfilled[target] += len(idx) - len(left)
	}

	st.absorb(target)
	return nil
}

// fill runs one matching round over the given vacant slot indexes and
// returns the indexes that are still vacant.
func fill(st *State, pool []roster.Candidate, slots []roster.Slot, vacant []int, mode Mode, target, source roster.Shift) ([]int, error) {
	var left []int
	for _, i := range vacant {
		slot := &slots[i]
		chosen, ok, err := pick(st, pool, mode, target, source, slot.Profession(), slot.MinRank)
		if err != nil {
			return nil, err
		}
		if !ok {
			left = append(left, i)
			continue
		}
		slot.WorkerID = chosen.WorkerID
		st.bind(target, chosen.WorkerID)
	}
	return left, nil
}

// pick returns the first eligible candidate ordered by rank descending,
// then worker ID ascending.
func pick(st *State, pool []roster.Candidate, mode Mode, target, source roster.Shift, p roster.Profession, minRank int) (roster.Candidate, bool, error) {
	var (
		best  roster.Candidate
		found bool
	)
	for _, c := range pool {
		if c.Shift != source || !st.available(c.WorkerID, target) {
			continue
		}
		ok, err := Matches(mode, c, p, minRank)
		if err != nil {
			return roster.Candidate{}, false, err
		}
		if !ok {
			continue
		}
		if !found || better(c, best, p) {
			best, found = c, true
		}
	}
	return best, found, nil
}

func better(a, b roster.Candidate, p roster.Profession) bool {
	ra, rb := a.Rank(p), b.Rank(p)
	if ra != rb {
		return ra > rb
	}
	return roster.CompareIDs(a.WorkerID, b.WorkerID) < 0
}

// disband releases every team with 0 < assigned <= required/2.
func disband(st *State, slots []roster.Slot, target roster.Shift) []DisbandedTeam {
	var out []DisbandedTeam
	for _, t := range Teams(slots) {
		if !t.Incomplete() || 2*t.Assigned > t.Required {
			continue
		}
		d := DisbandedTeam{Shift: target, MachineID: t.MachineID, Required: t.Required, Assigned: t.Assigned}
		for _, i := range t.indexes {
			if id := slots[i].WorkerID; id != "" {
				d.Released = append(d.Released, id)
				st.release(target, id)
				slots[i].WorkerID = ""
			}
		}
		out = append(out, d)
	}
	return out
}

func vacantIndexes(slots []roster.Slot, machines map[string]bool) []int {
	var idx []int
	for i, s := range slots {
		if !s.Vacant() {
			continue
		}
		if machines != nil && !machines[s.MachineID] {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// Team is the set of slots of one machine within one shift slot set.
type Team struct {
	MachineID   string
	MachineType string
	Required    int
	Assigned    int
	indexes     []int
}

// Incomplete reports 0 < assigned < required.
func (t Team) Incomplete() bool {
	return t.Assigned > 0 && t.Assigned < t.Required
}

// Teams groups a shift's slots by machine in first-seen order.
func Teams(slots []roster.Slot) []Team {
	pos := make(map[string]int)
	var teams []Team
	for i, s := range slots {
		j, ok := pos[s.MachineID]
		if !ok {
			j = len(teams)
			pos[s.MachineID] = j
			teams = append(teams, Team{MachineID: s.MachineID, MachineType: s.MachineType})
		}
		teams[j].Required++
		if !s.Vacant() {
			teams[j].Assigned++
		}
		teams[j].indexes = append(teams[j].indexes, i)
	}
	return teams
}
