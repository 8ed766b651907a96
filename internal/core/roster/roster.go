// Package roster contains the catalog types shared by the scheduling pipeline.
// This is part of the Functional Core - no I/O, only data and pure helpers.
package roster

import (
	"fmt"
	"strconv"
	"strings"
)

// Shift is one of the three weekly shifts.
type Shift string

const (
	ShiftDay     Shift = "day"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
)

// Shifts lists the shifts in allocation order. Later shifts see the
// exclusivity accumulated by earlier ones.
var Shifts = []Shift{ShiftDay, ShiftEvening, ShiftNight}

// ParseShift converts a raw shift name into a Shift.
func ParseShift(s string) (Shift, error) {
	switch Shift(strings.ToLower(strings.TrimSpace(s))) {
	case ShiftDay:
		return ShiftDay, nil
	case ShiftEvening:
		return ShiftEvening, nil
	case ShiftNight:
		return ShiftNight, nil
	}
	return "", fmt.Errorf("unknown shift %q (expected day, evening or night)", s)
}

// Next returns the shift that follows s in the weekly cycle
// day -> night -> evening -> day. The same table is the rotation rule:
// whoever worked shift s last week works Next(s) this week.
func (s Shift) Next() Shift {
	switch s {
	case ShiftDay:
		return ShiftNight
	case ShiftNight:
		return ShiftEvening
	case ShiftEvening:
		return ShiftDay
	}
	return ""
}

// Profession is a skill a worker can hold a rank in.
type Profession string

// DefaultProfessions is the profession set used when none is configured.
var DefaultProfessions = []Profession{"flat_printing", "letterpress_printing", "inkjet_printing"}

// Worker is a catalog worker with derived profession data.
type Worker struct {
	ID    string
	Name  string
	Ranks map[Profession]int

	// Primary is the highest-ranked profession, empty when the worker holds none.
	Primary Profession
	// Qualified lists professions with rank > 0 in profession order.
	Qualified []Profession
}

// NewWorker builds a Worker and derives its primary profession and
// qualified set. Ties for the highest rank go to the profession listed
// first in professions.
func NewWorker(id, name string, ranks map[Profession]int, professions []Profession) Worker {
	w := Worker{ID: id, Name: name, Ranks: make(map[Profession]int, len(professions))}

	best := 0
	for _, p := range professions {
		r := ranks[p]
		if r < 0 {
			r = 0
		}
		w.Ranks[p] = r
		if r > 0 {
			w.Qualified = append(w.Qualified, p)
		}
		if r > best {
			best = r
			w.Primary = p
		}
	}
	return w
}

// Rank returns the worker's rank in p (0 when unqualified).
func (w Worker) Rank(p Profession) int {
	return w.Ranks[p]
}

// Machine is a piece of equipment; its type names the required profession.
type Machine struct {
	ID   string
	Type string
}

// Requirement is one position on machines of a type.
type Requirement struct {
	MachineType string
	Position    string
	MinRank     int
}

// PlanEntry says on which shifts a machine runs in a week.
type PlanEntry struct {
	MachineID string
	Week      int
	Day       bool
	Evening   bool
	Night     bool
}

// RunsOn reports whether the machine runs on shift s.
func (p PlanEntry) RunsOn(s Shift) bool {
	switch s {
	case ShiftDay:
		return p.Day
	case ShiftEvening:
		return p.Evening
	case ShiftNight:
		return p.Night
	}
	return false
}

// PlanRow is the long form of a plan entry: one active machine on one shift.
type PlanRow struct {
	MachineID   string
	Shift       Shift
	MachineType string
	Week        int
}

// HistoryEntry records the shift a worker had in a week.
type HistoryEntry struct {
	WorkerID string
	Week     int
	Shift    Shift
}

// Catalog is the read-only reference data for one scheduling run.
type Catalog struct {
	Professions  []Profession
	Workers      []Worker
	Machines     []Machine
	Requirements []Requirement
	Plan         []PlanEntry
	History      []HistoryEntry
}

// CompareIDs orders identifiers numerically when both are integers and
// lexically otherwise.
func CompareIDs(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
