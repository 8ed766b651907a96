package report

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/example/shiftplan/internal/core/roster"
)

// TextSummary renders the display lines for week. It must run after
// BrigadeSummary; otherwise it returns diagnostic lines instead.
func (b *Builder) TextSummary(week int) []string {
	if b.summary == nil {
		return []string{
			"Error: brigade summary has not been built.",
			"Build the brigade summary before requesting the text summary.",
		}
	}

	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	available := len(b.in.Candidates)
	assigned := len(b.in.State.Global())
	add("--- WORKERS ---")
	add("Target week: %d", week)
	add("Available: %d", available)
	add("Assigned to shifts: %d", assigned)
	add("Without shift: %d", available-assigned)
	add("")

	var required, filled int
	for _, s := range b.all {
		if s.Week != week {
			continue
		}
		required++
		if !s.Vacant() {
			filled++
		}
	}
	add("--- POSITIONS ---")
	add("Required positions: %d", required)
	add("Filled positions: %d", filled)
	add("Vacant positions: %d", required-filled)
	add("")

	type teamKey struct {
		shift   roster.Shift
		machine string
	}
	planned := make(map[teamKey]bool)
	for _, r := range b.in.PlanLong {
		if r.Week == week {
			planned[teamKey{r.Shift, r.MachineID}] = true
		}
	}

	var full int
	var incomplete, empty []BrigadeRow
	for _, r := range b.summary {
		if r.Week != week {
			continue
		}
		switch {
		case r.Assigned == r.Required:
			full++
		case r.Assigned == 0:
			empty = append(empty, r)
		default:
			incomplete = append(incomplete, r)
		}
	}

	add("--- PROBLEM BRIGADES ---")
	add("Brigades in plan: %d", len(planned))
	add("Fully staffed (N/N): %d", full)
	add("Understaffed (M/N): %d", len(incomplete))
	add("Not started (0/N): %d", len(empty))
	if rest := len(planned) - full - len(incomplete) - len(empty); rest > 0 {
		add("Without position requirements: %d", rest)
	}

	if len(incomplete) > 0 {
		slices.SortStableFunc(incomplete, func(a, c BrigadeRow) int {
			return cmp.Compare(c.Required-c.Assigned, a.Required-a.Assigned)
		})
		add("")
		add("Understaffed brigades (assigned/required):")
		for _, r := range incomplete {
			add("  - [%s] %s: %d of %d (missing %d)", r.Shift, r.MachineID, r.Assigned, r.Required, r.Required-r.Assigned)
		}
	}
	if len(empty) > 0 {
		add("")
		add("Brigades not started:")
		for _, r := range empty {
			add("  - [%s] %s: 0 of %d", r.Shift, r.MachineID, r.Required)
		}
	}
	return lines
}
