package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/example/shiftplan/internal/core/roster"
)

// documentOrder is the shift order of the printed schedule.
var documentOrder = []roster.Shift{roster.ShiftNight, roster.ShiftDay, roster.ShiftEvening}

var shiftTitles = map[roster.Shift]string{
	roster.ShiftNight:   "NIGHT SHIFT",
	roster.ShiftDay:     "DAY SHIFT",
	roster.ShiftEvening: "EVENING SHIFT",
}

const ruleWidth = 50

// MondayOf returns the Monday of the week containing t, at midnight.
func MondayOf(t time.Time) time.Time {
	w := int(t.Weekday())
	if w == 0 {
		w = 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()-w+1, 0, 0, 0, 0, t.Location())
}

// ScheduleDocument formats the week's schedule for printing. It returns
// false when the week has no slots.
func (b *Builder) ScheduleDocument(week int, weekStart time.Time) (string, bool) {
	var rows []roster.Slot
	for _, s := range b.all {
		if s.Week == week {
			rows = append(rows, s)
		}
	}
	if len(rows) == 0 {
		return "", false
	}

	monday := MondayOf(weekStart)
	friday := monday.AddDate(0, 0, 4)

	var sb strings.Builder
	fmt.Fprintf(&sb, "WORK SCHEDULE, WEEK %d\n", week)
	fmt.Fprintf(&sb, "Period: Mon %s - Fri %s\n", monday.Format("02.01.2006"), friday.Format("02.01.2006"))
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")

	for _, shift := range documentOrder {
		var shiftRows []roster.Slot
		for _, s := range rows {
			if s.Shift == shift {
				shiftRows = append(shiftRows, s)
			}
		}
		if len(shiftRows) == 0 {
			continue
		}
		slices.SortStableFunc(shiftRows, func(a, c roster.Slot) int {
			return cmp.Or(
				roster.CompareIDs(a.MachineID, c.MachineID),
				cmp.Compare(a.Position, c.Position),
			)
		})

		fmt.Fprintf(&sb, "\n%s\n", shiftTitles[shift])
		sb.WriteString(strings.Repeat("-", ruleWidth))
		sb.WriteString("\n")

		machine := ""
		for _, s := range shiftRows {
			if s.MachineID != machine {
				machine = s.MachineID
				fmt.Fprintf(&sb, "Machine %s (%s)\n", s.MachineID, s.MachineType)
			}
			who := b.marker
			if !s.Vacant() {
				who = s.WorkerID
				if name := b.names[s.WorkerID]; name != "" {
					who = fmt.Sprintf("%s %s", s.WorkerID, name)
				}
			}
			fmt.Fprintf(&sb, "  %-20s %s\n", s.Position, who)
		}
	}
	return sb.String(), true
}
