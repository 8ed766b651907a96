// Package allocation fills vacant slots from the candidate pool.
// This is part of the Functional Core - no I/O, only pure functions.
package allocation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/shiftplan/internal/core/roster"
)

// ErrUnknownMode is returned for a matching mode outside the closed set.
// It is a configuration error and is never retried.
var ErrUnknownMode = errors.New("unknown matching mode")

// Mode is a matching mode, ordered from most to least specific.
type Mode int

const (
	// ModeExact matches a candidate whose primary profession is the required
	// one at exactly the minimum rank.
	ModeExact Mode = iota + 1
	// ModeNear matches a candidate holding the profession at the minimum
	// rank or one above it.
	ModeNear
	// ModeAnyQualified matches a candidate holding the profession at any rank.
	ModeAnyQualified
)

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= ModeExact && m <= ModeAnyQualified
}

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeNear:
		return "near"
	case ModeAnyQualified:
		return "any"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return ModeExact, nil
	case "near":
		return ModeNear, nil
	case "any", "any-qualified", "any_qualified":
		return ModeAnyQualified, nil
	}
	return 0, fmt.Errorf("%w: %q (expected exact, near or any)", ErrUnknownMode, s)
}

// Matches reports whether c fits a slot requiring profession p at minRank
// under mode m. Shift and exclusivity checks are the caller's job.
func Matches(m Mode, c roster.Candidate, p roster.Profession, minRank int) (bool, error) {
	rank := c.Rank(p)
	switch m {
	case ModeExact:
		return c.Primary() == p && rank == minRank, nil
	case ModeNear:
		return rank > 0 && (rank == minRank || rank == minRank+1), nil
	case ModeAnyQualified:
		return rank > 0, nil
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownMode, m)
}

// Round is one matching pass: a mode applied to one source shift's candidates.
type Round struct {
	Mode   Mode
	Source roster.Shift
}

// DefaultRounds is the base round order.
var DefaultRounds = []Round{
	{ModeExact, roster.ShiftDay},
	{ModeNear, roster.ShiftDay},
	{ModeExact, roster.ShiftNight},
	{ModeNear, roster.ShiftNight},
	{ModeExact, roster.ShiftEvening},
	{ModeNear, roster.ShiftEvening},
}

// RoundsFor rotates base so the target shift's own candidates are searched
// first. With DefaultRounds this yields day->night->evening for day,
// evening->day->night for evening and night->evening->day for night.
func RoundsFor(base []Round, target roster.Shift) []Round {
	start := 0
	for i, r := range base {
		if r.Source == target {
			start = i
			break
		}
	}
	out := make([]Round, 0, len(base))
	out = append(out, base[start:]...)
	return append(out, base[:start]...)
}
