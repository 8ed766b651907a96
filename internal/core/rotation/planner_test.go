package rotation

import (
	"reflect"
	"slices"
	"testing"

	"github.com/example/shiftplan/internal/core/roster"
)

func testCatalog() roster.Catalog {
	profs := roster.DefaultProfessions
	return roster.Catalog{
		Professions: profs,
		Workers: []roster.Worker{
			roster.NewWorker("1", "Ivanov", map[roster.Profession]int{"letterpress_printing": 1}, profs),
			roster.NewWorker("2", "Petrov", map[roster.Profession]int{"flat_printing": 2}, profs),
			roster.NewWorker("3", "Sidorov", map[roster.Profession]int{"inkjet_printing": 1}, profs),
		},
		Machines: []roster.Machine{
			{ID: "M1", Type: "flat_printing"},
			{ID: "M2", Type: "inkjet_printing"},
		},
		Requirements: []roster.Requirement{
			{MachineType: "flat_printing", Position: "operator", MinRank: 1},
			{MachineType: "flat_printing", Position: "assistant", MinRank: 1},
			{MachineType: "inkjet_printing", Position: "operator", MinRank: 1},
		},
		Plan: []roster.PlanEntry{
			{MachineID: "M1", Week: 10, Day: true, Night: true},
			{MachineID: "M2", Week: 10, Evening: true},
			{MachineID: "M1", Week: 11, Day: true},
		},
		History: []roster.HistoryEntry{
			{WorkerID: "1", Week: 9, Shift: roster.ShiftNight},
			{WorkerID: "2", Week: 9, Shift: roster.ShiftDay},
			{WorkerID: "3", Week: 9, Shift: roster.ShiftEvening},
			{WorkerID: "2", Week: 8, Shift: roster.ShiftNight},
		},
	}
}

func TestBuildCandidates_AppliesRotation(t *testing.T) {
	cat := testCatalog()
	candidates := BuildCandidates(cat.History, cat.Workers, 10)

	want := map[string]roster.Shift{
		"1": roster.ShiftEvening,
		"2": roster.ShiftNight,
		"3": roster.ShiftDay,
	}
	if len(candidates) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(candidates))
	}
	for _, c := range candidates {
		if c.Shift != want[c.WorkerID] {
			t.Errorf("worker %s: shift = %q, want %q", c.WorkerID, c.Shift, want[c.WorkerID])
		}
		if c.Week != 10 {
			t.Errorf("worker %s: week = %d, want 10", c.WorkerID, c.Week)
		}
		if c.Worker == nil {
			t.Errorf("worker %s: expected joined worker data", c.WorkerID)
		}
	}
}

func TestBuildCandidates_MissingWorkerRow(t *testing.T) {
	history := []roster.HistoryEntry{{WorkerID: "99", Week: 4, Shift: roster.ShiftDay}}

	candidates := BuildCandidates(history, nil, 5)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Worker != nil {
		t.Error("expected nil worker for unknown worker ID")
	}
	if candidates[0].Rank("flat_printing") != 0 {
		t.Error("expected zero rank without worker data")
	}
}

func TestPlan_NoHistoryIsNotAnError(t *testing.T) {
	cat := testCatalog()

	result := Plan(cat, 12)
	if !result.MissingHistory {
		t.Error("expected MissingHistory for week without prior history")
	}
	if len(result.Candidates) != 0 {
		t.Errorf("expected empty pool, got %d", len(result.Candidates))
	}
}

func TestPlan_FansOutRequirements(t *testing.T) {
	result := Plan(testCatalog(), 10)

	tests := []struct {
		shift roster.Shift
		want  []string
	}{
		{roster.ShiftDay, []string{"M1/operator", "M1/assistant"}},
		{roster.ShiftNight, []string{"M1/operator", "M1/assistant"}},
		{roster.ShiftEvening, []string{"M2/operator"}},
	}

	for _, tt := range tests {
		var got []string
		for _, s := range result.Slots[tt.shift] {
			if !s.Vacant() {
				t.Errorf("%s slot %s/%s is not vacant", tt.shift, s.MachineID, s.Position)
			}
			if s.Week != 10 || s.Shift != tt.shift {
				t.Errorf("slot carries week %d shift %q", s.Week, s.Shift)
			}
			got = append(got, s.MachineID+"/"+s.Position)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("%s slots = %v, want %v", tt.shift, got, tt.want)
		}
	}
}

func TestPlan_RequiredMatchesRequirementRows(t *testing.T) {
	cat := testCatalog()
	result := Plan(cat, 10)

	for _, shift := range roster.Shifts {
		counts := make(map[string]int)
		types := make(map[string]string)
		for _, s := range result.Slots[shift] {
			counts[s.MachineID]++
			types[s.MachineID] = s.MachineType
		}
		for machine, n := range counts {
			if want := RequiredCount(cat.Requirements, types[machine]); n != want {
				t.Errorf("%s/%s: %d slots, want %d", shift, machine, n, want)
			}
		}
	}
}

func TestPlan_UnknownMachinesAndTypesWithoutRequirements(t *testing.T) {
	cat := testCatalog()
	cat.Machines = append(cat.Machines, roster.Machine{ID: "M3", Type: "offset"})
	cat.Plan = append(cat.Plan,
		roster.PlanEntry{MachineID: "M3", Week: 10, Day: true},
		roster.PlanEntry{MachineID: "GHOST", Week: 10, Night: true},
	)

	result := Plan(cat, 10)
	if !slices.Equal(result.UnknownMachines, []string{"GHOST"}) {
		t.Errorf("UnknownMachines = %v, want [GHOST]", result.UnknownMachines)
	}
	for _, s := range result.Slots[roster.ShiftDay] {
		if s.MachineID == "M3" {
			t.Error("machine type without requirements must not produce slots")
		}
	}

	var planned bool
	for _, r := range result.PlanLong {
		if r.MachineID == "M3" {
			planned = true
		}
	}
	if !planned {
		t.Error("expected M3 in the long-form plan")
	}
}

func TestPlan_IsDeterministic(t *testing.T) {
	cat := testCatalog()

	first := Plan(cat, 10)
	second := Plan(cat, 10)
	if !reflect.DeepEqual(first.Slots, second.Slots) {
		t.Error("re-planning produced different slot sets")
	}
	if !reflect.DeepEqual(first.Candidates, second.Candidates) {
		t.Error("re-planning produced different candidates")
	}
}
