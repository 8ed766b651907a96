package app

import (
	"github.com/example/shiftplan/internal/core/roster"
	"github.com/example/shiftplan/internal/ports/primary"
	"github.com/example/shiftplan/internal/ports/secondary"
)

// buildCatalog converts stored records into the scheduling catalog. History
// rows with an unknown shift are dropped and counted.
func buildCatalog(snap *secondary.CatalogSnapshot, professions []roster.Profession) (roster.Catalog, int) {
	cat := roster.Catalog{Professions: professions}

	for _, w := range snap.Workers {
		ranks := make(map[roster.Profession]int, len(w.Ranks))
		for p, r := range w.Ranks {
			ranks[roster.Profession(p)] = r
		}
		cat.Workers = append(cat.Workers, roster.NewWorker(w.ID, w.Name, ranks, professions))
	}
	for _, e := range snap.Equipment {
		cat.Machines = append(cat.Machines, roster.Machine{ID: e.ID, Type: e.MachineType})
	}
	for _, r := range snap.Requirements {
		cat.Requirements = append(cat.Requirements, roster.Requirement{
			MachineType: r.MachineType,
			Position:    r.Position,
			MinRank:     r.MinRank,
		})
	}
	for _, p := range snap.Plan {
		cat.Plan = append(cat.Plan, roster.PlanEntry{
			MachineID: p.MachineID,
			Week:      p.Week,
			Day:       p.Day,
			Evening:   p.Evening,
			Night:     p.Night,
		})
	}

	skipped := 0
	for _, h := range snap.History {
		shift, err := roster.ParseShift(h.Shift)
		if err != nil {
			skipped++
			continue
		}
		cat.History = append(cat.History, roster.HistoryEntry{WorkerID: h.WorkerID, Week: h.Week, Shift: shift})
	}

	return cat, skipped
}

func professionNames(professions []roster.Profession) []string {
	out := make([]string, len(professions))
	for i, p := range professions {
		out[i] = string(p)
	}
	return out
}

func workerToDTO(w roster.Worker) *primary.Worker {
	ranks := make(map[string]int, len(w.Ranks))
	for p, r := range w.Ranks {
		ranks[string(p)] = r
	}
	return &primary.Worker{
		ID:        w.ID,
		Name:      w.Name,
		Ranks:     ranks,
		Primary:   string(w.Primary),
		Qualified: professionNames(w.Qualified),
	}
}
