package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the catalog with a small print shop: twelve
// workers, five machines, history for week-1 and a plan for week.
func SeedFixtures(database *sql.DB, week int) error {
	if week < 2 || week > 53 {
		return fmt.Errorf("seed week must be in 2..53, got %d", week)
	}

	// Workers: id, name, flat, letterpress, inkjet
	workers := []struct {
		id, name                  string
		flat, letterpress, inkjet int
	}{
		{"1", "Anna Berg", 3, 0, 0},
		{"2", "Boris Klein", 2, 1, 0},
		{"3", "Clara Vogt", 1, 0, 0},
		{"4", "Daniel Roth", 0, 3, 0},
		{"5", "Eva Lang", 0, 2, 1},
		{"6", "Felix Brandt", 0, 1, 0},
		{"7", "Greta Hahn", 0, 0, 3},
		{"8", "Hugo Frank", 1, 0, 2},
		{"9", "Ida Weiss", 0, 0, 1},
		{"10", "Jonas Kraus", 2, 2, 0},
		{"11", "Karla Stein", 1, 1, 1},
		{"12", "Lukas Peters", 0, 0, 0},
	}
	for _, w := range workers {
		if _, err := database.Exec("INSERT INTO workers (id, name) VALUES (?, ?)", w.id, w.name); err != nil {
			return fmt.Errorf("seed workers: %w", err)
		}
		ranks := []struct {
			profession string
			rank       int
		}{
			{"flat_printing", w.flat},
			{"letterpress_printing", w.letterpress},
			{"inkjet_printing", w.inkjet},
		}
		for _, r := range ranks {
			if _, err := database.Exec(
				"INSERT INTO worker_ranks (worker_id, profession, rank) VALUES (?, ?, ?)",
				w.id, r.profession, r.rank,
			); err != nil {
				return fmt.Errorf("seed worker ranks: %w", err)
			}
		}
	}

	equipment := []struct{ id, machineType string }{
		{"1", "flat_printing"},
		{"2", "flat_printing"},
		{"3", "letterpress_printing"},
		{"4", "inkjet_printing"},
		{"5", "inkjet_printing"},
	}
	for _, e := range equipment {
		if _, err := database.Exec("INSERT INTO equipment (id, machine_type) VALUES (?, ?)", e.id, e.machineType); err != nil {
			return fmt.Errorf("seed equipment: %w", err)
		}
	}

	requirements := []struct {
		machineType, position string
		minRank               int
	}{
		{"flat_printing", "printer", 2},
		{"flat_printing", "assistant", 1},
		{"letterpress_printing", "printer", 2},
		{"letterpress_printing", "assistant", 1},
		{"inkjet_printing", "operator", 1},
	}
	for _, r := range requirements {
		if _, err := database.Exec(
			"INSERT INTO requirements (machine_type, position, min_rank) VALUES (?, ?, ?)",
			r.machineType, r.position, r.minRank,
		); err != nil {
			return fmt.Errorf("seed requirements: %w", err)
		}
	}

	plan := []struct {
		machineID           string
		day, evening, night bool
	}{
		{"1", true, true, false},
		{"2", true, false, true},
		{"3", true, true, true},
		{"4", false, true, false},
		{"5", true, false, false},
	}
	for _, p := range plan {
		if _, err := database.Exec(
			"INSERT INTO plan (machine_id, week, day, evening, night) VALUES (?, ?, ?, ?, ?)",
			p.machineID, week, p.day, p.evening, p.night,
		); err != nil {
			return fmt.Errorf("seed plan: %w", err)
		}
	}

	shifts := []string{"day", "evening", "night"}
	for i, w := range workers {
		if _, err := database.Exec(
			"INSERT INTO history (worker_id, week, shift) VALUES (?, ?, ?)",
			w.id, week-1, shifts[i%len(shifts)],
		); err != nil {
			return fmt.Errorf("seed history: %w", err)
		}
	}

	return nil
}
