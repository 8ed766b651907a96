// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/shiftplan/internal/ports/secondary"
)

// CatalogRepository implements secondary.CatalogRepository with SQLite.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new SQLite catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ secondary.CatalogRepository = (*CatalogRepository)(nil)

// Replace swaps every catalog table for the contents of snap.
func (r *CatalogRepository) Replace(ctx context.Context, snap *secondary.CatalogSnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"worker_ranks", "workers", "equipment", "requirements", "plan", "history"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, w := range snap.Workers {
		if _, err := tx.ExecContext(ctx, "INSERT INTO workers (id, name) VALUES (?, ?)", w.ID, w.Name); err != nil {
			return fmt.Errorf("failed to insert worker %s: %w", w.ID, err)
		}
		for profession, rank := range w.Ranks {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO worker_ranks (worker_id, profession, rank) VALUES (?, ?, ?)",
				w.ID, profession, rank,
			); err != nil {
				return fmt.Errorf("failed to insert rank for worker %s: %w", w.ID, err)
			}
		}
	}

	for _, e := range snap.Equipment {
		if _, err := tx.ExecContext(ctx, "INSERT INTO equipment (id, machine_type) VALUES (?, ?)", e.ID, e.MachineType); err != nil {
			return fmt.Errorf("failed to insert machine %s: %w", e.ID, err)
		}
	}

	for _, req := range snap.Requirements {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO requirements (machine_type, position, min_rank) VALUES (?, ?, ?)",
			req.MachineType, req.Position, req.MinRank,
		); err != nil {
			return fmt.Errorf("failed to insert requirement: %w", err)
		}
	}

	for _, p := range snap.Plan {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO plan (machine_id, week, day, evening, night) VALUES (?, ?, ?, ?, ?)",
			p.MachineID, p.Week, p.Day, p.Evening, p.Night,
		); err != nil {
			return fmt.Errorf("failed to insert plan for machine %s: %w", p.MachineID, err)
		}
	}

	for _, h := range snap.History {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO history (worker_id, week, shift) VALUES (?, ?, ?)",
			h.WorkerID, h.Week, h.Shift,
		); err != nil {
			return fmt.Errorf("failed to insert history for worker %s: %w", h.WorkerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// Load reads every catalog table. Rows keep their import order.
func (r *CatalogRepository) Load(ctx context.Context) (*secondary.CatalogSnapshot, error) {
	snap := &secondary.CatalogSnapshot{}

	workers, err := r.loadWorkers(ctx)
	if err != nil {
		return nil, err
	}
	snap.Workers = workers

	rows, err := r.db.QueryContext(ctx, "SELECT id, machine_type FROM equipment ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	for rows.Next() {
		e := &secondary.EquipmentRecord{}
		if err := rows.Scan(&e.ID, &e.MachineType); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan machine: %w", err)
		}
		snap.Equipment = append(snap.Equipment, e)
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx, "SELECT machine_type, position, min_rank FROM requirements ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	for rows.Next() {
		req := &secondary.RequirementRecord{}
		if err := rows.Scan(&req.MachineType, &req.Position, &req.MinRank); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		snap.Requirements = append(snap.Requirements, req)
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx, "SELECT machine_id, week, day, evening, night FROM plan ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list plan: %w", err)
	}
	for rows.Next() {
		p := &secondary.PlanRecord{}
		if err := rows.Scan(&p.MachineID, &p.Week, &p.Day, &p.Evening, &p.Night); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		snap.Plan = append(snap.Plan, p)
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx, "SELECT worker_id, week, shift FROM history ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		h := &secondary.HistoryRecord{}
		if err := rows.Scan(&h.WorkerID, &h.Week, &h.Shift); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		snap.History = append(snap.History, h)
	}

	return snap, rows.Err()
}

func (r *CatalogRepository) loadWorkers(ctx context.Context) ([]*secondary.WorkerRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM workers ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	var workers []*secondary.WorkerRecord
	byID := make(map[string]*secondary.WorkerRecord)
	for rows.Next() {
		w := &secondary.WorkerRecord{Ranks: make(map[string]int)}
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
		byID[w.ID] = w
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx, "SELECT worker_id, profession, rank FROM worker_ranks")
	if err != nil {
		return nil, fmt.Errorf("failed to list worker ranks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			workerID, profession string
			rank                 int
		)
		if err := rows.Scan(&workerID, &profession, &rank); err != nil {
			return nil, fmt.Errorf("failed to scan worker rank: %w", err)
		}
		if w, ok := byID[workerID]; ok {
			w.Ranks[profession] = rank
		}
	}

	return workers, rows.Err()
}
