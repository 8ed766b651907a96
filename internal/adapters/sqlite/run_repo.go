package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shiftplan/internal/ports/secondary"
)

// RunRepository implements secondary.RunRepository with SQLite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

var _ secondary.RunRepository = (*RunRepository)(nil)

// Create persists a run.
func (r *RunRepository) Create(ctx context.Context, run *secondary.RunRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO schedule_runs (id, week, candidates, required, filled, unplaced, disbanded)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Week, run.Candidates, run.Required, run.Filled, run.Unplaced, run.Disbanded,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// List retrieves runs newest first.
func (r *RunRepository) List(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	query := `SELECT id, week, candidates, required, filled, unplaced, disbanded, created_at
		FROM schedule_runs ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		var createdAt time.Time
		run := &secondary.RunRecord{}
		if err := rows.Scan(&run.ID, &run.Week, &run.Candidates, &run.Required, &run.Filled,
			&run.Unplaced, &run.Disbanded, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt = createdAt.Format(time.RFC3339)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

