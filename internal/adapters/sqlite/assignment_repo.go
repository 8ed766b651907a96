package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shiftplan/internal/ports/secondary"
)

// AssignmentRepository implements secondary.AssignmentRepository with SQLite.
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new SQLite assignment repository.
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

var _ secondary.AssignmentRepository = (*AssignmentRepository)(nil)

// WeekExists reports whether any assignment is saved for week.
func (r *AssignmentRepository) WeekExists(ctx context.Context, week int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assignments WHERE week = ?", week).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check week %d: %w", week, err)
	}
	return count > 0, nil
}

// ReplaceWeek deletes the saved assignments of week and inserts records.
func (r *AssignmentRepository) ReplaceWeek(ctx context.Context, week int, records []*secondary.AssignmentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE week = ?", week); err != nil {
		return fmt.Errorf("failed to clear week %d: %w", week, err)
	}

	for _, a := range records {
		if a.Week != week {
			return fmt.Errorf("assignment for week %d in save of week %d", a.Week, week)
		}
		var name, runID sql.NullString
		if a.WorkerName != "" {
			name = sql.NullString{String: a.WorkerName, Valid: true}
		}
		if a.RunID != "" {
			runID = sql.NullString{String: a.RunID, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO assignments (week, shift, machine_id, machine_type, position, min_rank, worker_id, worker_name, run_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Week, a.Shift, a.MachineID, a.MachineType, a.Position, a.MinRank, a.WorkerID, name, runID,
		); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit week %d: %w", week, err)
	}
	return nil
}

// List retrieves saved assignments in insertion order.
func (r *AssignmentRepository) List(ctx context.Context, filters secondary.AssignmentFilters) ([]*secondary.AssignmentRecord, error) {
	query := `SELECT week, shift, machine_id, machine_type, position, min_rank, worker_id, worker_name, run_id, created_at
		FROM assignments`
	var args []any
	if filters.Week > 0 {
		query += " WHERE week = ?"
		args = append(args, filters.Week)
	}
	query += " ORDER BY week, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var records []*secondary.AssignmentRecord
	for rows.Next() {
		var (
			name, runID sql.NullString
			createdAt   time.Time
		)
		a := &secondary.AssignmentRecord{}
		if err := rows.Scan(&a.Week, &a.Shift, &a.MachineID, &a.MachineType, &a.Position, &a.MinRank,
			&a.WorkerID, &name, &runID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.WorkerName = name.String
		a.RunID = runID.String
		a.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, a)
	}

	return records, rows.Err()
}
