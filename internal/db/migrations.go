package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_catalog_and_assignments",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_schedule_runs",
		Up:      migrationV2,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// SchemaVersion returns the highest applied migration version.
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the catalog tables and the assignments table
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS workers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS worker_ranks (
			worker_id TEXT NOT NULL,
			profession TEXT NOT NULL,
			rank INTEGER NOT NULL CHECK(rank >= 0),
			PRIMARY KEY (worker_id, profession),
			FOREIGN KEY (worker_id) REFERENCES workers(id) ON DELETE CASCADE
		);
		CREATE TABLE IF NOT EXISTS equipment (
			id TEXT PRIMARY KEY,
			machine_type TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS requirements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			machine_type TEXT NOT NULL,
			position TEXT NOT NULL,
			min_rank INTEGER NOT NULL CHECK(min_rank >= 0)
		);
		CREATE INDEX IF NOT EXISTS idx_requirements_type ON requirements(machine_type);
		CREATE TABLE IF NOT EXISTS plan (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			machine_id TEXT NOT NULL,
			week INTEGER NOT NULL CHECK(week BETWEEN 1 AND 53),
			day INTEGER NOT NULL DEFAULT 0,
			evening INTEGER NOT NULL DEFAULT 0,
			night INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_plan_week ON plan(week);
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			worker_id TEXT NOT NULL,
			week INTEGER NOT NULL,
			shift TEXT NOT NULL CHECK(shift IN ('day', 'evening', 'night'))
		);
		CREATE INDEX IF NOT EXISTS idx_history_week ON history(week);
		CREATE TABLE IF NOT EXISTS assignments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			week INTEGER NOT NULL,
			shift TEXT NOT NULL CHECK(shift IN ('day', 'evening', 'night')),
			machine_id TEXT NOT NULL,
			machine_type TEXT NOT NULL,
			position TEXT NOT NULL,
			min_rank INTEGER NOT NULL DEFAULT 0,
			worker_id TEXT NOT NULL,
			worker_name TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_assignments_week ON assignments(week);
	`)
	return err
}

// migrationV2 adds the run log and links saved assignments to their run
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS schedule_runs (
			id TEXT PRIMARY KEY,
			week INTEGER NOT NULL,
			candidates INTEGER NOT NULL DEFAULT 0,
			required INTEGER NOT NULL DEFAULT 0,
			filled INTEGER NOT NULL DEFAULT 0,
			unplaced INTEGER NOT NULL DEFAULT 0,
			disbanded INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_schedule_runs_week ON schedule_runs(week);
		ALTER TABLE assignments ADD COLUMN run_id TEXT;
	`)
	return err
}
