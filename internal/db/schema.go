package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs. It reflects the
// state after all migrations.
//
// This is the single source of truth for the database schema. Tests use it
// via GetSchemaSQL() so repository code referencing a missing column fails
// immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Catalog: workers and their rank per profession
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

-- Catalog: machines
CREATE TABLE IF NOT EXISTS equipment (
	id TEXT PRIMARY KEY,
	machine_type TEXT NOT NULL
);

-- Catalog: positions per machine type (row order is slot order)
CREATE TABLE IF NOT EXISTS requirements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	machine_type TEXT NOT NULL,
	position TEXT NOT NULL,
	min_rank INTEGER NOT NULL CHECK(min_rank >= 0)
);

CREATE INDEX IF NOT EXISTS idx_requirements_type ON requirements(machine_type);

-- Catalog: production plan (machine_id may reference an unknown machine)
CREATE TABLE IF NOT EXISTS plan (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	machine_id TEXT NOT NULL,
	week INTEGER NOT NULL CHECK(week BETWEEN 1 AND 53),
	day INTEGER NOT NULL DEFAULT 0,
	evening INTEGER NOT NULL DEFAULT 0,
	night INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_plan_week ON plan(week);

-- Catalog: shift history
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	worker_id TEXT NOT NULL,
	week INTEGER NOT NULL,
	shift TEXT NOT NULL CHECK(shift IN ('day', 'evening', 'night'))
);

CREATE INDEX IF NOT EXISTS idx_history_week ON history(week);

-- Saved schedules
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
	run_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_assignments_week ON assignments(week);

-- Scheduling run log
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
`

// InitSchema creates the database schema
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(db)
	}

	// Fresh install - create modern schema directly
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	// Mark all migrations as applied for fresh installs
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
