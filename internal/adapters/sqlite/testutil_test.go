// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All setup goes through db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test
// files; use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/shiftplan/internal/adapters/sqlite"
	"github.com/example/shiftplan/internal/db"
	"github.com/example/shiftplan/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every pooled connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// testSnapshot returns a small catalog: three workers, two machines,
// three requirements, a plan for week 10 and history for week 9.
func testSnapshot() *secondary.CatalogSnapshot {
	return &secondary.CatalogSnapshot{
		Workers: []*secondary.WorkerRecord{
			{ID: "10", Name: "Anna Berg", Ranks: map[string]int{"flat_printing": 2, "inkjet_printing": 0}},
			{ID: "2", Name: "Boris Klein", Ranks: map[string]int{"letterpress_printing": 1}},
			{ID: "3", Name: "Clara Vogt", Ranks: map[string]int{}},
		},
		Equipment: []*secondary.EquipmentRecord{
			{ID: "M2", MachineType: "flat_printing"},
			{ID: "M1", MachineType: "letterpress_printing"},
		},
		Requirements: []*secondary.RequirementRecord{
			{MachineType: "flat_printing", Position: "printer", MinRank: 2},
			{MachineType: "flat_printing", Position: "assistant", MinRank: 1},
			{MachineType: "letterpress_printing", Position: "printer", MinRank: 1},
		},
		Plan: []*secondary.PlanRecord{
			{MachineID: "M2", Week: 10, Day: true, Night: true},
			{MachineID: "M1", Week: 10, Evening: true},
		},
		History: []*secondary.HistoryRecord{
			{WorkerID: "10", Week: 9, Shift: "day"},
			{WorkerID: "2", Week: 9, Shift: "night"},
		},
	}
}

// seedCatalog stores testSnapshot in the database.
func seedCatalog(t *testing.T, database *sql.DB) *secondary.CatalogSnapshot {
	t.Helper()

	snap := testSnapshot()
	if err := sqlite.NewCatalogRepository(database).Replace(context.Background(), snap); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
	return snap
}
