package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/shiftplan/internal/adapters/sqlite"
	"github.com/example/shiftplan/internal/ports/secondary"
)

func TestCatalogRepository_ReplaceAndLoad(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCatalogRepository(database)
	ctx := context.Background()

	seedCatalog(t, database)

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(snap.Workers) != 3 {
		t.Fatalf("expected 3 workers, got %d", len(snap.Workers))
	}
	if snap.Workers[0].ID != "10" {
		t.Errorf("expected import order to be kept, first worker is %s", snap.Workers[0].ID)
	}
	if snap.Workers[0].Ranks["flat_printing"] != 2 {
		t.Errorf("expected flat rank 2, got %d", snap.Workers[0].Ranks["flat_printing"])
	}
	if len(snap.Workers[2].Ranks) != 0 {
		t.Errorf("expected no ranks for worker 3, got %v", snap.Workers[2].Ranks)
	}

	if len(snap.Equipment) != 2 || snap.Equipment[0].ID != "M2" {
		t.Errorf("unexpected equipment: %+v", snap.Equipment)
	}

	if len(snap.Requirements) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(snap.Requirements))
	}
	if snap.Requirements[1].Position != "assistant" {
		t.Errorf("expected requirement order to be kept, got %s", snap.Requirements[1].Position)
	}

	if len(snap.Plan) != 2 || !snap.Plan[0].Day || snap.Plan[0].Evening || !snap.Plan[0].Night {
		t.Errorf("unexpected plan: %+v", snap.Plan[0])
	}
	if len(snap.History) != 2 || snap.History[1].Shift != "night" {
		t.Errorf("unexpected history: %+v", snap.History)
	}
}

func TestCatalogRepository_ReplaceClearsPrevious(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCatalogRepository(database)
	ctx := context.Background()

	seedCatalog(t, database)

	next := &secondary.CatalogSnapshot{
		Workers: []*secondary.WorkerRecord{{ID: "99", Name: "New Hire", Ranks: map[string]int{"inkjet_printing": 1}}},
	}
	if err := repo.Replace(ctx, next); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Workers) != 1 || snap.Workers[0].ID != "99" {
		t.Errorf("expected only the new worker, got %+v", snap.Workers)
	}
	if len(snap.Plan) != 0 || len(snap.History) != 0 || len(snap.Equipment) != 0 {
		t.Error("expected other tables to be cleared")
	}
}

func TestCatalogRepository_ReplaceRollsBackOnError(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCatalogRepository(database)
	ctx := context.Background()

	seedCatalog(t, database)

	bad := &secondary.CatalogSnapshot{
		Workers: []*secondary.WorkerRecord{{ID: "1", Name: "A"}, {ID: "1", Name: "Duplicate"}},
	}
	if err := repo.Replace(ctx, bad); err == nil {
		t.Fatal("expected error for duplicate worker ID")
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Workers) != 3 {
		t.Errorf("expected previous catalog to survive, got %d workers", len(snap.Workers))
	}
}

func TestCatalogRepository_RejectsInvalidShift(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCatalogRepository(database)

	bad := &secondary.CatalogSnapshot{
		History: []*secondary.HistoryRecord{{WorkerID: "1", Week: 3, Shift: "weekend"}},
	}
	if err := repo.Replace(context.Background(), bad); err == nil {
		t.Error("expected CHECK constraint failure for unknown shift")
	}
}
