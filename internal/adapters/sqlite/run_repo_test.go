package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/shiftplan/internal/adapters/sqlite"
	"github.com/example/shiftplan/internal/ports/secondary"
)

func TestRunRepository_CreateAndList(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewRunRepository(database)
	ctx := context.Background()

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		err := repo.Create(ctx, &secondary.RunRecord{
			ID:         id,
			Week:       10 + i,
			Candidates: 12,
			Required:   9,
			Filled:     7,
			Unplaced:   5,
			Disbanded:  1,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	runs, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-c" {
		t.Errorf("expected newest run first, got %s", runs[0].ID)
	}
	if runs[0].Filled != 7 || runs[0].Week != 12 {
		t.Errorf("unexpected run: %+v", runs[0])
	}
	if runs[0].CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}

	all, _ := repo.List(ctx, 0)
	if len(all) != 3 {
		t.Errorf("expected 3 runs without limit, got %d", len(all))
	}
}

func TestRunRepository_DuplicateID(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewRunRepository(database)
	ctx := context.Background()

	run := &secondary.RunRecord{ID: "run-a", Week: 10}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, run); err == nil {
		t.Error("expected error for duplicate run ID")
	}
}
