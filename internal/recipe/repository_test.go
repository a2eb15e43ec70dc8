package recipe

import (
	"context"
	"path/filepath"
	"testing"

	"mealboard/internal/database"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db.SQL)
	p := 25.0

	t.Run("SaveAndGet", func(t *testing.T) {
		rec := Recipe{Name: "Chili", Protein: &p, RequiresPrep: true, PrepInstructions: "Soak beans"}
		if err := repo.Save(ctx, "fam-1", rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := repo.Get(ctx, "fam-1", "Chili")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil || got.Name != "Chili" || got.Protein == nil || *got.Protein != 25 {
			t.Errorf("Unexpected recipe: %+v", got)
		}
	})

	t.Run("GetMissingReturnsNil", func(t *testing.T) {
		got, err := repo.Get(ctx, "fam-1", "Mystery Dish")
		if err != nil {
			t.Fatalf("Expected no error for a miss, got %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for a miss, got %+v", got)
		}
	})

	t.Run("SaveUpserts", func(t *testing.T) {
		q := 30.0
		if err := repo.Save(ctx, "fam-1", Recipe{Name: "Chili", Protein: &q}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := repo.Get(ctx, "fam-1", "Chili")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Protein == nil || *got.Protein != 30 {
			t.Errorf("Expected updated protein 30, got %v", got.Protein)
		}
	})

	t.Run("ListForMealPlan", func(t *testing.T) {
		if err := repo.Save(ctx, "fam-1", Recipe{Name: "Toast"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.Save(ctx, "fam-2", Recipe{Name: "Other Family Dish"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		recipes, err := repo.ListForMealPlan(ctx, "fam-1")
		if err != nil {
			t.Fatalf("ListForMealPlan failed: %v", err)
		}
		if len(recipes) != 2 {
			t.Fatalf("Expected 2 recipes for fam-1, got %d", len(recipes))
		}
		if recipes[0].Name != "Chili" || recipes[1].Name != "Toast" {
			t.Errorf("Expected name ordering, got %+v", recipes)
		}
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		if err := repo.Save(ctx, "fam-1", Recipe{}); err == nil {
			t.Error("Expected an error for an unnamed recipe")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, "fam-1", "Toast"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		got, err := repo.Get(ctx, "fam-1", "Toast")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected Toast deleted, got %+v", got)
		}
		// Deleting again is not an error
		if err := repo.Delete(ctx, "fam-1", "Toast"); err != nil {
			t.Errorf("Expected idempotent delete, got %v", err)
		}
	})
}
