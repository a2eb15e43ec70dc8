package widget

import (
	"context"
	"encoding/json"
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

	t.Run("MissingValueReturnsNil", func(t *testing.T) {
		raw, err := repo.GetWidgetData(ctx, "fam-1", "meal-plan")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if raw != nil {
			t.Errorf("Expected nil for an unwritten key, got %s", raw)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		value := map[string]any{"weeklyPlan": map[string]any{"2025-03-10": map[string]any{"breakfast": "Oatmeal"}}}
		if err := repo.SetWidgetData(ctx, "fam-1", "meal-plan", value); err != nil {
			t.Fatalf("SetWidgetData failed: %v", err)
		}

		raw, err := repo.GetWidgetData(ctx, "fam-1", "meal-plan")
		if err != nil {
			t.Fatalf("GetWidgetData failed: %v", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("Stored value is not valid JSON: %v", err)
		}
		if _, ok := decoded["weeklyPlan"]; !ok {
			t.Errorf("Expected weeklyPlan key, got %v", decoded)
		}
	})

	t.Run("OverwriteReplacesValue", func(t *testing.T) {
		if err := repo.SetWidgetData(ctx, "fam-1", "meal-plan", map[string]any{"weeklyPlan": map[string]any{}}); err != nil {
			t.Fatalf("SetWidgetData failed: %v", err)
		}
		raw, err := repo.GetWidgetData(ctx, "fam-1", "meal-plan")
		if err != nil {
			t.Fatalf("GetWidgetData failed: %v", err)
		}
		var decoded struct {
			WeeklyPlan map[string]any `json:"weeklyPlan"`
		}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("Stored value is not valid JSON: %v", err)
		}
		if len(decoded.WeeklyPlan) != 0 {
			t.Errorf("Expected overwritten empty plan, got %v", decoded.WeeklyPlan)
		}
	})

	t.Run("KeysAreScopedByMember", func(t *testing.T) {
		raw, err := repo.GetWidgetData(ctx, "fam-2", "meal-plan")
		if err != nil {
			t.Fatalf("GetWidgetData failed: %v", err)
		}
		if raw != nil {
			t.Errorf("Expected other member's key to be empty, got %s", raw)
		}
	})
}
