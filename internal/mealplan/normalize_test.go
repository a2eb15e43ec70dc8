package mealplan

import (
	"reflect"
	"testing"
)

func TestNormalizeSlot(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		slot := NormalizeSlot(nil)
		if len(slot.Items) != 0 || slot.Protein != nil || slot.Completed || slot.PrepNotes != "" {
			t.Errorf("Expected empty canonical slot, got %+v", slot)
		}
		if slot.Items == nil {
			t.Error("Expected items to be an empty slice, got nil")
		}
	})

	t.Run("LegacyString", func(t *testing.T) {
		slot := NormalizeSlot("Oatmeal")
		if !reflect.DeepEqual(slot.Items, []string{"Oatmeal"}) {
			t.Errorf("Expected items [Oatmeal], got %v", slot.Items)
		}
	})

	t.Run("LegacyArray", func(t *testing.T) {
		slot := NormalizeSlot([]any{"Soup", "Bread"})
		if !reflect.DeepEqual(slot.Items, []string{"Soup", "Bread"}) {
			t.Errorf("Expected items [Soup Bread], got %v", slot.Items)
		}
	})

	t.Run("ObjectWithItems", func(t *testing.T) {
		slot := NormalizeSlot(map[string]any{
			"items":     []any{"Chili"},
			"protein":   30.0,
			"completed": true,
			"prepNotes": "soak beans",
		})
		if !reflect.DeepEqual(slot.Items, []string{"Chili"}) {
			t.Errorf("Expected items [Chili], got %v", slot.Items)
		}
		if slot.Protein == nil || *slot.Protein != 30 {
			t.Errorf("Expected protein 30, got %v", slot.Protein)
		}
		if !slot.Completed {
			t.Error("Expected completed to survive normalization")
		}
		if slot.PrepNotes != "soak beans" {
			t.Errorf("Expected prepNotes 'soak beans', got %q", slot.PrepNotes)
		}
	})

	t.Run("ObjectWithMalformedItems", func(t *testing.T) {
		slot := NormalizeSlot(map[string]any{"items": "not-an-array", "completed": true})
		if len(slot.Items) != 0 {
			t.Errorf("Expected non-array items to coerce to empty, got %v", slot.Items)
		}
		if slot.Completed {
			t.Error("Expected completed to reset for an empty slot")
		}
	})

	t.Run("NegativeProteinIgnored", func(t *testing.T) {
		slot := NormalizeSlot(map[string]any{"items": []any{"Eggs"}, "protein": -5.0})
		if slot.Protein != nil {
			t.Errorf("Expected negative protein dropped, got %v", slot.Protein)
		}
	})

	t.Run("TotalOnGarbage", func(t *testing.T) {
		for _, input := range []any{42.0, true, []any{1.0, 2.0}, struct{}{}} {
			slot := NormalizeSlot(input)
			if len(slot.Items) != 0 {
				t.Errorf("Expected empty slot for %v, got %+v", input, slot)
			}
		}
	})

	t.Run("TypedEmptySlotResetsCompleted", func(t *testing.T) {
		slot := NormalizeSlot(MealSlot{Completed: true})
		if slot.Completed {
			t.Error("Expected completed to reset for an empty slot")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := NormalizeSlot(map[string]any{"items": []any{"Chili"}, "protein": 30.0})
		twice := NormalizeSlot(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Expected idempotent normalization, got %+v then %+v", once, twice)
		}
	})
}

func TestNormalizeDay(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		day := NormalizeDay(nil)
		if day.Adult == nil || day.Kids == nil {
			t.Fatal("Expected both variant maps present")
		}
		if !day.IsEmpty() {
			t.Errorf("Expected empty day, got %+v", day)
		}
	})

	t.Run("LegacyFlatMigratesToAdult", func(t *testing.T) {
		day := NormalizeDay(map[string]any{"breakfast": "Oatmeal"})
		slot, ok := day.Adult[Breakfast]
		if !ok {
			t.Fatal("Expected adult breakfast slot")
		}
		if !reflect.DeepEqual(slot.Items, []string{"Oatmeal"}) {
			t.Errorf("Expected items [Oatmeal], got %v", slot.Items)
		}
		if slot.Protein != nil || slot.Completed || slot.PrepNotes != "" {
			t.Errorf("Expected default slot fields, got %+v", slot)
		}
		if len(day.Kids) != 0 {
			t.Errorf("Expected kids to stay empty after legacy migration, got %v", day.Kids)
		}
	})

	t.Run("VariantPartitioned", func(t *testing.T) {
		day := NormalizeDay(map[string]any{
			"adult": map[string]any{"dinner": []any{"Chili"}},
			"kids":  map[string]any{"dinner": "Mac and Cheese"},
		})
		if !reflect.DeepEqual(day.Adult[Dinner].Items, []string{"Chili"}) {
			t.Errorf("Expected adult dinner [Chili], got %v", day.Adult[Dinner].Items)
		}
		if !reflect.DeepEqual(day.Kids[Dinner].Items, []string{"Mac and Cheese"}) {
			t.Errorf("Expected kids dinner [Mac and Cheese], got %v", day.Kids[Dinner].Items)
		}
	})

	t.Run("UnknownKeysDropped", func(t *testing.T) {
		day := NormalizeDay(map[string]any{"breakfast": "Oatmeal", "teatime": "Scones"})
		if len(day.Adult) != 1 {
			t.Errorf("Expected only the recognized meal type, got %v", day.Adult)
		}
	})

	t.Run("TotalOnGarbage", func(t *testing.T) {
		for _, input := range []any{"not a day", 7.0, []any{"x"}} {
			day := NormalizeDay(input)
			if !day.IsEmpty() {
				t.Errorf("Expected empty day for %v, got %+v", input, day)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		inputs := []any{
			nil,
			map[string]any{},
			map[string]any{"breakfast": "Oatmeal", "lunch": []any{"Soup"}},
			map[string]any{"adult": map[string]any{"dinner": map[string]any{"items": []any{"Chili"}}}},
		}
		for _, input := range inputs {
			once := NormalizeDay(input)
			twice := NormalizeDay(once)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("Expected idempotent normalization of %v, got %+v then %+v", input, once, twice)
			}
		}
	})
}

func TestNormalizeWeek(t *testing.T) {
	t.Run("MixedShapes", func(t *testing.T) {
		week := NormalizeWeek(map[string]any{
			"2025-03-09": map[string]any{"breakfast": "Oatmeal"},
			"2025-03-10": map[string]any{"adult": map[string]any{"lunch": []any{"Soup"}}},
		})
		if len(week) != 2 {
			t.Fatalf("Expected 2 days, got %d", len(week))
		}
		if !reflect.DeepEqual(week["2025-03-09"].Adult[Breakfast].Items, []string{"Oatmeal"}) {
			t.Errorf("Unexpected legacy day: %+v", week["2025-03-09"])
		}
	})

	t.Run("NonObjectYieldsEmpty", func(t *testing.T) {
		if week := NormalizeWeek("garbage"); len(week) != 0 {
			t.Errorf("Expected empty plan, got %v", week)
		}
	})
}
