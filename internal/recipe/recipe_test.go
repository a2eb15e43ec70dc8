package recipe

import "testing"

func TestLookup(t *testing.T) {
	p := 25.0
	lookup := NewLookup([]Recipe{
		{Name: "Chili", Protein: &p, RequiresPrep: true, PrepInstructions: "Soak beans"},
		{Name: "Toast"},
	})

	t.Run("ExactMatch", func(t *testing.T) {
		rec, ok := lookup.Find("Chili")
		if !ok {
			t.Fatal("Expected Chili to be found")
		}
		if rec.Protein == nil || *rec.Protein != 25 {
			t.Errorf("Expected protein 25, got %v", rec.Protein)
		}
		if !rec.RequiresPrep || rec.PrepInstructions != "Soak beans" {
			t.Errorf("Expected prep metadata, got %+v", rec)
		}
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		if _, ok := lookup.Find("chili"); ok {
			t.Error("Expected lookup to be case-sensitive")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, ok := lookup.Find("Mystery Dish"); ok {
			t.Error("Expected unknown name to miss")
		}
	})

	t.Run("LaterDuplicateWins", func(t *testing.T) {
		q := 10.0
		dupes := NewLookup([]Recipe{
			{Name: "Chili", Protein: &p},
			{Name: "Chili", Protein: &q},
		})
		rec, _ := dupes.Find("Chili")
		if rec.Protein == nil || *rec.Protein != 10 {
			t.Errorf("Expected the later entry, got %v", rec.Protein)
		}
	})
}
