package mealplan

import "mealboard/internal/recipe"

// SlotProtein returns the protein grams for one slot: the manual override
// when set, otherwise the sum of recipe protein for each item found in the
// lookup. Items with no matching recipe contribute nothing.
func SlotProtein(slot MealSlot, lookup recipe.Lookup) float64 {
	if slot.Protein != nil {
		return *slot.Protein
	}
	var total float64
	for _, item := range slot.Items {
		if rec, ok := lookup.Find(item); ok && rec.Protein != nil {
			total += *rec.Protein
		}
	}
	return total
}

// DayProtein sums protein over the four meal types of a day's adult plan.
// Overrides are independent per slot; an override never carries across
// meal types.
func DayProtein(day DayPlan, lookup recipe.Lookup) float64 {
	var total float64
	for _, mt := range MealTypes {
		if slot, ok := day.Adult[mt]; ok {
			total += SlotProtein(slot, lookup)
		}
	}
	return total
}
