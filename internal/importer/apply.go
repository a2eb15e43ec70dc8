package importer

import (
	"context"
	"time"

	"mealboard/internal/mealplan"
)

// SlotUpdate is one concrete addition derived from a parsed day: items to
// merge into the slot at Date/Variant/MealType.
type SlotUpdate struct {
	Date     string
	Variant  mealplan.Variant
	MealType mealplan.MealType
	Items    []string
}

// SlotUpdates resolves parsed days against the dates of a concrete week.
// "both" entries fan out to adult and kids; day indexes outside the week
// are dropped. Items repeated within one slot collapse to a single add.
func SlotUpdates(weekDates []string, days []ParsedDay) []SlotUpdate {
	var updates []SlotUpdate
	for _, day := range days {
		if day.DayIndex < 0 || day.DayIndex >= len(weekDates) {
			continue
		}
		date := weekDates[day.DayIndex]
		for _, mt := range mealplan.MealTypes {
			entries, ok := day.Meals[mt]
			if !ok {
				continue
			}
			perVariant := map[mealplan.Variant][]string{}
			for _, entry := range entries {
				for _, variant := range targets(entry.Variant) {
					perVariant[variant] = appendUnique(perVariant[variant], entry.Items)
				}
			}
			for _, variant := range mealplan.Variants {
				if items := perVariant[variant]; len(items) > 0 {
					updates = append(updates, SlotUpdate{
						Date:     date,
						Variant:  variant,
						MealType: mt,
						Items:    items,
					})
				}
			}
		}
	}
	return updates
}

func targets(v Variant) []mealplan.Variant {
	switch v {
	case VariantAdult:
		return []mealplan.Variant{mealplan.VariantAdult}
	case VariantKids:
		return []mealplan.Variant{mealplan.VariantKids}
	default:
		return []mealplan.Variant{mealplan.VariantAdult, mealplan.VariantKids}
	}
}

func appendUnique(dst, items []string) []string {
	for _, item := range items {
		dup := false
		for _, existing := range dst {
			if existing == item {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, item)
		}
	}
	return dst
}

// Apply merges parsed days into the stored plan for the week starting at
// weekStart, going through the store so prep-completion invalidation runs
// for every touched date. Returns the number of items added.
func Apply(ctx context.Context, store *mealplan.Store, weekStart time.Time, days []ParsedDay) (int, error) {
	updates := SlotUpdates(mealplan.WeekDates(weekStart), days)
	added := 0
	for _, u := range updates {
		for _, item := range u.Items {
			ok, err := store.AddItem(ctx, u.Date, u.Variant, u.MealType, item)
			if err != nil {
				return added, err
			}
			if ok {
				added++
			}
		}
	}
	return added, nil
}
