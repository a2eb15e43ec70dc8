// Package prep derives the day-before preparation schedule from a week of
// canonical day plans. Prep demanded by a meal on day i lands on day i-1;
// meals on the week's first day prep "before-week".
package prep

import (
	"strings"

	"mealboard/internal/mealplan"
	"mealboard/internal/recipe"
)

// BeforeWeek is the sentinel prep date for meals on the first day of the
// week, whose prep falls outside it.
const BeforeWeek = "before-week"

// Item is one thing to prepare on a prep date. UniqueKey is
// "custom:<date>:<mealType>:<variant>" for free-text prep notes and
// "recipe:<itemName>" for recipe-flagged prep; it de-duplicates within a
// single prep-date bucket.
type Item struct {
	RecipeName       string
	PrepInstructions string
	ForMealType      mealplan.MealType
	Variant          mealplan.Variant
	IsCustomNote     bool
	UniqueKey        string
}

// Bucket collects the prep work for one prep date. ForDate is the meal
// date the work serves.
type Bucket struct {
	ForDate string
	Items   []Item
}

// Schedule walks a calendar week of dated plans and maps each prep date to
// its bucket of items. Two independent rules emit items for every slot: a
// non-empty prepNotes yields a custom item, and every slot item whose
// recipe is flagged requiresPrep yields a recipe item. A custom note and a
// recipe item for the same meal coexist; identical keys do not repeat.
// Pure: neither the plans nor prep completions are touched.
func Schedule(week []mealplan.DatedDay, lookup recipe.Lookup) map[string]Bucket {
	schedule := map[string]Bucket{}

	for i, day := range week {
		prepDate := BeforeWeek
		if i > 0 {
			prepDate = week[i-1].Date
		}

		for _, variant := range mealplan.Variants {
			for _, mt := range mealplan.MealTypes {
				slot, ok := day.Plan.VariantSlots(variant)[mt]
				if !ok {
					continue
				}

				if strings.TrimSpace(slot.PrepNotes) != "" {
					label := strings.Join(slot.Items, ", ")
					if label == "" {
						label = string(mt)
					}
					add(schedule, prepDate, day.Date, Item{
						RecipeName:       label,
						PrepInstructions: slot.PrepNotes,
						ForMealType:      mt,
						Variant:          variant,
						IsCustomNote:     true,
						UniqueKey:        "custom:" + day.Date + ":" + string(mt) + ":" + string(variant),
					})
				}

				for _, item := range slot.Items {
					rec, found := lookup.Find(item)
					if !found || !rec.RequiresPrep {
						continue
					}
					add(schedule, prepDate, day.Date, Item{
						RecipeName:       item,
						PrepInstructions: rec.PrepInstructions,
						ForMealType:      mt,
						Variant:          variant,
						UniqueKey:        "recipe:" + item,
					})
				}
			}
		}
	}

	return schedule
}

func add(schedule map[string]Bucket, prepDate, forDate string, item Item) {
	bucket := schedule[prepDate]
	if bucket.ForDate == "" {
		bucket.ForDate = forDate
	}
	for _, existing := range bucket.Items {
		if existing.UniqueKey == item.UniqueKey {
			return
		}
	}
	bucket.Items = append(bucket.Items, item)
	schedule[prepDate] = bucket
}
