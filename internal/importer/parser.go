// Package importer parses free-form pasted weekly meal plans into
// structured day records. The grammar is deliberately tolerant: anything
// that cannot be read is skipped, never reported as an error, so a messy
// paste imports what it can and an unreadable one imports nothing.
package importer

import (
	"regexp"
	"strings"

	"mealboard/internal/mealplan"
)

// Variant tags an imported entry. "both" entries fan out to the adult and
// kids tracks when applied.
type Variant string

const (
	VariantAdult Variant = "adult"
	VariantKids  Variant = "kids"
	VariantBoth  Variant = "both"
)

// Entry is one parsed group of items for a meal type.
type Entry struct {
	Variant Variant
	Items   []string
}

// ParsedDay is the transient result for one day header. DayIndex is the
// weekday, Sunday = 0.
type ParsedDay struct {
	DayIndex int
	Meals    map[mealplan.MealType][]Entry
}

var dayIndexes = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// mealAliases maps every accepted meal-type word to its canonical slot.
var mealAliases = map[string]mealplan.MealType{
	"breakfast": mealplan.Breakfast,
	"bfast":     mealplan.Breakfast,
	"morning":   mealplan.Breakfast,
	"lunch":     mealplan.Lunch,
	"afternoon": mealplan.Lunch,
	"dinner":    mealplan.Dinner,
	"supper":    mealplan.Dinner,
	"evening":   mealplan.Dinner,
	"snacks":    mealplan.Snacks,
	"snack":     mealplan.Snacks,
}

var (
	dayRe       = regexp.MustCompile(`(?i)^(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	separatorRe = regexp.MustCompile(`^-{3,}$`)
	variantRe   = regexp.MustCompile(`(?i)^(adults?|kids?)\s*[:\-]\s*(.*)$`)
	mealRe      = regexp.MustCompile(`(?i)^(?:(adults?|kids?)\s+)?(breakfast|bfast|morning|lunch|afternoon|dinner|supper|evening|snacks?)[:\s\-]*(.*)$`)
)

// cursor is the parser state threaded line to line: the day being filled,
// the variant context set by adult:/kids: labels, and the meal type the
// next unlabeled line belongs to.
type cursor struct {
	day      *ParsedDay
	variant  Variant
	mealType mealplan.MealType
}

// Parse reads pasted text into day records. It never fails; unparseable
// input yields an empty or partial result, which callers report as
// "nothing to import".
func Parse(text string) []ParsedDay {
	var days []ParsedDay
	cur := cursor{variant: VariantBoth}

	flush := func() {
		if cur.day != nil {
			days = append(days, *cur.day)
			cur.day = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if separatorRe.MatchString(line) {
			continue // week separator
		}

		if m := dayRe.FindStringSubmatch(line); m != nil {
			flush()
			cur.day = &ParsedDay{
				DayIndex: dayIndexes[strings.ToLower(m[1])],
				Meals:    map[mealplan.MealType][]Entry{},
			}
			cur.mealType = ""
			continue
		}

		if cur.day == nil {
			continue // lines before the first day header are discarded
		}

		if m := variantRe.FindStringSubmatch(line); m != nil {
			cur.variant = variantFor(m[1])
			if rest := strings.TrimSpace(m[2]); rest != "" && cur.mealType != "" {
				record(&cur, cur.variant, splitItems(rest))
			}
			continue
		}

		if m := mealRe.FindStringSubmatch(line); m != nil {
			cur.mealType = mealAliases[strings.ToLower(m[2])]
			lineVariant := cur.variant
			if m[1] != "" {
				lineVariant = variantFor(m[1])
			}
			if rest := strings.TrimSpace(m[3]); rest != "" {
				record(&cur, lineVariant, splitItems(rest))
			}
			continue
		}

		// Anything else is a continuation of the current meal type.
		if cur.mealType != "" {
			record(&cur, cur.variant, splitItems(line))
		}
	}

	flush()
	return days
}

func variantFor(label string) Variant {
	if strings.HasPrefix(strings.ToLower(label), "kid") {
		return VariantKids
	}
	return VariantAdult
}

// splitItems breaks a fragment on commas and semicolons, dropping empties.
func splitItems(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var items []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// record appends items under the current meal type, merging into an
// existing entry with the same variant tag.
func record(cur *cursor, variant Variant, items []string) {
	if len(items) == 0 || cur.mealType == "" {
		return
	}
	entries := cur.day.Meals[cur.mealType]
	for i := range entries {
		if entries[i].Variant == variant {
			entries[i].Items = append(entries[i].Items, items...)
			return
		}
	}
	cur.day.Meals[cur.mealType] = append(entries, Entry{Variant: variant, Items: items})
}
