package mealplan

// Normalizers for the storage shapes the meal-plan widget has gone through.
// A slot has been persisted as a bare string, a string array, and the
// current object form; a day as flat meal-type keys before the kids variant
// existed, and as the {adult, kids} map since. Both normalizers are total
// (never error, never panic on malformed input) and idempotent.

// NormalizeSlot converts any stored slot representation into the canonical
// MealSlot. Unrecognized input collapses to an empty slot.
func NormalizeSlot(raw any) MealSlot {
	switch v := raw.(type) {
	case nil:
		return emptySlot()
	case MealSlot:
		return clampCompleted(v.Clone())
	case *MealSlot:
		if v == nil {
			return emptySlot()
		}
		return clampCompleted(v.Clone())
	case string:
		return MealSlot{Items: []string{v}}
	case []string:
		return MealSlot{Items: append([]string{}, v...)}
	case []any:
		return MealSlot{Items: stringItems(v)}
	case map[string]any:
		return slotFromObject(v)
	default:
		return emptySlot()
	}
}

func emptySlot() MealSlot {
	return MealSlot{Items: []string{}}
}

// completed is only meaningful for a non-empty slot
func clampCompleted(s MealSlot) MealSlot {
	if len(s.Items) == 0 {
		s.Completed = false
	}
	return s
}

func stringItems(raw []any) []string {
	items := make([]string, 0, len(raw))
	for _, it := range raw {
		if s, ok := it.(string); ok {
			items = append(items, s)
		}
	}
	return items
}

func slotFromObject(obj map[string]any) MealSlot {
	slot := emptySlot()
	switch items := obj["items"].(type) {
	case []any:
		slot.Items = stringItems(items)
	case []string:
		slot.Items = append([]string{}, items...)
	}
	if p, ok := obj["protein"].(float64); ok && p >= 0 {
		slot.Protein = &p
	}
	if c, ok := obj["completed"].(bool); ok {
		// completed is only meaningful for a non-empty slot
		slot.Completed = c && len(slot.Items) > 0
	}
	if n, ok := obj["prepNotes"].(string); ok {
		slot.PrepNotes = n
	}
	return slot
}

// NormalizeDay converts any stored day representation into the canonical
// {adult, kids} form. Inputs that already expose a variant key are
// normalized per slot; legacy flat meal-type keys become adult slots and
// kids stays empty. The legacy migration is one-way: kids data is never
// reconstructed.
func NormalizeDay(raw any) DayPlan {
	switch v := raw.(type) {
	case nil:
		return NewDayPlan()
	case DayPlan:
		return normalizeCanonicalDay(v)
	case *DayPlan:
		if v == nil {
			return NewDayPlan()
		}
		return normalizeCanonicalDay(*v)
	case map[string]any:
		if _, hasAdult := v["adult"]; hasAdult {
			return dayFromVariants(v)
		}
		if _, hasKids := v["kids"]; hasKids {
			return dayFromVariants(v)
		}
		return dayFromLegacyFlat(v)
	default:
		return NewDayPlan()
	}
}

func normalizeCanonicalDay(d DayPlan) DayPlan {
	out := NewDayPlan()
	for mt, slot := range d.Adult {
		if ValidMealType(string(mt)) {
			out.Adult[mt] = NormalizeSlot(slot)
		}
	}
	for mt, slot := range d.Kids {
		if ValidMealType(string(mt)) {
			out.Kids[mt] = NormalizeSlot(slot)
		}
	}
	return out
}

func dayFromVariants(obj map[string]any) DayPlan {
	out := NewDayPlan()
	fillVariant(out.Adult, obj["adult"])
	fillVariant(out.Kids, obj["kids"])
	return out
}

func fillVariant(dst map[MealType]MealSlot, raw any) {
	slots, ok := raw.(map[string]any)
	if !ok {
		return
	}
	for key, val := range slots {
		if ValidMealType(key) {
			dst[MealType(key)] = NormalizeSlot(val)
		}
	}
}

func dayFromLegacyFlat(obj map[string]any) DayPlan {
	out := NewDayPlan()
	for key, val := range obj {
		if ValidMealType(key) {
			out.Adult[MealType(key)] = NormalizeSlot(val)
		}
	}
	return out
}

// NormalizeWeek converts a stored weeklyPlan value into the canonical map.
// Non-object input yields an empty plan.
func NormalizeWeek(raw any) WeeklyPlan {
	out := WeeklyPlan{}
	switch v := raw.(type) {
	case WeeklyPlan:
		for date, day := range v {
			out[date] = NormalizeDay(day)
		}
	case map[string]any:
		for date, day := range v {
			out[date] = NormalizeDay(day)
		}
	}
	return out
}
