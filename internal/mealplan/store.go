package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mealboard/internal/widget"
)

// WidgetKey is the widget-data key the meal plan document lives under.
const WidgetKey = "meal-plan"

// Store owns the persisted meal-plan document for one household member.
// Every mutation reads the full document, computes the new value and writes
// it back before returning; callers only ever see complete states.
type Store struct {
	widgets  widget.Store
	memberID string
}

// NewStore creates a Store bound to one member's document.
func NewStore(w widget.Store, memberID string) *Store {
	return &Store{widgets: w, memberID: memberID}
}

// Load reads and normalizes the persisted document. A missing value, or a
// document in any legacy shape, loads as a usable canonical document —
// shape drift is never an error.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	raw, err := s.widgets.GetWidgetData(ctx, s.memberID, WidgetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}

	doc := NewDocument()
	if len(raw) == 0 {
		return doc, nil
	}

	var stored struct {
		WeeklyPlan    any             `json:"weeklyPlan"`
		PrepCompleted map[string]bool `json:"prepCompleted"`
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Corrupt document: degrade to empty rather than block the caller.
		return doc, nil
	}

	doc.WeeklyPlan = NormalizeWeek(stored.WeeklyPlan)
	for key, done := range stored.PrepCompleted {
		if done {
			doc.PrepCompleted[key] = true
		}
	}
	return doc, nil
}

// Save writes the document back.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	if err := s.widgets.SetWidgetData(ctx, s.memberID, WidgetKey, doc); err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}

// SetSlot replaces the slot for date/variant/mealType; a nil slot clears
// it. Prep completions for the day before the mutated date are invalidated
// in the same write, since prep for day d happens on d-1 and completions
// for a changed plan are stale.
func (s *Store) SetSlot(ctx context.Context, date string, variant Variant, mealType MealType, slot *MealSlot) error {
	if !ValidVariant(string(variant)) {
		return fmt.Errorf("unknown variant %q", variant)
	}
	if !ValidMealType(string(mealType)) {
		return fmt.Errorf("unknown meal type %q", mealType)
	}

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}

	day, ok := doc.WeeklyPlan[date]
	if !ok {
		day = NewDayPlan()
	}
	slots := day.VariantSlots(variant)
	if slot == nil {
		delete(slots, mealType)
	} else {
		slots[mealType] = NormalizeSlot(slot)
	}
	if day.IsEmpty() {
		delete(doc.WeeklyPlan, date)
	} else {
		doc.WeeklyPlan[date] = day
	}

	invalidatePrep(doc, PrevDate(date))
	return s.Save(ctx, doc)
}

// AddItem appends an item to a slot, de-duplicating against items already
// present. Creates the slot if needed. Returns whether the item was added.
func (s *Store) AddItem(ctx context.Context, date string, variant Variant, mealType MealType, item string) (bool, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	slot := MealSlot{Items: []string{}}
	if day, ok := doc.WeeklyPlan[date]; ok {
		if existing, ok := day.VariantSlots(variant)[mealType]; ok {
			slot = existing
		}
	}
	for _, it := range slot.Items {
		if it == item {
			return false, nil // already planned, nothing to write
		}
	}
	slot.Items = append(slot.Items, item)
	return true, s.SetSlot(ctx, date, variant, mealType, &slot)
}

// ToggleCompletion flips the completed flag for a slot and returns the new
// value. Toggling an empty or missing slot is a no-op returning false.
func (s *Store) ToggleCompletion(ctx context.Context, date string, mealType MealType, variant Variant) (bool, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	day, ok := doc.WeeklyPlan[date]
	if !ok {
		return false, nil
	}
	slots := day.VariantSlots(variant)
	slot, ok := slots[mealType]
	if !ok || len(slot.Items) == 0 {
		return false, nil
	}

	slot.Completed = !slot.Completed
	slots[mealType] = slot
	if err := s.Save(ctx, doc); err != nil {
		return false, err
	}
	return slot.Completed, nil
}

// CopyDay deep-copies sourceDate's plan onto targetDate, stripping the
// completed flags on the copy. Copying an unplanned source clears the
// target. Prep completions for targetDate-1 are invalidated like any other
// plan change.
func (s *Store) CopyDay(ctx context.Context, sourceDate, targetDate string) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}

	src, ok := doc.WeeklyPlan[sourceDate]
	if !ok || src.IsEmpty() {
		delete(doc.WeeklyPlan, targetDate)
	} else {
		copied := src.Clone()
		for mt, slot := range copied.Adult {
			slot.Completed = false
			copied.Adult[mt] = slot
		}
		for mt, slot := range copied.Kids {
			slot.Completed = false
			copied.Kids[mt] = slot
		}
		doc.WeeklyPlan[targetDate] = copied
	}

	invalidatePrep(doc, PrevDate(targetDate))
	return s.Save(ctx, doc)
}

// SetPrepCompleted records or clears the check-off for one prep item on a
// prep date. Keys are "<date>:<recipeName>".
func (s *Store) SetPrepCompleted(ctx context.Context, prepDate, recipeName string, done bool) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	key := prepDate + ":" + recipeName
	if done {
		doc.PrepCompleted[key] = true
	} else {
		delete(doc.PrepCompleted, key)
	}
	return s.Save(ctx, doc)
}

// InvalidatePrepCompletions removes every completion recorded for the given
// prep date.
func (s *Store) InvalidatePrepCompletions(ctx context.Context, prepDate string) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	invalidatePrep(doc, prepDate)
	return s.Save(ctx, doc)
}

func invalidatePrep(doc *Document, prepDate string) {
	prefix := prepDate + ":"
	for key := range doc.PrepCompleted {
		if strings.HasPrefix(key, prefix) {
			delete(doc.PrepCompleted, key)
		}
	}
}

// DayFor returns the plan for one date, empty if none is stored.
func (s *Store) DayFor(ctx context.Context, date string) (DayPlan, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return NewDayPlan(), err
	}
	if day, ok := doc.WeeklyPlan[date]; ok {
		return day, nil
	}
	return NewDayPlan(), nil
}

// TodayPlan returns the plan for now's date.
func (s *Store) TodayPlan(ctx context.Context, now time.Time) (DayPlan, error) {
	return s.DayFor(ctx, now.Format(DateFormat))
}

// Week returns the seven dated plans for the week starting at weekStart,
// in calendar order, with empty plans for unplanned dates. This is the
// input shape the prep deriver consumes.
func (s *Store) Week(ctx context.Context, weekStart time.Time) ([]DatedDay, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	dates := WeekDates(weekStart)
	week := make([]DatedDay, 0, len(dates))
	for _, date := range dates {
		day, ok := doc.WeeklyPlan[date]
		if !ok {
			day = NewDayPlan()
		}
		week = append(week, DatedDay{Date: date, Plan: day})
	}
	return week, nil
}

// ShoppingItems flattens item names across every slot of the week, both
// variants, preserving first-seen order and dropping repeats. The strings
// are handed to the grocery feature verbatim; ingredient parsing is its
// concern.
func ShoppingItems(week []DatedDay) []string {
	seen := map[string]bool{}
	var items []string
	for _, day := range week {
		for _, variant := range Variants {
			for _, mt := range MealTypes {
				slot, ok := day.Plan.VariantSlots(variant)[mt]
				if !ok {
					continue
				}
				for _, item := range slot.Items {
					if !seen[item] {
						seen[item] = true
						items = append(items, item)
					}
				}
			}
		}
	}
	return items
}
