package mealplan

// Variant selects one of the two independent meal tracks kept per day.
type Variant string

const (
	VariantAdult Variant = "adult"
	VariantKids  Variant = "kids"
)

// MealType identifies one of the four daily slots.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snacks    MealType = "snacks"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snacks}

// Variants lists the meal tracks in display order.
var Variants = []Variant{VariantAdult, VariantKids}

// MealSlot is one meal assignment for a date, variant and meal type.
// Protein is a manual override in grams; when nil the total is derived
// from recipe lookups per item.
type MealSlot struct {
	Items     []string `json:"items"`
	Protein   *float64 `json:"protein"`
	Completed bool     `json:"completed"`
	PrepNotes string   `json:"prepNotes,omitempty"`
}

// DayPlan holds a date's meals, partitioned by variant. Absent meal-type
// keys mean "not planned". A DayPlan with no keys in either variant is a
// valid "no plan for this date".
type DayPlan struct {
	Adult map[MealType]MealSlot `json:"adult"`
	Kids  map[MealType]MealSlot `json:"kids"`
}

// WeeklyPlan maps ISO dates (2006-01-02) to day plans.
type WeeklyPlan map[string]DayPlan

// Document is the full widget value persisted for one household member.
// PrepCompleted maps "<date>:<recipeName>" to true for checked-off prep
// items; absence means not completed.
type Document struct {
	WeeklyPlan    WeeklyPlan      `json:"weeklyPlan"`
	PrepCompleted map[string]bool `json:"prepCompleted,omitempty"`
}

// DatedDay pairs a calendar date with its plan; the prep deriver consumes
// a week of these in order.
type DatedDay struct {
	Date string
	Plan DayPlan
}

// NewDayPlan returns an empty canonical day plan.
func NewDayPlan() DayPlan {
	return DayPlan{
		Adult: map[MealType]MealSlot{},
		Kids:  map[MealType]MealSlot{},
	}
}

// NewDocument returns an empty canonical document.
func NewDocument() *Document {
	return &Document{
		WeeklyPlan:    WeeklyPlan{},
		PrepCompleted: map[string]bool{},
	}
}

// ValidMealType reports whether s names a recognized meal type.
func ValidMealType(s string) bool {
	switch MealType(s) {
	case Breakfast, Lunch, Dinner, Snacks:
		return true
	}
	return false
}

// ValidVariant reports whether s names a recognized variant.
func ValidVariant(s string) bool {
	v := Variant(s)
	return v == VariantAdult || v == VariantKids
}

// VariantSlots returns the slot map for the given variant.
func (d DayPlan) VariantSlots(v Variant) map[MealType]MealSlot {
	if v == VariantKids {
		return d.Kids
	}
	return d.Adult
}

// IsEmpty reports whether no slot is planned in either variant.
func (d DayPlan) IsEmpty() bool {
	return len(d.Adult) == 0 && len(d.Kids) == 0
}

// Clone returns a structural copy of the day plan. Slot item slices are
// copied, so mutations on the clone never leak back.
func (d DayPlan) Clone() DayPlan {
	out := NewDayPlan()
	for mt, slot := range d.Adult {
		out.Adult[mt] = slot.Clone()
	}
	for mt, slot := range d.Kids {
		out.Kids[mt] = slot.Clone()
	}
	return out
}

// Clone returns a copy of the slot with its own item slice.
func (s MealSlot) Clone() MealSlot {
	out := s
	out.Items = append([]string(nil), s.Items...)
	if out.Items == nil {
		out.Items = []string{}
	}
	if s.Protein != nil {
		p := *s.Protein
		out.Protein = &p
	}
	return out
}
