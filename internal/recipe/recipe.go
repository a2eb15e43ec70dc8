package recipe

// Recipe is one entry of the household recipe catalog. Protein is grams
// per serving; RequiresPrep marks recipes needing day-before work such as
// soaking or marinating, with PrepInstructions describing it.
type Recipe struct {
	Name             string   `json:"name"`
	Protein          *float64 `json:"protein,omitempty"`
	RequiresPrep     bool     `json:"requiresPrep,omitempty"`
	PrepInstructions string   `json:"prepInstructions,omitempty"`
	Icon             string   `json:"icon,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	SourceURL        string   `json:"sourceUrl,omitempty"`
}

// Lookup resolves slot item strings to recipes by exact, case-sensitive
// name match.
type Lookup map[string]Recipe

// NewLookup builds a lookup from a recipe list. Later duplicates win,
// matching last-write persistence order.
func NewLookup(recipes []Recipe) Lookup {
	l := make(Lookup, len(recipes))
	for _, r := range recipes {
		l[r.Name] = r
	}
	return l
}

// Find returns the recipe matching name exactly.
func (l Lookup) Find(name string) (Recipe, bool) {
	r, ok := l[name]
	return r, ok
}
