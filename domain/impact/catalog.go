package impact

import (
	"sort"
	"strings"
)

// Kind separates paid supplements from free habits
type Kind string

const (
	Supplement Kind = "supplement"
	Habit      Kind = "habit"
)

// Item is one known intervention
type Item struct {
	Name        string  `json:"name" yaml:"name"`
	Kind        Kind    `json:"kind" yaml:"kind"`
	Category    string  `json:"category" yaml:"category"`
	MonthlyCost float64 `json:"monthly_cost" yaml:"monthly_cost"`
}

// DefaultMonthlyCost is charged for interventions the catalog does not know
const DefaultMonthlyCost = 30.0

// ExerciseCategory marks habits that count as a workout
const ExerciseCategory = "exercise"

// Catalog maps intervention names to cost and category, case-insensitively
type Catalog struct {
	items map[string]Item
}

// NewCatalog indexes items by lowercased name. Later duplicates win.
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{items: make(map[string]Item, len(items))}
	for _, it := range items {
		if it.Kind == Habit {
			it.MonthlyCost = 0
		}
		c.items[strings.ToLower(strings.TrimSpace(it.Name))] = it
	}
	return c
}

// DefaultCatalog holds the common supplements and habits users log
func DefaultCatalog() *Catalog {
	return NewCatalog([]Item{
		{Name: "Vitamin D", Kind: Supplement, Category: "vitamin", MonthlyCost: 25},
		{Name: "Zinc", Kind: Supplement, Category: "mineral", MonthlyCost: 20},
		{Name: "Magnesium", Kind: Supplement, Category: "mineral", MonthlyCost: 25},
		{Name: "Ashwagandha", Kind: Supplement, Category: "adaptogen", MonthlyCost: 35},
		{Name: "Tongkat Ali", Kind: Supplement, Category: "adaptogen", MonthlyCost: 45},
		{Name: "Maca Root", Kind: Supplement, Category: "adaptogen", MonthlyCost: 30},
		{Name: "Fish Oil", Kind: Supplement, Category: "omega", MonthlyCost: 30},
		{Name: "Creatine", Kind: Supplement, Category: "performance", MonthlyCost: 25},
		{Name: "L-Theanine", Kind: Supplement, Category: "amino", MonthlyCost: 20},
		{Name: "Rhodiola", Kind: Supplement, Category: "adaptogen", MonthlyCost: 35},

		{Name: "Heavy Workout", Kind: Habit, Category: ExerciseCategory},
		{Name: "Light Exercise", Kind: Habit, Category: ExerciseCategory},
		{Name: "Meditation", Kind: Habit, Category: "stress"},
		{Name: "Cold Shower", Kind: Habit, Category: "recovery"},
		{Name: "Fasting", Kind: Habit, Category: "diet"},
		{Name: "High Carb Meal", Kind: Habit, Category: "diet"},
		{Name: "Alcohol", Kind: Habit, Category: "lifestyle"},
		{Name: "Poor Sleep", Kind: Habit, Category: "sleep"},
		{Name: "Extra Sleep", Kind: Habit, Category: "sleep"},
		{Name: "Sauna", Kind: Habit, Category: "recovery"},
	})
}

// Lookup finds an item by name
func (c *Catalog) Lookup(name string) (Item, bool) {
	it, ok := c.items[strings.ToLower(strings.TrimSpace(name))]
	return it, ok
}

// MonthlyCost returns the catalog cost, zero for habits and DefaultMonthlyCost for
// unknown names.
func (c *Catalog) MonthlyCost(name string) float64 {
	if it, ok := c.Lookup(name); ok {
		return it.MonthlyCost
	}
	return DefaultMonthlyCost
}

// IsExercise reports whether name is a known exercise habit
func (c *Catalog) IsExercise(name string) bool {
	it, ok := c.Lookup(name)
	return ok && it.Category == ExerciseCategory
}

// AnyExercise reports whether any of names is an exercise habit
func (c *Catalog) AnyExercise(names []string) bool {
	for _, n := range names {
		if c.IsExercise(n) {
			return true
		}
	}
	return false
}

// Items lists the catalog sorted by name
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
