package engine

import (
	"fmt"
	"strings"
	"time"
)

// VitalReadings is one snapshot of the values the recommendations are derived from.
// Ranges are not enforced here; only threshold comparisons are made.
type VitalReadings struct {
	BloodPressureSystolic int `json:"bp" yaml:"bp"`
	BloodSugar            int `json:"sugar" yaml:"sugar"`
	ProteinLevel          int `json:"protein" yaml:"protein"`
	Calories              int `json:"calories" yaml:"calories"`
	Fiber                 int `json:"fiber" yaml:"fiber"`
}

type DietPreference string

const (
	Balanced    DietPreference = "balanced"
	Vegetarian  DietPreference = "vegetarian"
	HighProtein DietPreference = "high-protein"
	NonVeg      DietPreference = "non-veg"
)

func (p DietPreference) String() string {
	return string(p)
}

func (p DietPreference) IsValid() bool {
	switch p {
	case Balanced, Vegetarian, HighProtein, NonVeg:
		return true
	default:
		return false
	}
}

func SupportedDietPreferences() []string {
	return []string{
		string(Balanced),
		string(Vegetarian),
		string(HighProtein),
		string(NonVeg),
	}
}

// ParseDietPreference accepts the canonical names as well as spelling variants such as
// "HighProtein", "high_protein" or "Non Veg". An empty string selects Balanced.
func ParseDietPreference(s string) (DietPreference, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)

	switch norm {
	case "", "balanced":
		return Balanced, nil
	case "vegetarian":
		return Vegetarian, nil
	case "high-protein", "highprotein":
		return HighProtein, nil
	case "non-veg", "nonveg":
		return NonVeg, nil
	}
	return "", fmt.Errorf("unknown diet preference %q, supported values: %v", s, SupportedDietPreferences())
}

type MealPeriod string

const (
	Breakfast     MealPeriod = "Breakfast"
	Lunch         MealPeriod = "Lunch"
	EveningSnacks MealPeriod = "Evening Snacks"
	Dinner        MealPeriod = "Dinner"
)

func (m MealPeriod) String() string {
	return string(m)
}

func (m MealPeriod) IsValid() bool {
	switch m {
	case Breakfast, Lunch, EveningSnacks, Dinner:
		return true
	default:
		return false
	}
}

func SupportedMealPeriods() []string {
	return []string{
		string(Breakfast),
		string(Lunch),
		string(EveningSnacks),
		string(Dinner),
	}
}

// MenuSuggestion holds the two suggestion lists for one request. The lists may differ in
// length; use Rows to pair them for display.
type MenuSuggestion struct {
	Vegetarian    []string `json:"vegetarian" yaml:"veg"`
	NonVegetarian []string `json:"non_vegetarian" yaml:"non_veg"`
}

// Placeholder fills the shorter side of a paired menu row.
const Placeholder = "-"

type MenuRow struct {
	Vegetarian    string `json:"vegetarian" yaml:"vegetarian"`
	NonVegetarian string `json:"non_vegetarian" yaml:"non_vegetarian"`
}

// Rows pairs the vegetarian and non-vegetarian lists by index.
func (m MenuSuggestion) Rows(placeholder string) []MenuRow {
	n := max(len(m.Vegetarian), len(m.NonVegetarian))
	rows := make([]MenuRow, n)
	for i := range rows {
		rows[i] = MenuRow{Vegetarian: placeholder, NonVegetarian: placeholder}
		if i < len(m.Vegetarian) {
			rows[i].Vegetarian = m.Vegetarian[i]
		}
		if i < len(m.NonVegetarian) {
			rows[i].NonVegetarian = m.NonVegetarian[i]
		}
	}
	return rows
}

func (m MenuSuggestion) IsEmpty() bool {
	return len(m.Vegetarian) == 0 && len(m.NonVegetarian) == 0
}

func (m MenuSuggestion) clone() MenuSuggestion {
	return MenuSuggestion{
		Vegetarian:    cloneItems(m.Vegetarian),
		NonVegetarian: cloneItems(m.NonVegetarian),
	}
}

// cloneItems never returns nil so empty lists encode as [].
func cloneItems(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

type Request struct {
	Readings         VitalReadings
	Preference       DietPreference
	At               time.Time
	UTCOffsetMinutes int
}

type Recommendation struct {
	MealPeriod      MealPeriod     `json:"meal_period" yaml:"meal_period"`
	Preference      DietPreference `json:"preference" yaml:"preference"`
	Readings        VitalReadings  `json:"readings" yaml:"readings"`
	Menu            MenuSuggestion `json:"menu" yaml:"menu"`
	HydrationLitres float64        `json:"hydration_litres" yaml:"hydration_litres"`
	At              time.Time      `json:"at" yaml:"at"`
}
