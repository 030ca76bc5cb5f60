package engine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrUnknownMealPeriod = errors.New("unknown meal period")

// Catalogue maps meal periods to suggestion lists. Periods without an entry yield empty
// suggestions. HighProtein is served for every period.
type Catalogue struct {
	Periods     map[MealPeriod]MenuSuggestion `json:"periods" yaml:"periods"`
	HighProtein MenuSuggestion                `json:"high_protein" yaml:"high_protein"`
}

var defaultCatalogue = &Catalogue{
	Periods: map[MealPeriod]MenuSuggestion{
		Breakfast: {
			Vegetarian:    []string{"Oats with fruits", "Idli with sambar", "Vegetable Poha"},
			NonVegetarian: []string{"Egg omelette with toast", "Chicken sandwich", "Boiled eggs with fruits"},
		},
		Lunch: {
			Vegetarian:    []string{"Dal with roti", "Vegetable Biryani", "Chickpea salad"},
			NonVegetarian: []string{"Grilled chicken with rice", "Fish curry", "Egg curry with chapati"},
		},
		Dinner: {
			Vegetarian:    []string{"Palak paneer with rice", "Khichdi", "Vegetable soup"},
			NonVegetarian: []string{"Chicken stew with rice", "Grilled fish", "Mutton soup"},
		},
	},
	// TODO: vary the high-protein pair by meal period; every period shares it today.
	HighProtein: MenuSuggestion{
		Vegetarian:    []string{"Paneer tikka", "Tofu stir fry"},
		NonVegetarian: []string{"Grilled chicken", "Salmon steak"},
	},
}

// DefaultCatalogue returns a copy of the built-in catalogue.
func DefaultCatalogue() *Catalogue {
	return defaultCatalogue.clone()
}

// Select looks up the suggestions for a period and preference. Unrecognised preferences take
// the Balanced path.
func (c *Catalogue) Select(period MealPeriod, preference DietPreference) MenuSuggestion {
	switch preference {
	case Vegetarian:
		return MenuSuggestion{
			Vegetarian:    cloneItems(c.Periods[period].Vegetarian),
			NonVegetarian: []string{},
		}
	case HighProtein:
		return c.HighProtein.clone()
	default:
		return c.Periods[period].clone()
	}
}

// Recommend classifies the meal period, selects the menu and computes the hydration target.
func (c *Catalogue) Recommend(req Request) Recommendation {
	period := ClassifyMealPeriod(req.At, req.UTCOffsetMinutes)
	return Recommendation{
		MealPeriod:      period,
		Preference:      req.Preference,
		Readings:        req.Readings,
		Menu:            c.Select(period, req.Preference),
		HydrationLitres: ComputeHydrationTarget(req.Readings),
		At:              req.At,
	}
}

// SelectMenu uses the built-in catalogue.
func SelectMenu(period MealPeriod, preference DietPreference) MenuSuggestion {
	return defaultCatalogue.Select(period, preference)
}

// Recommend uses the built-in catalogue.
func Recommend(req Request) Recommendation {
	return defaultCatalogue.Recommend(req)
}

func (c *Catalogue) clone() *Catalogue {
	out := &Catalogue{
		Periods:     make(map[MealPeriod]MenuSuggestion, len(c.Periods)),
		HighProtein: c.HighProtein.clone(),
	}
	for period, menu := range c.Periods {
		out.Periods[period] = menu.clone()
	}
	return out
}

// LoadCatalogue decodes a YAML catalogue:
//
//	periods:
//	  Breakfast:
//	    veg: [Oats with fruits]
//	    non_veg: [Boiled eggs]
//	high_protein:
//	  veg: [Paneer tikka]
//	  non_veg: [Grilled chicken]
//
// A missing high_protein section keeps the built-in pair.
func LoadCatalogue(r io.Reader) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}

	for period := range c.Periods {
		if !period.IsValid() {
			return nil, fmt.Errorf("%w: %q, supported values: %v", ErrUnknownMealPeriod, period, SupportedMealPeriods())
		}
	}
	if c.Periods == nil {
		c.Periods = map[MealPeriod]MenuSuggestion{}
	}
	if c.HighProtein.IsEmpty() {
		c.HighProtein = defaultCatalogue.HighProtein.clone()
	}

	return c.clone(), nil
}

func LoadCatalogueFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalogue: %w", err)
	}
	defer f.Close()

	return LoadCatalogue(f)
}
