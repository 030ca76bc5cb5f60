package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealPeriodForHour_PartitionsDay(t *testing.T) {
	counts := map[MealPeriod]int{}
	for h := 0; h < 24; h++ {
		p := MealPeriodForHour(h)
		require.True(t, p.IsValid(), "hour %d", h)
		counts[p]++
	}

	assert.Equal(t, 6, counts[Breakfast])
	assert.Equal(t, 5, counts[Lunch])
	assert.Equal(t, 4, counts[EveningSnacks])
	assert.Equal(t, 9, counts[Dinner])
}

func TestMealPeriodForHour_Boundaries(t *testing.T) {
	tests := []struct {
		hour int
		want MealPeriod
	}{
		{0, Dinner},
		{4, Dinner},
		{5, Breakfast},
		{10, Breakfast},
		{11, Lunch},
		{15, Lunch},
		{16, EveningSnacks},
		{19, EveningSnacks},
		{20, Dinner},
		{23, Dinner},
		{24, Dinner},
		{-1, Dinner},
		{29, Breakfast},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MealPeriodForHour(tt.hour), "hour %d", tt.hour)
	}
}

func TestClassifyMealPeriod_AppliesOffset(t *testing.T) {
	tests := []struct {
		name   string
		at     time.Time
		offset int
		want   MealPeriod
	}{
		{"utc 00:00 is 05:30 ist", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), DefaultUTCOffsetMinutes, Breakfast},
		{"utc 23:29 is 04:59 ist", time.Date(2025, 1, 1, 23, 29, 0, 0, time.UTC), DefaultUTCOffsetMinutes, Dinner},
		{"utc 05:30 is 11:00 ist", time.Date(2025, 1, 1, 5, 30, 0, 0, time.UTC), DefaultUTCOffsetMinutes, Lunch},
		{"utc 10:30 is 16:00 ist", time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC), DefaultUTCOffsetMinutes, EveningSnacks},
		{"utc 14:30 is 20:00 ist", time.Date(2025, 1, 1, 14, 30, 0, 0, time.UTC), DefaultUTCOffsetMinutes, Dinner},
		{"zero offset", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), 0, Lunch},
		{"negative offset", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), -6 * 60, Breakfast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMealPeriod(tt.at, tt.offset))
		})
	}
}

func TestClassifyMealPeriod_IgnoresInputZone(t *testing.T) {
	utc := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	ny := utc.In(time.FixedZone("EDT", -4*3600))

	assert.Equal(t, ClassifyMealPeriod(utc, DefaultUTCOffsetMinutes), ClassifyMealPeriod(ny, DefaultUTCOffsetMinutes))
}

func TestSelectMenu(t *testing.T) {
	tests := []struct {
		name       string
		period     MealPeriod
		preference DietPreference
		want       MenuSuggestion
	}{
		{
			name:       "vegetarian breakfast",
			period:     Breakfast,
			preference: Vegetarian,
			want: MenuSuggestion{
				Vegetarian:    []string{"Oats with fruits", "Idli with sambar", "Vegetable Poha"},
				NonVegetarian: []string{},
			},
		},
		{
			name:       "high protein lunch",
			period:     Lunch,
			preference: HighProtein,
			want: MenuSuggestion{
				Vegetarian:    []string{"Paneer tikka", "Tofu stir fry"},
				NonVegetarian: []string{"Grilled chicken", "Salmon steak"},
			},
		},
		{
			name:       "balanced evening snacks",
			period:     EveningSnacks,
			preference: Balanced,
			want:       MenuSuggestion{Vegetarian: []string{}, NonVegetarian: []string{}},
		},
		{
			name:       "non-veg dinner",
			period:     Dinner,
			preference: NonVeg,
			want: MenuSuggestion{
				Vegetarian:    []string{"Palak paneer with rice", "Khichdi", "Vegetable soup"},
				NonVegetarian: []string{"Chicken stew with rice", "Grilled fish", "Mutton soup"},
			},
		},
		{
			name:       "unknown preference takes balanced path",
			period:     Lunch,
			preference: DietPreference("keto"),
			want: MenuSuggestion{
				Vegetarian:    []string{"Dal with roti", "Vegetable Biryani", "Chickpea salad"},
				NonVegetarian: []string{"Grilled chicken with rice", "Fish curry", "Egg curry with chapati"},
			},
		},
		{
			name:       "vegetarian evening snacks",
			period:     EveningSnacks,
			preference: Vegetarian,
			want:       MenuSuggestion{Vegetarian: []string{}, NonVegetarian: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectMenu(tt.period, tt.preference)
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, got.Vegetarian)
			assert.NotNil(t, got.NonVegetarian)
		})
	}
}

func TestSelectMenu_HighProteinIgnoresPeriod(t *testing.T) {
	want := SelectMenu(Breakfast, HighProtein)
	for _, p := range SupportedMealPeriods() {
		assert.Equal(t, want, SelectMenu(MealPeriod(p), HighProtein), p)
	}
}

func TestSelectMenu_ResultDoesNotAliasCatalogue(t *testing.T) {
	got := SelectMenu(Breakfast, Balanced)
	got.Vegetarian[0] = "changed"

	again := SelectMenu(Breakfast, Balanced)
	assert.Equal(t, "Oats with fruits", again.Vegetarian[0])
	assert.Equal(t, again, SelectMenu(Breakfast, Balanced))
}

func TestComputeHydrationTarget(t *testing.T) {
	tests := []struct {
		name     string
		readings VitalReadings
		want     float64
	}{
		{"baseline", VitalReadings{BloodPressureSystolic: 120, BloodSugar: 100, ProteinLevel: 60}, 2.5},
		{"high bp", VitalReadings{BloodPressureSystolic: 140, BloodSugar: 100, ProteinLevel: 50}, 3.0},
		{"sugar and protein cancel", VitalReadings{BloodPressureSystolic: 100, BloodSugar: 160, ProteinLevel: 90}, 2.5},
		{"thresholds are exclusive", VitalReadings{BloodPressureSystolic: 130, BloodSugar: 150, ProteinLevel: 80}, 2.5},
		{"maximum", VitalReadings{BloodPressureSystolic: 131, BloodSugar: 151, ProteinLevel: 0}, 3.5},
		{"minimum", VitalReadings{BloodPressureSystolic: 0, BloodSugar: 0, ProteinLevel: 81}, 2.0},
		{"out of range values accepted", VitalReadings{BloodPressureSystolic: -5, BloodSugar: 9000, ProteinLevel: 500}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeHydrationTarget(tt.readings)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ComputeHydrationTarget(tt.readings))
		})
	}
}

func TestRecommend(t *testing.T) {
	at := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC) // 07:30 IST
	req := Request{
		Readings:         VitalReadings{BloodPressureSystolic: 140, BloodSugar: 100, ProteinLevel: 50, Calories: 1800, Fiber: 25},
		Preference:       Vegetarian,
		At:               at,
		UTCOffsetMinutes: DefaultUTCOffsetMinutes,
	}

	rec := Recommend(req)
	assert.Equal(t, Breakfast, rec.MealPeriod)
	assert.Equal(t, Vegetarian, rec.Preference)
	assert.Equal(t, req.Readings, rec.Readings)
	assert.Equal(t, 3.0, rec.HydrationLitres)
	assert.Equal(t, at, rec.At)
	assert.Len(t, rec.Menu.Vegetarian, 3)
	assert.Empty(t, rec.Menu.NonVegetarian)
	assert.Equal(t, rec, Recommend(req))
}

func TestParseDietPreference(t *testing.T) {
	tests := []struct {
		in      string
		want    DietPreference
		wantErr bool
	}{
		{"", Balanced, false},
		{"balanced", Balanced, false},
		{"Vegetarian", Vegetarian, false},
		{"high-protein", HighProtein, false},
		{"HighProtein", HighProtein, false},
		{"high_protein", HighProtein, false},
		{" Non Veg ", NonVeg, false},
		{"nonveg", NonVeg, false},
		{"keto", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDietPreference(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.True(t, got.IsValid())
	}
}

func TestMenuSuggestion_Rows(t *testing.T) {
	m := MenuSuggestion{
		Vegetarian:    []string{"a", "b", "c"},
		NonVegetarian: []string{"x"},
	}

	assert.Equal(t, []MenuRow{
		{Vegetarian: "a", NonVegetarian: "x"},
		{Vegetarian: "b", NonVegetarian: Placeholder},
		{Vegetarian: "c", NonVegetarian: Placeholder},
	}, m.Rows(Placeholder))

	longer := MenuSuggestion{Vegetarian: []string{"a"}, NonVegetarian: []string{"x", "y"}}
	assert.Equal(t, []MenuRow{
		{Vegetarian: "a", NonVegetarian: "x"},
		{Vegetarian: Placeholder, NonVegetarian: "y"},
	}, longer.Rows(Placeholder))

	rows := SelectMenu(EveningSnacks, Balanced).Rows(Placeholder)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestLoadCatalogue(t *testing.T) {
	c, err := LoadCatalogue(strings.NewReader(`
periods:
  Evening Snacks:
    veg: [Sprouts chaat, Roasted makhana]
    non_veg: [Chicken tikka]
`))
	require.NoError(t, err)

	assert.Equal(t, MenuSuggestion{
		Vegetarian:    []string{"Sprouts chaat", "Roasted makhana"},
		NonVegetarian: []string{"Chicken tikka"},
	}, c.Select(EveningSnacks, Balanced))
	assert.Equal(t, MenuSuggestion{Vegetarian: []string{}, NonVegetarian: []string{}}, c.Select(Breakfast, NonVeg))
	assert.Equal(t, SelectMenu(Dinner, HighProtein), c.Select(Dinner, HighProtein))
}

func TestLoadCatalogue_UnknownPeriod(t *testing.T) {
	_, err := LoadCatalogue(strings.NewReader(`
periods:
  Brunch:
    veg: [Pancakes]
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMealPeriod)
}

func TestLoadCatalogue_Empty(t *testing.T) {
	c, err := LoadCatalogue(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, c.Select(Lunch, Balanced).IsEmpty())
}

func TestLoadCatalogue_Malformed(t *testing.T) {
	_, err := LoadCatalogue(strings.NewReader("periods: [not, a, map]"))
	assert.Error(t, err)
}

func TestDefaultCatalogue_IsCopy(t *testing.T) {
	c := DefaultCatalogue()
	c.Periods[Lunch] = MenuSuggestion{}
	c.HighProtein.Vegetarian[0] = "changed"

	assert.Len(t, SelectMenu(Lunch, Balanced).Vegetarian, 3)
	assert.Equal(t, "Paneer tikka", SelectMenu(Lunch, HighProtein).Vegetarian[0])
}

func TestLoadCatalogueFile_SampleMatchesDefault(t *testing.T) {
	c, err := LoadCatalogueFile("../../configs/catalogue.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogue(), c)
}

func TestLoadCatalogueFile_Missing(t *testing.T) {
	_, err := LoadCatalogueFile("does-not-exist.yaml")
	assert.Error(t, err)
}
