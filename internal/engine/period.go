package engine

import "time"

// DefaultUTCOffsetMinutes is the fixed offset of the reference region (UTC+05:30).
const DefaultUTCOffsetMinutes = 330

// ClassifyMealPeriod maps the local hour of t, shifted by a fixed UTC offset, to a meal period.
func ClassifyMealPeriod(t time.Time, utcOffsetMinutes int) MealPeriod {
	local := t.In(time.FixedZone("", utcOffsetMinutes*60))
	return MealPeriodForHour(local.Hour())
}

// MealPeriodForHour partitions the 24-hour cycle:
// [5,11) Breakfast, [11,16) Lunch, [16,20) Evening Snacks, everything else Dinner.
func MealPeriodForHour(hour int) MealPeriod {
	hour = ((hour % 24) + 24) % 24

	switch {
	case hour >= 5 && hour < 11:
		return Breakfast
	case hour >= 11 && hour < 16:
		return Lunch
	case hour >= 16 && hour < 20:
		return EveningSnacks
	default:
		return Dinner
	}
}
