package nutrition

// mealSlots is the fixed daily meal structure. The five fractions sum to 1.0.
var mealSlots = []MealSlot{
	{ID: "breakfast", Label: "Breakfast", Time: "8:00 AM", CalorieFraction: 0.25},
	{ID: "mid_morning", Label: "Mid-Morning Snack", Time: "11:00 AM", CalorieFraction: 0.10},
	{ID: "lunch", Label: "Lunch", Time: "1:30 PM", CalorieFraction: 0.30},
	{ID: "evening_snack", Label: "Evening Snack", Time: "4:30 PM", CalorieFraction: 0.10},
	{ID: "dinner", Label: "Dinner", Time: "7:30 PM", CalorieFraction: 0.25},
}

// MealSlots returns the five daily meal slots in serving order. The caller
// gets a copy; the table itself is never mutated.
func MealSlots() []MealSlot {
	out := make([]MealSlot, len(mealSlots))
	copy(out, mealSlots)
	return out
}

// DayNames is the fixed label cycle for chart days; day 8 reuses "Monday".
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DailyCalories is the midpoint of the guideline calorie range, the figure
// the chart generator distributes across slots.
func DailyCalories(t NutritionalTargets) float64 {
	return float64(t.CalorieMin+t.CalorieMax) / 2
}

// DietSearchKey maps a declared diet preference to the vendor's diet key.
// Anything outside the mapped values returns "" meaning no diet filter.
func DietSearchKey(preference string) string {
	switch preference {
	case "vegan":
		return "vegan"
	case "vegetarian":
		return "lacto_vegetarian"
	default:
		return ""
	}
}
