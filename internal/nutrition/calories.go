package nutrition

// Activity multipliers applied to BMR when estimating total daily energy
// expenditure.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"low":         1.2,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.725,
}

// Goal adjustments in calories per day.
var goalAdjustments = map[string]float64{
	"weight_loss": -400,
	"maintenance": 0,
	"weight_gain": 400,
}

// BMRMifflinStJeor computes basal metabolic rate from body measurements.
func BMRMifflinStJeor(weightKg, heightCm float64, age int, gender string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// EstimateDailyCalories combines BMR, an activity multiplier and a goal
// adjustment. Unknown activity levels default to sedentary; unknown goals
// to maintenance. Used by the assistant only; chart generation derives its
// daily figure from the guideline calorie range instead.
func EstimateDailyCalories(p PatientProfile, goal string) float64 {
	bmr := BMRMifflinStJeor(p.Weight, p.Height, p.Age, p.Gender)

	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = 1.2
	}

	return bmr*multiplier + goalAdjustments[goal]
}
