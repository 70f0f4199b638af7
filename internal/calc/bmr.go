package calc

import "fmt"

type BMRResult struct {
	BMR          float64 `json:"bmr"`
	CalorieNeeds float64 `json:"calorieNeeds"`
	Advice       string  `json:"advice"`
}

// BMR computes the Mifflin-St Jeor basal metabolic rate and the daily
// calorie needs for the given activity level.
func BMR(gender string, age float64, heightCM float64, weightKG float64, activityLevel string) BMRResult {
	bmr := rawBMR(gender, age, heightCM, weightKG)
	needs := round0(bmr * ActivityMultiplier(activityLevel))
	return BMRResult{
		BMR:          round0(bmr),
		CalorieNeeds: needs,
		Advice:       fmt.Sprintf("Based on your activity level, eat about %.0f kcal per day to maintain your current weight.", needs),
	}
}

// The male and female variants differ only in the constant term: +5 vs -161.
func rawBMR(gender string, age float64, heightCM float64, weightKG float64) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*age
	if gender == GenderMale {
		return base + 5
	}
	return base - 161
}

type CalorieResult struct {
	Maintenance float64 `json:"maintenance"`
	Deficit     float64 `json:"deficit"`
	Surplus     float64 `json:"surplus"`
}

// CalorieNeeds derives maintenance calories from BMR, then a 500 kcal
// cutting target (floored at zero) and a 300 kcal bulking target.
func CalorieNeeds(gender string, age float64, heightCM float64, weightKG float64, activityLevel string) CalorieResult {
	maintenance := round0(rawBMR(gender, age, heightCM, weightKG) * ActivityMultiplier(activityLevel))
	deficit := maintenance - 500
	if deficit < 0 {
		deficit = 0
	}
	return CalorieResult{
		Maintenance: maintenance,
		Deficit:     deficit,
		Surplus:     maintenance + 300,
	}
}
