// Package calc implements the health-metric formulas. Every function is
// pure: validated numbers in, numbers and an advice sentence out.
package calc

import "math"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Named activity levels and their BMR multipliers.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "veryActive"
)

var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// ActivityMultiplier returns the calorie multiplier for a named activity
// level, or 0 when the level is unknown.
func ActivityMultiplier(level string) float64 {
	return activityMultipliers[level]
}

func round0(value float64) float64 {
	return math.Round(value)
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
