package calc

type BMIResult struct {
	BMI    float64 `json:"bmi"`
	Advice string  `json:"advice"`
}

// BMI computes weight / height² with height given in centimeters.
func BMI(heightCM float64, weightKG float64) BMIResult {
	meters := heightCM / 100
	bmi := round2(weightKG / (meters * meters))
	return BMIResult{BMI: bmi, Advice: bmiAdvice(bmi)}
}

// Boundary values resolve upward: exactly 18.5 is normal, exactly 24 is
// overweight, and so on.
func bmiAdvice(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Your weight is below the healthy range. Consider increasing your calorie intake and adding strength training."
	case bmi < 24:
		return "Your weight is within the healthy range. Keep up your current lifestyle."
	case bmi < 27:
		return "Your weight is slightly above the healthy range. Increase daily activity and watch your diet."
	case bmi < 30:
		return "You are approaching the obese range. Put an exercise and diet plan in place soon."
	default:
		return "You are in the obese range. Consult a doctor about a structured weight-loss plan."
	}
}
