package calc

import "math"

type BodyFatResult struct {
	BodyFatPercentage float64 `json:"bodyFatPercentage"`
	Advice            string  `json:"advice"`
}

// BodyFat estimates body fat percentage with the US Navy circumference
// method. The female formula also needs the hip measurement. Results are
// clamped at zero since the log terms can go negative for small frames.
func BodyFat(gender string, heightCM float64, waistCM float64, hipCM float64) BodyFatResult {
	var percentage float64
	if gender == GenderMale {
		percentage = 86.010*math.Log10(waistCM) - 70.041*math.Log10(heightCM) + 36.76
	} else {
		percentage = 163.205*math.Log10(waistCM+hipCM) - 97.684*math.Log10(heightCM) - 78.387
	}

	percentage = round2(percentage)
	if percentage < 0 {
		percentage = 0
	}

	return BodyFatResult{
		BodyFatPercentage: percentage,
		Advice:            bodyFatAdvice(percentage, gender == GenderMale),
	}
}

func bodyFatAdvice(percentage float64, isMale bool) string {
	if isMale {
		switch {
		case percentage < 6:
			return "Your body fat is low. Make sure you eat enough quality carbohydrates and keep up strength training."
		case percentage <= 24:
			return "Your body fat is in the healthy range. Keep up your current lifestyle."
		case percentage <= 30:
			return "Your body fat is slightly high. Add more cardio and watch your diet."
		default:
			return "Your body fat is high. Consult a professional about a fat-loss plan."
		}
	}
	switch {
	case percentage < 16:
		return "Your body fat is low. Eat a balanced diet and avoid an energy deficit."
	case percentage <= 30:
		return "Your body fat is in the healthy range. Keep up your current lifestyle."
	case percentage <= 36:
		return "Your body fat is slightly high. Focus on regular sleep and aerobic training."
	default:
		return "Your body fat is high. Consult a professional about a fat-loss plan."
	}
}
