package calc

type WaistHipResult struct {
	Ratio  float64 `json:"ratio"`
	Advice string  `json:"advice"`
}

// WaistHipRatio computes waist/hip. The risk bands differ by gender.
func WaistHipRatio(gender string, waistCM float64, hipCM float64) WaistHipResult {
	ratio := round2(waistCM / hipCM)
	return WaistHipResult{Ratio: ratio, Advice: waistHipAdvice(ratio, gender == GenderMale)}
}

func waistHipAdvice(ratio float64, isMale bool) string {
	if isMale {
		switch {
		case ratio < 0.9:
			return "Your proportions look good. Keep up regular exercise and a balanced diet."
		case ratio < 1:
			return "Mild central obesity risk. Cut back on refined sugar and late-night snacking."
		default:
			return "High central obesity risk. Consult a doctor about a weight-management plan."
		}
	}
	switch {
	case ratio < 0.8:
		return "Your proportions look good. Keep up regular exercise and a balanced diet."
	case ratio < 0.85:
		return "Mild central obesity risk. Add more core strength training."
	default:
		return "High central obesity risk. Consult a doctor about a weight-management plan."
	}
}
