package calc

type SLIResult struct {
	SLI    float64 `json:"sli"`
	Advice string  `json:"advice"`
}

// SLI computes the cardiac load index: heart-rate reserve times duration,
// normalised by age. Age is floored at 1 to keep the division defined.
func SLI(age float64, exerciseHR float64, restingHR float64, durationMinutes float64) SLIResult {
	divisor := age
	if divisor < 1 {
		divisor = 1
	}
	sli := round1((exerciseHR - restingHR) * durationMinutes / divisor)
	return SLIResult{SLI: sli, Advice: sliAdvice(sli)}
}

func sliAdvice(sli float64) string {
	switch {
	case sli < 10:
		return "Your training load is light. Consider longer sessions or higher intensity."
	case sli < 25:
		return "Your training load is moderate. Regular exercise at this level supports cardiovascular health."
	case sli < 40:
		return "Your training load is high. Warm up and stretch thoroughly, and watch for discomfort during exercise."
	default:
		return "Your training load is very high. Train at this intensity only under the guidance of a coach or doctor."
	}
}
