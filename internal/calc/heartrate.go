package calc

import "fmt"

type TargetHeartRateResult struct {
	MaxHeartRate float64 `json:"maxHeartRate"`
	WarmUpRange  string  `json:"warmUpRange"`
	FatBurnRange string  `json:"fatBurnRange"`
	CardioRange  string  `json:"cardioRange"`
}

// TargetHeartRate derives training zones from the age-predicted maximum
// heart rate (220 - age): warm-up 50-60%, fat burn 60-70%, cardio 70-85%.
func TargetHeartRate(age float64) TargetHeartRateResult {
	maxHR := 220 - age
	return TargetHeartRateResult{
		MaxHeartRate: maxHR,
		WarmUpRange:  heartRateRange(maxHR, 0.5, 0.6),
		FatBurnRange: heartRateRange(maxHR, 0.6, 0.7),
		CardioRange:  heartRateRange(maxHR, 0.7, 0.85),
	}
}

func heartRateRange(maxHR float64, lowPct float64, highPct float64) string {
	return fmt.Sprintf("%.0f - %.0f", round0(maxHR*lowPct), round0(maxHR*highPct))
}
