package calc

// Blood pressure categories in increasing severity.
const (
	BPLow      = "low"
	BPNormal   = "normal"
	BPElevated = "elevated"
	BPPreHyper = "pre-hypertension"
	BPStage1   = "stage-1"
	BPStage2   = "stage-2+"
)

type BloodPressureResult struct {
	Category string `json:"category"`
	Advice   string `json:"advice"`
}

// ClassifyBloodPressure places a reading into one of six bands. Either
// value below the low thresholds classifies as low; above that, the
// reading lands in the band of its more severe component, so a mixed
// reading like 110/105 is still stage 2.
func ClassifyBloodPressure(systolic float64, diastolic float64) BloodPressureResult {
	if systolic < 90 || diastolic < 60 {
		return bloodPressureResult(BPLow)
	}

	category := systolicCategory(systolic)
	if severityRank(diastolicCategory(diastolic)) > severityRank(category) {
		category = diastolicCategory(diastolic)
	}
	return bloodPressureResult(category)
}

func systolicCategory(systolic float64) string {
	switch {
	case systolic < 120:
		return BPNormal
	case systolic < 130:
		return BPElevated
	case systolic < 140:
		return BPPreHyper
	case systolic < 160:
		return BPStage1
	default:
		return BPStage2
	}
}

// Diastolic readings have no elevated band; 80 already means
// pre-hypertension.
func diastolicCategory(diastolic float64) string {
	switch {
	case diastolic < 80:
		return BPNormal
	case diastolic < 90:
		return BPPreHyper
	case diastolic < 100:
		return BPStage1
	default:
		return BPStage2
	}
}

func severityRank(category string) int {
	switch category {
	case BPNormal:
		return 0
	case BPElevated:
		return 1
	case BPPreHyper:
		return 2
	case BPStage1:
		return 3
	default:
		return 4
	}
}

func bloodPressureResult(category string) BloodPressureResult {
	advice := map[string]string{
		BPLow:      "Your blood pressure is low. See a doctor if you feel dizzy or fatigued.",
		BPNormal:   "Your blood pressure is normal. Keep up your current lifestyle.",
		BPElevated: "Your blood pressure is elevated. Maintain a healthy diet and exercise regularly.",
		BPPreHyper: "You are in the pre-hypertension range. Reduce sodium intake and monitor your readings.",
		BPStage1:   "You are in stage 1 hypertension. See a doctor soon and follow their advice.",
		BPStage2:   "You are in stage 2 or higher hypertension. Seek professional medical help immediately.",
	}[category]
	return BloodPressureResult{Category: category, Advice: advice}
}
