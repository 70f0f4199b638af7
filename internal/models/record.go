package models

import "time"

// Calculator kinds. One record table serves all of them; the per-kind
// shape lives in the Inputs and Outputs payloads.
const (
	KindBMI             = "bmi"
	KindBMR             = "bmr"
	KindBodyFat         = "body-fat"
	KindWaistHip        = "waist-hip"
	KindBloodPressure   = "blood-pressure"
	KindTargetHeartRate = "target-heart-rate"
	KindSLI             = "sli"
	KindCalorie         = "calorie"
)

func AllKinds() []string {
	return []string{
		KindBMI,
		KindBMR,
		KindBodyFat,
		KindWaistHip,
		KindBloodPressure,
		KindTargetHeartRate,
		KindSLI,
		KindCalorie,
	}
}

func IsValidKind(kind string) bool {
	for _, known := range AllKinds() {
		if kind == known {
			return true
		}
	}
	return false
}

// CalculatorRecord is an immutable history row. Records are only ever
// created and read; deletion happens solely through the owning user.
type CalculatorRecord struct {
	ID       uint           `gorm:"primaryKey" json:"-"`
	PublicID string         `gorm:"uniqueIndex;not null" json:"id"`
	UserID   uint           `gorm:"not null;index:idx_record_user_kind" json:"-"`
	Kind     string         `gorm:"not null;index:idx_record_user_kind" json:"kind"`
	Inputs   map[string]any `gorm:"serializer:json" json:"inputs"`
	Outputs  map[string]any `gorm:"serializer:json" json:"outputs"`
	Advice   string         `json:"advice,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
