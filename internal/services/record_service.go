package services

import (
	"time"

	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/google/uuid"
)

// History responses return at most this many rows per calculator.
const historyLimit = 10

type RecordRepository interface {
	Create(record *models.CalculatorRecord) error
	ListByUserAndKind(userID uint, kind string, limit int) ([]models.CalculatorRecord, error)
	LatestByUser(userID uint) (map[string]models.CalculatorRecord, error)
}

type RecordService struct {
	records RecordRepository
}

func NewRecordService(records RecordRepository) *RecordService {
	return &RecordService{records: records}
}

// SaveResult appends an immutable history row and returns its public id.
func (service *RecordService) SaveResult(kind string, userID uint, inputs map[string]any, outputs map[string]any, advice string, now time.Time) (string, error) {
	record := models.CalculatorRecord{
		PublicID:  uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Inputs:    inputs,
		Outputs:   outputs,
		Advice:    advice,
		CreatedAt: now,
	}
	if err := service.records.Create(&record); err != nil {
		return "", err
	}
	return record.PublicID, nil
}

func (service *RecordService) History(userID uint, kind string) ([]models.CalculatorRecord, error) {
	return service.records.ListByUserAndKind(userID, kind, historyLimit)
}

// Dashboard returns the latest record per calculator kind.
func (service *RecordService) Dashboard(userID uint) (map[string]models.CalculatorRecord, error) {
	return service.records.LatestByUser(userID)
}
