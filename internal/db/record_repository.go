package db

import (
	"github.com/aricheng/vitalcheck/internal/models"
	"gorm.io/gorm"
)

type RecordRepository struct {
	database *gorm.DB
}

func NewRecordRepository(database *gorm.DB) *RecordRepository {
	return &RecordRepository{database: database}
}

func (repo *RecordRepository) Create(record *models.CalculatorRecord) error {
	return repo.database.Create(record).Error
}

// ListByUserAndKind returns the caller's newest records of one kind,
// capped at limit.
func (repo *RecordRepository) ListByUserAndKind(userID uint, kind string, limit int) ([]models.CalculatorRecord, error) {
	records := make([]models.CalculatorRecord, 0)
	if err := repo.database.
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// LatestByUser returns the newest record per kind, for dashboard views.
func (repo *RecordRepository) LatestByUser(userID uint) (map[string]models.CalculatorRecord, error) {
	latest := make(map[string]models.CalculatorRecord, len(models.AllKinds()))
	for _, kind := range models.AllKinds() {
		records, err := repo.ListByUserAndKind(userID, kind, 1)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			latest[kind] = records[0]
		}
	}
	return latest, nil
}

func (repo *RecordRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.CalculatorRecord{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type kindCountRow struct {
	Kind  string `gorm:"column:kind"`
	Count int64  `gorm:"column:count"`
}

func (repo *RecordRepository) CountByUserPerKind(userID uint) (map[string]int64, error) {
	rows := make([]kindCountRow, 0)
	if err := repo.database.Model(&models.CalculatorRecord{}).
		Select("kind, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}

func (repo *RecordRepository) CountAll() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.CalculatorRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
