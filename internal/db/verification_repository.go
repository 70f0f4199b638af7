package db

import (
	"github.com/aricheng/vitalcheck/internal/models"
	"gorm.io/gorm"
)

type VerificationRepository struct {
	database *gorm.DB
}

func NewVerificationRepository(database *gorm.DB) *VerificationRepository {
	return &VerificationRepository{database: database}
}

// Replace stores a fresh verification for the address, superseding any
// earlier unused one.
func (repo *VerificationRepository) Replace(verification *models.EmailVerification) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", verification.Email).Delete(&models.EmailVerification{}).Error; err != nil {
			return err
		}
		return tx.Create(verification).Error
	})
}

func (repo *VerificationRepository) FindByEmail(email string) (models.EmailVerification, error) {
	var verification models.EmailVerification
	if err := repo.database.Where("email = ?", email).First(&verification).Error; err != nil {
		return models.EmailVerification{}, err
	}
	return verification, nil
}

func (repo *VerificationRepository) DeleteByEmail(email string) error {
	return repo.database.Where("email = ?", email).Delete(&models.EmailVerification{}).Error
}
