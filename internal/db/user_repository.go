package db

import (
	"time"

	"github.com/aricheng/vitalcheck/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.Preload("Profile").First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).Where("email = ?", email).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) ExistsByUsername(username string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).Where("username = ?", username).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) UpdateLastLogin(userID uint, at time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", at).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":     passwordHash,
		"reset_code_hash":   "",
		"reset_code_expiry": nil,
	}).Error
}

func (repo *UserRepository) SetResetCode(userID uint, codeHash string, expiry time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"reset_code_hash":   codeHash,
		"reset_code_expiry": expiry,
	}).Error
}

// DeleteWithRelatedData removes the user together with its profile and
// calculation history in one transaction.
func (repo *UserRepository) DeleteWithRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CalculatorRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// UserFilter narrows admin listings. Nil fields mean "any".
type UserFilter struct {
	Role     *string
	IsActive *bool
}

func (repo *UserRepository) ListPage(filter UserFilter, offset int, limit int) ([]models.User, error) {
	users := make([]models.User, 0)
	query := repo.applyFilter(filter)
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) CountFiltered(filter UserFilter) (int64, error) {
	var count int64
	if err := repo.applyFilter(filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) applyFilter(filter UserFilter) *gorm.DB {
	query := repo.database.Model(&models.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

func (repo *UserRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) ListRecent(limit int) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
