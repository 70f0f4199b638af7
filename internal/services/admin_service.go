package services

import (
	"errors"
	"math"
	"time"

	"github.com/aricheng/vitalcheck/internal/db"
	"github.com/aricheng/vitalcheck/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfRoleChange    = errors.New("cannot change own role")
	ErrSelfDeactivate    = errors.New("cannot deactivate own account")
	ErrSelfDelete        = errors.New("cannot delete own account")
	ErrSelfPasswordReset = errors.New("cannot reset own password here")
	ErrInvalidRole       = errors.New("invalid role")
)

type AdminUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
	UpdatePassword(userID uint, passwordHash string) error
	DeleteWithRelatedData(userID uint) error
	ListPage(filter db.UserFilter, offset int, limit int) ([]models.User, error)
	CountFiltered(filter db.UserFilter) (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	ListRecent(limit int) ([]models.User, error)
}

type AdminRecordRepository interface {
	CountByUser(userID uint) (int64, error)
	CountByUserPerKind(userID uint) (map[string]int64, error)
	CountAll() (int64, error)
}

type AdminService struct {
	users   AdminUserRepository
	records AdminRecordRepository
}

func NewAdminService(users AdminUserRepository, records AdminRecordRepository) *AdminService {
	return &AdminService{users: users, records: records}
}

type UserListing struct {
	User        models.User `json:"user"`
	RecordCount int64       `json:"recordCount"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func (service *AdminService) ListUsers(filter db.UserFilter, page int, limit int) ([]UserListing, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	total, err := service.users.CountFiltered(filter)
	if err != nil {
		return nil, Pagination{}, err
	}

	users, err := service.users.ListPage(filter, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	listings := make([]UserListing, 0, len(users))
	for _, user := range users {
		count, err := service.records.CountByUser(user.ID)
		if err != nil {
			return nil, Pagination{}, err
		}
		listings = append(listings, UserListing{User: user, RecordCount: count})
	}

	pagination := Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return listings, pagination, nil
}

type UserDetail struct {
	User         models.User      `json:"user"`
	RecordCounts map[string]int64 `json:"recordCounts"`
}

func (service *AdminService) GetUser(userID uint) (UserDetail, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDetail{}, ErrUserNotFound
		}
		return UserDetail{}, err
	}

	counts, err := service.records.CountByUserPerKind(user.ID)
	if err != nil {
		return UserDetail{}, err
	}
	return UserDetail{User: user, RecordCounts: counts}, nil
}

// UpdateUser patches role and/or active flag. Admins can never change
// their own role or deactivate themselves.
func (service *AdminService) UpdateUser(callerID uint, targetID uint, role *string, isActive *bool) (models.User, error) {
	if role != nil && !models.IsValidRole(*role) {
		return models.User{}, ErrInvalidRole
	}

	target, err := service.users.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if targetID == callerID {
		if role != nil && *role != target.Role {
			return models.User{}, ErrSelfRoleChange
		}
		if isActive != nil && !*isActive {
			return models.User{}, ErrSelfDeactivate
		}
	}

	updates := make(map[string]any, 2)
	if role != nil {
		updates["role"] = *role
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if len(updates) > 0 {
		if err := service.users.UpdateByID(targetID, updates); err != nil {
			return models.User{}, err
		}
	}

	return service.users.FindByID(targetID)
}

func (service *AdminService) DeleteUser(callerID uint, targetID uint) error {
	if targetID == callerID {
		return ErrSelfDelete
	}
	if _, err := service.users.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return service.users.DeleteWithRelatedData(targetID)
}

// ResetUserPassword sets a new password for another account. Admins use
// the self-service change-password flow for their own.
func (service *AdminService) ResetUserPassword(callerID uint, targetID uint, newPassword string) (models.User, error) {
	if targetID == callerID {
		return models.User{}, ErrSelfPasswordReset
	}

	target, err := service.users.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdatePassword(targetID, string(passwordHash)); err != nil {
		return models.User{}, err
	}
	return target, nil
}

type Stats struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	AdminUsers    int64 `json:"adminUsers"`
	InactiveUsers int64 `json:"inactiveUsers"`
	TotalRecords  int64 `json:"totalRecords"`
	TodayUsers    int64 `json:"todayUsers"`
}

func (service *AdminService) Overview(now time.Time) (Stats, []models.User, error) {
	total, err := service.users.CountFiltered(db.UserFilter{})
	if err != nil {
		return Stats{}, nil, err
	}

	active := true
	activeCount, err := service.users.CountFiltered(db.UserFilter{IsActive: &active})
	if err != nil {
		return Stats{}, nil, err
	}

	adminRole := models.RoleAdmin
	adminCount, err := service.users.CountFiltered(db.UserFilter{Role: &adminRole})
	if err != nil {
		return Stats{}, nil, err
	}

	recordCount, err := service.records.CountAll()
	if err != nil {
		return Stats{}, nil, err
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayCount, err := service.users.CountCreatedSince(midnight)
	if err != nil {
		return Stats{}, nil, err
	}

	recent, err := service.users.ListRecent(5)
	if err != nil {
		return Stats{}, nil, err
	}

	stats := Stats{
		TotalUsers:    total,
		ActiveUsers:   activeCount,
		AdminUsers:    adminCount,
		InactiveUsers: total - activeCount,
		TotalRecords:  recordCount,
		TodayUsers:    todayCount,
	}
	return stats, recent, nil
}
