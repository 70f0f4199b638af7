package services

import (
	"errors"
	"time"

	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/aricheng/vitalcheck/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
	ErrEmailNotVerified   = errors.New("email not verified")
)

const verificationCodeTTL = 10 * time.Minute

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByEmail(email string) (models.User, error)
	FindByUsername(username string) (models.User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	Create(user *models.User) error
	UpdateLastLogin(userID uint, at time.Time) error
	UpdatePassword(userID uint, passwordHash string) error
	SetResetCode(userID uint, codeHash string, expiry time.Time) error
}

type AuthVerificationRepository interface {
	Replace(verification *models.EmailVerification) error
	FindByEmail(email string) (models.EmailVerification, error)
	DeleteByEmail(email string) error
}

type AuthService struct {
	users         AuthUserRepository
	verifications AuthVerificationRepository
	mailer        Mailer
}

func NewAuthService(users AuthUserRepository, verifications AuthVerificationRepository, mailer Mailer) *AuthService {
	return &AuthService{users: users, verifications: verifications, mailer: mailer}
}

// IssueRegistrationCode mails a 6-digit code to an address without an
// account and stores its hash with a short expiry. Registration later
// proves possession of the code.
func (service *AuthService) IssueRegistrationCode(email string, now time.Time) error {
	taken, err := service.users.ExistsByEmail(email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	code, err := security.VerificationCode()
	if err != nil {
		return err
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := service.verifications.Replace(&models.EmailVerification{
		Email:     email,
		CodeHash:  string(codeHash),
		ExpiresAt: now.Add(verificationCodeTTL),
		CreatedAt: now,
	}); err != nil {
		return err
	}

	// Delivery failure is fatal here: without the code the caller can
	// never finish registration.
	return service.mailer.SendVerificationCode(email, "new user", code, PurposeRegister)
}

// IssueResetCode mails a password-reset code to an existing, verified
// account. Callers must map ErrInvalidCredentials to a generic success to
// avoid account enumeration.
func (service *AuthService) IssueResetCode(email string, now time.Time) error {
	user, err := service.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !user.EmailVerified {
		return ErrEmailNotVerified
	}

	code, err := security.VerificationCode()
	if err != nil {
		return err
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := service.users.SetResetCode(user.ID, string(codeHash), now.Add(verificationCodeTTL)); err != nil {
		return err
	}

	return service.mailer.SendVerificationCode(user.Email, user.Username, code, PurposeResetPassword)
}

// Register creates the account once the emailed code checks out against
// the stored hash. The consumed verification row is deleted.
func (service *AuthService) Register(email string, username string, password string, code string, now time.Time) (models.User, error) {
	if taken, err := service.users.ExistsByEmail(email); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, ErrEmailTaken
	}
	if taken, err := service.users.ExistsByUsername(username); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, ErrUsernameTaken
	}

	verification, err := service.verifications.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCode
		}
		return models.User{}, err
	}
	if verification.ExpiresAt.Before(now) {
		return models.User{}, ErrInvalidCode
	}
	if bcrypt.CompareHashAndPassword([]byte(verification.CodeHash), []byte(code)) != nil {
		return models.User{}, ErrInvalidCode
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:         email,
		Username:      username,
		PasswordHash:  string(passwordHash),
		Role:          models.RoleUser,
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     now,
		Profile:       &models.Profile{},
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	if err := service.verifications.DeleteByEmail(email); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate resolves a username/password pair to an active account and
// stamps the login time.
func (service *AuthService) Authenticate(username string, password string, now time.Time) (models.User, error) {
	user, err := service.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := service.users.UpdateLastLogin(user.ID, now); err != nil {
		return models.User{}, err
	}
	user.LastLoginAt = &now
	return user, nil
}

// ResetPassword verifies the emailed code against the hash stored on the
// user row and swaps the password, clearing the code.
func (service *AuthService) ResetPassword(email string, code string, newPassword string, now time.Time) (models.User, error) {
	user, err := service.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCode
		}
		return models.User{}, err
	}
	if user.ResetCodeHash == "" || user.ResetCodeExpiry == nil || user.ResetCodeExpiry.Before(now) {
		return models.User{}, ErrInvalidCode
	}
	if bcrypt.CompareHashAndPassword([]byte(user.ResetCodeHash), []byte(code)) != nil {
		return models.User{}, ErrInvalidCode
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdatePassword(user.ID, string(passwordHash)); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}
