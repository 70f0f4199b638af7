package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	Username      string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash  string `gorm:"not null" json:"-"`
	Role          string `gorm:"not null;default:USER" json:"role"`
	IsActive      bool   `gorm:"not null;default:true" json:"isActive"`
	Avatar        string `json:"avatar,omitempty"`
	EmailVerified bool   `gorm:"not null;default:false" json:"emailVerified"`

	// Pending password-reset code, stored hashed. Cleared once used.
	ResetCodeHash   string     `json:"-"`
	ResetCodeExpiry *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type Profile struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"-"`
	Gender    string     `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Height    float64    `json:"height,omitempty"`
	Weight    float64    `json:"weight,omitempty"`
	UpdatedAt time.Time  `json:"-"`
}

// EmailVerification holds a hashed registration code issued to an address
// that does not have an account yet. Rows are replaced on re-send and
// deleted once registration completes.
type EmailVerification struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	CodeHash  string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
