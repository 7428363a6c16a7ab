package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxFailedLoginAttempts = 3
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User is the owning identity for brokerage accounts and holdings.
type User struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email               string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash        string         `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName         string         `gorm:"type:varchar(100)" json:"display_name,omitempty"`
	FailedLoginAttempts int            `gorm:"default:0" json:"-"`
	LockedAt            *time.Time     `gorm:"index" json:"locked_at,omitempty"`
	LastLoginAt         *time.Time     `gorm:"index" json:"last_login_at,omitempty"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Accounts          []Account          `gorm:"foreignKey:UserID" json:"-"`
	Holdings          []Holding          `gorm:"foreignKey:UserID" json:"-"`
	RefreshTokens     []RefreshToken     `gorm:"foreignKey:UserID" json:"-"`
	BlacklistedTokens []BlacklistedToken `gorm:"foreignKey:UserID" json:"-"`
	AuditLogs         []AuditLog         `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// Skip validation for map-based updates (Updates with map); the User
	// struct is empty there and only specific columns change.
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(u.Email) {
		return errors.New("invalid email format")
	}

	return nil
}

func (u *User) IsLocked() bool {
	return u.LockedAt != nil
}

func (u *User) Lock() {
	now := time.Now()
	u.LockedAt = &now
	u.FailedLoginAttempts = MaxFailedLoginAttempts
}

func (u *User) Unlock() {
	u.LockedAt = nil
	u.FailedLoginAttempts = 0
}

func (u *User) IncrementFailedAttempts() {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= MaxFailedLoginAttempts {
		u.Lock()
	}
}

func (u *User) ResetFailedAttempts() {
	u.FailedLoginAttempts = 0
}

func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

func (u *User) TableName() string {
	return "users"
}
