package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxAccountNameLength = 100
)

// Account is a named brokerage account grouping the holdings of one user.
// Accounts are append-only from the API's point of view: once created,
// neither the name nor the owner can change and no delete is exposed.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"-"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Holdings []Holding `gorm:"foreignKey:AccountID" json:"-"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return a.Validate()
}

func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("account name is required")
	}

	if len(a.Name) > MaxAccountNameLength {
		return errors.New("account name is too long")
	}

	if a.UserID == uuid.Nil {
		return errors.New("account owner is required")
	}

	return nil
}

// CreatedAtMillis reports the creation time as a millisecond epoch,
// the unit the tracked record shape uses on the wire.
func (a *Account) CreatedAtMillis() int64 {
	return a.CreatedAt.UnixMilli()
}

func (a *Account) TableName() string {
	return "accounts"
}
