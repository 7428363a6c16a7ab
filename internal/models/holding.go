package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxSymbolLength      = 12
	MaxHoldingNameLength = 100
)

// Holding is one stock position: a symbol held in some quantity under
// exactly one account. The mark flag is the only mutable field, and it is
// toggled per (owner, symbol) pair rather than per row: marking a symbol
// marks it in every account the owner holds it in.
type Holding struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Symbol    string    `gorm:"type:varchar(12);not null;index" json:"symbol"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	IsMarked  bool      `gorm:"not null;default:false" json:"is_marked"`
	AddedAt   time.Time `gorm:"not null" json:"-"`

	Account *Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}

	if h.AddedAt.IsZero() {
		h.AddedAt = time.Now()
	}

	return h.Validate()
}

func (h *Holding) Validate() error {
	if strings.TrimSpace(h.Symbol) == "" {
		return errors.New("symbol is required")
	}

	if len(h.Symbol) > MaxSymbolLength {
		return errors.New("symbol is too long")
	}

	if strings.TrimSpace(h.Name) == "" {
		return errors.New("holding name is required")
	}

	if len(h.Name) > MaxHoldingNameLength {
		return errors.New("holding name is too long")
	}

	if h.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	if h.AccountID == uuid.Nil {
		return errors.New("holding account is required")
	}

	if h.UserID == uuid.Nil {
		return errors.New("holding owner is required")
	}

	return nil
}

// AddedAtMillis reports the insertion time as a millisecond epoch.
func (h *Holding) AddedAtMillis() int64 {
	return h.AddedAt.UnixMilli()
}

func (h *Holding) TableName() string {
	return "holdings"
}
