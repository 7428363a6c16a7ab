package repositories

import (
	"time"

	"stocktracker/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePasswordHash(userID uuid.UUID, passwordHash string) error
	UpdateFailedLoginAttempts(user *models.User) error
	CountAccountsByUserID(userID uuid.UUID) (int64, error)
}

// AccountRepositoryInterface defines the contract for brokerage account
// repository operations. Accounts are insert-and-query only; the tracker
// exposes no update or delete.
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
	ExistsForUser(accountID, userID uuid.UUID) (bool, error)
}

// HoldingRepositoryInterface defines the contract for holding repository
// operations. SetMarkedBySymbol is the one multi-record write: it updates
// every holding of an (owner, symbol) pair atomically.
type HoldingRepositoryInterface interface {
	Create(holding *models.Holding) error
	GetByID(id uuid.UUID) (*models.Holding, error)
	GetByAccountID(accountID uuid.UUID) ([]models.Holding, error)
	GetByUserID(userID uuid.UUID) ([]models.Holding, error)
	CountByAccountID(accountID uuid.UUID) (int64, error)
	SetMarkedBySymbol(userID uuid.UUID, symbol string, isMarked bool) (int64, error)
}

// RefreshTokenRepositoryInterface defines the contract for refresh token repository operations
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	Update(token *models.RefreshToken) error
	Revoke(tokenID uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByUserID(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(duration time.Duration) (int64, error)
}
