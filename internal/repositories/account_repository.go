package repositories

import (
	"errors"
	"fmt"

	"stocktracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new brokerage account
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	account := &models.Account{ID: id}
	if err := r.db.First(account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetByUserID retrieves all accounts owned by a user. The store makes no
// ordering promise; created_at ordering keeps the list stable for the UI.
func (r *accountRepository) GetByUserID(userID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for user: %w", err)
	}
	return accounts, nil
}

// ExistsForUser checks that an account exists and is owned by the user
func (r *accountRepository) ExistsForUser(accountID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("id = ? AND user_id = ?", accountID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check account ownership: %w", err)
	}
	return count > 0, nil
}
