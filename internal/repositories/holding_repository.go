package repositories

import (
	"errors"
	"fmt"

	"stocktracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrHoldingNotFound = errors.New("holding not found")
)

// holdingRepository implements HoldingRepositoryInterface
type holdingRepository struct {
	db *gorm.DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *gorm.DB) HoldingRepositoryInterface {
	return &holdingRepository{
		db: db,
	}
}

// Create creates a new holding record
func (r *holdingRepository) Create(holding *models.Holding) error {
	if err := r.db.Create(holding).Error; err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}
	return nil
}

// GetByID retrieves a holding by ID
func (r *holdingRepository) GetByID(id uuid.UUID) (*models.Holding, error) {
	holding := &models.Holding{ID: id}
	if err := r.db.First(holding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHoldingNotFound
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return holding, nil
}

// GetByAccountID retrieves all holdings recorded under an account
func (r *holdingRepository) GetByAccountID(accountID uuid.UUID) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := r.db.Where("account_id = ?", accountID).Order("added_at ASC").Find(&holdings).Error; err != nil {
		return nil, fmt.Errorf("failed to get holdings for account: %w", err)
	}
	return holdings, nil
}

// GetByUserID retrieves all holdings owned by a user across accounts
func (r *holdingRepository) GetByUserID(userID uuid.UUID) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := r.db.Where("user_id = ?", userID).Order("added_at ASC").Find(&holdings).Error; err != nil {
		return nil, fmt.Errorf("failed to get holdings for user: %w", err)
	}
	return holdings, nil
}

// CountByAccountID counts holdings recorded under an account
func (r *holdingRepository) CountByAccountID(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Holding{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count holdings: %w", err)
	}
	return count, nil
}

// SetMarkedBySymbol flips the mark flag on every holding the user has for a
// symbol, across all of their accounts. The write is a single UPDATE inside a
// transaction, so all matching rows change together or not at all. Returns the
// number of rows updated; an unknown symbol yields zero with no error.
func (r *holdingRepository) SetMarkedBySymbol(userID uuid.UUID, symbol string, isMarked bool) (int64, error) {
	var updated int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Holding{}).
			Where("user_id = ? AND symbol = ?", userID, symbol).
			Update("is_marked", isMarked)
		if result.Error != nil {
			return fmt.Errorf("failed to update marks: %w", result.Error)
		}
		updated = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
