package repositories

import (
	"errors"
	"fmt"
	"strings"

	"stocktracker/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepositoryInterface {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new user in the database
func (r *UserRepository) Create(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	user := &models.User{ID: id}
	if err := r.db.First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by their email address
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// Update updates a user in the database
func (r *UserRepository) Update(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// UpdatePasswordHash atomically updates a user's password hash
func (r *UserRepository) UpdatePasswordHash(userID uuid.UUID, passwordHash string) error {
	if userID == uuid.Nil {
		return errors.New("user ID cannot be nil")
	}

	if passwordHash == "" {
		return errors.New("password hash cannot be empty")
	}

	result := r.db.Model(&models.User{ID: userID}).Update("password_hash", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("failed to update password hash: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateFailedLoginAttempts persists the lockout counters of a user
func (r *UserRepository) UpdateFailedLoginAttempts(user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	fields := map[string]interface{}{
		"failed_login_attempts": user.FailedLoginAttempts,
		"locked_at":             user.LockedAt,
		"last_login_at":         user.LastLoginAt,
	}

	if err := r.db.Model(&models.User{ID: user.ID}).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update login attempts: %w", err)
	}

	return nil
}

// CountAccountsByUserID counts the number of accounts for a user
func (r *UserRepository) CountAccountsByUserID(userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// isDuplicateKeyError detects unique-constraint violations from both the
// postgres driver and the sqlite test backend.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// unique_violation
		return pqErr.Code == "23505"
	}

	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint")
}
