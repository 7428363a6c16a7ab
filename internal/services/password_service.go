package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// BCryptCost balances hashing cost against login latency
	BCryptCost = 12

	MaxPasswordLength = 72 // Bcrypt algorithm limitation
)

var (
	ErrPasswordEmpty    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
)

// PasswordService handles password hashing and validation
type PasswordService struct {
	cost      int
	minLength int
}

// NewPasswordService creates a new password service
func NewPasswordService(minLength int) PasswordServiceInterface {
	return &PasswordService{
		cost:      BCryptCost,
		minLength: minLength,
	}
}

// ValidatePassword checks if a password meets the length requirements
func (ps *PasswordService) ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}

	if len(password) < ps.minLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooShort, ps.minLength)
	}

	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	return nil
}

// HashPassword validates and hashes a password using bcrypt
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword compares a plain password with a hashed password
// Returns true if they match, false otherwise
func (ps *PasswordService) ComparePassword(password, hash string) bool {
	// bcrypt.CompareHashAndPassword provides timing-attack resistance
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
