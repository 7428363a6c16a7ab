package services

import (
	"time"

	"stocktracker/internal/dto"
	"stocktracker/internal/models"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Logout(accessToken, ipAddress, userAgent string) error
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// AccountServiceInterface defines brokerage account business operations
type AccountServiceInterface interface {
	CreateAccount(userID uuid.UUID, req *dto.CreateAccountRequest, ipAddress, userAgent string) (*models.Account, error)
	GetUserAccounts(userID uuid.UUID) ([]models.Account, error)
	GetAccountByID(accountID, userID uuid.UUID) (*models.Account, error)
	GetAccountDetail(accountID, userID uuid.UUID) (*models.Account, int64, error)
}

// HoldingServiceInterface defines stock holding business operations
type HoldingServiceInterface interface {
	AddHolding(userID, accountID uuid.UUID, req *dto.AddHoldingRequest, ipAddress, userAgent string) (*models.Holding, error)
	GetAccountHoldings(userID, accountID uuid.UUID) ([]models.Holding, error)
	SetMarked(userID uuid.UUID, req *dto.SetMarksRequest, ipAddress, userAgent string) (int64, error)
}

// PortfolioServiceInterface aggregates the owner's accounts and holdings
// into the dashboard view
type PortfolioServiceInterface interface {
	GetDashboard(userID uuid.UUID) (*dto.DashboardResponse, error)
}

// SeedServiceInterface generates demo data for non-production environments
type SeedServiceInterface interface {
	SeedDemoData(userID uuid.UUID, accountCount, holdingsPerAccount int) (*dto.SeedResult, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
