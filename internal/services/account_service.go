package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stocktracker/internal/dto"
	"stocktracker/internal/models"
	"stocktracker/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountAccess    = errors.New("account does not belong to user")
	ErrAccountNameEmpty = errors.New("account name cannot be empty")
	ErrInvalidOwner     = errors.New("invalid account owner")
)

// AccountService handles brokerage account business logic. Accounts are
// append-only: there is no update or delete operation.
type AccountService struct {
	accountRepo repositories.AccountRepositoryInterface
	holdingRepo repositories.HoldingRepositoryInterface
	auditRepo   repositories.AuditLogRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	holdingRepo repositories.HoldingRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		holdingRepo: holdingRepo,
		auditRepo:   auditRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateAccount creates a brokerage account for the user
func (s *AccountService) CreateAccount(userID uuid.UUID, req *dto.CreateAccountRequest, ipAddress, userAgent string) (*models.Account, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidOwner
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrAccountNameEmpty
	}

	account := &models.Account{
		Name:   name,
		UserID: userID,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		"account_id", account.ID,
		"user_id", userID,
		"name", account.Name)

	s.auditAccountCreated(userID, account, ipAddress, userAgent)
	s.metrics.IncrementCounter("accounts_created", nil)

	return account, nil
}

// GetUserAccounts returns all accounts owned by the user
func (s *AccountService) GetUserAccounts(userID uuid.UUID) ([]models.Account, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidOwner
	}

	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user accounts: %w", err)
	}

	return accounts, nil
}

// GetAccountByID returns an account after checking ownership
func (s *AccountService) GetAccountByID(accountID, userID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account.UserID != userID {
		return nil, ErrAccountAccess
	}

	return account, nil
}

// GetAccountDetail returns an account the user owns together with the number
// of holdings recorded under it
func (s *AccountService) GetAccountDetail(accountID, userID uuid.UUID) (*models.Account, int64, error) {
	account, err := s.GetAccountByID(accountID, userID)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.holdingRepo.CountByAccountID(accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count holdings: %w", err)
	}

	return account, count, nil
}

func (s *AccountService) auditAccountCreated(userID uuid.UUID, account *models.Account, ipAddress, userAgent string) {
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionAccountCreated,
		Resource:   "account",
		ResourceID: account.ID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata: map[string]interface{}{
			"name": account.Name,
		},
	}

	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Error("failed to create audit log",
			"error", err,
			"action", log.Action,
			"resource_id", log.ResourceID)
	}
}
