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
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidSymbol   = errors.New("symbol cannot be empty")
)

// HoldingService handles stock holding business logic. A holding always
// belongs to an account of the same owner; the cross-check happens here, not
// in the repository.
type HoldingService struct {
	holdingRepo repositories.HoldingRepositoryInterface
	accountRepo repositories.AccountRepositoryInterface
	auditRepo   repositories.AuditLogRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewHoldingService creates a new holding service
func NewHoldingService(
	holdingRepo repositories.HoldingRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) HoldingServiceInterface {
	return &HoldingService{
		holdingRepo: holdingRepo,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// AddHolding records a stock holding under an account the user owns
func (s *HoldingService) AddHolding(userID, accountID uuid.UUID, req *dto.AddHoldingRequest, ipAddress, userAgent string) (*models.Holding, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidOwner
	}

	owned, err := s.accountRepo.ExistsForUser(accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check account ownership: %w", err)
	}
	if !owned {
		// Hide existence of other users' accounts behind the same error
		if _, err := s.accountRepo.GetByID(accountID); errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, ErrAccountAccess
	}

	symbol := NormalizeSymbol(req.Symbol)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}

	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	holding := &models.Holding{
		Symbol:    symbol,
		Name:      strings.TrimSpace(req.Name),
		Quantity:  req.Quantity,
		AccountID: accountID,
		UserID:    userID,
		IsMarked:  false,
	}

	if err := s.holdingRepo.Create(holding); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	s.logger.Info("holding added",
		"holding_id", holding.ID,
		"account_id", accountID,
		"user_id", userID,
		"symbol", holding.Symbol,
		"quantity", holding.Quantity)

	s.auditHoldingAdded(userID, holding, ipAddress, userAgent)
	s.metrics.IncrementCounter("holdings_added", map[string]string{"symbol": holding.Symbol})

	return holding, nil
}

// GetAccountHoldings returns the holdings of an account the user owns
func (s *HoldingService) GetAccountHoldings(userID, accountID uuid.UUID) ([]models.Holding, error) {
	owned, err := s.accountRepo.ExistsForUser(accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check account ownership: %w", err)
	}
	if !owned {
		if _, err := s.accountRepo.GetByID(accountID); errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, ErrAccountAccess
	}

	holdings, err := s.holdingRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	return holdings, nil
}

// SetMarked flips the mark flag on every holding the user has for a symbol,
// across all of their accounts at once. Marking a symbol in one account marks
// it everywhere the user holds it. Returns how many holdings changed; a
// symbol the user does not hold yields zero with no error.
func (s *HoldingService) SetMarked(userID uuid.UUID, req *dto.SetMarksRequest, ipAddress, userAgent string) (int64, error) {
	if userID == uuid.Nil {
		return 0, ErrInvalidOwner
	}

	symbol := NormalizeSymbol(req.Symbol)
	if symbol == "" {
		return 0, ErrInvalidSymbol
	}

	isMarked := req.IsMarked != nil && *req.IsMarked

	updated, err := s.holdingRepo.SetMarkedBySymbol(userID, symbol, isMarked)
	if err != nil {
		return 0, fmt.Errorf("failed to set marks: %w", err)
	}

	s.logger.Info("marks toggled",
		"user_id", userID,
		"symbol", symbol,
		"is_marked", isMarked,
		"updated", updated)

	s.auditMarksToggled(userID, symbol, isMarked, updated, ipAddress, userAgent)
	s.metrics.IncrementCounter("marks_toggled", map[string]string{"symbol": symbol})

	return updated, nil
}

// NormalizeSymbol canonicalizes ticker symbols so that mark toggles match
// holdings regardless of input casing. Handlers echoing a symbol back use
// the same form the database stores.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (s *HoldingService) auditHoldingAdded(userID uuid.UUID, holding *models.Holding, ipAddress, userAgent string) {
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionHoldingAdded,
		Resource:   "holding",
		ResourceID: holding.ID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata: map[string]interface{}{
			"symbol":     holding.Symbol,
			"quantity":   holding.Quantity,
			"account_id": holding.AccountID.String(),
		},
	}

	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Error("failed to create audit log",
			"error", err,
			"action", log.Action,
			"resource_id", log.ResourceID)
	}
}

func (s *HoldingService) auditMarksToggled(userID uuid.UUID, symbol string, isMarked bool, updated int64, ipAddress, userAgent string) {
	log := &models.AuditLog{
		UserID:    &userID,
		Action:    models.AuditActionMarksToggled,
		Resource:  "holding",
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Metadata: map[string]interface{}{
			"symbol":    symbol,
			"is_marked": isMarked,
			"updated":   updated,
		},
	}

	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Error("failed to create audit log",
			"error", err,
			"action", log.Action,
			"symbol", symbol)
	}
}
