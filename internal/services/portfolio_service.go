package services

import (
	"fmt"
	"log/slog"
	"time"

	"stocktracker/internal/dto"
	"stocktracker/internal/models"
	"stocktracker/internal/repositories"

	"github.com/google/uuid"
)

// PortfolioService assembles the dashboard view: the owner's accounts with
// their holding counts, every holding across accounts, and the derived
// duplicate-symbol index. The index is rebuilt from scratch on every load and
// never persisted.
type PortfolioService struct {
	accountRepo repositories.AccountRepositoryInterface
	holdingRepo repositories.HoldingRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(
	accountRepo repositories.AccountRepositoryInterface,
	holdingRepo repositories.HoldingRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) PortfolioServiceInterface {
	return &PortfolioService{
		accountRepo: accountRepo,
		holdingRepo: holdingRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetDashboard loads everything the account list view needs in one shot
func (s *PortfolioService) GetDashboard(userID uuid.UUID) (*dto.DashboardResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidOwner
	}

	start := time.Now()

	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	holdings, err := s.holdingRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	// Per-account counts come from the already loaded holdings rather than
	// one count query per account
	countByAccount := make(map[uuid.UUID]int, len(accounts))
	for _, h := range holdings {
		countByAccount[h.AccountID]++
	}

	summaries := make([]dto.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		summaries = append(summaries, dto.AccountSummary{
			Account:      dto.NewAccountResponse(&account),
			HoldingCount: countByAccount[account.ID],
		})
	}

	index := models.BuildSymbolIndex(holdings)

	s.metrics.RecordProcessingTime("dashboard_load", time.Since(start))

	s.logger.Debug("dashboard assembled",
		"user_id", userID,
		"accounts", len(accounts),
		"holdings", len(holdings),
		"symbols", len(index))

	return &dto.DashboardResponse{
		Accounts:    summaries,
		Holdings:    dto.NewHoldingListResponse(holdings),
		SymbolIndex: index,
	}, nil
}
