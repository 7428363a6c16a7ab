package services

import (
	"fmt"
	"log/slog"

	"stocktracker/internal/dto"
	"stocktracker/internal/models"
	"stocktracker/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Common tickers so seeded data produces cross-account duplicates
var seedSymbols = []string{
	"AAPL", "MSFT", "GOOG", "AMZN", "NVDA", "META", "TSLA", "BRK.B",
	"JPM", "V", "JNJ", "WMT", "PG", "DIS", "NFLX", "AMD",
}

// SeedService creates demo accounts and holdings for a user. Only wired up
// outside production.
type SeedService struct {
	accountRepo repositories.AccountRepositoryInterface
	holdingRepo repositories.HoldingRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewSeedService creates a new seed service
func NewSeedService(
	accountRepo repositories.AccountRepositoryInterface,
	holdingRepo repositories.HoldingRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) SeedServiceInterface {
	return &SeedService{
		accountRepo: accountRepo,
		holdingRepo: holdingRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// SeedDemoData creates accountCount accounts for the user, each holding
// holdingsPerAccount randomly picked symbols
func (s *SeedService) SeedDemoData(userID uuid.UUID, accountCount, holdingsPerAccount int) (*dto.SeedResult, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidOwner
	}

	if accountCount <= 0 {
		accountCount = 2
	}
	if holdingsPerAccount <= 0 {
		holdingsPerAccount = 5
	}

	result := &dto.SeedResult{}

	for i := 0; i < accountCount; i++ {
		account := &models.Account{
			Name:   fmt.Sprintf("%s %s", gofakeit.Company(), gofakeit.RandomString([]string{"Brokerage", "IRA", "Roth IRA", "401k"})),
			UserID: userID,
		}

		if err := s.accountRepo.Create(account); err != nil {
			return result, fmt.Errorf("failed to seed account: %w", err)
		}
		result.AccountsCreated++
		s.metrics.IncrementCounter("seeded_records", map[string]string{"kind": "account"})

		for j := 0; j < holdingsPerAccount; j++ {
			symbol := seedSymbols[gofakeit.Number(0, len(seedSymbols)-1)]
			holding := &models.Holding{
				Symbol:    symbol,
				Name:      gofakeit.Company(),
				Quantity:  int64(gofakeit.Number(1, 500)),
				AccountID: account.ID,
				UserID:    userID,
			}

			if err := s.holdingRepo.Create(holding); err != nil {
				return result, fmt.Errorf("failed to seed holding: %w", err)
			}
			result.HoldingsCreated++
			s.metrics.IncrementCounter("seeded_records", map[string]string{"kind": "holding"})
		}
	}

	s.logger.Info("demo data seeded",
		"user_id", userID,
		"accounts", result.AccountsCreated,
		"holdings", result.HoldingsCreated)

	return result, nil
}
