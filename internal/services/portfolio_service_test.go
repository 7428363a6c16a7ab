package services

import (
	"errors"
	"log/slog"
	"testing"

	"stocktracker/internal/models"
	"stocktracker/internal/repositories/repository_mocks"
	"stocktracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// PortfolioServiceSuite defines the test suite for PortfolioService
type PortfolioServiceSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	accountRepo      *repository_mocks.MockAccountRepositoryInterface
	holdingRepo      *repository_mocks.MockHoldingRepositoryInterface
	metrics          *service_mocks.MockMetricsRecorderInterface
	portfolioService PortfolioServiceInterface
	userID           uuid.UUID
}

func (s *PortfolioServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.holdingRepo = repository_mocks.NewMockHoldingRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.portfolioService = NewPortfolioService(s.accountRepo, s.holdingRepo, s.metrics, slog.Default())
	s.userID = uuid.New()
}

func (s *PortfolioServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestPortfolioServiceSuite(t *testing.T) {
	suite.Run(t, new(PortfolioServiceSuite))
}

func (s *PortfolioServiceSuite) TestGetDashboard() {
	brokerage := models.Account{ID: uuid.New(), Name: "Brokerage", UserID: s.userID}
	ira := models.Account{ID: uuid.New(), Name: "IRA", UserID: s.userID}

	holdings := []models.Holding{
		{ID: uuid.New(), Symbol: "AAPL", Quantity: 10, AccountID: brokerage.ID, UserID: s.userID},
		{ID: uuid.New(), Symbol: "AAPL", Quantity: 4, AccountID: ira.ID, UserID: s.userID},
		{ID: uuid.New(), Symbol: "MSFT", Quantity: 7, AccountID: brokerage.ID, UserID: s.userID},
	}

	s.accountRepo.EXPECT().GetByUserID(s.userID).Return([]models.Account{brokerage, ira}, nil).Times(1)
	s.holdingRepo.EXPECT().GetByUserID(s.userID).Return(holdings, nil).Times(1)
	s.metrics.EXPECT().RecordProcessingTime("dashboard_load", gomock.Any()).Times(1)

	dashboard, err := s.portfolioService.GetDashboard(s.userID)

	s.NoError(err)
	s.Require().Len(dashboard.Accounts, 2)
	s.Equal(brokerage.ID, dashboard.Accounts[0].Account.ID)
	s.Equal(2, dashboard.Accounts[0].HoldingCount)
	s.Equal(1, dashboard.Accounts[1].HoldingCount)
	s.Len(dashboard.Holdings, 3)

	// AAPL shows up under two accounts, MSFT under one.
	s.True(dashboard.SymbolIndex.IsDuplicate("AAPL"))
	s.False(dashboard.SymbolIndex.IsDuplicate("MSFT"))
}

func (s *PortfolioServiceSuite) TestGetDashboard_EmptyPortfolio() {
	s.accountRepo.EXPECT().GetByUserID(s.userID).Return(nil, nil).Times(1)
	s.holdingRepo.EXPECT().GetByUserID(s.userID).Return(nil, nil).Times(1)
	s.metrics.EXPECT().RecordProcessingTime("dashboard_load", gomock.Any()).Times(1)

	dashboard, err := s.portfolioService.GetDashboard(s.userID)

	s.NoError(err)
	s.Empty(dashboard.Accounts)
	s.Empty(dashboard.Holdings)
	s.Empty(dashboard.SymbolIndex)
}

func (s *PortfolioServiceSuite) TestGetDashboard_AccountWithoutHoldings() {
	empty := models.Account{ID: uuid.New(), Name: "Empty", UserID: s.userID}

	s.accountRepo.EXPECT().GetByUserID(s.userID).Return([]models.Account{empty}, nil).Times(1)
	s.holdingRepo.EXPECT().GetByUserID(s.userID).Return(nil, nil).Times(1)
	s.metrics.EXPECT().RecordProcessingTime("dashboard_load", gomock.Any()).Times(1)

	dashboard, err := s.portfolioService.GetDashboard(s.userID)

	s.NoError(err)
	s.Require().Len(dashboard.Accounts, 1)
	s.Equal(0, dashboard.Accounts[0].HoldingCount)
}

func (s *PortfolioServiceSuite) TestGetDashboard_NilOwner() {
	dashboard, err := s.portfolioService.GetDashboard(uuid.Nil)
	s.ErrorIs(err, ErrInvalidOwner)
	s.Nil(dashboard)
}

func (s *PortfolioServiceSuite) TestGetDashboard_AccountRepoError() {
	s.accountRepo.EXPECT().GetByUserID(s.userID).Return(nil, errors.New("db down")).Times(1)

	dashboard, err := s.portfolioService.GetDashboard(s.userID)
	s.Error(err)
	s.Nil(dashboard)
}
