package services

import (
	"log/slog"
	"testing"
	"time"

	"stocktracker/internal/dto"
	"stocktracker/internal/models"
	"stocktracker/internal/repositories"
	"stocktracker/internal/repositories/repository_mocks"
	"stocktracker/internal/services/service_mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	userRepo             *repository_mocks.MockUserRepositoryInterface
	refreshTokenRepo     *repository_mocks.MockRefreshTokenRepositoryInterface
	auditRepo            *repository_mocks.MockAuditLogRepositoryInterface
	blacklistedTokenRepo *repository_mocks.MockBlacklistedTokenRepositoryInterface
	passwordService      *service_mocks.MockPasswordServiceInterface
	tokenService         *service_mocks.MockTokenServiceInterface
	metrics              *service_mocks.MockMetricsRecorderInterface
	authService          AuthServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.refreshTokenRepo = repository_mocks.NewMockRefreshTokenRepositoryInterface(s.ctrl)
	s.auditRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.blacklistedTokenRepo = repository_mocks.NewMockBlacklistedTokenRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.authService = NewAuthService(s.userRepo, s.refreshTokenRepo, s.auditRepo, s.blacklistedTokenRepo, s.passwordService, s.tokenService, s.metrics, slog.Default())
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegister_SuccessfulRegistration() {
	req := &dto.RegisterRequest{
		Email:       "new@example.com",
		Password:    "SecurePass123!",
		DisplayName: "New User",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed_password", nil).Times(1)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.metrics.EXPECT().IncrementCounter("authentication_event", map[string]string{"event_type": "register"}).Times(1)

	user, err := s.authService.Register(req, "192.168.1.1", "Mozilla/5.0")

	s.NoError(err)
	s.NotNil(user)
	s.Equal(req.Email, user.Email)
	s.Equal(req.DisplayName, user.DisplayName)
	s.Equal("hashed_password", user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestRegister_UserAlreadyExists() {
	req := &dto.RegisterRequest{
		Email:    "existing@example.com",
		Password: "SecurePass123!",
	}

	existingUser := &models.User{Email: req.Email}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(existingUser, nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	user, err := s.authService.Register(req, "192.168.1.1", "Mozilla/5.0")
	s.Equal(ErrUserAlreadyExists, err)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestRegister_HashFailure() {
	req := &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "SecurePass123!",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("", ErrPasswordTooShort).Times(1)

	user, err := s.authService.Register(req, "192.168.1.1", "Mozilla/5.0")
	s.Error(err)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestLogin_Successful() {
	userID := uuid.New()
	user := &models.User{
		ID:           userID,
		Email:        "user@example.com",
		PasswordHash: "hashed_password",
	}

	req := &dto.LoginRequest{Email: user.Email, Password: "SecurePass123!"}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword(req.Password, user.PasswordHash).Return(true).Times(1)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil).Times(1)
	s.tokenService.EXPECT().GenerateAccessToken(user).Return("access-token", time.Now().Add(time.Hour), nil).Times(1)
	s.tokenService.EXPECT().GenerateRefreshToken(userID).Return("refresh-token", time.Now().Add(24*time.Hour), nil).Times(1)
	s.refreshTokenRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.metrics.EXPECT().IncrementCounter("authentication_event", map[string]string{"event_type": "login"}).Times(1)

	tokens, err := s.authService.Login(req, "192.168.1.1", "Mozilla/5.0")

	s.NoError(err)
	s.NotNil(tokens)
	s.Equal("access-token", tokens.AccessToken)
	s.Equal("refresh-token", tokens.RefreshToken)
	s.Equal("Bearer", tokens.TokenType)
	s.NotNil(user.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	req := &dto.LoginRequest{Email: "missing@example.com", Password: "whatever"}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.Login(req, "192.168.1.1", "Mozilla/5.0")
	s.Equal(ErrInvalidCredentials, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "hashed_password",
	}

	req := &dto.LoginRequest{Email: user.Email, Password: "wrong"}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword(req.Password, user.PasswordHash).Return(false).Times(1)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.Login(req, "192.168.1.1", "Mozilla/5.0")
	s.Equal(ErrInvalidCredentials, err)
	s.Nil(tokens)
	s.Equal(1, user.FailedLoginAttempts)
}

func (s *AuthServiceTestSuite) TestLogin_LocksAfterMaxFailedAttempts() {
	user := &models.User{
		ID:                  uuid.New(),
		Email:               "user@example.com",
		PasswordHash:        "hashed_password",
		FailedLoginAttempts: models.MaxFailedLoginAttempts - 1,
	}

	req := &dto.LoginRequest{Email: user.Email, Password: "wrong"}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword(req.Password, user.PasswordHash).Return(false).Times(1)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil).Times(1)
	// Lockout audit plus failed login audit.
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(2)

	tokens, err := s.authService.Login(req, "192.168.1.1", "Mozilla/5.0")
	s.Equal(ErrInvalidCredentials, err)
	s.Nil(tokens)
	s.True(user.IsLocked())
}

func (s *AuthServiceTestSuite) TestLogin_LockedAccount() {
	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "hashed_password",
		LockedAt:     &now,
	}

	req := &dto.LoginRequest{Email: user.Email, Password: "SecurePass123!"}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(user, nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.Login(req, "192.168.1.1", "Mozilla/5.0")
	s.Equal(ErrAccountLocked, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_Successful() {
	userID := uuid.New()
	user := &models.User{ID: userID, Email: "user@example.com"}
	refreshToken := "valid-refresh-token"

	claims := &models.CustomClaims{
		UserID:    userID.String(),
		TokenType: TokenTypeRefresh,
	}

	storedToken := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	s.tokenService.EXPECT().ValidateRefreshToken(refreshToken).Return(claims, nil).Times(1)
	s.refreshTokenRepo.EXPECT().GetByTokenHash(gomock.Any()).Return(storedToken, nil).Times(1)
	s.userRepo.EXPECT().GetByID(userID).Return(user, nil).Times(1)
	s.refreshTokenRepo.EXPECT().Update(storedToken).Return(nil).Times(1)
	s.tokenService.EXPECT().GenerateAccessToken(user).Return("new-access", time.Now().Add(time.Hour), nil).Times(1)
	s.tokenService.EXPECT().GenerateRefreshToken(userID).Return("new-refresh", time.Now().Add(24*time.Hour), nil).Times(1)
	s.refreshTokenRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.metrics.EXPECT().IncrementCounter("authentication_event", map[string]string{"event_type": "token_refresh"}).Times(1)

	tokens, err := s.authService.RefreshTokens(refreshToken, "192.168.1.1", "Mozilla/5.0")

	s.NoError(err)
	s.Equal("new-access", tokens.AccessToken)
	s.Equal("new-refresh", tokens.RefreshToken)
	// The old token is rotated out.
	s.True(storedToken.IsRevoked())
}

func (s *AuthServiceTestSuite) TestRefreshTokens_InvalidToken() {
	s.tokenService.EXPECT().ValidateRefreshToken("garbage").Return(nil, ErrInvalidToken).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.RefreshTokens("garbage", "192.168.1.1", "Mozilla/5.0")
	s.Equal(ErrInvalidRefreshToken, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_RevokedToken() {
	userID := uuid.New()
	claims := &models.CustomClaims{
		UserID:    userID.String(),
		TokenType: TokenTypeRefresh,
	}

	revokedAt := time.Now()
	storedToken := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		RevokedAt: &revokedAt,
	}

	s.tokenService.EXPECT().ValidateRefreshToken("rotated").Return(claims, nil).Times(1)
	s.refreshTokenRepo.EXPECT().GetByTokenHash(gomock.Any()).Return(storedToken, nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.RefreshTokens("rotated", "192.168.1.1", "Mozilla/5.0")
	s.Equal(ErrInvalidRefreshToken, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogout_Successful() {
	userID := uuid.New()
	claims := &models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "jti-123"},
		UserID:           userID.String(),
		TokenType:        TokenTypeAccess,
	}

	s.tokenService.EXPECT().ValidateAccessToken("access-token").Return(claims, nil).Times(1)
	s.tokenService.EXPECT().GetTokenExpiry("access-token").Return(time.Now().Add(time.Hour), nil).Times(1)
	s.blacklistedTokenRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.refreshTokenRepo.EXPECT().RevokeAllForUser(userID).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.metrics.EXPECT().IncrementCounter("authentication_event", map[string]string{"event_type": "logout"}).Times(1)

	err := s.authService.Logout("access-token", "192.168.1.1", "Mozilla/5.0")
	s.NoError(err)
}

func (s *AuthServiceTestSuite) TestLogout_ExpiredTokenStillBlacklisted() {
	s.tokenService.EXPECT().ValidateAccessToken("expired-token").Return(nil, ErrExpiredToken).Times(1)
	s.tokenService.EXPECT().GetJTI("expired-token").Return("jti-456", nil).Times(1)
	s.blacklistedTokenRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	err := s.authService.Logout("expired-token", "192.168.1.1", "Mozilla/5.0")
	s.NoError(err)
}
