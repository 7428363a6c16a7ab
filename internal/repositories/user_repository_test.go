package repositories

import (
	"testing"
	"time"

	"stocktracker/internal/database"
	"stocktracker/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// UserRepositorySuite defines the test suite for UserRepository
type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

// SetupTest runs before each test in the suite
func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

// TearDownTest runs after each test in the suite
func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestUserRepositorySuite runs the test suite
func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) TestCreate() {
	user := &models.User{
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		DisplayName:  "Test User",
	}

	err := s.repo.Create(user)
	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
}

func (s *UserRepositorySuite) TestCreate_Nil() {
	err := s.repo.Create(nil)
	s.Error(err)
}

func (s *UserRepositorySuite) TestCreate_DuplicateEmail() {
	first := &models.User{Email: "test@example.com", PasswordHash: "hash"}
	s.NoError(s.repo.Create(first))

	second := &models.User{Email: "test@example.com", PasswordHash: "hash"}
	err := s.repo.Create(second)
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *UserRepositorySuite) TestGetByID() {
	created := database.CreateTestUser(s.T(), s.db, "test@example.com")

	user, err := s.repo.GetByID(created.ID)
	s.NoError(err)
	s.Equal(created.ID, user.ID)
	s.Equal("test@example.com", user.Email)
}

func (s *UserRepositorySuite) TestGetByID_NotFound() {
	user, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
	s.Nil(user)
}

func (s *UserRepositorySuite) TestGetByEmail() {
	created := database.CreateTestUser(s.T(), s.db, "test@example.com")

	user, err := s.repo.GetByEmail("test@example.com")
	s.NoError(err)
	s.Equal(created.ID, user.ID)
}

func (s *UserRepositorySuite) TestGetByEmail_NotFound() {
	user, err := s.repo.GetByEmail("missing@example.com")
	s.ErrorIs(err, ErrUserNotFound)
	s.Nil(user)
}

func (s *UserRepositorySuite) TestUpdate() {
	user := database.CreateTestUser(s.T(), s.db, "test@example.com")

	user.DisplayName = "Renamed"
	err := s.repo.Update(user)
	s.NoError(err)

	reloaded, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("Renamed", reloaded.DisplayName)
}

func (s *UserRepositorySuite) TestUpdatePasswordHash() {
	user := database.CreateTestUser(s.T(), s.db, "test@example.com")

	err := s.repo.UpdatePasswordHash(user.ID, "new_hash")
	s.NoError(err)

	reloaded, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("new_hash", reloaded.PasswordHash)
}

func (s *UserRepositorySuite) TestUpdatePasswordHash_UnknownUser() {
	err := s.repo.UpdatePasswordHash(uuid.New(), "new_hash")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestUpdateFailedLoginAttempts() {
	user := database.CreateTestUser(s.T(), s.db, "test@example.com")

	now := time.Now()
	user.FailedLoginAttempts = 3
	user.LockedAt = &now

	err := s.repo.UpdateFailedLoginAttempts(user)
	s.NoError(err)

	reloaded, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(3, reloaded.FailedLoginAttempts)
	s.NotNil(reloaded.LockedAt)
}

func (s *UserRepositorySuite) TestUpdateFailedLoginAttempts_PersistsLastLogin() {
	user := database.CreateTestUser(s.T(), s.db, "test@example.com")

	user.UpdateLastLogin()
	user.ResetFailedAttempts()

	err := s.repo.UpdateFailedLoginAttempts(user)
	s.NoError(err)

	reloaded, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.NotNil(reloaded.LastLoginAt)
	s.Equal(0, reloaded.FailedLoginAttempts)
}

func (s *UserRepositorySuite) TestCountAccountsByUserID() {
	user := database.CreateTestUser(s.T(), s.db, "test@example.com")
	database.CreateTestAccount(s.T(), s.db, user, "Brokerage")
	database.CreateTestAccount(s.T(), s.db, user, "IRA")

	count, err := s.repo.CountAccountsByUserID(user.ID)
	s.NoError(err)
	s.Equal(int64(2), count)
}
