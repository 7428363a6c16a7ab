package database

import (
	"fmt"
	"testing"

	"stocktracker/internal/config"
	"stocktracker/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		DisplayName:  "Test User",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestAccount(t *testing.T, db *DB, user *models.User, name string) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:   name,
		UserID: user.ID,
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CreateTestHolding(t *testing.T, db *DB, account *models.Account, symbol string, quantity int64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		Symbol:    symbol,
		Name:      symbol + " Inc.",
		Quantity:  quantity,
		AccountID: account.ID,
		UserID:    account.UserID,
	}

	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}

	return holding
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"holdings",
		"accounts",
		"audit_logs",
		"blacklisted_tokens",
		"refresh_tokens",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
