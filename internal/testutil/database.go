// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/leano777/subtracker-api/internal/models"
)

// SetupTestDB opens a shared in-memory SQLite database and migrates the full
// schema. Each test gets a fresh database once the previous connection is
// closed by TeardownTestDB.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.IncomeSource{},
		&models.BudgetPod{},
		&models.PaycheckAllocation{},
		&models.PodAllocation{},
		&models.FixedExpense{},
		&models.FinancialGoal{},
		&models.Subscription{},
		&models.PaymentCard{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the connection, dropping the in-memory database.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
