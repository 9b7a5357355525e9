package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hearth/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPIN is the PIN every fixture household is created with.
const TestPIN = "1234"

// CreateTestHousehold creates a household whose PIN is TestPIN.
func CreateTestHousehold(t *testing.T, db *gorm.DB) *models.Household {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPIN), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash PIN: %v", err)
	}

	household := &models.Household{
		PINHash:  string(hash),
		Timezone: "UTC",
	}
	if err := db.Create(household).Error; err != nil {
		t.Fatalf("failed to create test household: %v", err)
	}
	return household
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, householdID string) *models.Category {
	t.Helper()

	category := &models.Category{
		HouseholdID: householdID,
		Name:        fmt.Sprintf("Test Category %d", nextID()),
		Color:       "#3366FF",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction with the given amount in cents.
func CreateTestTransaction(t *testing.T, db *gorm.DB, householdID, categoryID string, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		HouseholdID: householdID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Date:        date,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestBudget creates a budget for the category and month.
func CreateTestBudget(t *testing.T, db *gorm.DB, householdID, categoryID, month string, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		HouseholdID: householdID,
		CategoryID:  categoryID,
		Month:       month,
		Amount:      amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
