package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/leano777/subtracker-api/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestIncomeSource creates a biweekly salary source with the given
// gross and net per-paycheck amounts (in cents).
func CreateTestIncomeSource(t *testing.T, db *gorm.DB, userID uint, gross, net int64) *models.IncomeSource {
	t.Helper()
	return CreateTestIncomeSourceWithFrequency(t, db, userID, gross, net, models.PayFrequencyBiweekly)
}

// CreateTestIncomeSourceWithFrequency creates an income source paying at the
// given frequency.
func CreateTestIncomeSourceWithFrequency(t *testing.T, db *gorm.DB, userID uint, gross, net int64, frequency models.PayFrequency) *models.IncomeSource {
	t.Helper()

	source := &models.IncomeSource{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Income %d", nextID()),
		Type:           models.IncomeTypeSalary,
		Frequency:      frequency,
		GrossAmount:    gross,
		NetAmount:      net,
		DeductionTaxes: gross - net,
		IsActive:       true,
	}
	if err := db.Create(source).Error; err != nil {
		t.Fatalf("failed to create test income source: %v", err)
	}
	return source
}

// CreateTestPod creates an active budget pod with the given monthly target (in cents).
func CreateTestPod(t *testing.T, db *gorm.DB, userID uint, monthlyAmount int64) *models.BudgetPod {
	t.Helper()

	pod := &models.BudgetPod{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Pod %d", nextID()),
		Category:      models.PodCategorySavings,
		MonthlyAmount: monthlyAmount,
		Priority:      3,
		IsActive:      true,
	}
	if err := db.Create(pod).Error; err != nil {
		t.Fatalf("failed to create test pod: %v", err)
	}
	return pod
}

// CreateTestPodWithBalance creates a pod holding the given balance (in cents).
func CreateTestPodWithBalance(t *testing.T, db *gorm.DB, userID uint, monthlyAmount, balance int64) *models.BudgetPod {
	t.Helper()

	pod := CreateTestPod(t, db, userID, monthlyAmount)
	if err := db.Model(pod).Update("current_amount", balance).Error; err != nil {
		t.Fatalf("failed to set test pod balance: %v", err)
	}
	pod.CurrentAmount = balance
	return pod
}

// CreateTestGoal creates an active goal with the given target (in cents) and deadline.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, targetAmount int64, deadline time.Time) *models.FinancialGoal {
	t.Helper()

	goal := &models.FinancialGoal{
		UserID:       userID,
		Title:        fmt.Sprintf("Test Goal %d", nextID()),
		Category:     models.GoalCategorySavings,
		TargetAmount: targetAmount,
		Deadline:     deadline,
		Priority:     3,
		Status:       models.GoalStatusInProgress,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestSubscription creates an active monthly subscription with the
// given amount (in cents).
func CreateTestSubscription(t *testing.T, db *gorm.DB, userID uint, amount int64) *models.Subscription {
	t.Helper()
	return CreateTestSubscriptionWithCycle(t, db, userID, amount, models.BillingCycleMonthly)
}

// CreateTestSubscriptionWithCycle creates an active subscription on the given
// billing cycle.
func CreateTestSubscriptionWithCycle(t *testing.T, db *gorm.DB, userID uint, amount int64, cycle models.BillingCycle) *models.Subscription {
	t.Helper()

	subscription := &models.Subscription{
		UserID:          userID,
		Name:            fmt.Sprintf("Test Subscription %d", nextID()),
		Amount:          amount,
		Currency:        "USD",
		BillingCycle:    cycle,
		NextBillingDate: time.Now().AddDate(0, 1, 0),
		Category:        "entertainment",
		Status:          models.SubscriptionStatusActive,
	}
	if err := db.Create(subscription).Error; err != nil {
		t.Fatalf("failed to create test subscription: %v", err)
	}
	return subscription
}

// CreateTestCard creates a payment card.
func CreateTestCard(t *testing.T, db *gorm.DB, userID uint) *models.PaymentCard {
	t.Helper()

	card := &models.PaymentCard{
		UserID:      userID,
		Nickname:    fmt.Sprintf("Test Card %d", nextID()),
		LastFour:    "4242",
		Brand:       models.CardBrandVisa,
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 2,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestAllocation creates an unprocessed allocation plan for the given
// income source with the given net amount (in cents) and no pod entries.
func CreateTestAllocation(t *testing.T, db *gorm.DB, userID, sourceID uint, gross, net int64) *models.PaycheckAllocation {
	t.Helper()

	allocation := &models.PaycheckAllocation{
		UserID:          userID,
		IncomeSourceID:  sourceID,
		PayDate:         time.Now(),
		GrossAmount:     gross,
		NetAmount:       net,
		RemainingAmount: net,
		Planned:         true,
	}
	if err := db.Create(allocation).Error; err != nil {
		t.Fatalf("failed to create test allocation: %v", err)
	}
	return allocation
}
