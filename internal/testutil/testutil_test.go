package testutil_test

import (
	"testing"
	"time"

	"github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "income_sources", "budget_pods", "paycheck_allocations", "pod_allocations", "fixed_expenses", "financial_goals", "subscriptions", "payment_cards", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	source := testutil.CreateTestIncomeSource(t, db, user.ID, 250000, 180000)
	if source.NetAmount != 180000 {
		t.Errorf("expected net amount 180000, got %d", source.NetAmount)
	}
	if source.Frequency != models.PayFrequencyBiweekly {
		t.Errorf("expected biweekly frequency, got %s", source.Frequency)
	}

	pod := testutil.CreateTestPodWithBalance(t, db, user.ID, 50000, 12500)
	if pod.CurrentAmount != 12500 {
		t.Errorf("expected pod balance 12500, got %d", pod.CurrentAmount)
	}

	goal := testutil.CreateTestGoal(t, db, user.ID, 100000, time.Now().AddDate(0, 6, 0))
	if goal.Status != models.GoalStatusInProgress {
		t.Errorf("expected in-progress goal, got %s", goal.Status)
	}

	sub := testutil.CreateTestSubscription(t, db, user.ID, 1599)
	if sub.BillingCycle != models.BillingCycleMonthly {
		t.Errorf("expected monthly billing cycle, got %s", sub.BillingCycle)
	}

	card := testutil.CreateTestCard(t, db, user.ID)
	if card.LastFour != "4242" {
		t.Errorf("expected last four 4242, got %s", card.LastFour)
	}

	allocation := testutil.CreateTestAllocation(t, db, user.ID, source.ID, 250000, 180000)
	if allocation.RemainingAmount != 180000 {
		t.Errorf("expected remaining 180000, got %d", allocation.RemainingAmount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrPodNotFound, "custom message")
	testutil.AssertAppError(t, err, "POD_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
