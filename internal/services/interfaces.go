package services

import (
	"time"

	"github.com/leano777/subtracker-api/internal/finance"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// IncomeSourceInput carries the user-editable fields of an income source.
type IncomeSourceInput struct {
	Name                string
	Type                models.IncomeType
	Frequency           models.PayFrequency
	GrossAmount         int64
	NetAmount           int64
	DeductionTaxes      int64
	DeductionBenefits   int64
	DeductionRetirement int64
	DeductionOther      int64
	PayDates            []time.Time
}

// IncomeServicer defines the contract for income-source business logic.
type IncomeServicer interface {
	CreateIncomeSource(userID uint, input IncomeSourceInput) (*models.IncomeSource, error)
	GetUserIncomeSources(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.IncomeSource], error)
	GetIncomeSourceByID(userID, sourceID uint) (*models.IncomeSource, error)
	UpdateIncomeSource(userID, sourceID uint, input IncomeSourceInput) (*models.IncomeSource, error)
	DeactivateIncomeSource(userID, sourceID uint) error
	DeleteIncomeSource(userID, sourceID uint) error
	GetIncomeSummary(userID uint) (*finance.IncomeSummary, error)
}

// PodFunding describes one pod's balance against its target ceiling.
type PodFunding struct {
	PodID         uint    `json:"pod_id"`
	Name          string  `json:"name"`
	CurrentAmount int64   `json:"current_amount"`
	MonthlyAmount int64   `json:"monthly_amount"`
	TargetAmount  *int64  `json:"target_amount,omitempty"`
	FundedPercent float64 `json:"funded_percent"`
}

// PodSummary aggregates a user's active pods.
type PodSummary struct {
	TotalBalance        int64        `json:"total_balance"`
	TotalMonthlyTargets int64        `json:"total_monthly_targets"`
	ActivePods          int          `json:"active_pods"`
	Pods                []PodFunding `json:"pods"`
}

// PodServicer defines the contract for budget-pod business logic.
type PodServicer interface {
	CreatePod(userID uint, name string, category models.PodCategory, monthlyAmount int64, targetAmount *int64, priority int, autoTransfer, rolloverUnused bool, color string) (*models.BudgetPod, error)
	GetUserPods(userID uint, page pagination.PageRequest, isActive *bool, category *models.PodCategory) (*pagination.PageResponse[models.BudgetPod], error)
	GetPodByID(userID, podID uint) (*models.BudgetPod, error)
	UpdatePod(userID, podID uint, name string, monthlyAmount, targetAmount *int64, priority *int, autoTransfer, rolloverUnused *bool, color string) (*models.BudgetPod, error)
	DeletePod(userID, podID uint) error
	Contribute(userID, podID uint, amount int64) (*models.BudgetPod, error)
	Withdraw(userID, podID uint, amount int64) (*models.BudgetPod, error)
	GetPodSummary(userID uint) (*PodSummary, error)
}

// ManualEntry is one {pod, amount} pair supplied by the caller.
type ManualEntry struct {
	PodID  uint
	Amount int64
}

// ExpenseInput is a named fixed expense on an allocation.
type ExpenseInput struct {
	Name   string
	Amount int64
}

// AllocationInput carries the fields needed to create a paycheck allocation.
// Gross and net amounts fall back to the income source's when zero.
type AllocationInput struct {
	IncomeSourceID uint
	PayDate        time.Time
	GrossAmount    int64
	NetAmount      int64
	FixedExpenses  []ExpenseInput
	Entries        []ManualEntry
	AutoAllocate   bool
}

// AllocationServicer defines the contract for paycheck-allocation business logic.
type AllocationServicer interface {
	CreateAllocation(userID uint, input AllocationInput) (*models.PaycheckAllocation, error)
	GetUserAllocations(userID uint, page pagination.PageRequest, processed *bool) (*pagination.PageResponse[models.PaycheckAllocation], error)
	GetAllocationByID(userID, allocationID uint) (*models.PaycheckAllocation, error)
	SetPodAmount(userID, allocationID, podID uint, amount int64) (*models.PaycheckAllocation, error)
	AutoAllocate(userID, allocationID uint) (*models.PaycheckAllocation, error)
	ProcessAllocation(userID, allocationID uint) (*models.PaycheckAllocation, error)
	DeleteAllocation(userID, allocationID uint) error
}

// GoalServicer defines the contract for financial-goal business logic.
type GoalServicer interface {
	CreateGoal(userID uint, title string, category models.GoalCategory, targetAmount int64, deadline time.Time, priority int, monthlyContribution *int64) (*models.FinancialGoal, error)
	GetUserGoals(userID uint, page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.FinancialGoal], error)
	GetGoalByID(userID, goalID uint) (*models.FinancialGoal, error)
	UpdateGoal(userID, goalID uint, title string, targetAmount *int64, deadline *time.Time, priority *int, status *models.GoalStatus, monthlyContribution *int64) (*models.FinancialGoal, error)
	DeleteGoal(userID, goalID uint) error
	AddContribution(userID, goalID uint, amount int64) (*models.FinancialGoal, error)
	GetGoalProgress(userID, goalID uint) (*finance.GoalProgress, error)
}

// SubscriptionInput carries the user-editable fields of a subscription.
type SubscriptionInput struct {
	Name            string
	Description     string
	Amount          int64
	Currency        string
	BillingCycle    models.BillingCycle
	NextBillingDate time.Time
	Category        string
	CardID          *uint
}

// CategoryCost is the monthly cost attributed to one subscription category.
type CategoryCost struct {
	Category    string `json:"category"`
	MonthlyCost int64  `json:"monthly_cost"`
	Count       int    `json:"count"`
}

// SubscriptionCostSummary aggregates the recurring cost of active subscriptions.
type SubscriptionCostSummary struct {
	MonthlyCost int64          `json:"monthly_cost"`
	YearlyCost  int64          `json:"yearly_cost"`
	ActiveCount int            `json:"active_count"`
	ByCategory  []CategoryCost `json:"by_category"`
}

// SubscriptionServicer defines the contract for subscription business logic.
type SubscriptionServicer interface {
	CreateSubscription(userID uint, input SubscriptionInput) (*models.Subscription, error)
	GetUserSubscriptions(userID uint, page pagination.PageRequest, status *models.SubscriptionStatus) (*pagination.PageResponse[models.Subscription], error)
	GetSubscriptionByID(userID, subscriptionID uint) (*models.Subscription, error)
	UpdateSubscription(userID, subscriptionID uint, input SubscriptionInput) (*models.Subscription, error)
	DeleteSubscription(userID, subscriptionID uint) error
	Cancel(userID, subscriptionID uint) (*models.Subscription, error)
	Pause(userID, subscriptionID uint) (*models.Subscription, error)
	Resume(userID, subscriptionID uint) (*models.Subscription, error)
	GetUpcomingRenewals(userID uint, withinDays int) ([]models.Subscription, error)
	GetCostSummary(userID uint) (*SubscriptionCostSummary, error)
}

// CardServicer defines the contract for payment-card business logic.
type CardServicer interface {
	CreateCard(userID uint, nickname, lastFour string, brand models.CardBrand, expiryMonth, expiryYear int) (*models.PaymentCard, error)
	GetUserCards(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PaymentCard], error)
	GetCardByID(userID, cardID uint) (*models.PaymentCard, error)
	UpdateCard(userID, cardID uint, nickname string, expiryMonth, expiryYear *int) (*models.PaymentCard, error)
	DeleteCard(userID, cardID uint) error
	SetDefault(userID, cardID uint) (*models.PaymentCard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
