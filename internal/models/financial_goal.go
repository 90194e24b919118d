package models

import "time"

// GoalCategory represents what a financial goal is saving toward
type GoalCategory string

const (
	GoalCategorySavings       GoalCategory = "savings"
	GoalCategoryDebtPayoff    GoalCategory = "debt_payoff"
	GoalCategoryInvestment    GoalCategory = "investment"
	GoalCategoryPurchase      GoalCategory = "purchase"
	GoalCategoryEmergencyFund GoalCategory = "emergency_fund"
	GoalCategoryOther         GoalCategory = "other"
)

// GoalStatus represents the lifecycle state of a goal
type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not_started"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusPaused     GoalStatus = "paused"
	GoalStatusAbandoned  GoalStatus = "abandoned"
)

// FinancialGoal represents a savings target with a deadline. Progress and
// risk classification are derived at read time, never stored.
type FinancialGoal struct {
	Base
	UserID              uint         `gorm:"not null;index" json:"user_id"`
	Title               string       `gorm:"not null" json:"title"`
	Category            GoalCategory `gorm:"not null" json:"category"`
	TargetAmount        int64        `gorm:"type:bigint;not null" json:"target_amount"`
	CurrentAmount       int64        `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	Deadline            time.Time    `gorm:"not null" json:"deadline"`
	Priority            int          `gorm:"default:3" json:"priority"`
	Status              GoalStatus   `gorm:"not null;default:'not_started'" json:"status"`
	MonthlyContribution *int64       `gorm:"type:bigint" json:"monthly_contribution,omitempty"`
}
