package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	IncomeSources []IncomeSource       `gorm:"foreignKey:UserID" json:"income_sources,omitempty"`
	Pods          []BudgetPod          `gorm:"foreignKey:UserID" json:"pods,omitempty"`
	Allocations   []PaycheckAllocation `gorm:"foreignKey:UserID" json:"allocations,omitempty"`
	Goals         []FinancialGoal      `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	Subscriptions []Subscription       `gorm:"foreignKey:UserID" json:"subscriptions,omitempty"`
	Cards         []PaymentCard        `gorm:"foreignKey:UserID" json:"cards,omitempty"`
}
