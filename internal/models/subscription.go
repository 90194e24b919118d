package models

import "time"

// BillingCycle represents how often a subscription bills
type BillingCycle string

const (
	BillingCycleWeekly    BillingCycle = "weekly"
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

// SubscriptionStatus represents the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusWatchlist SubscriptionStatus = "watchlist"
)

// Subscription represents a recurring service charge. Amount is in cents.
type Subscription struct {
	Base
	UserID          uint               `gorm:"not null;index" json:"user_id"`
	Name            string             `gorm:"not null" json:"name"`
	Description     string             `json:"description"`
	Amount          int64              `gorm:"type:bigint;not null" json:"amount"`
	Currency        string             `gorm:"not null;default:'USD'" json:"currency"`
	BillingCycle    BillingCycle       `gorm:"not null" json:"billing_cycle"`
	NextBillingDate time.Time          `gorm:"not null" json:"next_billing_date"`
	Category        string             `json:"category"`
	CardID          *uint              `json:"card_id,omitempty"`
	Status          SubscriptionStatus `gorm:"not null;default:'active'" json:"status"`

	// Relationships
	Card *PaymentCard `gorm:"foreignKey:CardID" json:"card,omitempty"`
}
