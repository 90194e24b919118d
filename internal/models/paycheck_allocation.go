package models

import "time"

// PaycheckAllocation is a plan distributing one income payment across budget
// pods and fixed expenses. Amounts are in cents.
type PaycheckAllocation struct {
	Base
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	IncomeSourceID  uint      `gorm:"not null" json:"income_source_id"`
	PayDate         time.Time `gorm:"not null" json:"pay_date"`
	GrossAmount     int64     `gorm:"type:bigint;not null" json:"gross_amount"`
	NetAmount       int64     `gorm:"type:bigint;not null" json:"net_amount"`
	RemainingAmount int64     `gorm:"type:bigint;not null" json:"remaining_amount"`

	// Planned allocations start as a draft; Processed marks the moment pod
	// balances were credited. A processed allocation is immutable.
	Planned     bool       `gorm:"default:true" json:"planned"`
	Processed   bool       `gorm:"default:false" json:"processed"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`

	// Relationships
	IncomeSource   IncomeSource    `gorm:"foreignKey:IncomeSourceID" json:"income_source"`
	PodAllocations []PodAllocation `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"pod_allocations"`
	FixedExpenses  []FixedExpense  `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"fixed_expenses"`
}

// PodAllocation is one pod's share of a paycheck allocation.
type PodAllocation struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	AllocationID uint    `gorm:"not null;index" json:"allocation_id"`
	PodID        uint    `gorm:"not null" json:"pod_id"`
	Amount       int64   `gorm:"type:bigint;not null" json:"amount"`
	Percentage   float64 `gorm:"not null" json:"percentage"`

	Pod BudgetPod `gorm:"foreignKey:PodID" json:"pod,omitempty"`
}

// FixedExpense is a named expense deducted from a paycheck before pods are funded.
type FixedExpense struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AllocationID uint   `gorm:"not null;index" json:"allocation_id"`
	Name         string `gorm:"not null" json:"name"`
	Amount       int64  `gorm:"type:bigint;not null" json:"amount"`
}
