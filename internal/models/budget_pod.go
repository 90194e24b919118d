package models

// PodCategory represents the kind of spending a pod is earmarked for
type PodCategory string

const (
	PodCategoryBills     PodCategory = "bills"
	PodCategorySavings   PodCategory = "savings"
	PodCategorySpending  PodCategory = "spending"
	PodCategoryEmergency PodCategory = "emergency"
	PodCategoryDebt      PodCategory = "debt"
	PodCategoryCustom    PodCategory = "custom"
)

// BudgetPod is a named budget bucket with a monthly funding target and a
// running balance. Amounts are in cents.
type BudgetPod struct {
	Base
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	Name           string      `gorm:"not null" json:"name"`
	Category       PodCategory `gorm:"not null" json:"category"`
	MonthlyAmount  int64       `gorm:"type:bigint;not null" json:"monthly_amount"`
	CurrentAmount  int64       `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	TargetAmount   *int64      `gorm:"type:bigint" json:"target_amount,omitempty"`
	Priority       int         `gorm:"default:3" json:"priority"`
	AutoTransfer   bool        `gorm:"default:false" json:"auto_transfer"`
	RolloverUnused bool        `gorm:"default:true" json:"rollover_unused"`
	Color          string      `json:"color"`
	IsActive       bool        `gorm:"default:true" json:"is_active"`
}
