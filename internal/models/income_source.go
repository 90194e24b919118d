package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// IncomeType represents the kind of income a source produces
type IncomeType string

const (
	IncomeTypeSalary    IncomeType = "salary"
	IncomeTypeHourly    IncomeType = "hourly"
	IncomeTypeContract  IncomeType = "contract"
	IncomeTypeFreelance IncomeType = "freelance"
	IncomeTypeOther     IncomeType = "other"
)

// PayFrequency represents how often an income source pays out
type PayFrequency string

const (
	PayFrequencyWeekly    PayFrequency = "weekly"
	PayFrequencyBiweekly  PayFrequency = "biweekly"
	PayFrequencyMonthly   PayFrequency = "monthly"
	PayFrequencyQuarterly PayFrequency = "quarterly"
	PayFrequencyYearly    PayFrequency = "yearly"
	PayFrequencyIrregular PayFrequency = "irregular"
)

// PayDateList stores a source's upcoming pay dates as a JSON column.
type PayDateList []time.Time

// Value implements driver.Valuer.
func (p PayDateList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (p *PayDateList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported pay date list type %T", value)
	}
}

// IncomeSource represents a recurring source of income. Amounts are in cents.
type IncomeSource struct {
	Base
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	Name        string       `gorm:"not null" json:"name"`
	Type        IncomeType   `gorm:"not null" json:"type"`
	Frequency   PayFrequency `gorm:"not null" json:"frequency"`
	GrossAmount int64        `gorm:"type:bigint;not null" json:"gross_amount"`
	NetAmount   int64        `gorm:"type:bigint;not null" json:"net_amount"`

	// Per-paycheck deduction breakdown
	DeductionTaxes      int64 `gorm:"type:bigint;default:0" json:"deduction_taxes"`
	DeductionBenefits   int64 `gorm:"type:bigint;default:0" json:"deduction_benefits"`
	DeductionRetirement int64 `gorm:"type:bigint;default:0" json:"deduction_retirement"`
	DeductionOther      int64 `gorm:"type:bigint;default:0" json:"deduction_other"`

	PayDates PayDateList `gorm:"type:text" json:"pay_dates"`
	IsActive bool        `gorm:"default:true" json:"is_active"`

	// Relationships
	Allocations []PaycheckAllocation `gorm:"foreignKey:IncomeSourceID" json:"allocations,omitempty"`
}
