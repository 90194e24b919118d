// Package finance implements the pure calculation core of the application:
// income normalization, paycheck-to-pod allocation, and goal progress
// evaluation. All functions are synchronous transforms over in-memory
// records; amounts are int64 cents and intermediate arithmetic runs through
// shopspring/decimal so multiplier and ratio math never loses cents to
// binary floating point.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/leano777/subtracker-api/internal/models"
)

// monthlyMultipliers converts a periodic amount into its monthly equivalent.
// Irregular sources have no multiplier and normalize to zero.
var monthlyMultipliers = map[models.PayFrequency]decimal.Decimal{
	models.PayFrequencyWeekly:    decimal.NewFromFloat(4.33),
	models.PayFrequencyBiweekly:  decimal.NewFromFloat(2.17),
	models.PayFrequencyMonthly:   decimal.NewFromInt(1),
	models.PayFrequencyQuarterly: decimal.NewFromInt(1).Div(decimal.NewFromInt(3)),
	models.PayFrequencyYearly:    decimal.NewFromInt(1).Div(decimal.NewFromInt(12)),
}

// MonthlyEquivalent normalizes a periodic amount in cents to a monthly rate,
// rounded to the nearest cent. Unknown or irregular frequencies return 0.
func MonthlyEquivalent(amount int64, frequency models.PayFrequency) int64 {
	mult, ok := monthlyMultipliers[frequency]
	if !ok {
		return 0
	}
	return decimal.NewFromInt(amount).Mul(mult).Round(0).IntPart()
}

// billingCycleFrequency maps subscription billing cycles onto the pay
// frequency multiplier table.
var billingCycleFrequency = map[models.BillingCycle]models.PayFrequency{
	models.BillingCycleWeekly:    models.PayFrequencyWeekly,
	models.BillingCycleMonthly:   models.PayFrequencyMonthly,
	models.BillingCycleQuarterly: models.PayFrequencyQuarterly,
	models.BillingCycleYearly:    models.PayFrequencyYearly,
}

// MonthlySubscriptionCost normalizes a subscription charge to a monthly rate.
func MonthlySubscriptionCost(amount int64, cycle models.BillingCycle) int64 {
	freq, ok := billingCycleFrequency[cycle]
	if !ok {
		return 0
	}
	return MonthlyEquivalent(amount, freq)
}

// IncomeSummary aggregates active income sources into monthly figures.
type IncomeSummary struct {
	MonthlyGross    int64   `json:"monthly_gross"`
	MonthlyNet      int64   `json:"monthly_net"`
	TotalDeductions int64   `json:"total_deductions"`
	TaxRate         float64 `json:"tax_rate"`
	ActiveSources   int     `json:"active_sources"`
}

// Summarize converts each active source's gross and net amounts into monthly
// equivalents and sums them. TotalDeductions is gross minus net; TaxRate is
// deductions over gross as a percentage, 0 when gross is 0.
func Summarize(sources []models.IncomeSource) IncomeSummary {
	var summary IncomeSummary
	for _, src := range sources {
		if !src.IsActive {
			continue
		}
		summary.ActiveSources++
		summary.MonthlyGross += MonthlyEquivalent(src.GrossAmount, src.Frequency)
		summary.MonthlyNet += MonthlyEquivalent(src.NetAmount, src.Frequency)
	}

	summary.TotalDeductions = summary.MonthlyGross - summary.MonthlyNet
	if summary.MonthlyGross > 0 {
		summary.TaxRate = decimal.NewFromInt(summary.TotalDeductions).
			Div(decimal.NewFromInt(summary.MonthlyGross)).
			Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}
	return summary
}
