package finance

import (
	"github.com/shopspring/decimal"

	"github.com/leano777/subtracker-api/internal/models"
)

// Percentage returns amount over net as a percentage, 0 when net is 0.
func Percentage(amount, net int64) float64 {
	if net == 0 {
		return 0
	}
	return float64(amount) / float64(net) * 100
}

// ApplyManualEntry folds one {pod, amount} pair into an allocation set,
// replacing any prior entry for the same pod. An amount of 0 removes the
// pod from the set. The returned slice preserves entry order.
func ApplyManualEntry(allocs []models.PodAllocation, podID uint, amount, net int64) []models.PodAllocation {
	result := make([]models.PodAllocation, 0, len(allocs)+1)
	for _, a := range allocs {
		if a.PodID != podID {
			result = append(result, a)
		}
	}
	if amount != 0 {
		result = append(result, models.PodAllocation{
			PodID:      podID,
			Amount:     amount,
			Percentage: Percentage(amount, net),
		})
	}
	return result
}

// AutoAllocate distributes what is left of a paycheck after fixed expenses
// across pods, proportionally to each pod's monthly target, rounded to
// cents. Pods whose share rounds to 0 are dropped. Returns nil when nothing
// is available or no pod has a target.
func AutoAllocate(net int64, pods []models.BudgetPod, fixed []models.FixedExpense) []models.PodAllocation {
	available := net - sumFixedExpenses(fixed)
	if available <= 0 {
		return nil
	}

	var totalTargets int64
	for _, pod := range pods {
		totalTargets += pod.MonthlyAmount
	}
	if totalTargets <= 0 {
		return nil
	}

	availableDec := decimal.NewFromInt(available)
	totalDec := decimal.NewFromInt(totalTargets)

	var allocs []models.PodAllocation
	for _, pod := range pods {
		share := decimal.NewFromInt(pod.MonthlyAmount).Div(totalDec).Mul(availableDec).Round(0).IntPart()
		if share == 0 {
			continue
		}
		allocs = append(allocs, models.PodAllocation{
			PodID:      pod.ID,
			Amount:     share,
			Percentage: Percentage(share, net),
		})
	}
	return allocs
}

// RemainingAmount is the portion of a paycheck left after pod allocations and
// fixed expenses. It may be negative; over-allocation is reported, not
// rejected.
func RemainingAmount(net int64, allocs []models.PodAllocation, fixed []models.FixedExpense) int64 {
	var allocated int64
	for _, a := range allocs {
		allocated += a.Amount
	}
	return net - allocated - sumFixedExpenses(fixed)
}

func sumFixedExpenses(fixed []models.FixedExpense) int64 {
	var total int64
	for _, f := range fixed {
		total += f.Amount
	}
	return total
}
