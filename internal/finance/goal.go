package finance

import (
	"fmt"
	"time"

	"github.com/leano777/subtracker-api/internal/models"
)

// Goal classification policy. Fixed thresholds, not user-configurable.
const (
	// atRiskWindowDays is how close a deadline must be before low progress
	// flags the goal as at risk.
	atRiskWindowDays = 90
	// atRiskProgressPct is the progress floor below which a goal inside the
	// risk window is flagged.
	atRiskProgressPct = 70.0
	// aheadBufferPct is how far actual progress must exceed the linear
	// expectation to count as ahead of schedule.
	aheadBufferPct = 10.0
)

// GoalProgress is the derived state of a financial goal at a point in time.
type GoalProgress struct {
	Percent         float64 `json:"percent"`
	ExpectedPercent float64 `json:"expected_percent"`
	DaysToDeadline  int     `json:"days_to_deadline"`
	TimeRemaining   string  `json:"time_remaining"`
	Urgent          bool    `json:"urgent"`
	AtRisk          bool    `json:"at_risk"`
	AheadOfSchedule bool    `json:"ahead_of_schedule"`
}

// GoalPercent returns current over target as a percentage, 0 when the target
// is 0.
func GoalPercent(goal models.FinancialGoal) float64 {
	if goal.TargetAmount == 0 {
		return 0
	}
	return float64(goal.CurrentAmount) / float64(goal.TargetAmount) * 100
}

// EvaluateGoal derives progress, time-to-deadline bucketing, and risk
// classification for a goal as of now. A goal is at risk when its deadline
// falls inside the risk window while progress sits below the floor; it is
// ahead of schedule when actual progress beats the linear time expectation
// by more than the buffer.
func EvaluateGoal(goal models.FinancialGoal, now time.Time) GoalProgress {
	percent := GoalPercent(goal)
	days := daysUntil(goal.Deadline, now)

	progress := GoalProgress{
		Percent:         percent,
		ExpectedPercent: expectedPercent(goal, now),
		DaysToDeadline:  days,
	}
	progress.TimeRemaining, progress.Urgent = deadlineBucket(days)
	progress.AtRisk = days <= atRiskWindowDays && percent < atRiskProgressPct
	progress.AheadOfSchedule = percent > progress.ExpectedPercent+aheadBufferPct
	return progress
}

// daysUntil counts whole days from now to the deadline, negative once past.
func daysUntil(deadline, now time.Time) int {
	return int(deadline.Sub(now).Hours() / 24)
}

// deadlineBucket maps days-to-deadline onto a display bucket and urgency.
func deadlineBucket(days int) (string, bool) {
	switch {
	case days < 0:
		return "Overdue", true
	case days <= 30:
		return fmt.Sprintf("%d days", days), true
	case days <= 90:
		return fmt.Sprintf("%d weeks", (days+6)/7), true
	case days <= 365:
		return fmt.Sprintf("%d months", days/30), false
	default:
		return fmt.Sprintf("%d years", days/365), false
	}
}

// expectedPercent linearly interpolates elapsed time since goal creation
// against the total planned duration, clamped to [0, 100]. Goals whose
// deadline does not come after their creation expect 0.
func expectedPercent(goal models.FinancialGoal, now time.Time) float64 {
	total := goal.Deadline.Sub(goal.CreatedAt)
	if total <= 0 {
		return 0
	}
	elapsed := now.Sub(goal.CreatedAt)
	pct := float64(elapsed) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
