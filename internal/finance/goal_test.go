package finance

import (
	"testing"
	"time"

	"github.com/leano777/subtracker-api/internal/models"
)

func goalAt(created, deadline time.Time, current, target int64) models.FinancialGoal {
	g := models.FinancialGoal{
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
	}
	g.CreatedAt = created
	return g
}

func TestGoalPercent(t *testing.T) {
	now := time.Now()

	t.Run("complete_goal_is_always_100", func(t *testing.T) {
		for _, deadline := range []time.Time{now.AddDate(0, 0, -30), now.AddDate(1, 0, 0)} {
			g := goalAt(now.AddDate(0, -6, 0), deadline, 50000, 50000)
			if pct := GoalPercent(g); pct != 100.0 {
				t.Errorf("expected 100%% for complete goal, got %f", pct)
			}
		}
	})

	t.Run("zero_target_guards_division", func(t *testing.T) {
		g := goalAt(now, now.AddDate(0, 1, 0), 10000, 0)
		if pct := GoalPercent(g); pct != 0 {
			t.Errorf("expected 0%% with zero target, got %f", pct)
		}
	})
}

func TestEvaluateGoal(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("near_deadline_low_progress_is_at_risk", func(t *testing.T) {
		// 10 days out at 50% progress
		g := goalAt(now.AddDate(0, -6, 0), now.AddDate(0, 0, 10), 50000, 100000)

		progress := EvaluateGoal(g, now)

		if !progress.AtRisk {
			t.Error("expected goal to be at risk")
		}
		if !progress.Urgent {
			t.Error("expected goal to be urgent")
		}
		if progress.TimeRemaining != "10 days" {
			t.Errorf("expected '10 days', got %q", progress.TimeRemaining)
		}
	})

	t.Run("near_deadline_high_progress_is_not_at_risk", func(t *testing.T) {
		g := goalAt(now.AddDate(0, -6, 0), now.AddDate(0, 0, 10), 90000, 100000)

		if progress := EvaluateGoal(g, now); progress.AtRisk {
			t.Error("expected goal at 90% not to be at risk")
		}
	})

	t.Run("distant_deadline_low_progress_is_not_at_risk", func(t *testing.T) {
		g := goalAt(now.AddDate(0, -1, 0), now.AddDate(1, 0, 0), 10000, 100000)

		if progress := EvaluateGoal(g, now); progress.AtRisk {
			t.Error("expected goal a year out not to be at risk")
		}
	})

	t.Run("overdue_bucket", func(t *testing.T) {
		g := goalAt(now.AddDate(-1, 0, 0), now.AddDate(0, 0, -5), 10000, 100000)

		progress := EvaluateGoal(g, now)

		if progress.TimeRemaining != "Overdue" {
			t.Errorf("expected Overdue, got %q", progress.TimeRemaining)
		}
		if !progress.Urgent {
			t.Error("expected overdue goal to be urgent")
		}
	})

	t.Run("deadline_buckets", func(t *testing.T) {
		tests := []struct {
			name   string
			days   int
			want   string
			urgent bool
		}{
			{"days_bucket", 25, "25 days", true},
			{"weeks_bucket", 60, "9 weeks", true},
			{"months_bucket", 180, "6 months", false},
			{"years_bucket", 800, "2 years", false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				g := goalAt(now.AddDate(-1, 0, 0), now.AddDate(0, 0, tt.days), 80000, 100000)

				progress := EvaluateGoal(g, now)

				if progress.TimeRemaining != tt.want {
					t.Errorf("expected %q, got %q", tt.want, progress.TimeRemaining)
				}
				if progress.Urgent != tt.urgent {
					t.Errorf("expected urgent=%v, got %v", tt.urgent, progress.Urgent)
				}
			})
		}
	})

	t.Run("ahead_of_schedule", func(t *testing.T) {
		// Halfway through the plan period with 80% saved: 80 > 50+10.
		g := goalAt(now.AddDate(0, 0, -100), now.AddDate(0, 0, 100), 80000, 100000)

		progress := EvaluateGoal(g, now)

		if !progress.AheadOfSchedule {
			t.Errorf("expected ahead of schedule at %f%% vs expected %f%%",
				progress.Percent, progress.ExpectedPercent)
		}
	})

	t.Run("on_pace_is_not_ahead", func(t *testing.T) {
		// Halfway through with 55% saved: inside the 10-point buffer.
		g := goalAt(now.AddDate(0, 0, -100), now.AddDate(0, 0, 100), 55000, 100000)

		if progress := EvaluateGoal(g, now); progress.AheadOfSchedule {
			t.Error("expected goal inside the buffer not to be ahead of schedule")
		}
	})

	t.Run("deadline_before_creation_guards_expectation", func(t *testing.T) {
		g := goalAt(now, now.AddDate(0, 0, -1), 10000, 100000)

		if progress := EvaluateGoal(g, now); progress.ExpectedPercent != 0 {
			t.Errorf("expected 0 expected percent, got %f", progress.ExpectedPercent)
		}
	})
}
