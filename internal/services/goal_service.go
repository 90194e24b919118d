package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/finance"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
)

// goalService handles financial-goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a financial goal for the given user.
func (s *goalService) CreateGoal(userID uint, title string, category models.GoalCategory, targetAmount int64, deadline time.Time, priority int, monthlyContribution *int64) (*models.FinancialGoal, error) {
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}
	if priority == 0 {
		priority = 3
	}

	goal := &models.FinancialGoal{
		UserID:              userID,
		Title:               title,
		Category:            category,
		TargetAmount:        targetAmount,
		Deadline:            deadline,
		Priority:            priority,
		Status:              models.GoalStatusNotStarted,
		MonthlyContribution: monthlyContribution,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals returns a paginated list of the user's goals ordered by
// deadline, optionally filtered by status.
func (s *goalService) GetUserGoals(userID uint, page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.FinancialGoal], error) {
	page.Defaults()

	base := s.db.Model(&models.FinancialGoal{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.FinancialGoal
	if err := base.Order("deadline ASC").Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal if it belongs to the given user.
func (s *goalService) GetGoalByID(userID, goalID uint) (*models.FinancialGoal, error) {
	var goal models.FinancialGoal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies the provided field changes to a goal. Nil pointers and
// empty strings leave the corresponding field untouched.
func (s *goalService) UpdateGoal(userID, goalID uint, title string, targetAmount *int64, deadline *time.Time, priority *int, status *models.GoalStatus, monthlyContribution *int64) (*models.FinancialGoal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if title != "" {
		updates["title"] = title
	}
	if targetAmount != nil {
		if *targetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
		}
		updates["target_amount"] = *targetAmount
	}
	if deadline != nil {
		updates["deadline"] = *deadline
	}
	if priority != nil {
		updates["priority"] = *priority
	}
	if status != nil {
		updates["status"] = *status
	}
	if monthlyContribution != nil {
		updates["monthly_contribution"] = *monthlyContribution
	}

	if len(updates) == 0 {
		return goal, nil
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AddContribution adds an amount to a goal's saved balance. The first
// contribution moves the goal into progress; reaching the target completes it.
func (s *goalService) AddContribution(userID, goalID uint, amount int64) (*models.FinancialGoal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount must be positive")
	}

	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount += amount
	updates := map[string]interface{}{"current_amount": goal.CurrentAmount}

	switch {
	case goal.CurrentAmount >= goal.TargetAmount:
		goal.Status = models.GoalStatusCompleted
		updates["status"] = models.GoalStatusCompleted
	case goal.Status == models.GoalStatusNotStarted:
		goal.Status = models.GoalStatusInProgress
		updates["status"] = models.GoalStatusInProgress
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetGoalProgress evaluates a goal's progress and deadline pressure as of now.
func (s *goalService) GetGoalProgress(userID, goalID uint) (*finance.GoalProgress, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	progress := finance.EvaluateGoal(*goal, time.Now())
	return &progress, nil
}
