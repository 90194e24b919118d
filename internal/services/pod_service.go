package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/finance"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
)

// podService handles budget-pod business logic.
type podService struct {
	db *gorm.DB
}

// NewPodService creates a new PodServicer.
func NewPodService(db *gorm.DB) PodServicer {
	return &podService{db: db}
}

// CreatePod creates a new budget pod for a user.
func (s *podService) CreatePod(userID uint, name string, category models.PodCategory, monthlyAmount int64, targetAmount *int64, priority int, autoTransfer, rolloverUnused bool, color string) (*models.BudgetPod, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "pod name is required")
	}
	if priority == 0 {
		priority = 3
	}

	pod := &models.BudgetPod{
		UserID:         userID,
		Name:           name,
		Category:       category,
		MonthlyAmount:  monthlyAmount,
		TargetAmount:   targetAmount,
		Priority:       priority,
		AutoTransfer:   autoTransfer,
		RolloverUnused: rolloverUnused,
		Color:          color,
		IsActive:       true,
	}

	if err := s.db.Create(pod).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return pod, nil
}

// GetUserPods returns a paginated list of pods with optional filters.
func (s *podService) GetUserPods(userID uint, page pagination.PageRequest, isActive *bool, category *models.PodCategory) (*pagination.PageResponse[models.BudgetPod], error) {
	page.Defaults()

	base := s.db.Model(&models.BudgetPod{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}
	if category != nil {
		base = base.Where("category = ?", *category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var pods []models.BudgetPod
	if err := base.Order("priority ASC, created_at ASC").Scopes(pagination.Paginate(page)).Find(&pods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(pods, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPodByID returns a pod by ID if it belongs to the user.
func (s *podService) GetPodByID(userID, podID uint) (*models.BudgetPod, error) {
	var pod models.BudgetPod
	if err := s.db.Where("id = ? AND user_id = ?", podID, userID).First(&pod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPodNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &pod, nil
}

// UpdatePod updates an existing pod's fields.
func (s *podService) UpdatePod(userID, podID uint, name string, monthlyAmount, targetAmount *int64, priority *int, autoTransfer, rolloverUnused *bool, color string) (*models.BudgetPod, error) {
	pod, err := s.GetPodByID(userID, podID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if monthlyAmount != nil {
		updates["monthly_amount"] = *monthlyAmount
	}
	if targetAmount != nil {
		updates["target_amount"] = *targetAmount
	}
	if priority != nil {
		updates["priority"] = *priority
	}
	if autoTransfer != nil {
		updates["auto_transfer"] = *autoTransfer
	}
	if rolloverUnused != nil {
		updates["rollover_unused"] = *rolloverUnused
	}
	if color != "" {
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := s.db.Model(pod).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return pod, nil
}

// DeletePod soft-deletes a pod.
func (s *podService) DeletePod(userID, podID uint) error {
	pod, err := s.GetPodByID(userID, podID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(pod).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Contribute adds to a pod's balance.
func (s *podService) Contribute(userID, podID uint, amount int64) (*models.BudgetPod, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount must be positive")
	}

	pod, err := s.GetPodByID(userID, podID)
	if err != nil {
		return nil, err
	}

	pod.CurrentAmount += amount
	if err := s.db.Model(pod).Update("current_amount", pod.CurrentAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pod, nil
}

// Withdraw removes from a pod's balance. The balance can never go negative.
func (s *podService) Withdraw(userID, podID uint, amount int64) (*models.BudgetPod, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "withdrawal amount must be positive")
	}

	pod, err := s.GetPodByID(userID, podID)
	if err != nil {
		return nil, err
	}

	if pod.CurrentAmount < amount {
		return nil, apperrors.ErrInsufficientPodBalance
	}

	pod.CurrentAmount -= amount
	if err := s.db.Model(pod).Update("current_amount", pod.CurrentAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pod, nil
}

// GetPodSummary aggregates the user's active pods: total balance, total
// monthly targets, and per-pod funding progress against the target ceiling.
func (s *podService) GetPodSummary(userID uint) (*PodSummary, error) {
	var pods []models.BudgetPod
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority ASC, created_at ASC").Find(&pods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &PodSummary{Pods: make([]PodFunding, 0, len(pods))}
	for _, pod := range pods {
		summary.ActivePods++
		summary.TotalBalance += pod.CurrentAmount
		summary.TotalMonthlyTargets += pod.MonthlyAmount

		funding := PodFunding{
			PodID:         pod.ID,
			Name:          pod.Name,
			CurrentAmount: pod.CurrentAmount,
			MonthlyAmount: pod.MonthlyAmount,
			TargetAmount:  pod.TargetAmount,
		}
		if pod.TargetAmount != nil && *pod.TargetAmount > 0 {
			funding.FundedPercent = finance.Percentage(pod.CurrentAmount, *pod.TargetAmount)
		}
		summary.Pods = append(summary.Pods, funding)
	}

	return summary, nil
}
