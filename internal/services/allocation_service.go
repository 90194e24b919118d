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

// allocationService handles paycheck-allocation business logic.
type allocationService struct {
	db *gorm.DB
}

// NewAllocationService creates a new AllocationServicer.
func NewAllocationService(db *gorm.DB) AllocationServicer {
	return &allocationService{db: db}
}

// CreateAllocation creates a paycheck allocation plan. Gross and net amounts
// default to the income source's when not supplied. Entries are folded in
// one at a time; with AutoAllocate set, the engine distributes what is left
// after fixed expenses across the user's active pods instead.
func (s *allocationService) CreateAllocation(userID uint, input AllocationInput) (*models.PaycheckAllocation, error) {
	var source models.IncomeSource
	if err := s.db.Where("id = ? AND user_id = ?", input.IncomeSourceID, userID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeSourceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	gross := input.GrossAmount
	if gross == 0 {
		gross = source.GrossAmount
	}
	net := input.NetAmount
	if net == 0 {
		net = source.NetAmount
	}

	fixed := make([]models.FixedExpense, 0, len(input.FixedExpenses))
	for _, e := range input.FixedExpenses {
		if e.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "fixed expense name is required")
		}
		fixed = append(fixed, models.FixedExpense{Name: e.Name, Amount: e.Amount})
	}

	var allocs []models.PodAllocation
	if input.AutoAllocate {
		pods, err := s.activePods(userID)
		if err != nil {
			return nil, err
		}
		allocs = finance.AutoAllocate(net, pods, fixed)
	} else {
		for _, entry := range input.Entries {
			if err := s.checkPodOwnership(userID, entry.PodID); err != nil {
				return nil, err
			}
			allocs = finance.ApplyManualEntry(allocs, entry.PodID, entry.Amount, net)
		}
	}

	allocation := &models.PaycheckAllocation{
		UserID:          userID,
		IncomeSourceID:  source.ID,
		PayDate:         input.PayDate,
		GrossAmount:     gross,
		NetAmount:       net,
		RemainingAmount: finance.RemainingAmount(net, allocs, fixed),
		Planned:         true,
		PodAllocations:  allocs,
		FixedExpenses:   fixed,
	}

	if err := s.db.Create(allocation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return allocation, nil
}

// GetUserAllocations returns a paginated list of the user's allocations,
// newest pay date first, optionally filtered by processed state.
func (s *allocationService) GetUserAllocations(userID uint, page pagination.PageRequest, processed *bool) (*pagination.PageResponse[models.PaycheckAllocation], error) {
	page.Defaults()

	base := s.db.Model(&models.PaycheckAllocation{}).Where("user_id = ?", userID)
	if processed != nil {
		base = base.Where("processed = ?", *processed)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var allocations []models.PaycheckAllocation
	if err := base.Preload("PodAllocations").Preload("FixedExpenses").Preload("IncomeSource").
		Order("pay_date DESC").Scopes(pagination.Paginate(page)).Find(&allocations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(allocations, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAllocationByID returns an allocation with its pod entries and fixed
// expenses if it belongs to the user.
func (s *allocationService) GetAllocationByID(userID, allocationID uint) (*models.PaycheckAllocation, error) {
	var allocation models.PaycheckAllocation
	err := s.db.Preload("PodAllocations").Preload("FixedExpenses").Preload("IncomeSource").
		Where("id = ? AND user_id = ?", allocationID, userID).First(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAllocationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &allocation, nil
}

// SetPodAmount folds one manual {pod, amount} entry into an unprocessed
// allocation, replacing any prior entry for that pod. An amount of 0 removes
// the pod from the plan.
func (s *allocationService) SetPodAmount(userID, allocationID, podID uint, amount int64) (*models.PaycheckAllocation, error) {
	allocation, err := s.GetAllocationByID(userID, allocationID)
	if err != nil {
		return nil, err
	}
	if allocation.Processed {
		return nil, apperrors.ErrAllocationProcessed
	}
	if err := s.checkPodOwnership(userID, podID); err != nil {
		return nil, err
	}

	allocs := finance.ApplyManualEntry(allocation.PodAllocations, podID, amount, allocation.NetAmount)
	return s.replacePodAllocations(allocation, allocs)
}

// AutoAllocate recomputes an unprocessed allocation's pod entries by
// distributing the net amount left after fixed expenses across the user's
// active pods, proportionally to their monthly targets.
func (s *allocationService) AutoAllocate(userID, allocationID uint) (*models.PaycheckAllocation, error) {
	allocation, err := s.GetAllocationByID(userID, allocationID)
	if err != nil {
		return nil, err
	}
	if allocation.Processed {
		return nil, apperrors.ErrAllocationProcessed
	}

	pods, err := s.activePods(userID)
	if err != nil {
		return nil, err
	}

	allocs := finance.AutoAllocate(allocation.NetAmount, pods, allocation.FixedExpenses)
	return s.replacePodAllocations(allocation, allocs)
}

// ProcessAllocation credits each allocated pod's balance and marks the
// allocation processed. Processing is transactional and can happen once.
func (s *allocationService) ProcessAllocation(userID, allocationID uint) (*models.PaycheckAllocation, error) {
	allocation, err := s.GetAllocationByID(userID, allocationID)
	if err != nil {
		return nil, err
	}
	if allocation.Processed {
		return nil, apperrors.ErrAllocationProcessed
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range allocation.PodAllocations {
			result := tx.Model(&models.BudgetPod{}).
				Where("id = ? AND user_id = ?", entry.PodID, userID).
				Update("current_amount", gorm.Expr("current_amount + ?", entry.Amount))
			if result.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
			}
			if result.RowsAffected == 0 {
				return apperrors.ErrPodNotFound
			}
		}

		updates := map[string]interface{}{
			"processed":    true,
			"planned":      false,
			"processed_at": now,
		}
		if err := tx.Model(allocation).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return allocation, nil
}

// DeleteAllocation soft-deletes an unprocessed allocation. Processed
// allocations are part of pod balance history and cannot be removed.
func (s *allocationService) DeleteAllocation(userID, allocationID uint) error {
	allocation, err := s.GetAllocationByID(userID, allocationID)
	if err != nil {
		return err
	}
	if allocation.Processed {
		return apperrors.ErrAllocationProcessed
	}

	if err := s.db.Delete(allocation).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// replacePodAllocations swaps an allocation's pod entries for the given set
// and refreshes the remaining amount.
func (s *allocationService) replacePodAllocations(allocation *models.PaycheckAllocation, allocs []models.PodAllocation) (*models.PaycheckAllocation, error) {
	remaining := finance.RemainingAmount(allocation.NetAmount, allocs, allocation.FixedExpenses)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("allocation_id = ?", allocation.ID).Delete(&models.PodAllocation{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for i := range allocs {
			allocs[i].ID = 0
			allocs[i].AllocationID = allocation.ID
			if err := tx.Create(&allocs[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if err := tx.Model(allocation).Update("remaining_amount", remaining).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	allocation.PodAllocations = allocs
	allocation.RemainingAmount = remaining
	return allocation, nil
}

// activePods lists the user's active pods ordered by priority.
func (s *allocationService) activePods(userID uint) ([]models.BudgetPod, error) {
	var pods []models.BudgetPod
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority ASC, created_at ASC").Find(&pods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pods, nil
}

// checkPodOwnership confirms a pod exists and belongs to the user.
func (s *allocationService) checkPodOwnership(userID, podID uint) error {
	var count int64
	if err := s.db.Model(&models.BudgetPod{}).
		Where("id = ? AND user_id = ?", podID, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrPodNotFound
	}
	return nil
}
