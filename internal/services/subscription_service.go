package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/finance"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
)

// subscriptionService handles subscription business logic.
type subscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates a new SubscriptionServicer.
func NewSubscriptionService(db *gorm.DB) SubscriptionServicer {
	return &subscriptionService{db: db}
}

// CreateSubscription creates a subscription for the given user.
func (s *subscriptionService) CreateSubscription(userID uint, input SubscriptionInput) (*models.Subscription, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if input.CardID != nil {
		if err := s.checkCardOwnership(userID, *input.CardID); err != nil {
			return nil, err
		}
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	subscription := &models.Subscription{
		UserID:          userID,
		Name:            input.Name,
		Description:     input.Description,
		Amount:          input.Amount,
		Currency:        currency,
		BillingCycle:    input.BillingCycle,
		NextBillingDate: input.NextBillingDate,
		Category:        input.Category,
		CardID:          input.CardID,
		Status:          models.SubscriptionStatusActive,
	}

	if err := s.db.Create(subscription).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return subscription, nil
}

// GetUserSubscriptions returns a paginated list of the user's subscriptions
// ordered by next billing date, optionally filtered by status.
func (s *subscriptionService) GetUserSubscriptions(userID uint, page pagination.PageRequest, status *models.SubscriptionStatus) (*pagination.PageResponse[models.Subscription], error) {
	page.Defaults()

	base := s.db.Model(&models.Subscription{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var subscriptions []models.Subscription
	if err := base.Preload("Card").Order("next_billing_date ASC").
		Scopes(pagination.Paginate(page)).Find(&subscriptions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(subscriptions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSubscriptionByID returns a subscription if it belongs to the given user.
func (s *subscriptionService) GetSubscriptionByID(userID, subscriptionID uint) (*models.Subscription, error) {
	var subscription models.Subscription
	err := s.db.Preload("Card").
		Where("id = ? AND user_id = ?", subscriptionID, userID).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &subscription, nil
}

// UpdateSubscription applies the given input to a subscription. Zero-valued
// input fields leave the stored value untouched.
func (s *subscriptionService) UpdateSubscription(userID, subscriptionID uint, input SubscriptionInput) (*models.Subscription, error) {
	subscription, err := s.GetSubscriptionByID(userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Amount > 0 {
		updates["amount"] = input.Amount
	}
	if input.Currency != "" {
		updates["currency"] = input.Currency
	}
	if input.BillingCycle != "" {
		updates["billing_cycle"] = input.BillingCycle
	}
	if !input.NextBillingDate.IsZero() {
		updates["next_billing_date"] = input.NextBillingDate
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if input.CardID != nil {
		if err := s.checkCardOwnership(userID, *input.CardID); err != nil {
			return nil, err
		}
		updates["card_id"] = *input.CardID
	}

	if len(updates) == 0 {
		return subscription, nil
	}

	if err := s.db.Model(subscription).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return subscription, nil
}

// DeleteSubscription soft-deletes a subscription.
func (s *subscriptionService) DeleteSubscription(userID, subscriptionID uint) error {
	subscription, err := s.GetSubscriptionByID(userID, subscriptionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(subscription).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Cancel marks a subscription cancelled. Cancelling twice is an error.
func (s *subscriptionService) Cancel(userID, subscriptionID uint) (*models.Subscription, error) {
	return s.setStatus(userID, subscriptionID, models.SubscriptionStatusCancelled)
}

// Pause marks an active subscription paused.
func (s *subscriptionService) Pause(userID, subscriptionID uint) (*models.Subscription, error) {
	return s.setStatus(userID, subscriptionID, models.SubscriptionStatusPaused)
}

// Resume reactivates a paused subscription.
func (s *subscriptionService) Resume(userID, subscriptionID uint) (*models.Subscription, error) {
	return s.setStatus(userID, subscriptionID, models.SubscriptionStatusActive)
}

func (s *subscriptionService) setStatus(userID, subscriptionID uint, status models.SubscriptionStatus) (*models.Subscription, error) {
	subscription, err := s.GetSubscriptionByID(userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	// Cancelled is terminal.
	if subscription.Status == models.SubscriptionStatusCancelled {
		return nil, apperrors.ErrSubscriptionCancelled
	}
	if subscription.Status == status {
		return subscription, nil
	}

	if err := s.db.Model(subscription).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	subscription.Status = status

	return subscription, nil
}

// GetUpcomingRenewals lists active subscriptions billing within the given
// number of days, soonest first.
func (s *subscriptionService) GetUpcomingRenewals(userID uint, withinDays int) ([]models.Subscription, error) {
	if withinDays <= 0 {
		withinDays = 7
	}
	cutoff := time.Now().AddDate(0, 0, withinDays)

	var subscriptions []models.Subscription
	err := s.db.Preload("Card").
		Where("user_id = ? AND status = ? AND next_billing_date <= ?", userID, models.SubscriptionStatusActive, cutoff).
		Order("next_billing_date ASC").Find(&subscriptions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return subscriptions, nil
}

// GetCostSummary normalizes active subscriptions to monthly cost and breaks
// the total down by category.
func (s *subscriptionService) GetCostSummary(userID uint) (*SubscriptionCostSummary, error) {
	var subscriptions []models.Subscription
	err := s.db.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Find(&subscriptions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &SubscriptionCostSummary{ActiveCount: len(subscriptions)}
	byCategory := make(map[string]*CategoryCost)
	for _, sub := range subscriptions {
		monthly := finance.MonthlySubscriptionCost(sub.Amount, sub.BillingCycle)
		summary.MonthlyCost += monthly

		category := sub.Category
		if category == "" {
			category = "uncategorized"
		}
		cost, ok := byCategory[category]
		if !ok {
			cost = &CategoryCost{Category: category}
			byCategory[category] = cost
		}
		cost.MonthlyCost += monthly
		cost.Count++
	}
	summary.YearlyCost = summary.MonthlyCost * 12

	summary.ByCategory = make([]CategoryCost, 0, len(byCategory))
	for _, cost := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *cost)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].MonthlyCost > summary.ByCategory[j].MonthlyCost
	})

	return summary, nil
}

// checkCardOwnership confirms a payment card exists and belongs to the user.
func (s *subscriptionService) checkCardOwnership(userID, cardID uint) error {
	var count int64
	if err := s.db.Model(&models.PaymentCard{}).
		Where("id = ? AND user_id = ?", cardID, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCardNotFound
	}
	return nil
}
