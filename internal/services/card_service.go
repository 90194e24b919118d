package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
)

// cardService handles payment-card business logic.
type cardService struct {
	db *gorm.DB
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB) CardServicer {
	return &cardService{db: db}
}

// CreateCard stores a payment card for the given user. The first card a user
// adds becomes their default.
func (s *cardService) CreateCard(userID uint, nickname, lastFour string, brand models.CardBrand, expiryMonth, expiryYear int) (*models.PaymentCard, error) {
	var count int64
	if err := s.db.Model(&models.PaymentCard{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	card := &models.PaymentCard{
		UserID:      userID,
		Nickname:    nickname,
		LastFour:    lastFour,
		Brand:       brand,
		ExpiryMonth: expiryMonth,
		ExpiryYear:  expiryYear,
		IsDefault:   count == 0,
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return card, nil
}

// GetUserCards returns a paginated list of the user's cards, default first.
func (s *cardService) GetUserCards(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PaymentCard], error) {
	page.Defaults()

	base := s.db.Model(&models.PaymentCard{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var cards []models.PaymentCard
	if err := base.Order("is_default DESC, created_at ASC").
		Scopes(pagination.Paginate(page)).Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(cards, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCardByID returns a card if it belongs to the given user.
func (s *cardService) GetCardByID(userID, cardID uint) (*models.PaymentCard, error) {
	var card models.PaymentCard
	if err := s.db.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}

// UpdateCard applies the provided field changes to a card.
func (s *cardService) UpdateCard(userID, cardID uint, nickname string, expiryMonth, expiryYear *int) (*models.PaymentCard, error) {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if nickname != "" {
		updates["nickname"] = nickname
	}
	if expiryMonth != nil {
		updates["expiry_month"] = *expiryMonth
	}
	if expiryYear != nil {
		updates["expiry_year"] = *expiryYear
	}

	if len(updates) == 0 {
		return card, nil
	}

	if err := s.db.Model(card).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return card, nil
}

// DeleteCard soft-deletes a card. A card still attached to subscriptions
// cannot be removed.
func (s *cardService) DeleteCard(userID, cardID uint) error {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Subscription{}).
		Where("card_id = ?", cardID).Count(&inUse).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if inUse > 0 {
		return apperrors.ErrCardInUse
	}

	if err := s.db.Delete(card).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SetDefault makes the given card the user's default, clearing any previous
// default in the same transaction.
func (s *cardService) SetDefault(userID, cardID uint) (*models.PaymentCard, error) {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PaymentCard{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(card).Update("is_default", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	card.IsDefault = true
	return card, nil
}
