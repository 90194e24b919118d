package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/finance"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
)

// incomeService handles income-source business logic.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncomeSource creates a new income source for a user.
func (s *incomeService) CreateIncomeSource(userID uint, input IncomeSourceInput) (*models.IncomeSource, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source name is required")
	}
	if input.NetAmount > input.GrossAmount {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "net amount cannot exceed gross amount")
	}

	source := &models.IncomeSource{
		UserID:              userID,
		Name:                input.Name,
		Type:                input.Type,
		Frequency:           input.Frequency,
		GrossAmount:         input.GrossAmount,
		NetAmount:           input.NetAmount,
		DeductionTaxes:      input.DeductionTaxes,
		DeductionBenefits:   input.DeductionBenefits,
		DeductionRetirement: input.DeductionRetirement,
		DeductionOther:      input.DeductionOther,
		PayDates:            input.PayDates,
		IsActive:            true,
	}

	if err := s.db.Create(source).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return source, nil
}

// GetUserIncomeSources returns a paginated list of a user's income sources.
func (s *incomeService) GetUserIncomeSources(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.IncomeSource], error) {
	page.Defaults()

	base := s.db.Model(&models.IncomeSource{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sources []models.IncomeSource
	if err := base.Scopes(pagination.Paginate(page), pagination.NewestFirst()).Find(&sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(sources, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeSourceByID returns an income source by ID if it belongs to the user.
func (s *incomeService) GetIncomeSourceByID(userID, sourceID uint) (*models.IncomeSource, error) {
	var source models.IncomeSource
	if err := s.db.Where("id = ? AND user_id = ?", sourceID, userID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeSourceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &source, nil
}

// UpdateIncomeSource replaces the editable fields of an income source.
func (s *incomeService) UpdateIncomeSource(userID, sourceID uint, input IncomeSourceInput) (*models.IncomeSource, error) {
	source, err := s.GetIncomeSourceByID(userID, sourceID)
	if err != nil {
		return nil, err
	}
	if input.NetAmount > input.GrossAmount {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "net amount cannot exceed gross amount")
	}

	if input.Name != "" {
		source.Name = input.Name
	}
	if input.Type != "" {
		source.Type = input.Type
	}
	if input.Frequency != "" {
		source.Frequency = input.Frequency
	}
	if input.GrossAmount > 0 {
		source.GrossAmount = input.GrossAmount
	}
	if input.NetAmount > 0 {
		source.NetAmount = input.NetAmount
	}
	source.DeductionTaxes = input.DeductionTaxes
	source.DeductionBenefits = input.DeductionBenefits
	source.DeductionRetirement = input.DeductionRetirement
	source.DeductionOther = input.DeductionOther
	if input.PayDates != nil {
		source.PayDates = input.PayDates
	}

	if err := s.db.Save(source).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return source, nil
}

// DeactivateIncomeSource flags a source inactive so it drops out of summaries
// without losing its allocation history.
func (s *incomeService) DeactivateIncomeSource(userID, sourceID uint) error {
	source, err := s.GetIncomeSourceByID(userID, sourceID)
	if err != nil {
		return err
	}

	if err := s.db.Model(source).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteIncomeSource soft-deletes an income source.
func (s *incomeService) DeleteIncomeSource(userID, sourceID uint) error {
	source, err := s.GetIncomeSourceByID(userID, sourceID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(source).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetIncomeSummary normalizes all of the user's active income sources to
// monthly figures.
func (s *incomeService) GetIncomeSummary(userID uint) (*finance.IncomeSummary, error) {
	var sources []models.IncomeSource
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := finance.Summarize(sources)
	return &summary, nil
}
