package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
	"github.com/leano777/subtracker-api/internal/services"
)

// IncomeHandler handles income-source requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeSourceRequest represents the request payload for creating an income source.
// Amounts are per paycheck, in cents.
type CreateIncomeSourceRequest struct {
	Name                string      `json:"name" binding:"required,min=1,max=100"`
	Type                string      `json:"type" binding:"required,income_type"`
	Frequency           string      `json:"frequency" binding:"required,pay_frequency"`
	GrossAmount         int64       `json:"gross_amount" binding:"required,gt=0"`
	NetAmount           int64       `json:"net_amount" binding:"required,gt=0"`
	DeductionTaxes      int64       `json:"deduction_taxes" binding:"gte=0"`
	DeductionBenefits   int64       `json:"deduction_benefits" binding:"gte=0"`
	DeductionRetirement int64       `json:"deduction_retirement" binding:"gte=0"`
	DeductionOther      int64       `json:"deduction_other" binding:"gte=0"`
	PayDates            []time.Time `json:"pay_dates"`
}

// UpdateIncomeSourceRequest represents the request payload for updating an income source.
type UpdateIncomeSourceRequest struct {
	Name                string      `json:"name" binding:"omitempty,min=1,max=100"`
	Type                string      `json:"type" binding:"omitempty,income_type"`
	Frequency           string      `json:"frequency" binding:"omitempty,pay_frequency"`
	GrossAmount         int64       `json:"gross_amount" binding:"omitempty,gt=0"`
	NetAmount           int64       `json:"net_amount" binding:"omitempty,gt=0"`
	DeductionTaxes      int64       `json:"deduction_taxes" binding:"gte=0"`
	DeductionBenefits   int64       `json:"deduction_benefits" binding:"gte=0"`
	DeductionRetirement int64       `json:"deduction_retirement" binding:"gte=0"`
	DeductionOther      int64       `json:"deduction_other" binding:"gte=0"`
	PayDates            []time.Time `json:"pay_dates"`
}

// IncomeSummaryResponse represents the aggregated monthly income figures.
type IncomeSummaryResponse struct {
	MonthlyGross    int64   `json:"monthly_gross"`
	MonthlyNet      int64   `json:"monthly_net"`
	TotalDeductions int64   `json:"total_deductions"`
	TaxRate         float64 `json:"tax_rate"`
	ActiveSources   int     `json:"active_sources"`
}

// CreateIncomeSource handles the creation of a new income source
// @Summary     Create an income source
// @Description Create a new income source for the authenticated user
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeSourceRequest true "Income source details"
// @Success     201 {object} models.IncomeSource "Income source created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes [post]
func (h *IncomeHandler) CreateIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.incomeService.CreateIncomeSource(userID, services.IncomeSourceInput{
		Name:                req.Name,
		Type:                models.IncomeType(req.Type),
		Frequency:           models.PayFrequency(req.Frequency),
		GrossAmount:         req.GrossAmount,
		NetAmount:           req.NetAmount,
		DeductionTaxes:      req.DeductionTaxes,
		DeductionBenefits:   req.DeductionBenefits,
		DeductionRetirement: req.DeductionRetirement,
		DeductionOther:      req.DeductionOther,
		PayDates:            req.PayDates,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INCOME_SOURCE", "income_source", source.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "frequency": req.Frequency})

	c.JSON(http.StatusCreated, gin.H{"income_source": source})
}

// GetIncomeSources lists the user's income sources
// @Summary     List income sources
// @Description Get a paginated list of the authenticated user's income sources
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       is_active query bool false "Filter by active state"
// @Success     200 {object} pagination.PageResponse[models.IncomeSource] "Income sources"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes [get]
func (h *IncomeHandler) GetIncomeSources(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var isActive *bool
	if raw, ok := c.GetQuery("is_active"); ok {
		active := raw == "true"
		isActive = &active
	}

	result, err := h.incomeService.GetUserIncomeSources(userID, page, isActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetIncomeSource returns a single income source
// @Summary     Get an income source
// @Description Get one of the authenticated user's income sources by ID
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income source ID"
// @Success     200 {object} models.IncomeSource "Income source"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /incomes/{id} [get]
func (h *IncomeHandler) GetIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	source, err := h.incomeService.GetIncomeSourceByID(userID, sourceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_source": source})
}

// UpdateIncomeSource updates an income source
// @Summary     Update an income source
// @Description Update one of the authenticated user's income sources
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income source ID"
// @Param       request body UpdateIncomeSourceRequest true "Fields to update"
// @Success     200 {object} models.IncomeSource "Income source updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /incomes/{id} [put]
func (h *IncomeHandler) UpdateIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source, err := h.incomeService.UpdateIncomeSource(userID, sourceID, services.IncomeSourceInput{
		Name:                req.Name,
		Type:                models.IncomeType(req.Type),
		Frequency:           models.PayFrequency(req.Frequency),
		GrossAmount:         req.GrossAmount,
		NetAmount:           req.NetAmount,
		DeductionTaxes:      req.DeductionTaxes,
		DeductionBenefits:   req.DeductionBenefits,
		DeductionRetirement: req.DeductionRetirement,
		DeductionOther:      req.DeductionOther,
		PayDates:            req.PayDates,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INCOME_SOURCE", "income_source", source.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"income_source": source})
}

// DeactivateIncomeSource marks an income source inactive
// @Summary     Deactivate an income source
// @Description Exclude an income source from summaries without deleting its history
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income source ID"
// @Success     204 "Income source deactivated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /incomes/{id}/deactivate [post]
func (h *IncomeHandler) DeactivateIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeactivateIncomeSource(userID, sourceID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DEACTIVATE_INCOME_SOURCE", "income_source", sourceID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// DeleteIncomeSource removes an income source
// @Summary     Delete an income source
// @Description Delete one of the authenticated user's income sources
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income source ID"
// @Success     204 "Income source deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncomeSource(userID, sourceID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INCOME_SOURCE", "income_source", sourceID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetIncomeSummary returns aggregated monthly income figures
// @Summary     Get income summary
// @Description Get monthly gross, net, deductions, and effective tax rate across active sources
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} IncomeSummaryResponse "Income summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/summary [get]
func (h *IncomeHandler) GetIncomeSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.incomeService.GetIncomeSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
