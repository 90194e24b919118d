package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/pagination"
	"github.com/leano777/subtracker-api/internal/services"
)

// AllocationHandler handles paycheck-allocation requests.
type AllocationHandler struct {
	allocationService services.AllocationServicer
	auditService      services.AuditServicer
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationService services.AllocationServicer, auditService services.AuditServicer) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService, auditService: auditService}
}

// FixedExpenseRequest is a named expense deducted before pods are funded.
type FixedExpenseRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

// ManualEntryRequest is one {pod, amount} pair in an allocation plan.
type ManualEntryRequest struct {
	PodID  uint  `json:"pod_id" binding:"required"`
	Amount int64 `json:"amount" binding:"gte=0"`
}

// CreateAllocationRequest represents the request payload for creating a
// paycheck allocation. Gross and net amounts default to the income source's
// when omitted. Amounts are in cents.
type CreateAllocationRequest struct {
	IncomeSourceID uint                  `json:"income_source_id" binding:"required"`
	PayDate        time.Time             `json:"pay_date" binding:"required"`
	GrossAmount    int64                 `json:"gross_amount" binding:"gte=0"`
	NetAmount      int64                 `json:"net_amount" binding:"gte=0"`
	FixedExpenses  []FixedExpenseRequest `json:"fixed_expenses" binding:"dive"`
	Entries        []ManualEntryRequest  `json:"entries" binding:"dive"`
	AutoAllocate   bool                  `json:"auto_allocate"`
}

// SetPodAmountRequest represents a manual pod entry update. An amount of 0
// removes the pod from the plan.
type SetPodAmountRequest struct {
	PodID  uint  `json:"pod_id" binding:"required"`
	Amount int64 `json:"amount" binding:"gte=0"`
}

// CreateAllocation handles the creation of a new paycheck allocation
// @Summary     Create a paycheck allocation
// @Description Plan how a paycheck is distributed across pods and fixed expenses
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAllocationRequest true "Allocation details"
// @Success     201 {object} models.PaycheckAllocation "Allocation created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income source or pod not found"
// @Router      /allocations [post]
func (h *AllocationHandler) CreateAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.AllocationInput{
		IncomeSourceID: req.IncomeSourceID,
		PayDate:        req.PayDate,
		GrossAmount:    req.GrossAmount,
		NetAmount:      req.NetAmount,
		AutoAllocate:   req.AutoAllocate,
	}
	for _, e := range req.FixedExpenses {
		input.FixedExpenses = append(input.FixedExpenses, services.ExpenseInput{Name: e.Name, Amount: e.Amount})
	}
	for _, e := range req.Entries {
		input.Entries = append(input.Entries, services.ManualEntry{PodID: e.PodID, Amount: e.Amount})
	}

	allocation, err := h.allocationService.CreateAllocation(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ALLOCATION", "paycheck_allocation", allocation.ID, c.ClientIP(),
		map[string]interface{}{"income_source_id": req.IncomeSourceID, "auto_allocate": req.AutoAllocate})

	c.JSON(http.StatusCreated, gin.H{"allocation": allocation})
}

// GetAllocations lists the user's paycheck allocations
// @Summary     List paycheck allocations
// @Description Get a paginated list of the authenticated user's allocations, newest pay date first
// @Tags        allocations
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       processed query bool false "Filter by processed state"
// @Success     200 {object} pagination.PageResponse[models.PaycheckAllocation] "Allocations"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /allocations [get]
func (h *AllocationHandler) GetAllocations(c *gin.Context) {
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

	var processed *bool
	if raw, ok := c.GetQuery("processed"); ok {
		p := raw == "true"
		processed = &p
	}

	result, err := h.allocationService.GetUserAllocations(userID, page, processed)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAllocation returns a single paycheck allocation
// @Summary     Get a paycheck allocation
// @Description Get one of the authenticated user's allocations with its pod entries and fixed expenses
// @Tags        allocations
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Allocation ID"
// @Success     200 {object} models.PaycheckAllocation "Allocation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /allocations/{id} [get]
func (h *AllocationHandler) GetAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocation, err := h.allocationService.GetAllocationByID(userID, allocationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allocation": allocation})
}

// SetPodAmount sets one pod's share of an allocation
// @Summary     Set a pod entry
// @Description Set or replace one pod's amount in an unprocessed allocation; 0 removes the entry
// @Tags        allocations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Allocation ID"
// @Param       request body SetPodAmountRequest true "Pod entry"
// @Success     200 {object} models.PaycheckAllocation "Allocation updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Allocation already processed"
// @Router      /allocations/{id}/entries [put]
func (h *AllocationHandler) SetPodAmount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetPodAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	allocation, err := h.allocationService.SetPodAmount(userID, allocationID, req.PodID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_ALLOCATION_ENTRY", "paycheck_allocation", allocation.ID, c.ClientIP(),
		map[string]interface{}{"pod_id": req.PodID, "amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"allocation": allocation})
}

// AutoAllocate recomputes an allocation's pod entries
// @Summary     Auto-allocate a paycheck
// @Description Distribute the net amount left after fixed expenses across active pods proportionally to their monthly targets
// @Tags        allocations
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Allocation ID"
// @Success     200 {object} models.PaycheckAllocation "Allocation updated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Allocation already processed"
// @Router      /allocations/{id}/auto [post]
func (h *AllocationHandler) AutoAllocate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocation, err := h.allocationService.AutoAllocate(userID, allocationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "AUTO_ALLOCATE", "paycheck_allocation", allocation.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"allocation": allocation})
}

// ProcessAllocation finalizes an allocation
// @Summary     Process a paycheck allocation
// @Description Credit each allocated pod's balance and mark the allocation processed
// @Tags        allocations
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Allocation ID"
// @Success     200 {object} models.PaycheckAllocation "Allocation processed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Allocation already processed"
// @Router      /allocations/{id}/process [post]
func (h *AllocationHandler) ProcessAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocation, err := h.allocationService.ProcessAllocation(userID, allocationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PROCESS_ALLOCATION", "paycheck_allocation", allocation.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"allocation": allocation})
}

// DeleteAllocation removes an unprocessed allocation
// @Summary     Delete a paycheck allocation
// @Description Delete one of the authenticated user's unprocessed allocations
// @Tags        allocations
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Allocation ID"
// @Success     204 "Allocation deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Allocation already processed"
// @Router      /allocations/{id} [delete]
func (h *AllocationHandler) DeleteAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.allocationService.DeleteAllocation(userID, allocationID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ALLOCATION", "paycheck_allocation", allocationID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
