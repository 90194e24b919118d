package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
	"github.com/leano777/subtracker-api/internal/services"
)

// PodHandler handles budget-pod requests.
type PodHandler struct {
	podService   services.PodServicer
	auditService services.AuditServicer
}

// NewPodHandler creates a new PodHandler.
func NewPodHandler(podService services.PodServicer, auditService services.AuditServicer) *PodHandler {
	return &PodHandler{podService: podService, auditService: auditService}
}

// CreatePodRequest represents the request payload for creating a budget pod.
// Amounts are in cents.
type CreatePodRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Category       string `json:"category" binding:"required,pod_category"`
	MonthlyAmount  int64  `json:"monthly_amount" binding:"required,gt=0"`
	TargetAmount   *int64 `json:"target_amount" binding:"omitempty,gt=0"`
	Priority       int    `json:"priority" binding:"omitempty,min=1,max=5"`
	AutoTransfer   bool   `json:"auto_transfer"`
	RolloverUnused *bool  `json:"rollover_unused"`
	Color          string `json:"color" binding:"omitempty,hex_color"`
}

// UpdatePodRequest represents the request payload for updating a budget pod.
type UpdatePodRequest struct {
	Name           string `json:"name" binding:"omitempty,min=1,max=100"`
	MonthlyAmount  *int64 `json:"monthly_amount" binding:"omitempty,gt=0"`
	TargetAmount   *int64 `json:"target_amount" binding:"omitempty,gt=0"`
	Priority       *int   `json:"priority" binding:"omitempty,min=1,max=5"`
	AutoTransfer   *bool  `json:"auto_transfer"`
	RolloverUnused *bool  `json:"rollover_unused"`
	Color          string `json:"color" binding:"omitempty,hex_color"`
}

// PodTransferRequest represents a contribution to or withdrawal from a pod.
type PodTransferRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// CreatePod handles the creation of a new budget pod
// @Summary     Create a budget pod
// @Description Create a new budget pod for the authenticated user
// @Tags        pods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePodRequest true "Pod details"
// @Success     201 {object} models.BudgetPod "Pod created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pods [post]
func (h *PodHandler) CreatePod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rollover := true
	if req.RolloverUnused != nil {
		rollover = *req.RolloverUnused
	}
	priority := req.Priority
	if priority == 0 {
		priority = 3
	}

	pod, err := h.podService.CreatePod(userID, req.Name, models.PodCategory(req.Category),
		req.MonthlyAmount, req.TargetAmount, priority, req.AutoTransfer, rollover, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_POD", "budget_pod", pod.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "category": req.Category})

	c.JSON(http.StatusCreated, gin.H{"pod": pod})
}

// GetPods lists the user's budget pods
// @Summary     List budget pods
// @Description Get a paginated list of the authenticated user's budget pods
// @Tags        pods
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       is_active query bool false "Filter by active state"
// @Param       category query string false "Filter by category"
// @Success     200 {object} pagination.PageResponse[models.BudgetPod] "Pods"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pods [get]
func (h *PodHandler) GetPods(c *gin.Context) {
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

	var category *models.PodCategory
	if raw, ok := c.GetQuery("category"); ok {
		cat := models.PodCategory(raw)
		category = &cat
	}

	result, err := h.podService.GetUserPods(userID, page, isActive, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPod returns a single budget pod
// @Summary     Get a budget pod
// @Description Get one of the authenticated user's pods by ID
// @Tags        pods
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Pod ID"
// @Success     200 {object} models.BudgetPod "Pod"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /pods/{id} [get]
func (h *PodHandler) GetPod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	podID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	pod, err := h.podService.GetPodByID(userID, podID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pod": pod})
}

// UpdatePod updates a budget pod
// @Summary     Update a budget pod
// @Description Update one of the authenticated user's pods
// @Tags        pods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Pod ID"
// @Param       request body UpdatePodRequest true "Fields to update"
// @Success     200 {object} models.BudgetPod "Pod updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /pods/{id} [put]
func (h *PodHandler) UpdatePod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	podID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	pod, err := h.podService.UpdatePod(userID, podID, req.Name, req.MonthlyAmount,
		req.TargetAmount, req.Priority, req.AutoTransfer, req.RolloverUnused, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_POD", "budget_pod", pod.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"pod": pod})
}

// DeletePod removes a budget pod
// @Summary     Delete a budget pod
// @Description Delete one of the authenticated user's pods
// @Tags        pods
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Pod ID"
// @Success     204 "Pod deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /pods/{id} [delete]
func (h *PodHandler) DeletePod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	podID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.podService.DeletePod(userID, podID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_POD", "budget_pod", podID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// Contribute adds funds to a pod
// @Summary     Contribute to a pod
// @Description Add funds to one of the authenticated user's pods
// @Tags        pods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Pod ID"
// @Param       request body PodTransferRequest true "Amount in cents"
// @Success     200 {object} models.BudgetPod "Pod updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /pods/{id}/contribute [post]
func (h *PodHandler) Contribute(c *gin.Context) {
	h.transfer(c, "CONTRIBUTE_POD", h.podService.Contribute)
}

// Withdraw removes funds from a pod
// @Summary     Withdraw from a pod
// @Description Remove funds from one of the authenticated user's pods
// @Tags        pods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Pod ID"
// @Param       request body PodTransferRequest true "Amount in cents"
// @Success     200 {object} models.BudgetPod "Pod updated"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /pods/{id}/withdraw [post]
func (h *PodHandler) Withdraw(c *gin.Context) {
	h.transfer(c, "WITHDRAW_POD", h.podService.Withdraw)
}

func (h *PodHandler) transfer(c *gin.Context, action string, fn func(userID, podID uint, amount int64) (*models.BudgetPod, error)) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	podID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PodTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	pod, err := fn(userID, podID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, action, "budget_pod", pod.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"pod": pod})
}

// GetPodSummary returns aggregated pod balances
// @Summary     Get pod summary
// @Description Get total balances and funding levels across the user's active pods
// @Tags        pods
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PodSummary "Pod summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pods/summary [get]
func (h *PodHandler) GetPodSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.podService.GetPodSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
