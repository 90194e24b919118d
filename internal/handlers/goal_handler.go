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

// GoalHandler handles financial-goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal.
// Amounts are in cents.
type CreateGoalRequest struct {
	Title               string    `json:"title" binding:"required,min=1,max=100"`
	Category            string    `json:"category" binding:"required,goal_category"`
	TargetAmount        int64     `json:"target_amount" binding:"required,gt=0"`
	Deadline            time.Time `json:"deadline" binding:"required"`
	Priority            int       `json:"priority" binding:"omitempty,min=1,max=5"`
	MonthlyContribution *int64    `json:"monthly_contribution" binding:"omitempty,gt=0"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
type UpdateGoalRequest struct {
	Title               string     `json:"title" binding:"omitempty,min=1,max=100"`
	TargetAmount        *int64     `json:"target_amount" binding:"omitempty,gt=0"`
	Deadline            *time.Time `json:"deadline"`
	Priority            *int       `json:"priority" binding:"omitempty,min=1,max=5"`
	Status              *string    `json:"status" binding:"omitempty,goal_status"`
	MonthlyContribution *int64     `json:"monthly_contribution" binding:"omitempty,gt=0"`
}

// ContributionRequest represents a contribution toward a goal.
type ContributionRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// CreateGoal handles the creation of a new financial goal
// @Summary     Create a financial goal
// @Description Create a new savings goal with a target amount and deadline
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.FinancialGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(userID, req.Title, models.GoalCategory(req.Category),
		req.TargetAmount, req.Deadline, req.Priority, req.MonthlyContribution)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "financial_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title, "target_amount": req.TargetAmount})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals lists the user's goals
// @Summary     List financial goals
// @Description Get a paginated list of the authenticated user's goals ordered by deadline
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Filter by status"
// @Success     200 {object} pagination.PageResponse[models.FinancialGoal] "Goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
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

	var status *models.GoalStatus
	if raw, ok := c.GetQuery("status"); ok {
		s := models.GoalStatus(raw)
		status = &s
	}

	result, err := h.goalService.GetUserGoals(userID, page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoal returns a single goal
// @Summary     Get a financial goal
// @Description Get one of the authenticated user's goals by ID
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.FinancialGoal "Goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal updates a goal
// @Summary     Update a financial goal
// @Description Update one of the authenticated user's goals
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} models.FinancialGoal "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.GoalStatus
	if req.Status != nil {
		s := models.GoalStatus(*req.Status)
		status = &s
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, req.Title, req.TargetAmount,
		req.Deadline, req.Priority, status, req.MonthlyContribution)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "financial_goal", goal.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal removes a goal
// @Summary     Delete a financial goal
// @Description Delete one of the authenticated user's goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     204 "Goal deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "financial_goal", goalID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// AddContribution records a contribution toward a goal
// @Summary     Contribute to a goal
// @Description Add an amount to a goal's saved balance; reaching the target completes the goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body ContributionRequest true "Amount in cents"
// @Success     200 {object} models.FinancialGoal "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goals/{id}/contribute [post]
func (h *GoalHandler) AddContribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.AddContribution(userID, goalID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONTRIBUTE_GOAL", "financial_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// GetGoalProgress evaluates a goal's progress
// @Summary     Get goal progress
// @Description Evaluate a goal's progress, expected pace, and deadline pressure as of now
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} finance.GoalProgress "Goal progress"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goals/{id}/progress [get]
func (h *GoalHandler) GetGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.goalService.GetGoalProgress(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
