package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
	"github.com/leano777/subtracker-api/internal/services"
)

// SubscriptionHandler handles subscription requests.
type SubscriptionHandler struct {
	subscriptionService services.SubscriptionServicer
	auditService        services.AuditServicer
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptionService services.SubscriptionServicer, auditService services.AuditServicer) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, auditService: auditService}
}

// CreateSubscriptionRequest represents the request payload for creating a
// subscription. Amount is per billing cycle, in cents.
type CreateSubscriptionRequest struct {
	Name            string    `json:"name" binding:"required,min=1,max=100"`
	Description     string    `json:"description" binding:"max=500"`
	Amount          int64     `json:"amount" binding:"required,gt=0"`
	Currency        string    `json:"currency" binding:"omitempty,iso4217"`
	BillingCycle    string    `json:"billing_cycle" binding:"required,billing_cycle"`
	NextBillingDate time.Time `json:"next_billing_date" binding:"required"`
	Category        string    `json:"category" binding:"max=50"`
	CardID          *uint     `json:"card_id"`
}

// UpdateSubscriptionRequest represents the request payload for updating a subscription.
type UpdateSubscriptionRequest struct {
	Name            string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description     string    `json:"description" binding:"max=500"`
	Amount          int64     `json:"amount" binding:"omitempty,gt=0"`
	Currency        string    `json:"currency" binding:"omitempty,iso4217"`
	BillingCycle    string    `json:"billing_cycle" binding:"omitempty,billing_cycle"`
	NextBillingDate time.Time `json:"next_billing_date"`
	Category        string    `json:"category" binding:"max=50"`
	CardID          *uint     `json:"card_id"`
}

// CreateSubscription handles the creation of a new subscription
// @Summary     Create a subscription
// @Description Track a new recurring service charge
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSubscriptionRequest true "Subscription details"
// @Success     201 {object} models.Subscription "Subscription created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	subscription, err := h.subscriptionService.CreateSubscription(userID, services.SubscriptionInput{
		Name:            req.Name,
		Description:     req.Description,
		Amount:          req.Amount,
		Currency:        req.Currency,
		BillingCycle:    models.BillingCycle(req.BillingCycle),
		NextBillingDate: req.NextBillingDate,
		Category:        req.Category,
		CardID:          req.CardID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SUBSCRIPTION", "subscription", subscription.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "billing_cycle": req.BillingCycle})

	c.JSON(http.StatusCreated, gin.H{"subscription": subscription})
}

// GetSubscriptions lists the user's subscriptions
// @Summary     List subscriptions
// @Description Get a paginated list of the authenticated user's subscriptions ordered by next billing date
// @Tags        subscriptions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Filter by status"
// @Success     200 {object} pagination.PageResponse[models.Subscription] "Subscriptions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions [get]
func (h *SubscriptionHandler) GetSubscriptions(c *gin.Context) {
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

	var status *models.SubscriptionStatus
	if raw, ok := c.GetQuery("status"); ok {
		s := models.SubscriptionStatus(raw)
		status = &s
	}

	result, err := h.subscriptionService.GetUserSubscriptions(userID, page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSubscription returns a single subscription
// @Summary     Get a subscription
// @Description Get one of the authenticated user's subscriptions by ID
// @Tags        subscriptions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Success     200 {object} models.Subscription "Subscription"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subscriptionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	subscription, err := h.subscriptionService.GetSubscriptionByID(userID, subscriptionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": subscription})
}

// UpdateSubscription updates a subscription
// @Summary     Update a subscription
// @Description Update one of the authenticated user's subscriptions
// @Tags        subscriptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Param       request body UpdateSubscriptionRequest true "Fields to update"
// @Success     200 {object} models.Subscription "Subscription updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /subscriptions/{id} [put]
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subscriptionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	subscription, err := h.subscriptionService.UpdateSubscription(userID, subscriptionID, services.SubscriptionInput{
		Name:            req.Name,
		Description:     req.Description,
		Amount:          req.Amount,
		Currency:        req.Currency,
		BillingCycle:    models.BillingCycle(req.BillingCycle),
		NextBillingDate: req.NextBillingDate,
		Category:        req.Category,
		CardID:          req.CardID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SUBSCRIPTION", "subscription", subscription.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"subscription": subscription})
}

// DeleteSubscription removes a subscription
// @Summary     Delete a subscription
// @Description Delete one of the authenticated user's subscriptions
// @Tags        subscriptions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Success     204 "Subscription deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /subscriptions/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subscriptionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.subscriptionService.DeleteSubscription(userID, subscriptionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SUBSCRIPTION", "subscription", subscriptionID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// Cancel cancels a subscription
// @Summary     Cancel a subscription
// @Description Mark a subscription cancelled; cancellation is terminal
// @Tags        subscriptions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Success     200 {object} models.Subscription "Subscription cancelled"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already cancelled"
// @Router      /subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, "CANCEL_SUBSCRIPTION", h.subscriptionService.Cancel)
}

// Pause pauses a subscription
// @Summary     Pause a subscription
// @Description Mark an active subscription paused
// @Tags        subscriptions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Success     200 {object} models.Subscription "Subscription paused"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already cancelled"
// @Router      /subscriptions/{id}/pause [post]
func (h *SubscriptionHandler) Pause(c *gin.Context) {
	h.lifecycle(c, "PAUSE_SUBSCRIPTION", h.subscriptionService.Pause)
}

// Resume reactivates a paused subscription
// @Summary     Resume a subscription
// @Description Reactivate a paused subscription
// @Tags        subscriptions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Subscription ID"
// @Success     200 {object} models.Subscription "Subscription resumed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already cancelled"
// @Router      /subscriptions/{id}/resume [post]
func (h *SubscriptionHandler) Resume(c *gin.Context) {
	h.lifecycle(c, "RESUME_SUBSCRIPTION", h.subscriptionService.Resume)
}

func (h *SubscriptionHandler) lifecycle(c *gin.Context, action string, fn func(userID, subscriptionID uint) (*models.Subscription, error)) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subscriptionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	subscription, err := fn(userID, subscriptionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, action, "subscription", subscription.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"subscription": subscription})
}

// GetUpcomingRenewals lists subscriptions billing soon
// @Summary     List upcoming renewals
// @Description Get active subscriptions billing within the given number of days
// @Tags        subscriptions
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Window in days (default 7)"
// @Success     200 {array} models.Subscription "Upcoming renewals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions/upcoming [get]
func (h *SubscriptionHandler) GetUpcomingRenewals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := 7
	if raw, ok := c.GetQuery("days"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid days"))
			return
		}
		days = parsed
	}

	renewals, err := h.subscriptionService.GetUpcomingRenewals(userID, days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"renewals": renewals})
}

// GetCostSummary returns the recurring cost breakdown
// @Summary     Get subscription cost summary
// @Description Get monthly and yearly recurring cost across active subscriptions, broken down by category
// @Tags        subscriptions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SubscriptionCostSummary "Cost summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subscriptions/costs [get]
func (h *SubscriptionHandler) GetCostSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.subscriptionService.GetCostSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
