package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
	"github.com/leano777/subtracker-api/internal/services"
)

// CardHandler handles payment-card requests.
type CardHandler struct {
	cardService  services.CardServicer
	auditService services.AuditServicer
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService services.CardServicer, auditService services.AuditServicer) *CardHandler {
	return &CardHandler{cardService: cardService, auditService: auditService}
}

// CreateCardRequest represents the request payload for storing a payment card.
// Only the last four digits are accepted.
type CreateCardRequest struct {
	Nickname    string `json:"nickname" binding:"required,min=1,max=50"`
	LastFour    string `json:"last_four" binding:"required,last_four"`
	Brand       string `json:"brand" binding:"required,card_brand"`
	ExpiryMonth int    `json:"expiry_month" binding:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" binding:"required,min=2000,max=2100"`
}

// UpdateCardRequest represents the request payload for updating a card.
type UpdateCardRequest struct {
	Nickname    string `json:"nickname" binding:"omitempty,min=1,max=50"`
	ExpiryMonth *int   `json:"expiry_month" binding:"omitempty,min=1,max=12"`
	ExpiryYear  *int   `json:"expiry_year" binding:"omitempty,min=2000,max=2100"`
}

// CreateCard handles storing a new payment card
// @Summary     Add a payment card
// @Description Store a payment card for linking to subscriptions
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCardRequest true "Card details"
// @Success     201 {object} models.PaymentCard "Card created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.CreateCard(userID, req.Nickname, req.LastFour,
		models.CardBrand(req.Brand), req.ExpiryMonth, req.ExpiryYear)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CARD", "payment_card", card.ID, c.ClientIP(),
		map[string]interface{}{"nickname": req.Nickname, "brand": req.Brand})

	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// GetCards lists the user's payment cards
// @Summary     List payment cards
// @Description Get a paginated list of the authenticated user's cards, default first
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.PaymentCard] "Cards"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards [get]
func (h *CardHandler) GetCards(c *gin.Context) {
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

	result, err := h.cardService.GetUserCards(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCard returns a single payment card
// @Summary     Get a payment card
// @Description Get one of the authenticated user's cards by ID
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Success     200 {object} models.PaymentCard "Card"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /cards/{id} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	card, err := h.cardService.GetCardByID(userID, cardID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// UpdateCard updates a payment card
// @Summary     Update a payment card
// @Description Update one of the authenticated user's cards
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Param       request body UpdateCardRequest true "Fields to update"
// @Success     200 {object} models.PaymentCard "Card updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /cards/{id} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.UpdateCard(userID, cardID, req.Nickname, req.ExpiryMonth, req.ExpiryYear)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CARD", "payment_card", card.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// DeleteCard removes a payment card
// @Summary     Delete a payment card
// @Description Delete one of the authenticated user's cards; cards in use by subscriptions cannot be removed
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Success     204 "Card deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Card in use"
// @Router      /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.cardService.DeleteCard(userID, cardID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CARD", "payment_card", cardID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// SetDefaultCard makes a card the user's default
// @Summary     Set default card
// @Description Make the given card the user's default, clearing any previous default
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Success     200 {object} models.PaymentCard "Card updated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /cards/{id}/default [post]
func (h *CardHandler) SetDefaultCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	card, err := h.cardService.SetDefault(userID, cardID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_DEFAULT_CARD", "payment_card", card.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"card": card})
}
