package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
	"github.com/leano777/subtracker-api/internal/services"
)

type mockSubscriptionService struct {
	createFn   func(userID uint, input services.SubscriptionInput) (*models.Subscription, error)
	listFn     func(userID uint, page pagination.PageRequest, status *models.SubscriptionStatus) (*pagination.PageResponse[models.Subscription], error)
	getFn      func(userID, subscriptionID uint) (*models.Subscription, error)
	updateFn   func(userID, subscriptionID uint, input services.SubscriptionInput) (*models.Subscription, error)
	deleteFn   func(userID, subscriptionID uint) error
	cancelFn   func(userID, subscriptionID uint) (*models.Subscription, error)
	pauseFn    func(userID, subscriptionID uint) (*models.Subscription, error)
	resumeFn   func(userID, subscriptionID uint) (*models.Subscription, error)
	upcomingFn func(userID uint, withinDays int) ([]models.Subscription, error)
	costsFn    func(userID uint) (*services.SubscriptionCostSummary, error)
}

var _ services.SubscriptionServicer = (*mockSubscriptionService)(nil)

func (m *mockSubscriptionService) CreateSubscription(userID uint, input services.SubscriptionInput) (*models.Subscription, error) {
	return m.createFn(userID, input)
}

func (m *mockSubscriptionService) GetUserSubscriptions(userID uint, page pagination.PageRequest, status *models.SubscriptionStatus) (*pagination.PageResponse[models.Subscription], error) {
	return m.listFn(userID, page, status)
}

func (m *mockSubscriptionService) GetSubscriptionByID(userID, subscriptionID uint) (*models.Subscription, error) {
	return m.getFn(userID, subscriptionID)
}

func (m *mockSubscriptionService) UpdateSubscription(userID, subscriptionID uint, input services.SubscriptionInput) (*models.Subscription, error) {
	return m.updateFn(userID, subscriptionID, input)
}

func (m *mockSubscriptionService) DeleteSubscription(userID, subscriptionID uint) error {
	return m.deleteFn(userID, subscriptionID)
}

func (m *mockSubscriptionService) Cancel(userID, subscriptionID uint) (*models.Subscription, error) {
	return m.cancelFn(userID, subscriptionID)
}

func (m *mockSubscriptionService) Pause(userID, subscriptionID uint) (*models.Subscription, error) {
	return m.pauseFn(userID, subscriptionID)
}

func (m *mockSubscriptionService) Resume(userID, subscriptionID uint) (*models.Subscription, error) {
	return m.resumeFn(userID, subscriptionID)
}

func (m *mockSubscriptionService) GetUpcomingRenewals(userID uint, withinDays int) ([]models.Subscription, error) {
	return m.upcomingFn(userID, withinDays)
}

func (m *mockSubscriptionService) GetCostSummary(userID uint) (*services.SubscriptionCostSummary, error) {
	return m.costsFn(userID)
}

func setupSubscriptionRouter(svc services.SubscriptionServicer) *gin.Engine {
	handler := NewSubscriptionHandler(svc, &mockAuditService{})
	r := gin.New()
	auth := r.Group("/", injectUserID(1))
	auth.POST("/subscriptions", handler.CreateSubscription)
	auth.GET("/subscriptions", handler.GetSubscriptions)
	auth.GET("/subscriptions/upcoming", handler.GetUpcomingRenewals)
	auth.GET("/subscriptions/costs", handler.GetCostSummary)
	auth.GET("/subscriptions/:id", handler.GetSubscription)
	auth.PUT("/subscriptions/:id", handler.UpdateSubscription)
	auth.DELETE("/subscriptions/:id", handler.DeleteSubscription)
	auth.POST("/subscriptions/:id/cancel", handler.Cancel)
	auth.POST("/subscriptions/:id/pause", handler.Pause)
	auth.POST("/subscriptions/:id/resume", handler.Resume)
	return r
}

func TestSubscriptionHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.SubscriptionInput
		svc := &mockSubscriptionService{
			createFn: func(userID uint, input services.SubscriptionInput) (*models.Subscription, error) {
				got = input
				return &models.Subscription{
					Base:         models.Base{ID: 1},
					UserID:       userID,
					Name:         input.Name,
					Amount:       input.Amount,
					Currency:     "USD",
					BillingCycle: input.BillingCycle,
					Status:       models.SubscriptionStatusActive,
				}, nil
			},
		}
		r := setupSubscriptionRouter(svc)

		rec := doRequest(r, "POST", "/subscriptions",
			`{"name":"Netflix","amount":1599,"billing_cycle":"monthly","next_billing_date":"2026-10-01T00:00:00Z","category":"entertainment"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.BillingCycle != models.BillingCycleMonthly {
			t.Errorf("expected monthly cycle, got %q", got.BillingCycle)
		}
	})

	t.Run("returns 400 on bad billing cycle", func(t *testing.T) {
		r := setupSubscriptionRouter(&mockSubscriptionService{})

		rec := doRequest(r, "POST", "/subscriptions",
			`{"name":"Netflix","amount":1599,"billing_cycle":"daily","next_billing_date":"2026-10-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad currency", func(t *testing.T) {
		r := setupSubscriptionRouter(&mockSubscriptionService{})

		rec := doRequest(r, "POST", "/subscriptions",
			`{"name":"Netflix","amount":1599,"currency":"DOLLARS","billing_cycle":"monthly","next_billing_date":"2026-10-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for other user's card", func(t *testing.T) {
		svc := &mockSubscriptionService{
			createFn: func(uint, services.SubscriptionInput) (*models.Subscription, error) {
				return nil, apperrors.ErrCardNotFound
			},
		}
		r := setupSubscriptionRouter(svc)

		rec := doRequest(r, "POST", "/subscriptions",
			`{"name":"Netflix","amount":1599,"billing_cycle":"monthly","next_billing_date":"2026-10-01T00:00:00Z","card_id":9}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CARD_NOT_FOUND")
	})
}

func TestSubscriptionHandler_Lifecycle(t *testing.T) {
	t.Run("cancel returns 200", func(t *testing.T) {
		svc := &mockSubscriptionService{
			cancelFn: func(uint, uint) (*models.Subscription, error) {
				return &models.Subscription{Status: models.SubscriptionStatusCancelled}, nil
			},
		}
		r := setupSubscriptionRouter(svc)

		rec := doRequest(r, "POST", "/subscriptions/3/cancel", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		sub := result["subscription"].(map[string]interface{})
		if sub["status"] != "cancelled" {
			t.Errorf("expected status cancelled, got %v", sub["status"])
		}
	})

	t.Run("resume of cancelled returns 409", func(t *testing.T) {
		svc := &mockSubscriptionService{
			resumeFn: func(uint, uint) (*models.Subscription, error) {
				return nil, apperrors.ErrSubscriptionCancelled
			},
		}
		r := setupSubscriptionRouter(svc)

		rec := doRequest(r, "POST", "/subscriptions/3/resume", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SUBSCRIPTION_CANCELLED")
	})
}

func TestSubscriptionHandler_Upcoming(t *testing.T) {
	t.Run("passes days query", func(t *testing.T) {
		var gotDays int
		svc := &mockSubscriptionService{
			upcomingFn: func(_ uint, withinDays int) ([]models.Subscription, error) {
				gotDays = withinDays
				return []models.Subscription{{Name: "Netflix"}}, nil
			},
		}
		r := setupSubscriptionRouter(svc)

		rec := doRequest(r, "GET", "/subscriptions/upcoming?days=30", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotDays != 30 {
			t.Errorf("expected days 30, got %d", gotDays)
		}
		result := parseJSON(t, rec)
		renewals := result["renewals"].([]interface{})
		if len(renewals) != 1 {
			t.Errorf("expected 1 renewal, got %d", len(renewals))
		}
	})
}

func TestSubscriptionHandler_Costs(t *testing.T) {
	svc := &mockSubscriptionService{
		costsFn: func(uint) (*services.SubscriptionCostSummary, error) {
			return &services.SubscriptionCostSummary{
				MonthlyCost: 2500,
				YearlyCost:  30000,
				ActiveCount: 2,
				ByCategory: []services.CategoryCost{
					{Category: "entertainment", MonthlyCost: 2500, Count: 2},
				},
			}, nil
		},
	}
	r := setupSubscriptionRouter(svc)

	rec := doRequest(r, "GET", "/subscriptions/costs", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	summary := result["summary"].(map[string]interface{})
	if summary["monthly_cost"] != float64(2500) {
		t.Errorf("expected monthly_cost 2500, got %v", summary["monthly_cost"])
	}
	if summary["yearly_cost"] != float64(30000) {
		t.Errorf("expected yearly_cost 30000, got %v", summary["yearly_cost"])
	}
}
