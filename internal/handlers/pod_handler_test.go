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

type mockPodService struct {
	createFn     func(userID uint, name string, category models.PodCategory, monthlyAmount int64, targetAmount *int64, priority int, autoTransfer, rolloverUnused bool, color string) (*models.BudgetPod, error)
	listFn       func(userID uint, page pagination.PageRequest, isActive *bool, category *models.PodCategory) (*pagination.PageResponse[models.BudgetPod], error)
	getFn        func(userID, podID uint) (*models.BudgetPod, error)
	updateFn     func(userID, podID uint, name string, monthlyAmount, targetAmount *int64, priority *int, autoTransfer, rolloverUnused *bool, color string) (*models.BudgetPod, error)
	deleteFn     func(userID, podID uint) error
	contributeFn func(userID, podID uint, amount int64) (*models.BudgetPod, error)
	withdrawFn   func(userID, podID uint, amount int64) (*models.BudgetPod, error)
	summaryFn    func(userID uint) (*services.PodSummary, error)
}

var _ services.PodServicer = (*mockPodService)(nil)

func (m *mockPodService) CreatePod(userID uint, name string, category models.PodCategory, monthlyAmount int64, targetAmount *int64, priority int, autoTransfer, rolloverUnused bool, color string) (*models.BudgetPod, error) {
	return m.createFn(userID, name, category, monthlyAmount, targetAmount, priority, autoTransfer, rolloverUnused, color)
}

func (m *mockPodService) GetUserPods(userID uint, page pagination.PageRequest, isActive *bool, category *models.PodCategory) (*pagination.PageResponse[models.BudgetPod], error) {
	return m.listFn(userID, page, isActive, category)
}

func (m *mockPodService) GetPodByID(userID, podID uint) (*models.BudgetPod, error) {
	return m.getFn(userID, podID)
}

func (m *mockPodService) UpdatePod(userID, podID uint, name string, monthlyAmount, targetAmount *int64, priority *int, autoTransfer, rolloverUnused *bool, color string) (*models.BudgetPod, error) {
	return m.updateFn(userID, podID, name, monthlyAmount, targetAmount, priority, autoTransfer, rolloverUnused, color)
}

func (m *mockPodService) DeletePod(userID, podID uint) error {
	return m.deleteFn(userID, podID)
}

func (m *mockPodService) Contribute(userID, podID uint, amount int64) (*models.BudgetPod, error) {
	return m.contributeFn(userID, podID, amount)
}

func (m *mockPodService) Withdraw(userID, podID uint, amount int64) (*models.BudgetPod, error) {
	return m.withdrawFn(userID, podID, amount)
}

func (m *mockPodService) GetPodSummary(userID uint) (*services.PodSummary, error) {
	return m.summaryFn(userID)
}

func setupPodRouter(svc services.PodServicer) *gin.Engine {
	handler := NewPodHandler(svc, &mockAuditService{})
	r := gin.New()
	auth := r.Group("/", injectUserID(1))
	auth.POST("/pods", handler.CreatePod)
	auth.GET("/pods", handler.GetPods)
	auth.GET("/pods/summary", handler.GetPodSummary)
	auth.GET("/pods/:id", handler.GetPod)
	auth.PUT("/pods/:id", handler.UpdatePod)
	auth.DELETE("/pods/:id", handler.DeletePod)
	auth.POST("/pods/:id/contribute", handler.Contribute)
	auth.POST("/pods/:id/withdraw", handler.Withdraw)
	return r
}

func TestPodHandler_Create(t *testing.T) {
	t.Run("returns 201 and defaults rollover", func(t *testing.T) {
		var gotRollover bool
		svc := &mockPodService{
			createFn: func(userID uint, name string, category models.PodCategory, monthlyAmount int64, _ *int64, _ int, _, rolloverUnused bool, _ string) (*models.BudgetPod, error) {
				gotRollover = rolloverUnused
				return &models.BudgetPod{
					Base:          models.Base{ID: 1},
					UserID:        userID,
					Name:          name,
					Category:      category,
					MonthlyAmount: monthlyAmount,
					IsActive:      true,
				}, nil
			},
		}
		r := setupPodRouter(svc)

		rec := doRequest(r, "POST", "/pods",
			`{"name":"Groceries","category":"spending","monthly_amount":40000,"color":"#FF8800"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotRollover {
			t.Error("expected rollover to default to true")
		}
	})

	t.Run("returns 400 on bad category", func(t *testing.T) {
		r := setupPodRouter(&mockPodService{})

		rec := doRequest(r, "POST", "/pods", `{"name":"Groceries","category":"misc","monthly_amount":40000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad color", func(t *testing.T) {
		r := setupPodRouter(&mockPodService{})

		rec := doRequest(r, "POST", "/pods",
			`{"name":"Groceries","category":"spending","monthly_amount":40000,"color":"orange"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPodHandler_Transfers(t *testing.T) {
	t.Run("contribute returns 200 with updated pod", func(t *testing.T) {
		svc := &mockPodService{
			contributeFn: func(_, _ uint, amount int64) (*models.BudgetPod, error) {
				return &models.BudgetPod{CurrentAmount: amount}, nil
			},
		}
		r := setupPodRouter(svc)

		rec := doRequest(r, "POST", "/pods/2/contribute", `{"amount":5000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		pod := result["pod"].(map[string]interface{})
		if pod["current_amount"] != float64(5000) {
			t.Errorf("expected current_amount 5000, got %v", pod["current_amount"])
		}
	})

	t.Run("withdraw returns 400 on insufficient balance", func(t *testing.T) {
		svc := &mockPodService{
			withdrawFn: func(uint, uint, int64) (*models.BudgetPod, error) {
				return nil, apperrors.ErrInsufficientPodBalance
			},
		}
		r := setupPodRouter(svc)

		rec := doRequest(r, "POST", "/pods/2/withdraw", `{"amount":999999}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_POD_BALANCE")
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		r := setupPodRouter(&mockPodService{})

		rec := doRequest(r, "POST", "/pods/2/contribute", `{"amount":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPodHandler_Summary(t *testing.T) {
	svc := &mockPodService{
		summaryFn: func(uint) (*services.PodSummary, error) {
			return &services.PodSummary{
				TotalBalance:        30000,
				TotalMonthlyTargets: 60000,
				ActivePods:          2,
			}, nil
		},
	}
	r := setupPodRouter(svc)

	rec := doRequest(r, "GET", "/pods/summary", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	summary := result["summary"].(map[string]interface{})
	if summary["total_balance"] != float64(30000) {
		t.Errorf("expected total_balance 30000, got %v", summary["total_balance"])
	}
	if summary["active_pods"] != float64(2) {
		t.Errorf("expected active_pods 2, got %v", summary["active_pods"])
	}
}

func TestPodHandler_Delete(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		svc := &mockPodService{
			deleteFn: func(uint, uint) error { return nil },
		}
		r := setupPodRouter(svc)

		rec := doRequest(r, "DELETE", "/pods/2", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockPodService{
			deleteFn: func(uint, uint) error { return apperrors.ErrPodNotFound },
		}
		r := setupPodRouter(svc)

		rec := doRequest(r, "DELETE", "/pods/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "POD_NOT_FOUND")
	})
}
