package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/finance"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
	"github.com/leano777/subtracker-api/internal/services"
)

type mockIncomeService struct {
	createFn     func(userID uint, input services.IncomeSourceInput) (*models.IncomeSource, error)
	listFn       func(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.IncomeSource], error)
	getFn        func(userID, sourceID uint) (*models.IncomeSource, error)
	updateFn     func(userID, sourceID uint, input services.IncomeSourceInput) (*models.IncomeSource, error)
	deactivateFn func(userID, sourceID uint) error
	deleteFn     func(userID, sourceID uint) error
	summaryFn    func(userID uint) (*finance.IncomeSummary, error)
}

var _ services.IncomeServicer = (*mockIncomeService)(nil)

func (m *mockIncomeService) CreateIncomeSource(userID uint, input services.IncomeSourceInput) (*models.IncomeSource, error) {
	return m.createFn(userID, input)
}

func (m *mockIncomeService) GetUserIncomeSources(userID uint, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.IncomeSource], error) {
	return m.listFn(userID, page, isActive)
}

func (m *mockIncomeService) GetIncomeSourceByID(userID, sourceID uint) (*models.IncomeSource, error) {
	return m.getFn(userID, sourceID)
}

func (m *mockIncomeService) UpdateIncomeSource(userID, sourceID uint, input services.IncomeSourceInput) (*models.IncomeSource, error) {
	return m.updateFn(userID, sourceID, input)
}

func (m *mockIncomeService) DeactivateIncomeSource(userID, sourceID uint) error {
	return m.deactivateFn(userID, sourceID)
}

func (m *mockIncomeService) DeleteIncomeSource(userID, sourceID uint) error {
	return m.deleteFn(userID, sourceID)
}

func (m *mockIncomeService) GetIncomeSummary(userID uint) (*finance.IncomeSummary, error) {
	return m.summaryFn(userID)
}

func setupIncomeRouter(svc services.IncomeServicer) *gin.Engine {
	handler := NewIncomeHandler(svc, &mockAuditService{})
	r := gin.New()
	auth := r.Group("/", injectUserID(1))
	auth.POST("/incomes", handler.CreateIncomeSource)
	auth.GET("/incomes", handler.GetIncomeSources)
	auth.GET("/incomes/summary", handler.GetIncomeSummary)
	auth.GET("/incomes/:id", handler.GetIncomeSource)
	auth.PUT("/incomes/:id", handler.UpdateIncomeSource)
	auth.POST("/incomes/:id/deactivate", handler.DeactivateIncomeSource)
	auth.DELETE("/incomes/:id", handler.DeleteIncomeSource)
	return r
}

func TestIncomeHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.IncomeSourceInput
		svc := &mockIncomeService{
			createFn: func(userID uint, input services.IncomeSourceInput) (*models.IncomeSource, error) {
				got = input
				return &models.IncomeSource{
					Base:        models.Base{ID: 1},
					UserID:      userID,
					Name:        input.Name,
					Type:        input.Type,
					Frequency:   input.Frequency,
					GrossAmount: input.GrossAmount,
					NetAmount:   input.NetAmount,
					IsActive:    true,
				}, nil
			},
		}
		r := setupIncomeRouter(svc)

		rec := doRequest(r, "POST", "/incomes",
			`{"name":"Day Job","type":"salary","frequency":"biweekly","gross_amount":250000,"net_amount":180000,"deduction_taxes":70000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Frequency != models.PayFrequencyBiweekly {
			t.Errorf("expected biweekly frequency, got %q", got.Frequency)
		}
		if got.DeductionTaxes != 70000 {
			t.Errorf("expected taxes 70000, got %d", got.DeductionTaxes)
		}
	})

	t.Run("returns 400 on bad frequency", func(t *testing.T) {
		r := setupIncomeRouter(&mockIncomeService{})

		rec := doRequest(r, "POST", "/incomes",
			`{"name":"Day Job","type":"salary","frequency":"fortnightly","gross_amount":250000,"net_amount":180000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing amounts", func(t *testing.T) {
		r := setupIncomeRouter(&mockIncomeService{})

		rec := doRequest(r, "POST", "/incomes", `{"name":"Day Job","type":"salary","frequency":"monthly"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestIncomeHandler_Summary(t *testing.T) {
	t.Run("returns aggregated figures", func(t *testing.T) {
		svc := &mockIncomeService{
			summaryFn: func(uint) (*finance.IncomeSummary, error) {
				return &finance.IncomeSummary{
					MonthlyGross:    542500,
					MonthlyNet:      390600,
					TotalDeductions: 151900,
					TaxRate:         28,
					ActiveSources:   1,
				}, nil
			},
		}
		r := setupIncomeRouter(svc)

		rec := doRequest(r, "GET", "/incomes/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		summary := result["summary"].(map[string]interface{})
		if summary["monthly_gross"] != float64(542500) {
			t.Errorf("expected monthly_gross 542500, got %v", summary["monthly_gross"])
		}
		if summary["tax_rate"] != float64(28) {
			t.Errorf("expected tax_rate 28, got %v", summary["tax_rate"])
		}
	})
}

func TestIncomeHandler_Deactivate(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		var gotSource uint
		svc := &mockIncomeService{
			deactivateFn: func(_, sourceID uint) error {
				gotSource = sourceID
				return nil
			},
		}
		r := setupIncomeRouter(svc)

		rec := doRequest(r, "POST", "/incomes/3/deactivate", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if gotSource != 3 {
			t.Errorf("expected source 3, got %d", gotSource)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockIncomeService{
			deactivateFn: func(uint, uint) error { return apperrors.ErrIncomeSourceNotFound },
		}
		r := setupIncomeRouter(svc)

		rec := doRequest(r, "POST", "/incomes/99/deactivate", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INCOME_SOURCE_NOT_FOUND")
	})
}

func TestIncomeHandler_List(t *testing.T) {
	t.Run("passes is_active filter", func(t *testing.T) {
		var gotActive *bool
		svc := &mockIncomeService{
			listFn: func(_ uint, _ pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.IncomeSource], error) {
				gotActive = isActive
				return &pagination.PageResponse[models.IncomeSource]{Data: []models.IncomeSource{}}, nil
			},
		}
		r := setupIncomeRouter(svc)

		rec := doRequest(r, "GET", "/incomes?is_active=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotActive == nil || *gotActive != true {
			t.Errorf("expected is_active filter true, got %v", gotActive)
		}
	})
}
