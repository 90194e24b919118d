package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/models"
	"github.com/leano777/subtracker-api/internal/pagination"
	"github.com/leano777/subtracker-api/internal/services"
)

type mockAllocationService struct {
	createFn       func(userID uint, input services.AllocationInput) (*models.PaycheckAllocation, error)
	listFn         func(userID uint, page pagination.PageRequest, processed *bool) (*pagination.PageResponse[models.PaycheckAllocation], error)
	getFn          func(userID, allocationID uint) (*models.PaycheckAllocation, error)
	setPodAmountFn func(userID, allocationID, podID uint, amount int64) (*models.PaycheckAllocation, error)
	autoAllocateFn func(userID, allocationID uint) (*models.PaycheckAllocation, error)
	processFn      func(userID, allocationID uint) (*models.PaycheckAllocation, error)
	deleteFn       func(userID, allocationID uint) error
}

var _ services.AllocationServicer = (*mockAllocationService)(nil)

func (m *mockAllocationService) CreateAllocation(userID uint, input services.AllocationInput) (*models.PaycheckAllocation, error) {
	return m.createFn(userID, input)
}

func (m *mockAllocationService) GetUserAllocations(userID uint, page pagination.PageRequest, processed *bool) (*pagination.PageResponse[models.PaycheckAllocation], error) {
	return m.listFn(userID, page, processed)
}

func (m *mockAllocationService) GetAllocationByID(userID, allocationID uint) (*models.PaycheckAllocation, error) {
	return m.getFn(userID, allocationID)
}

func (m *mockAllocationService) SetPodAmount(userID, allocationID, podID uint, amount int64) (*models.PaycheckAllocation, error) {
	return m.setPodAmountFn(userID, allocationID, podID, amount)
}

func (m *mockAllocationService) AutoAllocate(userID, allocationID uint) (*models.PaycheckAllocation, error) {
	return m.autoAllocateFn(userID, allocationID)
}

func (m *mockAllocationService) ProcessAllocation(userID, allocationID uint) (*models.PaycheckAllocation, error) {
	return m.processFn(userID, allocationID)
}

func (m *mockAllocationService) DeleteAllocation(userID, allocationID uint) error {
	return m.deleteFn(userID, allocationID)
}

func setupAllocationRouter(svc services.AllocationServicer) *gin.Engine {
	handler := NewAllocationHandler(svc, &mockAuditService{})
	r := gin.New()
	auth := r.Group("/", injectUserID(1))
	auth.POST("/allocations", handler.CreateAllocation)
	auth.GET("/allocations", handler.GetAllocations)
	auth.GET("/allocations/:id", handler.GetAllocation)
	auth.PUT("/allocations/:id/entries", handler.SetPodAmount)
	auth.POST("/allocations/:id/auto", handler.AutoAllocate)
	auth.POST("/allocations/:id/process", handler.ProcessAllocation)
	auth.DELETE("/allocations/:id", handler.DeleteAllocation)
	return r
}

func TestAllocationHandler_Create(t *testing.T) {
	t.Run("returns 201 and passes entries through", func(t *testing.T) {
		var got services.AllocationInput
		svc := &mockAllocationService{
			createFn: func(userID uint, input services.AllocationInput) (*models.PaycheckAllocation, error) {
				got = input
				return &models.PaycheckAllocation{
					UserID:          userID,
					IncomeSourceID:  input.IncomeSourceID,
					NetAmount:       180000,
					RemainingAmount: 135000,
				}, nil
			},
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "POST", "/allocations",
			`{"income_source_id":3,"pay_date":"2026-03-15T00:00:00Z","entries":[{"pod_id":7,"amount":45000}]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.IncomeSourceID != 3 {
			t.Errorf("expected income source 3, got %d", got.IncomeSourceID)
		}
		if len(got.Entries) != 1 || got.Entries[0].PodID != 7 || got.Entries[0].Amount != 45000 {
			t.Errorf("unexpected entries: %+v", got.Entries)
		}
		if !got.PayDate.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected pay date: %v", got.PayDate)
		}
	})

	t.Run("returns 400 without income source", func(t *testing.T) {
		r := setupAllocationRouter(&mockAllocationService{})

		rec := doRequest(r, "POST", "/allocations", `{"pay_date":"2026-03-15T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 for unknown income source", func(t *testing.T) {
		svc := &mockAllocationService{
			createFn: func(uint, services.AllocationInput) (*models.PaycheckAllocation, error) {
				return nil, apperrors.ErrIncomeSourceNotFound
			},
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "POST", "/allocations",
			`{"income_source_id":99,"pay_date":"2026-03-15T00:00:00Z"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INCOME_SOURCE_NOT_FOUND")
	})
}

func TestAllocationHandler_SetPodAmount(t *testing.T) {
	t.Run("returns 200 on update", func(t *testing.T) {
		var gotAllocation, gotPod uint
		var gotAmount int64
		svc := &mockAllocationService{
			setPodAmountFn: func(_, allocationID, podID uint, amount int64) (*models.PaycheckAllocation, error) {
				gotAllocation, gotPod, gotAmount = allocationID, podID, amount
				return &models.PaycheckAllocation{RemainingAmount: 90000}, nil
			},
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "PUT", "/allocations/5/entries", `{"pod_id":2,"amount":30000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotAllocation != 5 || gotPod != 2 || gotAmount != 30000 {
			t.Errorf("unexpected args: allocation=%d pod=%d amount=%d", gotAllocation, gotPod, gotAmount)
		}
	})

	t.Run("returns 409 when processed", func(t *testing.T) {
		svc := &mockAllocationService{
			setPodAmountFn: func(uint, uint, uint, int64) (*models.PaycheckAllocation, error) {
				return nil, apperrors.ErrAllocationProcessed
			},
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "PUT", "/allocations/5/entries", `{"pod_id":2,"amount":30000}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ALLOCATION_PROCESSED")
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupAllocationRouter(&mockAllocationService{})

		rec := doRequest(r, "PUT", "/allocations/abc/entries", `{"pod_id":2,"amount":30000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAllocationHandler_Process(t *testing.T) {
	t.Run("returns 200 with processed allocation", func(t *testing.T) {
		now := time.Now()
		svc := &mockAllocationService{
			processFn: func(_, allocationID uint) (*models.PaycheckAllocation, error) {
				return &models.PaycheckAllocation{Processed: true, ProcessedAt: &now}, nil
			},
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "POST", "/allocations/5/process", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		allocation := result["allocation"].(map[string]interface{})
		if allocation["processed"] != true {
			t.Errorf("expected processed=true, got %v", allocation["processed"])
		}
	})

	t.Run("returns 409 when already processed", func(t *testing.T) {
		svc := &mockAllocationService{
			processFn: func(uint, uint) (*models.PaycheckAllocation, error) {
				return nil, apperrors.ErrAllocationProcessed
			},
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "POST", "/allocations/5/process", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestAllocationHandler_List(t *testing.T) {
	t.Run("passes processed filter", func(t *testing.T) {
		var gotProcessed *bool
		svc := &mockAllocationService{
			listFn: func(_ uint, page pagination.PageRequest, processed *bool) (*pagination.PageResponse[models.PaycheckAllocation], error) {
				gotProcessed = processed
				return &pagination.PageResponse[models.PaycheckAllocation]{Data: []models.PaycheckAllocation{}}, nil
			},
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "GET", "/allocations?processed=false", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotProcessed == nil || *gotProcessed != false {
			t.Errorf("expected processed filter false, got %v", gotProcessed)
		}
	})
}

func TestAllocationHandler_Delete(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		svc := &mockAllocationService{
			deleteFn: func(uint, uint) error { return nil },
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "DELETE", "/allocations/5", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockAllocationService{
			deleteFn: func(uint, uint) error { return apperrors.ErrAllocationNotFound },
		}
		r := setupAllocationRouter(svc)

		rec := doRequest(r, "DELETE", "/allocations/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
