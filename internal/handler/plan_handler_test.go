package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/service"
	"github.com/pfouda/homebudget-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newPlanHandler() (*PlanHandler, *testutil.MockBudgetItemRepository) {
	sectionRepo := testutil.NewMockSectionRepository()
	itemRepo := testutil.NewMockBudgetItemRepository(sectionRepo)
	planRepo := testutil.NewMockPlanRepository(itemRepo)
	planService := service.NewPlanService(planRepo, itemRepo)
	return NewPlanHandler(planService), itemRepo
}

func TestCreatePlan_Success(t *testing.T) {
	e := echo.New()
	handler, itemRepo := newPlanHandler()
	itemRepo.AddItem(&domain.BudgetItem{ID: 1, SectionID: 1, Name: "Electric"})

	reqBody := `{"budgetItemId": 1, "year": 2025, "month": 6}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreatePlan(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.BudgetItemID != 1 {
		t.Errorf("Expected budget item 1, got %d", response.BudgetItemID)
	}
	if response.Total != "0.00" {
		t.Errorf("Expected empty plan total 0.00, got %s", response.Total)
	}
}

func TestCreatePlan_UnknownItem(t *testing.T) {
	e := echo.New()
	handler, _ := newPlanHandler()

	reqBody := `{"budgetItemId": 99, "year": 2025, "month": 6}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreatePlan(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestCreatePlan_Conflict(t *testing.T) {
	e := echo.New()
	handler, itemRepo := newPlanHandler()
	itemRepo.AddItem(&domain.BudgetItem{ID: 1, SectionID: 1, Name: "Electric"})

	for i, expected := range []int{http.StatusCreated, http.StatusConflict} {
		reqBody := `{"budgetItemId": 1, "year": 2025, "month": 6}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.CreatePlan(c); err != nil {
			t.Fatalf("Attempt %d: expected no error, got %v", i, err)
		}
		if rec.Code != expected {
			t.Errorf("Attempt %d: expected status %d, got %d", i, expected, rec.Code)
		}
	}
}

func TestReplacePlanItems_UpdatesItemPlannedAmount(t *testing.T) {
	e := echo.New()
	handler, itemRepo := newPlanHandler()
	item := &domain.BudgetItem{ID: 1, SectionID: 1, Name: "Electric"}
	itemRepo.AddItem(item)

	// Create the plan first
	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/plans",
		strings.NewReader(`{"budgetItemId": 1, "year": 2025, "month": 6}`))
	createReq.Header.Set("Content-Type", "application/json")
	createRec := httptest.NewRecorder()
	if err := handler.CreatePlan(e.NewContext(createReq, createRec)); err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}
	var created PlanResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal created plan: %v", err)
	}

	reqBody := `{"items": [
		{"name": "Base charge", "amount": "30.00"},
		{"name": "Usage", "amount": "20.00"}
	]}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/plans/:id/items")
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.ReplacePlanItems(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Total != "50.00" {
		t.Errorf("Expected plan total 50.00, got %s", response.Total)
	}
	if len(response.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(response.Items))
	}
	if response.Items[0].DisplayOrder != 0 || response.Items[1].DisplayOrder != 1 {
		t.Errorf("Expected zero-based display orders in input order")
	}

	if !item.PlannedAmount.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("Expected owning item planned amount 50.00, got %s", item.PlannedAmount)
	}
}

func TestReplacePlanItems_PlanNotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newPlanHandler()

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"items": []}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/plans/:id/items")
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.ReplacePlanItems(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeletePlan_ResetsItemPlannedAmount(t *testing.T) {
	e := echo.New()
	handler, itemRepo := newPlanHandler()
	item := &domain.BudgetItem{ID: 1, SectionID: 1, Name: "Electric"}
	itemRepo.AddItem(item)

	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/plans",
		strings.NewReader(`{"budgetItemId": 1, "year": 2025, "month": 6}`))
	createReq.Header.Set("Content-Type", "application/json")
	if err := handler.CreatePlan(e.NewContext(createReq, httptest.NewRecorder())); err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	replaceReq := httptest.NewRequest(http.MethodPut, "/",
		strings.NewReader(`{"items": [{"name": "Base charge", "amount": "30.00"}]}`))
	replaceReq.Header.Set("Content-Type", "application/json")
	replaceCtx := e.NewContext(replaceReq, httptest.NewRecorder())
	replaceCtx.SetPath("/api/v1/plans/:id/items")
	replaceCtx.SetParamNames("id")
	replaceCtx.SetParamValues("1")
	if err := handler.ReplacePlanItems(replaceCtx); err != nil {
		t.Fatalf("Failed to replace plan items: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/plans/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.DeletePlan(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}

	if !item.PlannedAmount.IsZero() {
		t.Errorf("Expected planned amount reset to zero, got %s", item.PlannedAmount)
	}
}
