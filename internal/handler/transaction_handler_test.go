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
)

func newTransactionHandler() (*TransactionHandler, *testutil.MockSectionRepository) {
	sectionRepo := testutil.NewMockSectionRepository()
	itemRepo := testutil.NewMockBudgetItemRepository(sectionRepo)
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, sectionRepo, itemRepo)
	importService := service.NewImportService(transactionRepo, sectionRepo, itemRepo)
	return NewTransactionHandler(transactionService, importService), sectionRepo
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	reqBody := `{"type": "EXPENSE", "transactionDate": "2025-06-14", "merchant": "Grocery Mart", "amount": "82.19"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Merchant != "Grocery Mart" {
		t.Errorf("Expected merchant 'Grocery Mart', got %s", response.Merchant)
	}
	if response.Amount != "82.19" {
		t.Errorf("Expected amount '82.19', got %s", response.Amount)
	}
	if response.TransactionDate != "2025-06-14" {
		t.Errorf("Expected date '2025-06-14', got %s", response.TransactionDate)
	}
}

func TestCreateTransaction_InvalidType(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	reqBody := `{"type": "TRANSFER", "transactionDate": "2025-06-14", "merchant": "Grocery Mart", "amount": "82.19"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_UnknownSection(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	reqBody := `{"type": "EXPENSE", "transactionDate": "2025-06-14", "merchant": "Grocery Mart", "amount": "82.19", "sectionId": 7}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.GetTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestImportTransactions_CategorizedRows(t *testing.T) {
	e := echo.New()
	handler, sectionRepo := newTransactionHandler()
	sectionRepo.AddSection(&domain.Section{ID: 1, BudgetID: 1, Name: "Daily Living"})

	reqBody := `{
		"columnMapping": {"date": 0, "merchant": 1, "amount": 2, "category": 3},
		"rows": [
			["2025-06-01", "Grocery Mart", "$45.10", "daily living"],
			["not a date", "Skipped", "10.00", ""],
			["2025-06-03", "", "(12.00)", ""]
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ImportTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response ImportResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Imported != 2 {
		t.Fatalf("Expected 2 imported rows, got %d", response.Imported)
	}

	first := response.Transactions[0]
	if first.SectionID == nil || *first.SectionID != 1 {
		t.Errorf("Expected first row matched to section 1")
	}
	if first.Amount != "45.10" {
		t.Errorf("Expected normalized amount '45.10', got %s", first.Amount)
	}

	second := response.Transactions[1]
	if second.Merchant != "Unknown" {
		t.Errorf("Expected fallback merchant 'Unknown', got %s", second.Merchant)
	}
	if second.Amount != "12.00" {
		t.Errorf("Expected parenthesized amount as absolute '12.00', got %s", second.Amount)
	}
}

func TestImportTransactions_MissingMapping(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import",
		strings.NewReader(`{"rows": [["2025-06-01", "Shop", "10.00"]]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ImportTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTotals(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	for _, reqBody := range []string{
		`{"type": "INCOME", "transactionDate": "2025-06-01", "merchant": "Employer", "amount": "1000.00"}`,
		`{"type": "EXPENSE", "transactionDate": "2025-06-10", "merchant": "Shop", "amount": "250.00"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		if err := handler.CreateTransaction(e.NewContext(req, httptest.NewRecorder())); err != nil {
			t.Fatalf("Failed to seed transaction: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/totals", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTotals(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response TotalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.TotalIncome != "1000.00" {
		t.Errorf("Expected total income '1000.00', got %s", response.TotalIncome)
	}
	if response.TotalExpenses != "250.00" {
		t.Errorf("Expected total expenses '250.00', got %s", response.TotalExpenses)
	}
}
