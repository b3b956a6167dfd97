package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	importService      *service.ImportService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, importService *service.ImportService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		importService:      importService,
	}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Type            string  `json:"type"`
	TransactionDate string  `json:"transactionDate"`
	Merchant        string  `json:"merchant"`
	Amount          string  `json:"amount"`
	Note            string  `json:"note"`
	SectionID       *int64  `json:"sectionId"`
	BudgetItemID    *int64  `json:"budgetItemId"`
}

// UpdateTransactionRequest represents the update transaction request body
type UpdateTransactionRequest struct {
	Type            *string `json:"type"`
	TransactionDate *string `json:"transactionDate"`
	Merchant        *string `json:"merchant"`
	Amount          *string `json:"amount"`
	Note            *string `json:"note"`
	SectionID       *int64  `json:"sectionId"`
	BudgetItemID    *int64  `json:"budgetItemId"`
}

// ImportTransactionsRequest represents the CSV import request body
type ImportTransactionsRequest struct {
	ColumnMapping map[string]int `json:"columnMapping"`
	Rows          [][]string     `json:"rows"`
	DateFormat    string         `json:"dateFormat"`
	SkipFirstRow  bool           `json:"skipFirstRow"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              int64  `json:"id"`
	Type            string `json:"type"`
	TransactionDate string `json:"transactionDate"`
	Merchant        string `json:"merchant"`
	Amount          string `json:"amount"`
	Note            string `json:"note,omitempty"`
	SectionID       *int64 `json:"sectionId,omitempty"`
	BudgetItemID    *int64 `json:"budgetItemId,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// PaginatedTransactionsResponse represents a page of transactions
type PaginatedTransactionsResponse struct {
	Data       []TransactionResponse `json:"data"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalItems int64                 `json:"totalItems"`
	TotalPages int                   `json:"totalPages"`
}

// ImportResultResponse summarises an import run
type ImportResultResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TotalsResponse represents income and expense totals for a window
type TotalsResponse struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransaction(id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filters, err := parseTransactionFilters(c)
	if err != nil {
		return NewValidationError(c, "Invalid filter parameters", nil)
	}

	page, err := h.transactionService.GetTransactions(filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	transactions := make([]TransactionResponse, len(page.Data))
	for i, transaction := range page.Data {
		transactions[i] = toTransactionResponse(transaction)
	}
	return c.JSON(http.StatusOK, PaginatedTransactionsResponse{
		Data:       transactions,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transactionDate, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "transactionDate", Message: "Date must be in YYYY-MM-DD format"},
		})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Invalid amount"},
		})
	}

	transaction, err := h.transactionService.CreateTransaction(service.CreateTransactionInput{
		Type:            domain.TransactionType(req.Type),
		TransactionDate: transactionDate,
		Merchant:        req.Merchant,
		Amount:          amount,
		Note:            req.Note,
		SectionID:       req.SectionID,
		BudgetItemID:    req.BudgetItemID,
	})
	if err != nil {
		if response := transactionValidationResponse(c, err); response != nil {
			return response
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Int64("transaction_id", transaction.ID).Str("merchant", transaction.Merchant).Msg("Transaction created")
	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateTransactionInput{
		Merchant:     req.Merchant,
		Note:         req.Note,
		SectionID:    req.SectionID,
		BudgetItemID: req.BudgetItemID,
	}
	if req.Type != nil {
		txType := domain.TransactionType(*req.Type)
		input.Type = &txType
	}
	if req.TransactionDate != nil {
		transactionDate, err := time.Parse(dateLayout, *req.TransactionDate)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "transactionDate", Message: "Date must be in YYYY-MM-DD format"},
			})
		}
		input.TransactionDate = &transactionDate
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Invalid amount"},
			})
		}
		input.Amount = &amount
	}

	transaction, err := h.transactionService.UpdateTransaction(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if response := transactionValidationResponse(c, err); response != nil {
			return response
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Int64("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// ImportTransactions handles POST /api/v1/transactions/import
func (h *TransactionHandler) ImportTransactions(c echo.Context) error {
	var req ImportTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.ColumnMapping) == 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "columnMapping", Message: "Column mapping is required"},
		})
	}

	imported, err := h.importService.ImportRows(service.ImportRequest{
		ColumnMapping: req.ColumnMapping,
		Rows:          req.Rows,
		DateFormat:    req.DateFormat,
		SkipFirstRow:  req.SkipFirstRow,
	})
	if err != nil {
		log.Error().Err(err).Int("imported", len(imported)).Msg("Import aborted")
		return NewInternalError(c, "Import failed partway; already-imported rows were kept")
	}

	transactions := make([]TransactionResponse, len(imported))
	for i, transaction := range imported {
		transactions[i] = toTransactionResponse(transaction)
	}
	return c.JSON(http.StatusOK, ImportResultResponse{
		Imported:     len(imported),
		Transactions: transactions,
	})
}

// GetTotals handles GET /api/v1/transactions/totals
func (h *TransactionHandler) GetTotals(c echo.Context) error {
	startDate, endDate, err := parseDateWindow(c)
	if err != nil {
		return NewValidationError(c, "Dates must be in YYYY-MM-DD format", nil)
	}

	income, err := h.transactionService.GetTotalByType(domain.TransactionTypeIncome, startDate, endDate)
	if err != nil {
		log.Error().Err(err).Msg("Failed to total income")
		return NewInternalError(c, "Failed to compute totals")
	}
	expenses, err := h.transactionService.GetTotalByType(domain.TransactionTypeExpense, startDate, endDate)
	if err != nil {
		log.Error().Err(err).Msg("Failed to total expenses")
		return NewInternalError(c, "Failed to compute totals")
	}

	return c.JSON(http.StatusOK, TotalsResponse{
		TotalIncome:   income.StringFixed(2),
		TotalExpenses: expenses.StringFixed(2),
	})
}

func transactionValidationResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be INCOME or EXPENSE"},
		})
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "transactionDate", Message: "Date is required"},
		})
	case errors.Is(err, domain.ErrMerchantRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "merchant", Message: "Merchant is required"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrSectionNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "sectionId", Message: "Section does not exist"},
		})
	case errors.Is(err, domain.ErrBudgetItemNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "budgetItemId", Message: "Budget item does not exist"},
		})
	}
	return nil
}

func parseTransactionFilters(c echo.Context) (*domain.TransactionFilters, error) {
	filters := &domain.TransactionFilters{}
	if raw := c.QueryParam("section"); raw != "" {
		filters.SectionName = &raw
	}
	if raw := c.QueryParam("item"); raw != "" {
		filters.BudgetItemName = &raw
	}
	if raw := c.QueryParam("merchant"); raw != "" {
		filters.Merchant = &raw
	}

	startDate, endDate, err := parseDateWindow(c)
	if err != nil {
		return nil, err
	}
	filters.StartDate = startDate
	filters.EndDate = endDate

	if raw := c.QueryParam("type"); raw != "" {
		txType := domain.TransactionType(raw)
		filters.Type = &txType
	}
	if raw := c.QueryParam("sectionId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		filters.SectionID = &id
	}
	if raw := c.QueryParam("itemId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		filters.BudgetItemID = &id
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		filters.Page = page
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		filters.PageSize = pageSize
	}
	return filters, nil
}

func parseDateWindow(c echo.Context) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if raw := c.QueryParam("startDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, nil, err
		}
		startDate = &parsed
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, nil, err
		}
		endDate = &parsed
	}
	return startDate, endDate, nil
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              transaction.ID,
		Type:            string(transaction.Type),
		TransactionDate: transaction.TransactionDate.Format(dateLayout),
		Merchant:        transaction.Merchant,
		Amount:          transaction.Amount.StringFixed(2),
		Note:            transaction.Note,
		SectionID:       transaction.SectionID,
		BudgetItemID:    transaction.BudgetItemID,
		CreatedAt:       transaction.CreatedAt.Format(time.RFC3339),
	}
}
