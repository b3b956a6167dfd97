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
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// BudgetResponse represents a budget with derived totals in API responses
type BudgetResponse struct {
	ID                   int64             `json:"id"`
	Year                 int               `json:"year"`
	Month                int               `json:"month"`
	CreatedAt            string            `json:"createdAt"`
	Sections             []SectionResponse `json:"sections"`
	TotalIncome          string            `json:"totalIncome"`
	TotalExpenses        string            `json:"totalExpenses"`
	TotalPlannedIncome   string            `json:"totalPlannedIncome"`
	TotalPlannedExpenses string            `json:"totalPlannedExpenses"`
}

// SectionResponse represents a section with totals in API responses
type SectionResponse struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	DisplayOrder int            `json:"displayOrder"`
	IsIncome     bool           `json:"isIncome"`
	Items        []ItemResponse `json:"items"`
	TotalPlanned string         `json:"totalPlanned"`
	TotalActual  string         `json:"totalActual"`
}

// ItemResponse represents a budget line item in API responses
type ItemResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PlannedAmount string `json:"plannedAmount"`
	ActualAmount  string `json:"actualAmount"`
	DisplayOrder  int    `json:"displayOrder"`
	Difference    string `json:"difference"`
}

// YearlySummaryResponse represents a yearly summary in API responses
type YearlySummaryResponse struct {
	Year                 int                    `json:"year"`
	Months               []MonthSummaryResponse `json:"months"`
	TotalPlannedIncome   string                 `json:"totalPlannedIncome"`
	TotalActualIncome    string                 `json:"totalActualIncome"`
	TotalPlannedExpenses string                 `json:"totalPlannedExpenses"`
	TotalActualExpenses  string                 `json:"totalActualExpenses"`
	TotalPlannedSavings  string                 `json:"totalPlannedSavings"`
	TotalActualSavings   string                 `json:"totalActualSavings"`
}

// MonthSummaryResponse represents one month within a yearly summary
type MonthSummaryResponse struct {
	Month           int    `json:"month"`
	BudgetID        int64  `json:"budgetId"`
	PlannedIncome   string `json:"plannedIncome"`
	ActualIncome    string `json:"actualIncome"`
	PlannedExpenses string `json:"plannedExpenses"`
	ActualExpenses  string `json:"actualExpenses"`
	PlannedSavings  string `json:"plannedSavings"`
	ActualSavings   string `json:"actualSavings"`
}

// GetBudget handles GET /api/v1/budgets/:year/:month
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	budget, err := h.budgetService.GetBudget(year, month)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		if errors.Is(err, domain.ErrInvalidYear) || errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Invalid year or month", nil)
		}
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// GetOrCreateBudget handles GET /api/v1/budgets/:year/:month/ensure
func (h *BudgetHandler) GetOrCreateBudget(c echo.Context) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	budget, err := h.budgetService.GetOrCreateBudget(year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidYear) || errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Invalid year or month", nil)
		}
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to get or create budget")
		return NewInternalError(c, "Failed to get or create budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// CreateBudget handles POST /api/v1/budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	budget, err := h.budgetService.CreateBudget(req.Year, req.Month)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetAlreadyExists) {
			return NewConflictError(c, "A budget already exists for this month")
		}
		if errors.Is(err, domain.ErrInvalidYear) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "year", Message: "Year must be a four digit year"},
			})
		}
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		log.Error().Err(err).Int("year", req.Year).Int("month", req.Month).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Int64("budget_id", budget.ID).Int("year", budget.Year).Int("month", budget.Month).Msg("Budget created")
	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetYearlySummary handles GET /api/v1/budgets/:year/summary
func (h *BudgetHandler) GetYearlySummary(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", nil)
	}

	summary, err := h.budgetService.GetYearlySummary(year)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidYear) {
			return NewValidationError(c, "Invalid year", nil)
		}
		log.Error().Err(err).Int("year", year).Msg("Failed to build yearly summary")
		return NewInternalError(c, "Failed to build yearly summary")
	}

	return c.JSON(http.StatusOK, toYearlySummaryResponse(summary))
}

func parseYearMonth(c echo.Context) (int, int, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func toBudgetResponse(budget *domain.BudgetRollup) BudgetResponse {
	sections := make([]SectionResponse, len(budget.Sections))
	for i, section := range budget.Sections {
		sections[i] = toSectionResponse(section)
	}
	return BudgetResponse{
		ID:                   budget.ID,
		Year:                 budget.Year,
		Month:                budget.Month,
		CreatedAt:            budget.CreatedAt.Format(time.RFC3339),
		Sections:             sections,
		TotalIncome:          budget.TotalIncome.StringFixed(2),
		TotalExpenses:        budget.TotalExpenses.StringFixed(2),
		TotalPlannedIncome:   budget.TotalPlannedIncome.StringFixed(2),
		TotalPlannedExpenses: budget.TotalPlannedExpenses.StringFixed(2),
	}
}

func toSectionResponse(section *domain.SectionRollup) SectionResponse {
	items := make([]ItemResponse, len(section.Items))
	for i, item := range section.Items {
		items[i] = ItemResponse{
			ID:            item.ID,
			Name:          item.Name,
			PlannedAmount: item.PlannedAmount.StringFixed(2),
			ActualAmount:  item.ActualAmount.StringFixed(2),
			DisplayOrder:  item.DisplayOrder,
			Difference:    item.Difference.StringFixed(2),
		}
	}
	return SectionResponse{
		ID:           section.ID,
		Name:         section.Name,
		DisplayOrder: section.DisplayOrder,
		IsIncome:     section.IsIncome,
		Items:        items,
		TotalPlanned: section.TotalPlanned.StringFixed(2),
		TotalActual:  section.TotalActual.StringFixed(2),
	}
}

func toYearlySummaryResponse(summary *domain.YearlySummary) YearlySummaryResponse {
	months := make([]MonthSummaryResponse, len(summary.Months))
	for i, month := range summary.Months {
		months[i] = MonthSummaryResponse{
			Month:           month.Month,
			BudgetID:        month.BudgetID,
			PlannedIncome:   month.PlannedIncome.StringFixed(2),
			ActualIncome:    month.ActualIncome.StringFixed(2),
			PlannedExpenses: month.PlannedExpenses.StringFixed(2),
			ActualExpenses:  month.ActualExpenses.StringFixed(2),
			PlannedSavings:  month.PlannedSavings.StringFixed(2),
			ActualSavings:   month.ActualSavings.StringFixed(2),
		}
	}
	return YearlySummaryResponse{
		Year:                 summary.Year,
		Months:               months,
		TotalPlannedIncome:   summary.TotalPlannedIncome.StringFixed(2),
		TotalActualIncome:    summary.TotalActualIncome.StringFixed(2),
		TotalPlannedExpenses: summary.TotalPlannedExpenses.StringFixed(2),
		TotalActualExpenses:  summary.TotalActualExpenses.StringFixed(2),
		TotalPlannedSavings:  summary.TotalPlannedSavings.StringFixed(2),
		TotalActualSavings:   summary.TotalActualSavings.StringFixed(2),
	}
}
