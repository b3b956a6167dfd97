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

// PlanHandler handles plan HTTP requests
type PlanHandler struct {
	planService *service.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// CreatePlanRequest represents the create plan request body
type CreatePlanRequest struct {
	BudgetItemID int64 `json:"budgetItemId"`
	Year         int   `json:"year"`
	Month        int   `json:"month"`
}

// ReplacePlanItemsRequest represents the replace plan items request body
type ReplacePlanItemsRequest struct {
	Items []PlanItemRequest `json:"items"`
}

// PlanItemRequest is one line of a plan replacement request
type PlanItemRequest struct {
	Name             string  `json:"name"`
	Amount           *string `json:"amount"`
	FromSubscription *bool   `json:"fromSubscription"`
}

// PlanResponse represents a plan in API responses
type PlanResponse struct {
	ID           int64              `json:"id"`
	BudgetItemID int64              `json:"budgetItemId"`
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	CreatedAt    string             `json:"createdAt"`
	Items        []PlanItemResponse `json:"items"`
	Total        string             `json:"total"`
}

// PlanItemResponse represents a plan line in API responses
type PlanItemResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Amount           string `json:"amount"`
	DisplayOrder     int    `json:"displayOrder"`
	FromSubscription bool   `json:"fromSubscription"`
}

// GetPlan handles GET /api/v1/plans/:id
func (h *PlanHandler) GetPlan(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid plan ID", nil)
	}

	plan, err := h.planService.GetPlan(id)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return NewNotFoundError(c, "Plan not found")
		}
		log.Error().Err(err).Int64("plan_id", id).Msg("Failed to get plan")
		return NewInternalError(c, "Failed to get plan")
	}

	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

// GetPlansForMonth handles GET /api/v1/plans?year=&month=
func (h *PlanHandler) GetPlansForMonth(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", nil)
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", nil)
	}

	plans, err := h.planService.GetPlansForMonth(year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidYear) || errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Invalid year or month", nil)
		}
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to get plans")
		return NewInternalError(c, "Failed to get plans")
	}

	response := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		response[i] = toPlanResponse(plan)
	}
	return c.JSON(http.StatusOK, response)
}

// GetPlanByBudgetItem handles GET /api/v1/items/:id/plan?year=&month=
func (h *PlanHandler) GetPlanByBudgetItem(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", nil)
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", nil)
	}

	plan, err := h.planService.GetPlanByBudgetItem(itemID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return NewNotFoundError(c, "Plan not found")
		}
		log.Error().Err(err).Int64("item_id", itemID).Msg("Failed to get plan")
		return NewInternalError(c, "Failed to get plan")
	}

	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

// CreatePlan handles POST /api/v1/plans
func (h *PlanHandler) CreatePlan(c echo.Context) error {
	var req CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	plan, err := h.planService.CreatePlan(req.BudgetItemID, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Budget item not found")
		}
		if errors.Is(err, domain.ErrPlanAlreadyExists) {
			return NewConflictError(c, "A plan already exists for this budget item")
		}
		if errors.Is(err, domain.ErrInvalidYear) || errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Invalid year or month", nil)
		}
		log.Error().Err(err).Int64("item_id", req.BudgetItemID).Msg("Failed to create plan")
		return NewInternalError(c, "Failed to create plan")
	}

	log.Info().Int64("plan_id", plan.ID).Int64("item_id", plan.BudgetItemID).Msg("Plan created")
	return c.JSON(http.StatusCreated, toPlanResponse(plan))
}

// ReplacePlanItems handles PUT /api/v1/plans/:id/items
func (h *PlanHandler) ReplacePlanItems(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid plan ID", nil)
	}

	var req ReplacePlanItemsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	inputs := make([]service.PlanItemInput, len(req.Items))
	for i, item := range req.Items {
		amount, err := parseOptionalAmount(item.Amount)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "items", Message: "Invalid amount"},
			})
		}
		inputs[i] = service.PlanItemInput{
			Name:             item.Name,
			Amount:           amount,
			FromSubscription: item.FromSubscription,
		}
	}

	plan, err := h.planService.ReplacePlanItems(id, inputs)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return NewNotFoundError(c, "Plan not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "items", Message: "Every line needs a name"},
			})
		}
		log.Error().Err(err).Int64("plan_id", id).Msg("Failed to replace plan items")
		return NewInternalError(c, "Failed to replace plan items")
	}

	log.Info().Int64("plan_id", plan.ID).Int("items", len(plan.Items)).Msg("Plan items replaced")
	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

// DeletePlan handles DELETE /api/v1/plans/:id
func (h *PlanHandler) DeletePlan(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid plan ID", nil)
	}

	if err := h.planService.DeletePlan(id); err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return NewNotFoundError(c, "Plan not found")
		}
		log.Error().Err(err).Int64("plan_id", id).Msg("Failed to delete plan")
		return NewInternalError(c, "Failed to delete plan")
	}

	log.Info().Int64("plan_id", id).Msg("Plan deleted")
	return c.NoContent(http.StatusNoContent)
}

func toPlanResponse(plan *domain.Plan) PlanResponse {
	items := make([]PlanItemResponse, len(plan.Items))
	for i, item := range plan.Items {
		items[i] = PlanItemResponse{
			ID:               item.ID,
			Name:             item.Name,
			Amount:           item.Amount.StringFixed(2),
			DisplayOrder:     item.DisplayOrder,
			FromSubscription: item.FromSubscription,
		}
	}
	return PlanResponse{
		ID:           plan.ID,
		BudgetItemID: plan.BudgetItemID,
		Year:         plan.Year,
		Month:        plan.Month,
		CreatedAt:    plan.CreatedAt.Format(time.RFC3339),
		Items:        items,
		Total:        plan.Total().StringFixed(2),
	}
}
