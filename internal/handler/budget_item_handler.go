package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetItemHandler handles budget item HTTP requests
type BudgetItemHandler struct {
	itemService *service.BudgetItemService
}

// NewBudgetItemHandler creates a new BudgetItemHandler
func NewBudgetItemHandler(itemService *service.BudgetItemService) *BudgetItemHandler {
	return &BudgetItemHandler{itemService: itemService}
}

// CreateBudgetItemRequest represents the create item request body
type CreateBudgetItemRequest struct {
	SectionID     int64   `json:"sectionId"`
	Name          string  `json:"name"`
	PlannedAmount *string `json:"plannedAmount"`
	ActualAmount  *string `json:"actualAmount"`
}

// UpdateBudgetItemRequest represents the update item request body
type UpdateBudgetItemRequest struct {
	Name          *string `json:"name"`
	PlannedAmount *string `json:"plannedAmount"`
	ActualAmount  *string `json:"actualAmount"`
}

// BudgetItemResponse represents a budget item in API responses
type BudgetItemResponse struct {
	ID            int64  `json:"id"`
	SectionID     int64  `json:"sectionId"`
	Name          string `json:"name"`
	PlannedAmount string `json:"plannedAmount"`
	ActualAmount  string `json:"actualAmount"`
	DisplayOrder  int    `json:"displayOrder"`
}

// CreateItem handles POST /api/v1/items
func (h *BudgetItemHandler) CreateItem(c echo.Context) error {
	var req CreateBudgetItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	planned, err := parseOptionalAmount(req.PlannedAmount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "plannedAmount", Message: "Invalid amount"},
		})
	}
	actual, err := parseOptionalAmount(req.ActualAmount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "actualAmount", Message: "Invalid amount"},
		})
	}

	item, err := h.itemService.CreateItem(req.SectionID, req.Name, planned, actual)
	if err != nil {
		if errors.Is(err, domain.ErrSectionNotFound) {
			return NewNotFoundError(c, "Section not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name cannot be empty"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 100 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "plannedAmount", Message: "Amounts cannot be negative"},
			})
		}
		log.Error().Err(err).Int64("section_id", req.SectionID).Msg("Failed to create budget item")
		return NewInternalError(c, "Failed to create item")
	}

	log.Info().Int64("item_id", item.ID).Str("name", item.Name).Msg("Budget item created")
	return c.JSON(http.StatusCreated, toBudgetItemResponse(item))
}

// UpdateItem handles PUT /api/v1/items/:id
func (h *BudgetItemHandler) UpdateItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req UpdateBudgetItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	planned, err := parseOptionalAmount(req.PlannedAmount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "plannedAmount", Message: "Invalid amount"},
		})
	}
	actual, err := parseOptionalAmount(req.ActualAmount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "actualAmount", Message: "Invalid amount"},
		})
	}

	item, err := h.itemService.UpdateItem(id, service.BudgetItemUpdate{
		Name:          req.Name,
		PlannedAmount: planned,
		ActualAmount:  actual,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name cannot be empty"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 100 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "plannedAmount", Message: "Amounts cannot be negative"},
			})
		}
		log.Error().Err(err).Int64("item_id", id).Msg("Failed to update budget item")
		return NewInternalError(c, "Failed to update item")
	}

	return c.JSON(http.StatusOK, toBudgetItemResponse(item))
}

// DeleteItem handles DELETE /api/v1/items/:id
func (h *BudgetItemHandler) DeleteItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	if err := h.itemService.DeleteItem(id); err != nil {
		if errors.Is(err, domain.ErrBudgetItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		log.Error().Err(err).Int64("item_id", id).Msg("Failed to delete budget item")
		return NewInternalError(c, "Failed to delete item")
	}

	log.Info().Int64("item_id", id).Msg("Budget item deleted")
	return c.NoContent(http.StatusNoContent)
}

func parseOptionalAmount(value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	amount, err := decimal.NewFromString(*value)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func toBudgetItemResponse(item *domain.BudgetItem) BudgetItemResponse {
	return BudgetItemResponse{
		ID:            item.ID,
		SectionID:     item.SectionID,
		Name:          item.Name,
		PlannedAmount: item.PlannedAmount.StringFixed(2),
		ActualAmount:  item.ActualAmount.StringFixed(2),
		DisplayOrder:  item.DisplayOrder,
	}
}
