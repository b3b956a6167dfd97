package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// SectionHandler handles section HTTP requests
type SectionHandler struct {
	sectionService *service.SectionService
}

// NewSectionHandler creates a new SectionHandler
func NewSectionHandler(sectionService *service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// CreateSectionRequest represents the create section request body
type CreateSectionRequest struct {
	BudgetID int64  `json:"budgetId"`
	Name     string `json:"name"`
	IsIncome bool   `json:"isIncome"`
}

// UpdateSectionRequest represents the update section request body
type UpdateSectionRequest struct {
	Name     *string `json:"name"`
	IsIncome *bool   `json:"isIncome"`
}

// CreateSection handles POST /api/v1/sections
func (h *SectionHandler) CreateSection(c echo.Context) error {
	var req CreateSectionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	section, err := h.sectionService.CreateSection(req.BudgetID, req.Name, req.IsIncome)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
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
		log.Error().Err(err).Int64("budget_id", req.BudgetID).Msg("Failed to create section")
		return NewInternalError(c, "Failed to create section")
	}

	log.Info().Int64("section_id", section.ID).Str("name", section.Name).Msg("Section created")
	return c.JSON(http.StatusCreated, toSectionResponse(section))
}

// UpdateSection handles PUT /api/v1/sections/:id
func (h *SectionHandler) UpdateSection(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid section ID", nil)
	}

	var req UpdateSectionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	section, err := h.sectionService.UpdateSection(id, service.SectionUpdate{
		Name:     req.Name,
		IsIncome: req.IsIncome,
	})
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
		log.Error().Err(err).Int64("section_id", id).Msg("Failed to update section")
		return NewInternalError(c, "Failed to update section")
	}

	return c.JSON(http.StatusOK, toSectionResponse(section))
}

// DeleteSection handles DELETE /api/v1/sections/:id
func (h *SectionHandler) DeleteSection(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid section ID", nil)
	}

	if err := h.sectionService.DeleteSection(id); err != nil {
		if errors.Is(err, domain.ErrSectionNotFound) {
			return NewNotFoundError(c, "Section not found")
		}
		log.Error().Err(err).Int64("section_id", id).Msg("Failed to delete section")
		return NewInternalError(c, "Failed to delete section")
	}

	log.Info().Int64("section_id", id).Msg("Section deleted")
	return c.NoContent(http.StatusNoContent)
}
