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

// SalaryHandler handles salary HTTP requests
type SalaryHandler struct {
	salaryService *service.SalaryService
}

// NewSalaryHandler creates a new SalaryHandler
func NewSalaryHandler(salaryService *service.SalaryService) *SalaryHandler {
	return &SalaryHandler{salaryService: salaryService}
}

// CreateSalaryRequest represents the create salary request body
type CreateSalaryRequest struct {
	Name                    string  `json:"name"`
	RegularAmount           string  `json:"regularAmount"`
	FederalTax              string  `json:"federalTax"`
	Medicare                string  `json:"medicare"`
	SocialSecurity          string  `json:"socialSecurity"`
	FourOhOneK              *string `json:"fourOhOneK"`
	ExtraTaxWithholding     *string `json:"extraTaxWithholding"`
	HealthSavingsAccount    *string `json:"healthSavingsAccount"`
	MedicalInsurance        *string `json:"medicalInsurance"`
	FlexibleSpendingAccount *string `json:"flexibleSpendingAccount"`
}

// UpdateSalaryRequest represents the update salary request body. Optional
// deductions are always applied, so omitting one clears it.
type UpdateSalaryRequest struct {
	Name                    *string `json:"name"`
	RegularAmount           *string `json:"regularAmount"`
	FederalTax              *string `json:"federalTax"`
	Medicare                *string `json:"medicare"`
	SocialSecurity          *string `json:"socialSecurity"`
	FourOhOneK              *string `json:"fourOhOneK"`
	ExtraTaxWithholding     *string `json:"extraTaxWithholding"`
	HealthSavingsAccount    *string `json:"healthSavingsAccount"`
	MedicalInsurance        *string `json:"medicalInsurance"`
	FlexibleSpendingAccount *string `json:"flexibleSpendingAccount"`
}

// SalaryResponse represents a salary profile in API responses
type SalaryResponse struct {
	ID                      int64   `json:"id"`
	Name                    string  `json:"name"`
	RegularAmount           string  `json:"regularAmount"`
	FederalTax              string  `json:"federalTax"`
	Medicare                string  `json:"medicare"`
	SocialSecurity          string  `json:"socialSecurity"`
	FourOhOneK              *string `json:"fourOhOneK,omitempty"`
	ExtraTaxWithholding     *string `json:"extraTaxWithholding,omitempty"`
	HealthSavingsAccount    *string `json:"healthSavingsAccount,omitempty"`
	MedicalInsurance        *string `json:"medicalInsurance,omitempty"`
	FlexibleSpendingAccount *string `json:"flexibleSpendingAccount,omitempty"`
	NetPay                  string  `json:"netPay"`
	IsActive                bool    `json:"isActive"`
	CreatedAt               string  `json:"createdAt"`
	UpdatedAt               string  `json:"updatedAt"`
}

// GetSalaries handles GET /api/v1/salaries
func (h *SalaryHandler) GetSalaries(c echo.Context) error {
	salaries, err := h.salaryService.GetSalaries()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list salaries")
		return NewInternalError(c, "Failed to list salaries")
	}

	response := make([]SalaryResponse, len(salaries))
	for i, salary := range salaries {
		response[i] = toSalaryResponse(salary)
	}
	return c.JSON(http.StatusOK, response)
}

// GetSalary handles GET /api/v1/salaries/:id
func (h *SalaryHandler) GetSalary(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid salary ID", nil)
	}

	salary, err := h.salaryService.GetSalary(id)
	if err != nil {
		if errors.Is(err, domain.ErrSalaryNotFound) {
			return NewNotFoundError(c, "Salary not found")
		}
		log.Error().Err(err).Int64("salary_id", id).Msg("Failed to get salary")
		return NewInternalError(c, "Failed to get salary")
	}

	return c.JSON(http.StatusOK, toSalaryResponse(salary))
}

// CreateSalary handles POST /api/v1/salaries
func (h *SalaryHandler) CreateSalary(c echo.Context) error {
	var req CreateSalaryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateSalaryInput{Name: req.Name}
	required := []struct {
		raw   string
		field string
		dst   *decimal.Decimal
	}{
		{req.RegularAmount, "regularAmount", &input.RegularAmount},
		{req.FederalTax, "federalTax", &input.FederalTax},
		{req.Medicare, "medicare", &input.Medicare},
		{req.SocialSecurity, "socialSecurity", &input.SocialSecurity},
	}
	for _, amount := range required {
		parsed, err := decimal.NewFromString(amount.raw)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: amount.field, Message: "Invalid amount"},
			})
		}
		*amount.dst = parsed
	}

	optional := []struct {
		raw   *string
		field string
		dst   **decimal.Decimal
	}{
		{req.FourOhOneK, "fourOhOneK", &input.FourOhOneK},
		{req.ExtraTaxWithholding, "extraTaxWithholding", &input.ExtraTaxWithholding},
		{req.HealthSavingsAccount, "healthSavingsAccount", &input.HealthSavingsAccount},
		{req.MedicalInsurance, "medicalInsurance", &input.MedicalInsurance},
		{req.FlexibleSpendingAccount, "flexibleSpendingAccount", &input.FlexibleSpendingAccount},
	}
	for _, amount := range optional {
		parsed, err := parseOptionalAmount(amount.raw)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: amount.field, Message: "Invalid amount"},
			})
		}
		*amount.dst = parsed
	}

	salary, err := h.salaryService.CreateSalary(input)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name cannot be empty"},
			})
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "regularAmount", Message: "Amounts cannot be negative"},
			})
		}
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create salary")
		return NewInternalError(c, "Failed to create salary")
	}

	log.Info().Int64("salary_id", salary.ID).Str("name", salary.Name).Msg("Salary created")
	return c.JSON(http.StatusCreated, toSalaryResponse(salary))
}

// UpdateSalary handles PUT /api/v1/salaries/:id
func (h *SalaryHandler) UpdateSalary(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid salary ID", nil)
	}

	var req UpdateSalaryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateSalaryInput{Name: req.Name}
	amounts := []struct {
		raw   *string
		field string
		dst   **decimal.Decimal
	}{
		{req.RegularAmount, "regularAmount", &input.RegularAmount},
		{req.FederalTax, "federalTax", &input.FederalTax},
		{req.Medicare, "medicare", &input.Medicare},
		{req.SocialSecurity, "socialSecurity", &input.SocialSecurity},
		{req.FourOhOneK, "fourOhOneK", &input.FourOhOneK},
		{req.ExtraTaxWithholding, "extraTaxWithholding", &input.ExtraTaxWithholding},
		{req.HealthSavingsAccount, "healthSavingsAccount", &input.HealthSavingsAccount},
		{req.MedicalInsurance, "medicalInsurance", &input.MedicalInsurance},
		{req.FlexibleSpendingAccount, "flexibleSpendingAccount", &input.FlexibleSpendingAccount},
	}
	for _, amount := range amounts {
		parsed, err := parseOptionalAmount(amount.raw)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: amount.field, Message: "Invalid amount"},
			})
		}
		*amount.dst = parsed
	}

	salary, err := h.salaryService.UpdateSalary(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrSalaryNotFound) {
			return NewNotFoundError(c, "Salary not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name cannot be empty"},
			})
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "regularAmount", Message: "Amounts cannot be negative"},
			})
		}
		log.Error().Err(err).Int64("salary_id", id).Msg("Failed to update salary")
		return NewInternalError(c, "Failed to update salary")
	}

	return c.JSON(http.StatusOK, toSalaryResponse(salary))
}

// DeleteSalary handles DELETE /api/v1/salaries/:id
func (h *SalaryHandler) DeleteSalary(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid salary ID", nil)
	}

	if err := h.salaryService.DeleteSalary(id); err != nil {
		if errors.Is(err, domain.ErrSalaryNotFound) {
			return NewNotFoundError(c, "Salary not found")
		}
		log.Error().Err(err).Int64("salary_id", id).Msg("Failed to delete salary")
		return NewInternalError(c, "Failed to delete salary")
	}

	log.Info().Int64("salary_id", id).Msg("Salary deactivated")
	return c.NoContent(http.StatusNoContent)
}

func toSalaryResponse(salary *domain.Salary) SalaryResponse {
	formatOptional := func(d *decimal.Decimal) *string {
		if d == nil {
			return nil
		}
		s := d.StringFixed(2)
		return &s
	}
	return SalaryResponse{
		ID:                      salary.ID,
		Name:                    salary.Name,
		RegularAmount:           salary.RegularAmount.StringFixed(2),
		FederalTax:              salary.FederalTax.StringFixed(2),
		Medicare:                salary.Medicare.StringFixed(2),
		SocialSecurity:          salary.SocialSecurity.StringFixed(2),
		FourOhOneK:              formatOptional(salary.FourOhOneK),
		ExtraTaxWithholding:     formatOptional(salary.ExtraTaxWithholding),
		HealthSavingsAccount:    formatOptional(salary.HealthSavingsAccount),
		MedicalInsurance:        formatOptional(salary.MedicalInsurance),
		FlexibleSpendingAccount: formatOptional(salary.FlexibleSpendingAccount),
		NetPay:                  salary.NetPay().StringFixed(2),
		IsActive:                salary.IsActive,
		CreatedAt:               salary.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               salary.UpdatedAt.Format(time.RFC3339),
	}
}
