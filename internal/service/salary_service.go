package service

import (
	"strings"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SalaryService handles salary business logic
type SalaryService struct {
	salaryRepo domain.SalaryRepository
}

// NewSalaryService creates a new SalaryService
func NewSalaryService(salaryRepo domain.SalaryRepository) *SalaryService {
	return &SalaryService{salaryRepo: salaryRepo}
}

// CreateSalaryInput carries the fields of a new salary profile
type CreateSalaryInput struct {
	Name                    string
	RegularAmount           decimal.Decimal
	FederalTax              decimal.Decimal
	Medicare                decimal.Decimal
	SocialSecurity          decimal.Decimal
	FourOhOneK              *decimal.Decimal
	ExtraTaxWithholding     *decimal.Decimal
	HealthSavingsAccount    *decimal.Decimal
	MedicalInsurance        *decimal.Decimal
	FlexibleSpendingAccount *decimal.Decimal
}

// UpdateSalaryInput carries a salary update. Required fields are skipped when
// nil; optional deduction fields are always written so they can be cleared.
type UpdateSalaryInput struct {
	Name                    *string
	RegularAmount           *decimal.Decimal
	FederalTax              *decimal.Decimal
	Medicare                *decimal.Decimal
	SocialSecurity          *decimal.Decimal
	FourOhOneK              *decimal.Decimal
	ExtraTaxWithholding     *decimal.Decimal
	HealthSavingsAccount    *decimal.Decimal
	MedicalInsurance        *decimal.Decimal
	FlexibleSpendingAccount *decimal.Decimal
}

// GetSalaries returns active salaries ordered by name
func (s *SalaryService) GetSalaries() ([]*domain.Salary, error) {
	return s.salaryRepo.GetAllActive()
}

// GetSalary returns a single salary
func (s *SalaryService) GetSalary(id int64) (*domain.Salary, error) {
	return s.salaryRepo.GetByID(id)
}

// CreateSalary validates and persists a new salary profile
func (s *SalaryService) CreateSalary(input CreateSalaryInput) (*domain.Salary, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.RegularAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	return s.salaryRepo.Create(&domain.Salary{
		Name:                    name,
		RegularAmount:           input.RegularAmount,
		FederalTax:              input.FederalTax,
		Medicare:                input.Medicare,
		SocialSecurity:          input.SocialSecurity,
		FourOhOneK:              input.FourOhOneK,
		ExtraTaxWithholding:     input.ExtraTaxWithholding,
		HealthSavingsAccount:    input.HealthSavingsAccount,
		MedicalInsurance:        input.MedicalInsurance,
		FlexibleSpendingAccount: input.FlexibleSpendingAccount,
		IsActive:                true,
	})
}

// UpdateSalary applies a partial update to a salary profile
func (s *SalaryService) UpdateSalary(id int64, input UpdateSalaryInput) (*domain.Salary, error) {
	salary, err := s.salaryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if len(name) > domain.MaxNameLength {
			return nil, domain.ErrNameTooLong
		}
		salary.Name = name
	}
	if input.RegularAmount != nil {
		if input.RegularAmount.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		salary.RegularAmount = *input.RegularAmount
	}
	if input.FederalTax != nil {
		salary.FederalTax = *input.FederalTax
	}
	if input.Medicare != nil {
		salary.Medicare = *input.Medicare
	}
	if input.SocialSecurity != nil {
		salary.SocialSecurity = *input.SocialSecurity
	}

	// Optional deductions are written unconditionally so a null clears them
	salary.FourOhOneK = input.FourOhOneK
	salary.ExtraTaxWithholding = input.ExtraTaxWithholding
	salary.HealthSavingsAccount = input.HealthSavingsAccount
	salary.MedicalInsurance = input.MedicalInsurance
	salary.FlexibleSpendingAccount = input.FlexibleSpendingAccount

	return s.salaryRepo.Update(salary)
}

// DeleteSalary deactivates a salary, keeping it for history
func (s *SalaryService) DeleteSalary(id int64) error {
	if _, err := s.salaryRepo.GetByID(id); err != nil {
		return err
	}
	return s.salaryRepo.Deactivate(id)
}
