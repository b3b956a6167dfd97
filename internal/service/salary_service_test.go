package service

import (
	"testing"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/testutil"
)

func TestCreateSalary_Success(t *testing.T) {
	salaryService := NewSalaryService(testutil.NewMockSalaryRepository())

	fourOhOneK := dec("200.00")
	salary, err := salaryService.CreateSalary(CreateSalaryInput{
		Name:           "Primary",
		RegularAmount:  dec("4000.00"),
		FederalTax:     dec("600.00"),
		Medicare:       dec("58.00"),
		SocialSecurity: dec("248.00"),
		FourOhOneK:     &fourOhOneK,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !salary.IsActive {
		t.Error("Expected new salary to be active")
	}
	if !salary.NetPay().Equal(dec("2894.00")) {
		t.Errorf("Expected net pay 2894.00, got %s", salary.NetPay())
	}
}

func TestCreateSalary_EmptyName(t *testing.T) {
	salaryService := NewSalaryService(testutil.NewMockSalaryRepository())

	_, err := salaryService.CreateSalary(CreateSalaryInput{Name: " "})
	if err != domain.ErrNameRequired {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestUpdateSalary_ClearsOptionalDeductions(t *testing.T) {
	salaryRepo := testutil.NewMockSalaryRepository()
	salaryService := NewSalaryService(salaryRepo)

	hsa := dec("100.00")
	created, err := salaryService.CreateSalary(CreateSalaryInput{
		Name:                 "Primary",
		RegularAmount:        dec("4000.00"),
		HealthSavingsAccount: &hsa,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// An update without optional deductions clears them
	updated, err := salaryService.UpdateSalary(created.ID, UpdateSalaryInput{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.HealthSavingsAccount != nil {
		t.Error("Expected HSA deduction to be cleared by omission")
	}
}

func TestDeleteSalary_SoftDelete(t *testing.T) {
	salaryRepo := testutil.NewMockSalaryRepository()
	salaryService := NewSalaryService(salaryRepo)

	created, err := salaryService.CreateSalary(CreateSalaryInput{Name: "Primary", RegularAmount: dec("4000.00")})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := salaryService.DeleteSalary(created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	actives, _ := salaryService.GetSalaries()
	if len(actives) != 0 {
		t.Errorf("Expected no active salaries after delete, got %d", len(actives))
	}

	// Still retrievable by id
	if _, err := salaryService.GetSalary(created.ID); err != nil {
		t.Errorf("Expected soft-deleted salary to remain readable, got %v", err)
	}
}
