package service

import (
	"testing"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBudget(repo *testutil.MockBudgetRepository, year, month int, plannedIncome, actualIncome, plannedExpenses, actualExpenses string) *domain.Budget {
	budget := &domain.Budget{
		Year:  year,
		Month: month,
		Sections: []*domain.Section{
			{
				Name:     "Income",
				IsIncome: true,
				Items: []*domain.BudgetItem{
					{Name: "Primary Salary", PlannedAmount: dec(plannedIncome), ActualAmount: dec(actualIncome)},
				},
			},
			{
				Name:     "House",
				IsIncome: false,
				Items: []*domain.BudgetItem{
					{Name: "Mortgage", PlannedAmount: dec(plannedExpenses), ActualAmount: dec(actualExpenses)},
				},
			},
		},
	}
	created, _ := repo.Create(budget)
	return created
}

func TestGetBudget_NotFound(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	_, err := budgetService.GetBudget(2024, 3)
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)
}

func TestGetBudget_InvalidPeriod(t *testing.T) {
	budgetService := NewBudgetService(testutil.NewMockBudgetRepository())

	_, err := budgetService.GetBudget(2024, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)

	_, err = budgetService.GetBudget(99, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidYear)
}

func TestGetOrCreateBudget_CreatesFromTemplate(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	rollup, err := budgetService.GetOrCreateBudget(2024, 3)
	require.NoError(t, err)
	require.NotEmpty(t, rollup.Sections)
	assert.Equal(t, "Income", rollup.Sections[0].Name)
	assert.True(t, rollup.TotalPlannedIncome.IsZero())

	// Second call returns the same budget instead of creating another
	again, err := budgetService.GetOrCreateBudget(2024, 3)
	require.NoError(t, err)
	assert.Equal(t, rollup.ID, again.ID)
	assert.Len(t, budgetRepo.Budgets, 1)
}

func TestCreateBudget_Conflict(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	_, err := budgetService.CreateBudget(2024, 3)
	require.NoError(t, err)

	_, err = budgetService.CreateBudget(2024, 3)
	assert.ErrorIs(t, err, domain.ErrBudgetAlreadyExists)
}

func TestGetYearlySummary_SparseMonths(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	// Budgets only for March and January, seeded out of order
	seedBudget(budgetRepo, 2024, 3, "2000.00", "2100.00", "800.00", "750.00")
	seedBudget(budgetRepo, 2024, 1, "1000.00", "900.00", "400.00", "450.00")

	summary, err := budgetService.GetYearlySummary(2024)
	require.NoError(t, err)

	require.Len(t, summary.Months, 2)
	assert.Equal(t, 1, summary.Months[0].Month)
	assert.Equal(t, 3, summary.Months[1].Month)

	january := summary.Months[0]
	assert.True(t, january.PlannedSavings.Equal(dec("600.00")), "planned savings = planned income - planned expenses")
	assert.True(t, january.ActualSavings.Equal(dec("450.00")))

	march := summary.Months[1]
	assert.True(t, march.PlannedSavings.Equal(dec("1200.00")))
	assert.True(t, march.ActualSavings.Equal(dec("1350.00")))

	assert.True(t, summary.TotalPlannedIncome.Equal(dec("3000.00")))
	assert.True(t, summary.TotalActualIncome.Equal(dec("3000.00")))
	assert.True(t, summary.TotalPlannedExpenses.Equal(dec("1200.00")))
	assert.True(t, summary.TotalActualExpenses.Equal(dec("1200.00")))
	assert.True(t, summary.TotalPlannedSavings.Equal(dec("1800.00")))
	assert.True(t, summary.TotalActualSavings.Equal(dec("1800.00")))
}

func TestGetYearlySummary_EmptyYear(t *testing.T) {
	budgetService := NewBudgetService(testutil.NewMockBudgetRepository())

	summary, err := budgetService.GetYearlySummary(2024)
	require.NoError(t, err)
	assert.Empty(t, summary.Months)
	assert.True(t, summary.TotalPlannedSavings.IsZero())
	assert.True(t, summary.TotalActualSavings.IsZero())
}
