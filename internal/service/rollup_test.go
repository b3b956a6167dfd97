package service

import (
	"testing"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildBudgetRollup_EmptyBudget(t *testing.T) {
	budget := &domain.Budget{ID: 1, Year: 2024, Month: 3}

	rollup := BuildBudgetRollup(budget)

	for name, total := range map[string]decimal.Decimal{
		"totalPlannedIncome":   rollup.TotalPlannedIncome,
		"totalIncome":          rollup.TotalIncome,
		"totalPlannedExpenses": rollup.TotalPlannedExpenses,
		"totalExpenses":        rollup.TotalExpenses,
	} {
		if !total.IsZero() {
			t.Errorf("Expected %s to be zero, got %s", name, total)
		}
	}
	if len(rollup.Sections) != 0 {
		t.Errorf("Expected no sections, got %d", len(rollup.Sections))
	}
}

func TestBuildBudgetRollup_SectionTotalsAndDifferences(t *testing.T) {
	budget := &domain.Budget{
		ID:    1,
		Year:  2024,
		Month: 3,
		Sections: []*domain.Section{
			{
				ID:       10,
				Name:     "House",
				IsIncome: false,
				Items: []*domain.BudgetItem{
					{ID: 100, Name: "Mortgage", PlannedAmount: dec("10.00"), ActualAmount: dec("4.00")},
					{ID: 101, Name: "Internet", PlannedAmount: dec("5.00"), ActualAmount: dec("5.00")},
				},
			},
		},
	}

	rollup := BuildBudgetRollup(budget)

	section := rollup.Sections[0]
	if !section.TotalPlanned.Equal(dec("15.00")) {
		t.Errorf("Expected totalPlanned 15.00, got %s", section.TotalPlanned)
	}
	if !section.TotalActual.Equal(dec("9.00")) {
		t.Errorf("Expected totalActual 9.00, got %s", section.TotalActual)
	}
	if !section.Items[0].Difference.Equal(dec("6.00")) {
		t.Errorf("Expected first difference 6.00, got %s", section.Items[0].Difference)
	}
	if !section.Items[1].Difference.Equal(dec("0.00")) {
		t.Errorf("Expected second difference 0.00, got %s", section.Items[1].Difference)
	}

	if !rollup.TotalPlannedExpenses.Equal(dec("15.00")) {
		t.Errorf("Expected totalPlannedExpenses 15.00, got %s", rollup.TotalPlannedExpenses)
	}
	if !rollup.TotalExpenses.Equal(dec("9.00")) {
		t.Errorf("Expected totalExpenses 9.00, got %s", rollup.TotalExpenses)
	}
	if !rollup.TotalPlannedIncome.IsZero() || !rollup.TotalIncome.IsZero() {
		t.Error("Expected income totals to be zero for an expense-only budget")
	}
}

func TestBuildBudgetRollup_IncomeExpensePartition(t *testing.T) {
	budget := &domain.Budget{
		ID:    1,
		Year:  2024,
		Month: 3,
		Sections: []*domain.Section{
			{
				ID:       1,
				Name:     "Income",
				IsIncome: true,
				Items: []*domain.BudgetItem{
					{Name: "Primary Salary", PlannedAmount: dec("3000.00"), ActualAmount: dec("3100.00")},
				},
			},
			{
				ID:       2,
				Name:     "House",
				IsIncome: false,
				Items: []*domain.BudgetItem{
					{Name: "Mortgage", PlannedAmount: dec("1500.00"), ActualAmount: dec("1500.00")},
				},
			},
			// Sections without items contribute zero, they are not excluded
			{ID: 3, Name: "Vacation", IsIncome: false},
		},
	}

	rollup := BuildBudgetRollup(budget)

	if !rollup.TotalPlannedIncome.Equal(dec("3000.00")) {
		t.Errorf("Expected totalPlannedIncome 3000.00, got %s", rollup.TotalPlannedIncome)
	}
	if !rollup.TotalIncome.Equal(dec("3100.00")) {
		t.Errorf("Expected totalIncome 3100.00, got %s", rollup.TotalIncome)
	}
	if !rollup.TotalPlannedExpenses.Equal(dec("1500.00")) {
		t.Errorf("Expected totalPlannedExpenses 1500.00, got %s", rollup.TotalPlannedExpenses)
	}
	if len(rollup.Sections) != 3 {
		t.Errorf("Expected 3 sections in rollup, got %d", len(rollup.Sections))
	}
	if !rollup.Sections[2].TotalPlanned.IsZero() {
		t.Errorf("Expected empty section totalPlanned to be zero, got %s", rollup.Sections[2].TotalPlanned)
	}
}

func TestBuildBudgetRollup_Idempotent(t *testing.T) {
	budget := &domain.Budget{
		ID:    1,
		Year:  2024,
		Month: 3,
		Sections: []*domain.Section{
			{
				ID:       1,
				Name:     "Income",
				IsIncome: true,
				Items: []*domain.BudgetItem{
					{Name: "Primary Salary", PlannedAmount: dec("1234.56"), ActualAmount: dec("1000.01")},
				},
			},
		},
	}

	first := BuildBudgetRollup(budget)
	second := BuildBudgetRollup(budget)

	if !first.TotalPlannedIncome.Equal(second.TotalPlannedIncome) ||
		!first.TotalIncome.Equal(second.TotalIncome) ||
		!first.TotalPlannedExpenses.Equal(second.TotalPlannedExpenses) ||
		!first.TotalExpenses.Equal(second.TotalExpenses) {
		t.Error("Expected identical totals from repeated aggregation of the same hierarchy")
	}
}
