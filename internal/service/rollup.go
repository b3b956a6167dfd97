package service

import (
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildBudgetRollup computes every derived total for an already-loaded
// budget hierarchy. It is a pure function of its input: no storage access,
// and calling it twice on the same hierarchy yields identical totals.
func BuildBudgetRollup(budget *domain.Budget) *domain.BudgetRollup {
	rollup := &domain.BudgetRollup{
		ID:                   budget.ID,
		Year:                 budget.Year,
		Month:                budget.Month,
		CreatedAt:            budget.CreatedAt,
		Sections:             make([]*domain.SectionRollup, 0, len(budget.Sections)),
		TotalIncome:          decimal.Zero,
		TotalExpenses:        decimal.Zero,
		TotalPlannedIncome:   decimal.Zero,
		TotalPlannedExpenses: decimal.Zero,
	}

	for _, section := range budget.Sections {
		sectionRollup := buildSectionRollup(section)
		rollup.Sections = append(rollup.Sections, sectionRollup)

		if section.IsIncome {
			rollup.TotalPlannedIncome = rollup.TotalPlannedIncome.Add(sectionRollup.TotalPlanned)
			rollup.TotalIncome = rollup.TotalIncome.Add(sectionRollup.TotalActual)
		} else {
			rollup.TotalPlannedExpenses = rollup.TotalPlannedExpenses.Add(sectionRollup.TotalPlanned)
			rollup.TotalExpenses = rollup.TotalExpenses.Add(sectionRollup.TotalActual)
		}
	}

	return rollup
}

func buildSectionRollup(section *domain.Section) *domain.SectionRollup {
	rollup := &domain.SectionRollup{
		ID:           section.ID,
		Name:         section.Name,
		DisplayOrder: section.DisplayOrder,
		IsIncome:     section.IsIncome,
		Items:        make([]*domain.ItemRollup, 0, len(section.Items)),
		TotalPlanned: decimal.Zero,
		TotalActual:  decimal.Zero,
	}

	for _, item := range section.Items {
		rollup.Items = append(rollup.Items, &domain.ItemRollup{
			ID:            item.ID,
			Name:          item.Name,
			PlannedAmount: item.PlannedAmount,
			ActualAmount:  item.ActualAmount,
			DisplayOrder:  item.DisplayOrder,
			Difference:    item.PlannedAmount.Sub(item.ActualAmount),
		})
		rollup.TotalPlanned = rollup.TotalPlanned.Add(item.PlannedAmount)
		rollup.TotalActual = rollup.TotalActual.Add(item.ActualAmount)
	}

	return rollup
}
