package service

import (
	"errors"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetService handles monthly budget reads, creation and the yearly summary
type BudgetService struct {
	budgetRepo domain.BudgetRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo}
}

func validateYearMonth(year, month int) error {
	if year < domain.MinYear || year > domain.MaxYear {
		return domain.ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return domain.ErrInvalidMonth
	}
	return nil
}

// GetBudget returns the rollup for an existing budget
func (s *BudgetService) GetBudget(year, month int) (*domain.BudgetRollup, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.GetByYearMonth(year, month)
	if err != nil {
		return nil, err
	}
	return BuildBudgetRollup(budget), nil
}

// GetOrCreateBudget returns the rollup for the period, creating the budget
// from the default template on first access
func (s *BudgetService) GetOrCreateBudget(year, month int) (*domain.BudgetRollup, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.GetByYearMonth(year, month)
	if err != nil {
		if !errors.Is(err, domain.ErrBudgetNotFound) {
			return nil, err
		}
		budget, err = s.budgetRepo.Create(BuildDefaultBudget(year, month))
		if err != nil {
			return nil, err
		}
	}
	return BuildBudgetRollup(budget), nil
}

// CreateBudget explicitly creates a budget for the period, failing when one
// already exists
func (s *BudgetService) CreateBudget(year, month int) (*domain.BudgetRollup, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	exists, err := s.budgetRepo.ExistsByYearMonth(year, month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrBudgetAlreadyExists
	}
	budget, err := s.budgetRepo.Create(BuildDefaultBudget(year, month))
	if err != nil {
		return nil, err
	}
	return BuildBudgetRollup(budget), nil
}

// GetYearlySummary re-aggregates every budget of the year, in ascending month
// order, and folds the per-month figures into annual totals. Months without a
// budget are absent from the result.
func (s *BudgetService) GetYearlySummary(year int) (*domain.YearlySummary, error) {
	if year < domain.MinYear || year > domain.MaxYear {
		return nil, domain.ErrInvalidYear
	}

	budgets, err := s.budgetRepo.GetByYear(year)
	if err != nil {
		return nil, err
	}

	summary := &domain.YearlySummary{
		Year:                 year,
		Months:               make([]*domain.MonthSummary, 0, len(budgets)),
		TotalPlannedIncome:   decimal.Zero,
		TotalActualIncome:    decimal.Zero,
		TotalPlannedExpenses: decimal.Zero,
		TotalActualExpenses:  decimal.Zero,
	}

	for _, budget := range budgets {
		rollup := BuildBudgetRollup(budget)

		summary.Months = append(summary.Months, &domain.MonthSummary{
			Month:           budget.Month,
			BudgetID:        budget.ID,
			PlannedIncome:   rollup.TotalPlannedIncome,
			ActualIncome:    rollup.TotalIncome,
			PlannedExpenses: rollup.TotalPlannedExpenses,
			ActualExpenses:  rollup.TotalExpenses,
			PlannedSavings:  rollup.TotalPlannedIncome.Sub(rollup.TotalPlannedExpenses),
			ActualSavings:   rollup.TotalIncome.Sub(rollup.TotalExpenses),
		})

		summary.TotalPlannedIncome = summary.TotalPlannedIncome.Add(rollup.TotalPlannedIncome)
		summary.TotalActualIncome = summary.TotalActualIncome.Add(rollup.TotalIncome)
		summary.TotalPlannedExpenses = summary.TotalPlannedExpenses.Add(rollup.TotalPlannedExpenses)
		summary.TotalActualExpenses = summary.TotalActualExpenses.Add(rollup.TotalExpenses)
	}

	summary.TotalPlannedSavings = summary.TotalPlannedIncome.Sub(summary.TotalPlannedExpenses)
	summary.TotalActualSavings = summary.TotalActualIncome.Sub(summary.TotalActualExpenses)

	return summary, nil
}
