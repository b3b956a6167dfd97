package service

import (
	"strings"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanService manages itemized plan breakdowns and keeps the owning budget
// item's planned amount equal to the plan total. The plan is the source of
// truth for the planned amount as long as it exists.
type PlanService struct {
	planRepo       domain.PlanRepository
	budgetItemRepo domain.BudgetItemRepository
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo domain.PlanRepository, budgetItemRepo domain.BudgetItemRepository) *PlanService {
	return &PlanService{
		planRepo:       planRepo,
		budgetItemRepo: budgetItemRepo,
	}
}

// PlanItemInput is one line of a plan replacement request. A nil amount
// defaults to zero, a nil fromSubscription to false.
type PlanItemInput struct {
	Name             string
	Amount           *decimal.Decimal
	FromSubscription *bool
}

// GetPlan returns a plan with its items
func (s *PlanService) GetPlan(id int64) (*domain.Plan, error) {
	return s.planRepo.GetByID(id)
}

// GetPlansForMonth returns every plan scoped to the given period
func (s *PlanService) GetPlansForMonth(year, month int) ([]*domain.Plan, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	return s.planRepo.GetAllByMonth(year, month)
}

// GetPlanByBudgetItem returns the plan for a budget item and period, or
// ErrPlanNotFound when none exists
func (s *PlanService) GetPlanByBudgetItem(budgetItemID int64, year, month int) (*domain.Plan, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	return s.planRepo.GetByBudgetItem(budgetItemID, year, month)
}

// CreatePlan creates an empty plan for the budget item and period. The
// item's planned amount is left untouched until items are installed.
func (s *PlanService) CreatePlan(budgetItemID int64, year, month int) (*domain.Plan, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	if _, err := s.budgetItemRepo.GetByID(budgetItemID); err != nil {
		return nil, err
	}

	exists, err := s.planRepo.ExistsByBudgetItem(budgetItemID, year, month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrPlanAlreadyExists
	}

	return s.planRepo.Create(&domain.Plan{
		BudgetItemID: budgetItemID,
		Year:         year,
		Month:        month,
	})
}

// ReplacePlanItems discards the plan's item collection, installs the supplied
// list in input order, and writes the new total as the owning budget item's
// planned amount. The swap and the amount write commit together.
func (s *PlanService) ReplacePlanItems(planID int64, inputs []PlanItemInput) (*domain.Plan, error) {
	if _, err := s.planRepo.GetByID(planID); err != nil {
		return nil, err
	}

	items := make([]*domain.PlanItem, 0, len(inputs))
	total := decimal.Zero
	for i, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}

		amount := decimal.Zero
		if input.Amount != nil {
			amount = *input.Amount
		}
		fromSubscription := input.FromSubscription != nil && *input.FromSubscription

		items = append(items, &domain.PlanItem{
			PlanID:           planID,
			Name:             name,
			Amount:           amount,
			DisplayOrder:     i,
			FromSubscription: fromSubscription,
		})
		total = total.Add(amount)
	}

	return s.planRepo.ReplaceItems(planID, items, total)
}

// DeletePlan removes the plan and resets the owning budget item's planned
// amount to zero in the same operation
func (s *PlanService) DeletePlan(id int64) error {
	if _, err := s.planRepo.GetByID(id); err != nil {
		return err
	}
	return s.planRepo.Delete(id)
}
