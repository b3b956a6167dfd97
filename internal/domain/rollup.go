package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetRollup carries a budget with all derived totals. Totals are never
// stored; they are recomputed from the hierarchy on every read.
type BudgetRollup struct {
	ID                   int64            `json:"id"`
	Year                 int              `json:"year"`
	Month                int              `json:"month"`
	CreatedAt            time.Time        `json:"createdAt"`
	Sections             []*SectionRollup `json:"sections"`
	TotalIncome          decimal.Decimal  `json:"totalIncome"`
	TotalExpenses        decimal.Decimal  `json:"totalExpenses"`
	TotalPlannedIncome   decimal.Decimal  `json:"totalPlannedIncome"`
	TotalPlannedExpenses decimal.Decimal  `json:"totalPlannedExpenses"`
}

type SectionRollup struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	DisplayOrder int             `json:"displayOrder"`
	IsIncome     bool            `json:"isIncome"`
	Items        []*ItemRollup   `json:"items"`
	TotalPlanned decimal.Decimal `json:"totalPlanned"`
	TotalActual  decimal.Decimal `json:"totalActual"`
}

type ItemRollup struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	PlannedAmount decimal.Decimal `json:"plannedAmount"`
	ActualAmount  decimal.Decimal `json:"actualAmount"`
	DisplayOrder  int             `json:"displayOrder"`
	Difference    decimal.Decimal `json:"difference"`
}

// YearlySummary folds per-month rollups into annual totals.
type YearlySummary struct {
	Year                 int             `json:"year"`
	Months               []*MonthSummary `json:"months"`
	TotalPlannedIncome   decimal.Decimal `json:"totalPlannedIncome"`
	TotalActualIncome    decimal.Decimal `json:"totalActualIncome"`
	TotalPlannedExpenses decimal.Decimal `json:"totalPlannedExpenses"`
	TotalActualExpenses  decimal.Decimal `json:"totalActualExpenses"`
	TotalPlannedSavings  decimal.Decimal `json:"totalPlannedSavings"`
	TotalActualSavings   decimal.Decimal `json:"totalActualSavings"`
}

type MonthSummary struct {
	Month           int             `json:"month"`
	BudgetID        int64           `json:"budgetId"`
	PlannedIncome   decimal.Decimal `json:"plannedIncome"`
	ActualIncome    decimal.Decimal `json:"actualIncome"`
	PlannedExpenses decimal.Decimal `json:"plannedExpenses"`
	ActualExpenses  decimal.Decimal `json:"actualExpenses"`
	PlannedSavings  decimal.Decimal `json:"plannedSavings"`
	ActualSavings   decimal.Decimal `json:"actualSavings"`
}
