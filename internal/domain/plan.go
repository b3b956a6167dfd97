package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is an itemized, period-scoped breakdown for one budget item, unique
// per (budgetItemId, year, month). While a plan exists it is the source of
// truth for the owning item's planned amount.
type Plan struct {
	ID           int64       `json:"id"`
	BudgetItemID int64       `json:"budgetItemId"`
	Year         int         `json:"year"`
	Month        int         `json:"month"`
	CreatedAt    time.Time   `json:"createdAt"`
	Items        []*PlanItem `json:"items"`
}

// PlanItem is one line of a plan breakdown. FromSubscription records whether
// the line was seeded from a subscription template; it is informational only.
type PlanItem struct {
	ID               int64           `json:"id"`
	PlanID           int64           `json:"planId"`
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	DisplayOrder     int             `json:"displayOrder"`
	FromSubscription bool            `json:"fromSubscription"`
}

// Total returns the exact sum of the plan's item amounts.
func (p *Plan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Amount)
	}
	return total
}

type PlanRepository interface {
	Create(plan *Plan) (*Plan, error)
	// GetByID loads the plan with its items in display order.
	GetByID(id int64) (*Plan, error)
	GetByBudgetItem(budgetItemID int64, year, month int) (*Plan, error)
	GetAllByMonth(year, month int) ([]*Plan, error)
	ExistsByBudgetItem(budgetItemID int64, year, month int) (bool, error)
	// ReplaceItems atomically swaps the plan's item collection and writes
	// total as the owning budget item's planned amount. Both writes commit
	// together or not at all.
	ReplaceItems(planID int64, items []*PlanItem, total decimal.Decimal) (*Plan, error)
	// Delete removes the plan and its items and resets the owning budget
	// item's planned amount to zero in the same transaction.
	Delete(id int64) error
}
