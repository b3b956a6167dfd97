package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the root aggregate for one calendar month, unique per (year, month).
// Sections are owned by the budget and ordered by display order.
type Budget struct {
	ID        int64      `json:"id"`
	Year      int        `json:"year"`
	Month     int        `json:"month"`
	CreatedAt time.Time  `json:"createdAt"`
	Sections  []*Section `json:"sections"`
}

// Section groups line items within a budget. IsIncome partitions sections
// into income vs. expense for aggregation.
type Section struct {
	ID           int64         `json:"id"`
	BudgetID     int64         `json:"budgetId"`
	Name         string        `json:"name"`
	DisplayOrder int           `json:"displayOrder"`
	IsIncome     bool          `json:"isIncome"`
	Items        []*BudgetItem `json:"items"`
}

// BudgetItem is a planned-vs-actual tracking unit within a section.
// PlannedAmount is driven by the item's plan once one exists for the period.
type BudgetItem struct {
	ID            int64           `json:"id"`
	SectionID     int64           `json:"sectionId"`
	Name          string          `json:"name"`
	PlannedAmount decimal.Decimal `json:"plannedAmount"`
	ActualAmount  decimal.Decimal `json:"actualAmount"`
	DisplayOrder  int             `json:"displayOrder"`
}

type BudgetRepository interface {
	// Create persists a budget together with its sections and items.
	Create(budget *Budget) (*Budget, error)
	GetByID(id int64) (*Budget, error)
	// GetByYearMonth eagerly loads the full section/item hierarchy.
	GetByYearMonth(year, month int) (*Budget, error)
	// GetByYear returns fully loaded budgets in ascending month order.
	GetByYear(year int) ([]*Budget, error)
	ExistsByYearMonth(year, month int) (bool, error)
}

type SectionRepository interface {
	Create(section *Section) (*Section, error)
	GetByID(id int64) (*Section, error)
	GetByIDWithItems(id int64) (*Section, error)
	Update(section *Section) (*Section, error)
	Delete(id int64) error
	MaxDisplayOrder(budgetID int64) (int, error)
	// FindByName performs a case-insensitive exact-name lookup, first match wins.
	FindByName(name string) (*Section, error)
}

type BudgetItemRepository interface {
	Create(item *BudgetItem) (*BudgetItem, error)
	GetByID(id int64) (*BudgetItem, error)
	Update(item *BudgetItem) (*BudgetItem, error)
	Delete(id int64) error
	MaxDisplayOrder(sectionID int64) (int, error)
	// FindBySectionAndName looks up an item case-insensitively by name,
	// restricted to items whose owning section carries the given name.
	FindBySectionAndName(sectionName, itemName string) (*BudgetItem, error)
}
