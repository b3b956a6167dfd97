package service

import (
	"strings"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetItemService handles line item business logic. Direct planned-amount
// edits through UpdateItem are meant for items without a plan; once a plan
// exists its next replacement overwrites any manual edit.
type BudgetItemService struct {
	itemRepo    domain.BudgetItemRepository
	sectionRepo domain.SectionRepository
}

// NewBudgetItemService creates a new BudgetItemService
func NewBudgetItemService(itemRepo domain.BudgetItemRepository, sectionRepo domain.SectionRepository) *BudgetItemService {
	return &BudgetItemService{
		itemRepo:    itemRepo,
		sectionRepo: sectionRepo,
	}
}

// BudgetItemUpdate carries the optional fields of an item update; nil fields
// are left unchanged.
type BudgetItemUpdate struct {
	Name          *string
	PlannedAmount *decimal.Decimal
	ActualAmount  *decimal.Decimal
}

// CreateItem appends a line item to a section, after its current items
func (s *BudgetItemService) CreateItem(sectionID int64, name string, plannedAmount, actualAmount *decimal.Decimal) (*domain.BudgetItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	if _, err := s.sectionRepo.GetByID(sectionID); err != nil {
		return nil, err
	}

	planned := decimal.Zero
	if plannedAmount != nil {
		planned = *plannedAmount
	}
	actual := decimal.Zero
	if actualAmount != nil {
		actual = *actualAmount
	}
	if planned.IsNegative() || actual.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	maxOrder, err := s.itemRepo.MaxDisplayOrder(sectionID)
	if err != nil {
		return nil, err
	}

	return s.itemRepo.Create(&domain.BudgetItem{
		SectionID:     sectionID,
		Name:          name,
		PlannedAmount: planned,
		ActualAmount:  actual,
		DisplayOrder:  maxOrder + 1,
	})
}

// UpdateItem applies a partial update to a line item
func (s *BudgetItemService) UpdateItem(id int64, update BudgetItemUpdate) (*domain.BudgetItem, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if len(name) > domain.MaxNameLength {
			return nil, domain.ErrNameTooLong
		}
		item.Name = name
	}
	if update.PlannedAmount != nil {
		if update.PlannedAmount.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		item.PlannedAmount = *update.PlannedAmount
	}
	if update.ActualAmount != nil {
		if update.ActualAmount.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		item.ActualAmount = *update.ActualAmount
	}

	return s.itemRepo.Update(item)
}

// DeleteItem removes a line item
func (s *BudgetItemService) DeleteItem(id int64) error {
	if _, err := s.itemRepo.GetByID(id); err != nil {
		return err
	}
	return s.itemRepo.Delete(id)
}
