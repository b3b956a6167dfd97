package testutil

import (
	"sort"
	"strings"
	"time"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MockBudgetRepository is an in-memory implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[int64]*domain.Budget
	nextID  int64
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: make(map[int64]*domain.Budget), nextID: 1}
}

// AddBudget seeds a budget with pre-assigned IDs
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == 0 {
		budget.ID = m.nextID
	}
	if budget.ID >= m.nextID {
		m.nextID = budget.ID + 1
	}
	m.Budgets[budget.ID] = budget
}

// Create persists a budget with its sections and items
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	for _, existing := range m.Budgets {
		if existing.Year == budget.Year && existing.Month == budget.Month {
			return nil, domain.ErrBudgetAlreadyExists
		}
	}
	budget.ID = m.nextID
	m.nextID++
	budget.CreatedAt = time.Now()
	var childID int64 = budget.ID * 1000
	for _, section := range budget.Sections {
		childID++
		section.ID = childID
		section.BudgetID = budget.ID
		for _, item := range section.Items {
			childID++
			item.ID = childID
			item.SectionID = section.ID
		}
	}
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget without children
func (m *MockBudgetRepository) GetByID(id int64) (*domain.Budget, error) {
	if budget, ok := m.Budgets[id]; ok {
		return budget, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetByYearMonth retrieves a fully loaded budget
func (m *MockBudgetRepository) GetByYearMonth(year, month int) (*domain.Budget, error) {
	for _, budget := range m.Budgets {
		if budget.Year == year && budget.Month == month {
			return budget, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// GetByYear retrieves fully loaded budgets in ascending month order
func (m *MockBudgetRepository) GetByYear(year int) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for _, budget := range m.Budgets {
		if budget.Year == year {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].Month < budgets[j].Month })
	return budgets, nil
}

// ExistsByYearMonth reports whether a budget exists for the period
func (m *MockBudgetRepository) ExistsByYearMonth(year, month int) (bool, error) {
	_, err := m.GetByYearMonth(year, month)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// MockSectionRepository is an in-memory implementation of domain.SectionRepository
type MockSectionRepository struct {
	Sections map[int64]*domain.Section
	nextID   int64
}

// NewMockSectionRepository creates a new MockSectionRepository
func NewMockSectionRepository() *MockSectionRepository {
	return &MockSectionRepository{Sections: make(map[int64]*domain.Section), nextID: 1}
}

// AddSection seeds a section
func (m *MockSectionRepository) AddSection(section *domain.Section) {
	if section.ID == 0 {
		section.ID = m.nextID
	}
	if section.ID >= m.nextID {
		m.nextID = section.ID + 1
	}
	m.Sections[section.ID] = section
}

// Create persists a new section
func (m *MockSectionRepository) Create(section *domain.Section) (*domain.Section, error) {
	section.ID = m.nextID
	m.nextID++
	m.Sections[section.ID] = section
	return section, nil
}

// GetByID retrieves a section
func (m *MockSectionRepository) GetByID(id int64) (*domain.Section, error) {
	if section, ok := m.Sections[id]; ok {
		return section, nil
	}
	return nil, domain.ErrSectionNotFound
}

// GetByIDWithItems retrieves a section with its items
func (m *MockSectionRepository) GetByIDWithItems(id int64) (*domain.Section, error) {
	return m.GetByID(id)
}

// Update updates a section
func (m *MockSectionRepository) Update(section *domain.Section) (*domain.Section, error) {
	if _, ok := m.Sections[section.ID]; !ok {
		return nil, domain.ErrSectionNotFound
	}
	m.Sections[section.ID] = section
	return section, nil
}

// Delete removes a section
func (m *MockSectionRepository) Delete(id int64) error {
	if _, ok := m.Sections[id]; !ok {
		return domain.ErrSectionNotFound
	}
	delete(m.Sections, id)
	return nil
}

// MaxDisplayOrder returns the highest display order within a budget
func (m *MockSectionRepository) MaxDisplayOrder(budgetID int64) (int, error) {
	max := 0
	for _, section := range m.Sections {
		if section.BudgetID == budgetID && section.DisplayOrder > max {
			max = section.DisplayOrder
		}
	}
	return max, nil
}

// FindByName performs a case-insensitive exact-name lookup
func (m *MockSectionRepository) FindByName(name string) (*domain.Section, error) {
	var ids []int64
	for id := range m.Sections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if strings.EqualFold(m.Sections[id].Name, name) {
			return m.Sections[id], nil
		}
	}
	return nil, domain.ErrSectionNotFound
}

// MockBudgetItemRepository is an in-memory implementation of domain.BudgetItemRepository
type MockBudgetItemRepository struct {
	Items    map[int64]*domain.BudgetItem
	sections *MockSectionRepository
	nextID   int64
}

// NewMockBudgetItemRepository creates a new MockBudgetItemRepository. The
// section repository is used to resolve owning-section names for lookups.
func NewMockBudgetItemRepository(sections *MockSectionRepository) *MockBudgetItemRepository {
	return &MockBudgetItemRepository{
		Items:    make(map[int64]*domain.BudgetItem),
		sections: sections,
		nextID:   1,
	}
}

// AddItem seeds a budget item
func (m *MockBudgetItemRepository) AddItem(item *domain.BudgetItem) {
	if item.ID == 0 {
		item.ID = m.nextID
	}
	if item.ID >= m.nextID {
		m.nextID = item.ID + 1
	}
	m.Items[item.ID] = item
}

// Create persists a new budget item
func (m *MockBudgetItemRepository) Create(item *domain.BudgetItem) (*domain.BudgetItem, error) {
	item.ID = m.nextID
	m.nextID++
	m.Items[item.ID] = item
	return item, nil
}

// GetByID retrieves a budget item
func (m *MockBudgetItemRepository) GetByID(id int64) (*domain.BudgetItem, error) {
	if item, ok := m.Items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrBudgetItemNotFound
}

// Update updates a budget item
func (m *MockBudgetItemRepository) Update(item *domain.BudgetItem) (*domain.BudgetItem, error) {
	if _, ok := m.Items[item.ID]; !ok {
		return nil, domain.ErrBudgetItemNotFound
	}
	m.Items[item.ID] = item
	return item, nil
}

// Delete removes a budget item
func (m *MockBudgetItemRepository) Delete(id int64) error {
	if _, ok := m.Items[id]; !ok {
		return domain.ErrBudgetItemNotFound
	}
	delete(m.Items, id)
	return nil
}

// MaxDisplayOrder returns the highest display order within a section
func (m *MockBudgetItemRepository) MaxDisplayOrder(sectionID int64) (int, error) {
	max := 0
	for _, item := range m.Items {
		if item.SectionID == sectionID && item.DisplayOrder > max {
			max = item.DisplayOrder
		}
	}
	return max, nil
}

// FindBySectionAndName looks up an item by name within sections of a name
func (m *MockBudgetItemRepository) FindBySectionAndName(sectionName, itemName string) (*domain.BudgetItem, error) {
	var ids []int64
	for id := range m.Items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		item := m.Items[id]
		if !strings.EqualFold(item.Name, itemName) {
			continue
		}
		section, err := m.sections.GetByID(item.SectionID)
		if err != nil {
			continue
		}
		if strings.EqualFold(section.Name, sectionName) {
			return item, nil
		}
	}
	return nil, domain.ErrBudgetItemNotFound
}

// MockPlanRepository is an in-memory implementation of domain.PlanRepository.
// It shares the budget item store so the cross-entity planned-amount writes
// behave like the real transactional repository.
type MockPlanRepository struct {
	Plans  map[int64]*domain.Plan
	items  *MockBudgetItemRepository
	nextID int64
}

// NewMockPlanRepository creates a new MockPlanRepository
func NewMockPlanRepository(items *MockBudgetItemRepository) *MockPlanRepository {
	return &MockPlanRepository{
		Plans:  make(map[int64]*domain.Plan),
		items:  items,
		nextID: 1,
	}
}

// Create persists a new empty plan
func (m *MockPlanRepository) Create(plan *domain.Plan) (*domain.Plan, error) {
	plan.ID = m.nextID
	m.nextID++
	plan.CreatedAt = time.Now()
	if plan.Items == nil {
		plan.Items = []*domain.PlanItem{}
	}
	m.Plans[plan.ID] = plan
	return plan, nil
}

// GetByID retrieves a plan with its items
func (m *MockPlanRepository) GetByID(id int64) (*domain.Plan, error) {
	if plan, ok := m.Plans[id]; ok {
		return plan, nil
	}
	return nil, domain.ErrPlanNotFound
}

// GetByBudgetItem retrieves the plan for a budget item and period
func (m *MockPlanRepository) GetByBudgetItem(budgetItemID int64, year, month int) (*domain.Plan, error) {
	for _, plan := range m.Plans {
		if plan.BudgetItemID == budgetItemID && plan.Year == year && plan.Month == month {
			return plan, nil
		}
	}
	return nil, domain.ErrPlanNotFound
}

// GetAllByMonth retrieves every plan for a period, in id order
func (m *MockPlanRepository) GetAllByMonth(year, month int) ([]*domain.Plan, error) {
	var plans []*domain.Plan
	for _, plan := range m.Plans {
		if plan.Year == year && plan.Month == month {
			plans = append(plans, plan)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return plans, nil
}

// ExistsByBudgetItem reports whether a plan exists for the item and period
func (m *MockPlanRepository) ExistsByBudgetItem(budgetItemID int64, year, month int) (bool, error) {
	_, err := m.GetByBudgetItem(budgetItemID, year, month)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ReplaceItems swaps the plan's items and writes the owning item's planned amount
func (m *MockPlanRepository) ReplaceItems(planID int64, items []*domain.PlanItem, total decimal.Decimal) (*domain.Plan, error) {
	plan, ok := m.Plans[planID]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	for i, item := range items {
		item.ID = int64(i + 1)
		item.PlanID = planID
	}
	plan.Items = items

	item, err := m.items.GetByID(plan.BudgetItemID)
	if err != nil {
		return nil, err
	}
	item.PlannedAmount = total
	return plan, nil
}

// Delete removes a plan and resets the owning item's planned amount
func (m *MockPlanRepository) Delete(id int64) error {
	plan, ok := m.Plans[id]
	if !ok {
		return domain.ErrPlanNotFound
	}
	if item, err := m.items.GetByID(plan.BudgetItemID); err == nil {
		item.PlannedAmount = decimal.Zero
	}
	delete(m.Plans, id)
	return nil
}

// MockTransactionRepository is an in-memory implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int64]*domain.Transaction
	CreateErr    error
	nextID       int64
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[int64]*domain.Transaction), nextID: 1}
}

// Create persists a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	transaction.ID = m.nextID
	m.nextID++
	transaction.CreatedAt = time.Now()
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetByID retrieves a transaction
func (m *MockTransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	if transaction, ok := m.Transactions[id]; ok {
		return transaction, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// Update updates a transaction
func (m *MockTransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	if _, ok := m.Transactions[transaction.ID]; !ok {
		return nil, domain.ErrTransactionNotFound
	}
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id int64) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// List returns a filtered, paginated listing in date-descending order
func (m *MockTransactionRepository) List(filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	var all []*domain.Transaction
	for _, transaction := range m.Transactions {
		if matchesFilters(transaction, filters) {
			all = append(all, transaction)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].TransactionDate.Equal(all[j].TransactionDate) {
			return all[i].TransactionDate.After(all[j].TransactionDate)
		}
		return all[i].ID > all[j].ID
	})

	total := int64(len(all))
	start := filters.Page * filters.PageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + filters.PageSize
	if end > len(all) {
		end = len(all)
	}
	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))

	return &domain.PaginatedTransactions{
		Data:       all[start:end],
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func matchesFilters(t *domain.Transaction, f *domain.TransactionFilters) bool {
	if f.StartDate != nil && t.TransactionDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.TransactionDate.After(*f.EndDate) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.SectionID != nil && (t.SectionID == nil || *t.SectionID != *f.SectionID) {
		return false
	}
	if f.BudgetItemID != nil && (t.BudgetItemID == nil || *t.BudgetItemID != *f.BudgetItemID) {
		return false
	}
	if f.Merchant != nil && !strings.Contains(strings.ToLower(t.Merchant), strings.ToLower(*f.Merchant)) {
		return false
	}
	return true
}

// SumByType sums amounts by transaction type within an optional date range
func (m *MockTransactionRepository) SumByType(txType domain.TransactionType, startDate, endDate *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, transaction := range m.Transactions {
		if transaction.Type != txType {
			continue
		}
		if startDate != nil && transaction.TransactionDate.Before(*startDate) {
			continue
		}
		if endDate != nil && transaction.TransactionDate.After(*endDate) {
			continue
		}
		total = total.Add(transaction.Amount)
	}
	return total, nil
}

// MockSalaryRepository is an in-memory implementation of domain.SalaryRepository
type MockSalaryRepository struct {
	Salaries map[int64]*domain.Salary
	nextID   int64
}

// NewMockSalaryRepository creates a new MockSalaryRepository
func NewMockSalaryRepository() *MockSalaryRepository {
	return &MockSalaryRepository{Salaries: make(map[int64]*domain.Salary), nextID: 1}
}

// Create persists a new salary
func (m *MockSalaryRepository) Create(salary *domain.Salary) (*domain.Salary, error) {
	salary.ID = m.nextID
	m.nextID++
	salary.CreatedAt = time.Now()
	salary.UpdatedAt = salary.CreatedAt
	m.Salaries[salary.ID] = salary
	return salary, nil
}

// GetByID retrieves a salary
func (m *MockSalaryRepository) GetByID(id int64) (*domain.Salary, error) {
	if salary, ok := m.Salaries[id]; ok {
		return salary, nil
	}
	return nil, domain.ErrSalaryNotFound
}

// GetAllActive retrieves active salaries ordered by name
func (m *MockSalaryRepository) GetAllActive() ([]*domain.Salary, error) {
	var salaries []*domain.Salary
	for _, salary := range m.Salaries {
		if salary.IsActive {
			salaries = append(salaries, salary)
		}
	}
	sort.Slice(salaries, func(i, j int) bool { return salaries[i].Name < salaries[j].Name })
	return salaries, nil
}

// Update updates a salary
func (m *MockSalaryRepository) Update(salary *domain.Salary) (*domain.Salary, error) {
	if _, ok := m.Salaries[salary.ID]; !ok {
		return nil, domain.ErrSalaryNotFound
	}
	salary.UpdatedAt = time.Now()
	m.Salaries[salary.ID] = salary
	return salary, nil
}

// Deactivate soft-deletes a salary
func (m *MockSalaryRepository) Deactivate(id int64) error {
	salary, ok := m.Salaries[id]
	if !ok {
		return domain.ErrSalaryNotFound
	}
	salary.IsActive = false
	return nil
}

// MockSubscriptionRepository is an in-memory implementation of domain.SubscriptionRepository
type MockSubscriptionRepository struct {
	Subscriptions map[int64]*domain.Subscription
	nextID        int64
}

// NewMockSubscriptionRepository creates a new MockSubscriptionRepository
func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{Subscriptions: make(map[int64]*domain.Subscription), nextID: 1}
}

// Create persists a new subscription
func (m *MockSubscriptionRepository) Create(subscription *domain.Subscription) (*domain.Subscription, error) {
	subscription.ID = m.nextID
	m.nextID++
	subscription.CreatedAt = time.Now()
	subscription.UpdatedAt = subscription.CreatedAt
	m.Subscriptions[subscription.ID] = subscription
	return subscription, nil
}

// GetByID retrieves a subscription
func (m *MockSubscriptionRepository) GetByID(id int64) (*domain.Subscription, error) {
	if subscription, ok := m.Subscriptions[id]; ok {
		return subscription, nil
	}
	return nil, domain.ErrSubscriptionNotFound
}

// GetAllActive retrieves active subscriptions ordered by name
func (m *MockSubscriptionRepository) GetAllActive() ([]*domain.Subscription, error) {
	var subscriptions []*domain.Subscription
	for _, subscription := range m.Subscriptions {
		if subscription.IsActive {
			subscriptions = append(subscriptions, subscription)
		}
	}
	sort.Slice(subscriptions, func(i, j int) bool { return subscriptions[i].Name < subscriptions[j].Name })
	return subscriptions, nil
}

// Update updates a subscription
func (m *MockSubscriptionRepository) Update(subscription *domain.Subscription) (*domain.Subscription, error) {
	if _, ok := m.Subscriptions[subscription.ID]; !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	subscription.UpdatedAt = time.Now()
	m.Subscriptions[subscription.ID] = subscription
	return subscription, nil
}

// Deactivate soft-deletes a subscription
func (m *MockSubscriptionRepository) Deactivate(id int64) error {
	subscription, ok := m.Subscriptions[id]
	if !ok {
		return domain.ErrSubscriptionNotFound
	}
	subscription.IsActive = false
	return nil
}
