package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Transaction records a single money movement. Section and budget item
// references are optional; an uncategorized transaction carries neither.
type Transaction struct {
	ID              int64           `json:"id"`
	Type            TransactionType `json:"type"`
	TransactionDate time.Time       `json:"transactionDate"`
	Merchant        string          `json:"merchant"`
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
	SectionID       *int64          `json:"sectionId,omitempty"`
	BudgetItemID    *int64          `json:"budgetItemId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type TransactionFilters struct {
	StartDate      *time.Time
	EndDate        *time.Time
	Type           *TransactionType
	SectionID      *int64
	BudgetItemID   *int64
	SectionName    *string
	BudgetItemName *string
	Merchant       *string
	Page           int
	PageSize       int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(id int64) (*Transaction, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(id int64) error
	List(filters *TransactionFilters) (*PaginatedTransactions, error)
	SumByType(txType TransactionType, startDate, endDate *time.Time) (decimal.Decimal, error)
}
