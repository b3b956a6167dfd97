package service

import (
	"strings"
	"time"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	sectionRepo     domain.SectionRepository
	budgetItemRepo  domain.BudgetItemRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, sectionRepo domain.SectionRepository, budgetItemRepo domain.BudgetItemRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		sectionRepo:     sectionRepo,
		budgetItemRepo:  budgetItemRepo,
	}
}

// CreateTransactionInput carries the fields of a new transaction. Section and
// budget item references are optional.
type CreateTransactionInput struct {
	Type            domain.TransactionType
	TransactionDate time.Time
	Merchant        string
	Amount          decimal.Decimal
	Note            string
	SectionID       *int64
	BudgetItemID    *int64
}

// UpdateTransactionInput carries the optional fields of a transaction update
type UpdateTransactionInput struct {
	Type            *domain.TransactionType
	TransactionDate *time.Time
	Merchant        *string
	Amount          *decimal.Decimal
	Note            *string
	SectionID       *int64
	BudgetItemID    *int64
}

// GetTransaction returns a single transaction
func (s *TransactionService) GetTransaction(id int64) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(id)
}

// GetTransactions returns a filtered, paginated transaction listing
func (s *TransactionService) GetTransactions(filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	if filters.Page < 0 {
		filters.Page = 0
	}
	if filters.PageSize <= 0 {
		filters.PageSize = domain.DefaultPageSize
	}
	if filters.PageSize > domain.MaxPageSize {
		filters.PageSize = domain.MaxPageSize
	}
	return s.transactionRepo.List(filters)
}

// CreateTransaction validates and persists a new transaction
func (s *TransactionService) CreateTransaction(input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Type != domain.TransactionTypeIncome && input.Type != domain.TransactionTypeExpense {
		return nil, domain.ErrInvalidType
	}
	if input.TransactionDate.IsZero() {
		return nil, domain.ErrDateRequired
	}
	merchant := strings.TrimSpace(input.Merchant)
	if merchant == "" {
		return nil, domain.ErrMerchantRequired
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrAmountRequired
	}

	if input.SectionID != nil {
		if _, err := s.sectionRepo.GetByID(*input.SectionID); err != nil {
			return nil, err
		}
	}
	if input.BudgetItemID != nil {
		if _, err := s.budgetItemRepo.GetByID(*input.BudgetItemID); err != nil {
			return nil, err
		}
	}

	return s.transactionRepo.Create(&domain.Transaction{
		Type:            input.Type,
		TransactionDate: input.TransactionDate,
		Merchant:        merchant,
		Amount:          input.Amount,
		Note:            input.Note,
		SectionID:       input.SectionID,
		BudgetItemID:    input.BudgetItemID,
	})
}

// UpdateTransaction applies a partial update to a transaction
func (s *TransactionService) UpdateTransaction(id int64, input UpdateTransactionInput) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if *input.Type != domain.TransactionTypeIncome && *input.Type != domain.TransactionTypeExpense {
			return nil, domain.ErrInvalidType
		}
		transaction.Type = *input.Type
	}
	if input.TransactionDate != nil {
		transaction.TransactionDate = *input.TransactionDate
	}
	if input.Merchant != nil {
		merchant := strings.TrimSpace(*input.Merchant)
		if merchant == "" {
			return nil, domain.ErrMerchantRequired
		}
		transaction.Merchant = merchant
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domain.ErrAmountRequired
		}
		transaction.Amount = *input.Amount
	}
	if input.Note != nil {
		transaction.Note = *input.Note
	}
	if input.SectionID != nil {
		if _, err := s.sectionRepo.GetByID(*input.SectionID); err != nil {
			return nil, err
		}
		transaction.SectionID = input.SectionID
	}
	if input.BudgetItemID != nil {
		if _, err := s.budgetItemRepo.GetByID(*input.BudgetItemID); err != nil {
			return nil, err
		}
		transaction.BudgetItemID = input.BudgetItemID
	}

	return s.transactionRepo.Update(transaction)
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(id int64) error {
	if _, err := s.transactionRepo.GetByID(id); err != nil {
		return err
	}
	return s.transactionRepo.Delete(id)
}

// GetTotalByType sums transaction amounts of a type within an optional date range
func (s *TransactionService) GetTotalByType(txType domain.TransactionType, startDate, endDate *time.Time) (decimal.Decimal, error) {
	if txType != domain.TransactionTypeIncome && txType != domain.TransactionTypeExpense {
		return decimal.Zero, domain.ErrInvalidType
	}
	return s.transactionRepo.SumByType(txType, startDate, endDate)
}
