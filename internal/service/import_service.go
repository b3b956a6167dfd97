package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultDateLayout is used when an import request carries no date format.
const DefaultDateLayout = "2006-01-02"

// Column mapping keys recognized by the importer.
const (
	ColumnDate       = "date"
	ColumnType       = "type"
	ColumnMerchant   = "merchant"
	ColumnAmount     = "amount"
	ColumnNote       = "note"
	ColumnCategory   = "category"
	ColumnBudgetItem = "budgetItem"
)

// incomeKeywords classify a type cell as income when the upper-cased text
// contains any of them; everything else is an expense.
var incomeKeywords = []string{"INCOME", "CREDIT", "DEPOSIT"}

// ImportService turns loosely-structured tabular rows into transactions.
// Malformed rows are skipped silently; a bad row never aborts the batch.
type ImportService struct {
	transactionRepo domain.TransactionRepository
	sectionRepo     domain.SectionRepository
	budgetItemRepo  domain.BudgetItemRepository
}

// NewImportService creates a new ImportService
func NewImportService(transactionRepo domain.TransactionRepository, sectionRepo domain.SectionRepository, budgetItemRepo domain.BudgetItemRepository) *ImportService {
	return &ImportService{
		transactionRepo: transactionRepo,
		sectionRepo:     sectionRepo,
		budgetItemRepo:  budgetItemRepo,
	}
}

// ImportRequest is a parsed import payload: raw rows plus a caller-supplied
// mapping from logical column names to column indexes.
type ImportRequest struct {
	ColumnMapping map[string]int
	Rows          [][]string
	DateFormat    string
	SkipFirstRow  bool
}

// ImportRows processes rows in input order, persisting one transaction per
// parseable row. Each transaction commits independently, so a failure partway
// leaves the already-imported prefix in place.
func (s *ImportService) ImportRows(request ImportRequest) ([]*domain.Transaction, error) {
	layout := request.DateFormat
	if layout == "" {
		layout = DefaultDateLayout
	}

	batchID := uuid.New()
	imported := make([]*domain.Transaction, 0, len(request.Rows))

	start := 0
	if request.SkipFirstRow {
		start = 1
	}

	for i := start; i < len(request.Rows); i++ {
		row := request.Rows[i]

		transaction, ok := s.buildTransaction(request.ColumnMapping, row, layout)
		if !ok {
			log.Debug().Str("batch_id", batchID.String()).Int("row", i).Msg("Skipping unparseable import row")
			continue
		}

		saved, err := s.transactionRepo.Create(transaction)
		if err != nil {
			return imported, err
		}
		imported = append(imported, saved)
	}

	log.Info().
		Str("batch_id", batchID.String()).
		Int("rows", len(request.Rows)).
		Int("imported", len(imported)).
		Msg("CSV import finished")

	return imported, nil
}

// buildTransaction extracts one candidate transaction from a row. The second
// return value is false when the row must be skipped (missing or malformed
// date or amount).
func (s *ImportService) buildTransaction(mapping map[string]int, row []string, layout string) (*domain.Transaction, bool) {
	transaction := &domain.Transaction{}

	// Date: required
	dateText, ok := cell(mapping, row, ColumnDate)
	if !ok {
		return nil, false
	}
	date, err := time.Parse(layout, dateText)
	if err != nil {
		return nil, false
	}
	transaction.TransactionDate = date

	// Type: defaults to expense
	transaction.Type = domain.TransactionTypeExpense
	if typeText, ok := cell(mapping, row, ColumnType); ok {
		upper := strings.ToUpper(typeText)
		for _, keyword := range incomeKeywords {
			if strings.Contains(upper, keyword) {
				transaction.Type = domain.TransactionTypeIncome
				break
			}
		}
	}

	// Merchant: defaults to "Unknown"
	if merchant, ok := cell(mapping, row, ColumnMerchant); ok {
		transaction.Merchant = merchant
	} else {
		transaction.Merchant = "Unknown"
	}

	// Amount: required; sign is discarded, direction lives in the type
	amountText, ok := cell(mapping, row, ColumnAmount)
	if !ok {
		return nil, false
	}
	amount, err := decimal.NewFromString(normalizeAmount(amountText))
	if err != nil {
		return nil, false
	}
	transaction.Amount = amount.Abs()

	if note, ok := cell(mapping, row, ColumnNote); ok {
		transaction.Note = note
	}

	// Category -> section match, then item match restricted to that section.
	// A miss leaves the transaction uncategorized.
	var matchedSection *domain.Section
	if category, ok := cell(mapping, row, ColumnCategory); ok && category != "" {
		section, err := s.sectionRepo.FindByName(category)
		if err == nil {
			matchedSection = section
			transaction.SectionID = &section.ID
		} else if !errors.Is(err, domain.ErrSectionNotFound) {
			return nil, false
		}
	}
	if itemName, ok := cell(mapping, row, ColumnBudgetItem); ok && itemName != "" && matchedSection != nil {
		item, err := s.budgetItemRepo.FindBySectionAndName(matchedSection.Name, itemName)
		if err == nil {
			transaction.BudgetItemID = &item.ID
		} else if !errors.Is(err, domain.ErrBudgetItemNotFound) {
			return nil, false
		}
	}

	return transaction, true
}

// cell returns the trimmed text of a mapped column, or false when the column
// is unmapped or out of range for the row.
func cell(mapping map[string]int, row []string, column string) (string, bool) {
	index, ok := mapping[column]
	if !ok || index < 0 || index >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[index]), true
}

// normalizeAmount strips currency symbols and thousands separators and turns
// a parenthesized negative into a leading minus sign.
func normalizeAmount(text string) string {
	replacer := strings.NewReplacer("$", "", ",", "", "(", "-", ")", "")
	return replacer.Replace(text)
}
