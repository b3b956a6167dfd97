package service

import (
	"testing"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupImportService() (*ImportService, *testutil.MockTransactionRepository, *testutil.MockSectionRepository, *testutil.MockBudgetItemRepository) {
	sectionRepo := testutil.NewMockSectionRepository()
	itemRepo := testutil.NewMockBudgetItemRepository(sectionRepo)
	transactionRepo := testutil.NewMockTransactionRepository()
	return NewImportService(transactionRepo, sectionRepo, itemRepo), transactionRepo, sectionRepo, itemRepo
}

func defaultMapping() map[string]int {
	return map[string]int{
		ColumnDate:     0,
		ColumnType:     1,
		ColumnMerchant: 2,
		ColumnAmount:   3,
		ColumnNote:     4,
	}
}

func TestImportRows_SingleRow(t *testing.T) {
	importService, _, _, _ := setupImportService()

	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: defaultMapping(),
		Rows: [][]string{
			{"2024-03-05", "EXPENSE", "Coffee Shop", "$12.50", "latte"},
		},
	})
	require.NoError(t, err)
	require.Len(t, imported, 1)

	transaction := imported[0]
	assert.Equal(t, domain.TransactionTypeExpense, transaction.Type)
	assert.True(t, transaction.Amount.Equal(dec("12.50")))
	assert.Equal(t, "Coffee Shop", transaction.Merchant)
	assert.Equal(t, "latte", transaction.Note)
	assert.Equal(t, 2024, transaction.TransactionDate.Year())
	assert.Equal(t, 3, int(transaction.TransactionDate.Month()))
	assert.Equal(t, 5, transaction.TransactionDate.Day())
	assert.Nil(t, transaction.SectionID)
	assert.Nil(t, transaction.BudgetItemID)
}

func TestImportRows_BadDateSkippedSilently(t *testing.T) {
	importService, transactionRepo, _, _ := setupImportService()

	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: defaultMapping(),
		Rows: [][]string{
			{"2024-03-05", "EXPENSE", "Coffee Shop", "12.50", ""},
			{"not-a-date", "EXPENSE", "Broken", "10.00", ""},
			{"2024-03-07", "EXPENSE", "Grocer", "40.00", ""},
		},
	})
	require.NoError(t, err)
	assert.Len(t, imported, 2)
	assert.Len(t, transactionRepo.Transactions, 2)
	assert.Equal(t, "Coffee Shop", imported[0].Merchant)
	assert.Equal(t, "Grocer", imported[1].Merchant)
}

func TestImportRows_BadAmountSkippedSilently(t *testing.T) {
	importService, _, _, _ := setupImportService()

	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: defaultMapping(),
		Rows: [][]string{
			{"2024-03-05", "EXPENSE", "Coffee Shop", "twelve", ""},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, imported)
}

func TestImportRows_UnmappedRequiredColumnsSkipRow(t *testing.T) {
	importService, _, _, _ := setupImportService()

	// No amount column mapped: every row is skipped
	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: map[string]int{ColumnDate: 0},
		Rows:          [][]string{{"2024-03-05"}},
	})
	require.NoError(t, err)
	assert.Empty(t, imported)

	// Amount column mapped out of range for the row: skipped as well
	imported, err = importService.ImportRows(ImportRequest{
		ColumnMapping: map[string]int{ColumnDate: 0, ColumnAmount: 7},
		Rows:          [][]string{{"2024-03-05"}},
	})
	require.NoError(t, err)
	assert.Empty(t, imported)
}

func TestImportRows_AmountNormalization(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"$12.50", "12.50"},
		{"1,234.56", "1234.56"},
		{"$1,000.00", "1000.00"},
		{"(45.00)", "45.00"},
		{"-45.00", "45.00"},
		{" 12.50 ", "12.50"},
	}

	for _, tt := range tests {
		importService, _, _, _ := setupImportService()
		imported, err := importService.ImportRows(ImportRequest{
			ColumnMapping: defaultMapping(),
			Rows: [][]string{
				{"2024-03-05", "", "Shop", tt.raw, ""},
			},
		})
		require.NoError(t, err)
		require.Len(t, imported, 1, "raw amount %q", tt.raw)
		assert.True(t, imported[0].Amount.Equal(dec(tt.want)), "raw %q: expected %s, got %s", tt.raw, tt.want, imported[0].Amount)
	}
}

func TestImportRows_TypeClassification(t *testing.T) {
	tests := []struct {
		text string
		want domain.TransactionType
	}{
		{"INCOME", domain.TransactionTypeIncome},
		{"income", domain.TransactionTypeIncome},
		{"Direct Deposit", domain.TransactionTypeIncome},
		{"credit", domain.TransactionTypeIncome},
		{"EXPENSE", domain.TransactionTypeExpense},
		{"debit", domain.TransactionTypeExpense},
		{"", domain.TransactionTypeExpense},
	}

	for _, tt := range tests {
		importService, _, _, _ := setupImportService()
		imported, err := importService.ImportRows(ImportRequest{
			ColumnMapping: defaultMapping(),
			Rows: [][]string{
				{"2024-03-05", tt.text, "Shop", "10.00", ""},
			},
		})
		require.NoError(t, err)
		require.Len(t, imported, 1)
		assert.Equal(t, tt.want, imported[0].Type, "type text %q", tt.text)
	}
}

func TestImportRows_UnmappedTypeDefaultsToExpense(t *testing.T) {
	importService, _, _, _ := setupImportService()

	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: map[string]int{ColumnDate: 0, ColumnAmount: 1},
		Rows:          [][]string{{"2024-03-05", "10.00"}},
	})
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, domain.TransactionTypeExpense, imported[0].Type)
	assert.Equal(t, "Unknown", imported[0].Merchant)
}

func TestImportRows_SkipFirstRow(t *testing.T) {
	importService, _, _, _ := setupImportService()

	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: defaultMapping(),
		SkipFirstRow:  true,
		Rows: [][]string{
			{"Date", "Type", "Merchant", "Amount", "Note"},
			{"2024-03-05", "EXPENSE", "Coffee Shop", "12.50", ""},
		},
	})
	require.NoError(t, err)
	assert.Len(t, imported, 1)
}

func TestImportRows_CustomDateFormat(t *testing.T) {
	importService, _, _, _ := setupImportService()

	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: defaultMapping(),
		DateFormat:    "01/02/2006",
		Rows: [][]string{
			{"03/05/2024", "EXPENSE", "Coffee Shop", "12.50", ""},
		},
	})
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, 3, int(imported[0].TransactionDate.Month()))
	assert.Equal(t, 5, imported[0].TransactionDate.Day())
}

func TestImportRows_SectionAndItemMatching(t *testing.T) {
	importService, _, sectionRepo, itemRepo := setupImportService()
	sectionRepo.AddSection(&domain.Section{ID: 1, Name: "Daily Living"})
	itemRepo.AddItem(&domain.BudgetItem{ID: 10, SectionID: 1, Name: "Groceries"})

	mapping := defaultMapping()
	mapping[ColumnCategory] = 5
	mapping[ColumnBudgetItem] = 6

	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: mapping,
		Rows: [][]string{
			{"2024-03-05", "EXPENSE", "Grocer", "40.00", "", "daily living", "GROCERIES"},
			{"2024-03-06", "EXPENSE", "Other", "10.00", "", "No Such Section", "Groceries"},
		},
	})
	require.NoError(t, err)
	require.Len(t, imported, 2)

	require.NotNil(t, imported[0].SectionID)
	assert.Equal(t, int64(1), *imported[0].SectionID)
	require.NotNil(t, imported[0].BudgetItemID)
	assert.Equal(t, int64(10), *imported[0].BudgetItemID)

	// Unmatched category leaves the transaction uncategorized, not failed
	assert.Nil(t, imported[1].SectionID)
	assert.Nil(t, imported[1].BudgetItemID)
}

func TestImportRows_ItemMatchRequiresSectionMatch(t *testing.T) {
	importService, _, sectionRepo, itemRepo := setupImportService()
	sectionRepo.AddSection(&domain.Section{ID: 1, Name: "Daily Living"})
	itemRepo.AddItem(&domain.BudgetItem{ID: 10, SectionID: 1, Name: "Groceries"})

	// Item column mapped but no category column: item matching is skipped
	mapping := defaultMapping()
	mapping[ColumnBudgetItem] = 5

	imported, err := importService.ImportRows(ImportRequest{
		ColumnMapping: mapping,
		Rows: [][]string{
			{"2024-03-05", "EXPENSE", "Grocer", "40.00", "", "Groceries"},
		},
	})
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Nil(t, imported[0].BudgetItemID)
}
