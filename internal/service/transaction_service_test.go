package service

import (
	"testing"
	"time"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactionService() (*TransactionService, *testutil.MockTransactionRepository, *testutil.MockSectionRepository, *testutil.MockBudgetItemRepository) {
	sectionRepo := testutil.NewMockSectionRepository()
	itemRepo := testutil.NewMockBudgetItemRepository(sectionRepo)
	transactionRepo := testutil.NewMockTransactionRepository()
	return NewTransactionService(transactionRepo, sectionRepo, itemRepo), transactionRepo, sectionRepo, itemRepo
}

func march(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestCreateTransaction_Success(t *testing.T) {
	transactionService, _, sectionRepo, _ := setupTransactionService()
	sectionRepo.AddSection(&domain.Section{ID: 1, Name: "Daily Living"})

	sectionID := int64(1)
	transaction, err := transactionService.CreateTransaction(CreateTransactionInput{
		Type:            domain.TransactionTypeExpense,
		TransactionDate: march(5),
		Merchant:        "Coffee Shop",
		Amount:          dec("12.50"),
		Note:            "latte",
		SectionID:       &sectionID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Coffee Shop", transaction.Merchant)
	require.NotNil(t, transaction.SectionID)
	assert.Equal(t, int64(1), *transaction.SectionID)
}

func TestCreateTransaction_Validation(t *testing.T) {
	transactionService, _, _, _ := setupTransactionService()

	_, err := transactionService.CreateTransaction(CreateTransactionInput{
		Type: "TRANSFER", TransactionDate: march(5), Merchant: "X", Amount: dec("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = transactionService.CreateTransaction(CreateTransactionInput{
		Type: domain.TransactionTypeExpense, Merchant: "X", Amount: dec("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrDateRequired)

	_, err = transactionService.CreateTransaction(CreateTransactionInput{
		Type: domain.TransactionTypeExpense, TransactionDate: march(5), Merchant: "  ", Amount: dec("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrMerchantRequired)

	_, err = transactionService.CreateTransaction(CreateTransactionInput{
		Type: domain.TransactionTypeExpense, TransactionDate: march(5), Merchant: "X", Amount: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrAmountRequired)
}

func TestCreateTransaction_UnknownSection(t *testing.T) {
	transactionService, _, _, _ := setupTransactionService()

	sectionID := int64(42)
	_, err := transactionService.CreateTransaction(CreateTransactionInput{
		Type:            domain.TransactionTypeExpense,
		TransactionDate: march(5),
		Merchant:        "Coffee Shop",
		Amount:          dec("12.50"),
		SectionID:       &sectionID,
	})
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestUpdateTransaction_Partial(t *testing.T) {
	transactionService, transactionRepo, _, _ := setupTransactionService()
	transactionRepo.Create(&domain.Transaction{
		Type:            domain.TransactionTypeExpense,
		TransactionDate: march(5),
		Merchant:        "Coffee Shop",
		Amount:          dec("12.50"),
	})

	newAmount := dec("14.00")
	updated, err := transactionService.UpdateTransaction(1, UpdateTransactionInput{Amount: &newAmount})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("14.00")))
	assert.Equal(t, "Coffee Shop", updated.Merchant)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	transactionService, _, _, _ := setupTransactionService()

	err := transactionService.DeleteTransaction(42)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestGetTransactions_PaginationDefaults(t *testing.T) {
	transactionService, transactionRepo, _, _ := setupTransactionService()
	for day := 1; day <= 25; day++ {
		transactionRepo.Create(&domain.Transaction{
			Type:            domain.TransactionTypeExpense,
			TransactionDate: march(day),
			Merchant:        "Shop",
			Amount:          dec("1.00"),
		})
	}

	page, err := transactionService.GetTransactions(&domain.TransactionFilters{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPageSize, page.PageSize)
	assert.Len(t, page.Data, domain.DefaultPageSize)
	assert.Equal(t, int64(25), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	// Most recent first
	assert.Equal(t, 25, page.Data[0].TransactionDate.Day())
}

func TestGetTotalByType(t *testing.T) {
	transactionService, transactionRepo, _, _ := setupTransactionService()
	transactionRepo.Create(&domain.Transaction{
		Type: domain.TransactionTypeIncome, TransactionDate: march(1), Merchant: "Employer", Amount: dec("1000.00"),
	})
	transactionRepo.Create(&domain.Transaction{
		Type: domain.TransactionTypeExpense, TransactionDate: march(2), Merchant: "Shop", Amount: dec("40.00"),
	})

	total, err := transactionService.GetTotalByType(domain.TransactionTypeIncome, nil, nil)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("1000.00")))

	start := march(2)
	total, err = transactionService.GetTotalByType(domain.TransactionTypeIncome, &start, nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
