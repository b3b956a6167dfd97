package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternalError = errors.New("internal error")

	ErrBudgetNotFound       = errors.New("budget not found")
	ErrSectionNotFound      = errors.New("section not found")
	ErrBudgetItemNotFound   = errors.New("budget item not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrSalaryNotFound       = errors.New("salary not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")

	ErrBudgetAlreadyExists = errors.New("budget already exists for this year and month")
	ErrPlanAlreadyExists   = errors.New("plan already exists for this budget item and month")

	ErrNameRequired      = errors.New("name is required")
	ErrNameTooLong       = errors.New("name exceeds maximum length")
	ErrInvalidYear       = errors.New("year must be a 4-digit integer")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrAmountRequired    = errors.New("amount must be greater than zero")
	ErrInvalidType       = errors.New("transaction type must be income or expense")
	ErrDateRequired      = errors.New("transaction date is required")
	ErrMerchantRequired  = errors.New("merchant is required")
	ErrInvalidBillingDay = errors.New("billing day must be between 1 and 31")
	ErrInvalidRecurrence = errors.New("recurrence must be monthly or yearly")
)

// Validation constants
const (
	MaxNameLength = 100
	MinYear       = 1000
	MaxYear       = 9999
)
