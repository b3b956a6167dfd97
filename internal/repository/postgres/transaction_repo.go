package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create persists a new transaction
func (r *TransactionRepository) Create(txn *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(txn.Amount)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO transaction (type, transaction_date, merchant, amount, note, section_id, budget_item_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`,
		txn.Type, txn.TransactionDate, txn.Merchant, amount, txn.Note, txn.SectionID, txn.BudgetItemID,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// GetByID retrieves a transaction
func (r *TransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	ctx := context.Background()

	txn := &domain.Transaction{}
	var amount pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT id, type, transaction_date, merchant, amount, note, section_id, budget_item_id, created_at
		 FROM transaction WHERE id = $1`, id,
	).Scan(&txn.ID, &txn.Type, &txn.TransactionDate, &txn.Merchant, &amount,
		&txn.Note, &txn.SectionID, &txn.BudgetItemID, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	txn.Amount = pgNumericToDecimal(amount)
	return txn, nil
}

// Update persists transaction changes
func (r *TransactionRepository) Update(txn *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(txn.Amount)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE transaction
		 SET type = $2, transaction_date = $3, merchant = $4, amount = $5, note = $6,
		     section_id = $7, budget_item_id = $8
		 WHERE id = $1`,
		txn.ID, txn.Type, txn.TransactionDate, txn.Merchant, amount, txn.Note,
		txn.SectionID, txn.BudgetItemID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return txn, nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id int64) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM transaction WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// List retrieves a page of transactions, most recent first
func (r *TransactionRepository) List(filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	ctx := context.Background()

	where, args := buildTransactionFilters(filters)

	var total int64
	countQuery := `SELECT COUNT(*) FROM transaction t
		LEFT JOIN section s ON s.id = t.section_id
		LEFT JOIN budget_item i ON i.id = t.budget_item_id` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`SELECT t.id, t.type, t.transaction_date, t.merchant, t.amount, t.note,
		t.section_id, t.budget_item_id, t.created_at
		FROM transaction t
		LEFT JOIN section s ON s.id = t.section_id
		LEFT JOIN budget_item i ON i.id = t.budget_item_id%s
		ORDER BY t.transaction_date DESC, t.id DESC
		LIMIT %d OFFSET %d`, where, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		txn := &domain.Transaction{}
		var amount pgtype.Numeric
		if err := rows.Scan(&txn.ID, &txn.Type, &txn.TransactionDate, &txn.Merchant, &amount,
			&txn.Note, &txn.SectionID, &txn.BudgetItemID, &txn.CreatedAt); err != nil {
			return nil, err
		}
		txn.Amount = pgNumericToDecimal(amount)
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedTransactions{
		Data:       transactions,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// SumByType totals transaction amounts of one type within an optional date range
func (r *TransactionRepository) SumByType(txType domain.TransactionType, startDate, endDate *time.Time) (decimal.Decimal, error) {
	ctx := context.Background()

	filters := &domain.TransactionFilters{
		Type:      &txType,
		StartDate: startDate,
		EndDate:   endDate,
	}
	where, args := buildTransactionFilters(filters)

	query := `SELECT COALESCE(SUM(t.amount), 0) FROM transaction t
		LEFT JOIN section s ON s.id = t.section_id
		LEFT JOIN budget_item i ON i.id = t.budget_item_id` + where

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(sum), nil
}

func buildTransactionFilters(filters *domain.TransactionFilters) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filters.StartDate != nil {
		add("t.transaction_date >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil {
		add("t.transaction_date <= $%d", *filters.EndDate)
	}
	if filters.Type != nil {
		add("t.type = $%d", *filters.Type)
	}
	if filters.SectionID != nil {
		add("t.section_id = $%d", *filters.SectionID)
	}
	if filters.BudgetItemID != nil {
		add("t.budget_item_id = $%d", *filters.BudgetItemID)
	}
	if filters.SectionName != nil {
		add("LOWER(s.name) = LOWER($%d)", *filters.SectionName)
	}
	if filters.BudgetItemName != nil {
		add("LOWER(i.name) = LOWER($%d)", *filters.BudgetItemName)
	}
	if filters.Merchant != nil {
		add("t.merchant ILIKE $%d", "%"+*filters.Merchant+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
