package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfouda/homebudget-backend/internal/domain"
)

// BudgetItemRepository implements domain.BudgetItemRepository using PostgreSQL
type BudgetItemRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetItemRepository creates a new BudgetItemRepository
func NewBudgetItemRepository(pool *pgxpool.Pool) *BudgetItemRepository {
	return &BudgetItemRepository{pool: pool}
}

// Create persists a new budget item
func (r *BudgetItemRepository) Create(item *domain.BudgetItem) (*domain.BudgetItem, error) {
	ctx := context.Background()

	planned, err := decimalToPgNumeric(item.PlannedAmount)
	if err != nil {
		return nil, err
	}
	actual, err := decimalToPgNumeric(item.ActualAmount)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO budget_item (section_id, name, planned_amount, actual_amount, display_order)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		item.SectionID, item.Name, planned, actual, item.DisplayOrder,
	).Scan(&item.ID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID retrieves a budget item
func (r *BudgetItemRepository) GetByID(id int64) (*domain.BudgetItem, error) {
	ctx := context.Background()

	item := &domain.BudgetItem{}
	var planned, actual pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT id, section_id, name, planned_amount, actual_amount, display_order
		 FROM budget_item WHERE id = $1`, id,
	).Scan(&item.ID, &item.SectionID, &item.Name, &planned, &actual, &item.DisplayOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetItemNotFound
		}
		return nil, err
	}
	item.PlannedAmount = pgNumericToDecimal(planned)
	item.ActualAmount = pgNumericToDecimal(actual)
	return item, nil
}

// Update persists budget item changes
func (r *BudgetItemRepository) Update(item *domain.BudgetItem) (*domain.BudgetItem, error) {
	ctx := context.Background()

	planned, err := decimalToPgNumeric(item.PlannedAmount)
	if err != nil {
		return nil, err
	}
	actual, err := decimalToPgNumeric(item.ActualAmount)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE budget_item SET name = $2, planned_amount = $3, actual_amount = $4 WHERE id = $1`,
		item.ID, item.Name, planned, actual)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrBudgetItemNotFound
	}
	return item, nil
}

// Delete removes a budget item
func (r *BudgetItemRepository) Delete(id int64) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM budget_item WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetItemNotFound
	}
	return nil
}

// MaxDisplayOrder returns the highest display order within a section, zero when empty
func (r *BudgetItemRepository) MaxDisplayOrder(sectionID int64) (int, error) {
	ctx := context.Background()

	var max int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(display_order), 0) FROM budget_item WHERE section_id = $1`, sectionID,
	).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

// FindBySectionAndName looks up an item case-insensitively by name within
// sections of the given name, first match wins
func (r *BudgetItemRepository) FindBySectionAndName(sectionName, itemName string) (*domain.BudgetItem, error) {
	ctx := context.Background()

	item := &domain.BudgetItem{}
	var planned, actual pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT i.id, i.section_id, i.name, i.planned_amount, i.actual_amount, i.display_order
		 FROM budget_item i
		 JOIN section s ON s.id = i.section_id
		 WHERE LOWER(s.name) = LOWER($1) AND LOWER(i.name) = LOWER($2)
		 ORDER BY i.id ASC LIMIT 1`,
		sectionName, itemName,
	).Scan(&item.ID, &item.SectionID, &item.Name, &planned, &actual, &item.DisplayOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetItemNotFound
		}
		return nil, err
	}
	item.PlannedAmount = pgNumericToDecimal(planned)
	item.ActualAmount = pgNumericToDecimal(actual)
	return item, nil
}
