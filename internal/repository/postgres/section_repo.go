package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfouda/homebudget-backend/internal/domain"
)

// SectionRepository implements domain.SectionRepository using PostgreSQL
type SectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository creates a new SectionRepository
func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{pool: pool}
}

// Create persists a new section
func (r *SectionRepository) Create(section *domain.Section) (*domain.Section, error) {
	ctx := context.Background()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO section (budget_id, name, display_order, is_income)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		section.BudgetID, section.Name, section.DisplayOrder, section.IsIncome,
	).Scan(&section.ID)
	if err != nil {
		return nil, err
	}
	return section, nil
}

// GetByID retrieves a section without its items
func (r *SectionRepository) GetByID(id int64) (*domain.Section, error) {
	ctx := context.Background()

	section := &domain.Section{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, budget_id, name, display_order, is_income FROM section WHERE id = $1`, id,
	).Scan(&section.ID, &section.BudgetID, &section.Name, &section.DisplayOrder, &section.IsIncome)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, err
	}
	return section, nil
}

// GetByIDWithItems retrieves a section with its items in display order
func (r *SectionRepository) GetByIDWithItems(id int64) (*domain.Section, error) {
	section, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, section_id, name, planned_amount, actual_amount, display_order
		 FROM budget_item WHERE section_id = $1 ORDER BY display_order ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	section.Items = []*domain.BudgetItem{}
	for rows.Next() {
		item := &domain.BudgetItem{}
		var planned, actual pgtype.Numeric
		if err := rows.Scan(&item.ID, &item.SectionID, &item.Name, &planned, &actual, &item.DisplayOrder); err != nil {
			return nil, err
		}
		item.PlannedAmount = pgNumericToDecimal(planned)
		item.ActualAmount = pgNumericToDecimal(actual)
		section.Items = append(section.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return section, nil
}

// Update persists section changes
func (r *SectionRepository) Update(section *domain.Section) (*domain.Section, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE section SET name = $2, is_income = $3 WHERE id = $1`,
		section.ID, section.Name, section.IsIncome)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrSectionNotFound
	}
	return section, nil
}

// Delete removes a section; its items go with it via the cascade
func (r *SectionRepository) Delete(id int64) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM section WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSectionNotFound
	}
	return nil
}

// MaxDisplayOrder returns the highest display order within a budget, zero when empty
func (r *SectionRepository) MaxDisplayOrder(budgetID int64) (int, error) {
	ctx := context.Background()

	var max int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(display_order), 0) FROM section WHERE budget_id = $1`, budgetID,
	).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

// FindByName performs a case-insensitive exact-name lookup, first match wins
func (r *SectionRepository) FindByName(name string) (*domain.Section, error) {
	ctx := context.Background()

	section := &domain.Section{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, budget_id, name, display_order, is_income
		 FROM section WHERE LOWER(name) = LOWER($1) ORDER BY id ASC LIMIT 1`,
		name,
	).Scan(&section.ID, &section.BudgetID, &section.Name, &section.DisplayOrder, &section.IsIncome)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, err
	}
	return section, nil
}
