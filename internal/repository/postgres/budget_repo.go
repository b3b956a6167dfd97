package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfouda/homebudget-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create persists a budget with its full section/item hierarchy in one transaction
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO budget (year, month) VALUES ($1, $2) RETURNING id, created_at`,
		budget.Year, budget.Month,
	).Scan(&budget.ID, &budget.CreatedAt)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrBudgetAlreadyExists
		}
		return nil, err
	}

	for _, section := range budget.Sections {
		section.BudgetID = budget.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO section (budget_id, name, display_order, is_income)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			section.BudgetID, section.Name, section.DisplayOrder, section.IsIncome,
		).Scan(&section.ID)
		if err != nil {
			return nil, err
		}

		for _, item := range section.Items {
			item.SectionID = section.ID
			planned, err := decimalToPgNumeric(item.PlannedAmount)
			if err != nil {
				return nil, err
			}
			actual, err := decimalToPgNumeric(item.ActualAmount)
			if err != nil {
				return nil, err
			}
			err = tx.QueryRow(ctx,
				`INSERT INTO budget_item (section_id, name, planned_amount, actual_amount, display_order)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				item.SectionID, item.Name, planned, actual, item.DisplayOrder,
			).Scan(&item.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return budget, nil
}

// GetByID retrieves a budget without its children
func (r *BudgetRepository) GetByID(id int64) (*domain.Budget, error) {
	ctx := context.Background()

	budget := &domain.Budget{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, year, month, created_at FROM budget WHERE id = $1`, id,
	).Scan(&budget.ID, &budget.Year, &budget.Month, &budget.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetByYearMonth retrieves a budget with every section and item eagerly loaded
func (r *BudgetRepository) GetByYearMonth(year, month int) (*domain.Budget, error) {
	ctx := context.Background()

	budget := &domain.Budget{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, year, month, created_at FROM budget WHERE year = $1 AND month = $2`,
		year, month,
	).Scan(&budget.ID, &budget.Year, &budget.Month, &budget.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}

	if err := r.loadHierarchy(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// GetByYear retrieves fully loaded budgets for a year in ascending month order
func (r *BudgetRepository) GetByYear(year int) ([]*domain.Budget, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT id, year, month, created_at FROM budget WHERE year = $1 ORDER BY month ASC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget := &domain.Budget{}
		if err := rows.Scan(&budget.ID, &budget.Year, &budget.Month, &budget.CreatedAt); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, budget := range budgets {
		if err := r.loadHierarchy(ctx, budget); err != nil {
			return nil, err
		}
	}
	return budgets, nil
}

// ExistsByYearMonth reports whether a budget exists for the period
func (r *BudgetRepository) ExistsByYearMonth(year, month int) (bool, error) {
	ctx := context.Background()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM budget WHERE year = $1 AND month = $2)`,
		year, month,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// loadHierarchy attaches sections and items with a single left join, so
// sections without items are still present. Ordering follows display order.
func (r *BudgetRepository) loadHierarchy(ctx context.Context, budget *domain.Budget) error {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.display_order, s.is_income,
		        i.id, i.name, i.planned_amount, i.actual_amount, i.display_order
		 FROM section s
		 LEFT JOIN budget_item i ON i.section_id = s.id
		 WHERE s.budget_id = $1
		 ORDER BY s.display_order ASC, i.display_order ASC`,
		budget.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	budget.Sections = []*domain.Section{}
	sectionsByID := make(map[int64]*domain.Section)

	for rows.Next() {
		var (
			sectionID      int64
			sectionName    string
			displayOrder   int
			isIncome       bool
			itemID         *int64
			itemName       *string
			plannedAmount  pgtype.Numeric
			actualAmount   pgtype.Numeric
			itemOrder      *int
		)
		if err := rows.Scan(&sectionID, &sectionName, &displayOrder, &isIncome,
			&itemID, &itemName, &plannedAmount, &actualAmount, &itemOrder); err != nil {
			return err
		}

		section, ok := sectionsByID[sectionID]
		if !ok {
			section = &domain.Section{
				ID:           sectionID,
				BudgetID:     budget.ID,
				Name:         sectionName,
				DisplayOrder: displayOrder,
				IsIncome:     isIncome,
				Items:        []*domain.BudgetItem{},
			}
			sectionsByID[sectionID] = section
			budget.Sections = append(budget.Sections, section)
		}

		if itemID != nil {
			section.Items = append(section.Items, &domain.BudgetItem{
				ID:            *itemID,
				SectionID:     sectionID,
				Name:          *itemName,
				PlannedAmount: pgNumericToDecimal(plannedAmount),
				ActualAmount:  pgNumericToDecimal(actualAmount),
				DisplayOrder:  *itemOrder,
			})
		}
	}
	return rows.Err()
}
