package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanRepository implements domain.PlanRepository using PostgreSQL
type PlanRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

// Create persists a new plan without items
func (r *PlanRepository) Create(plan *domain.Plan) (*domain.Plan, error) {
	ctx := context.Background()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO plan (budget_item_id, year, month) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		plan.BudgetItemID, plan.Year, plan.Month,
	).Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrPlanAlreadyExists
		}
		return nil, err
	}
	plan.Items = []*domain.PlanItem{}
	return plan, nil
}

// GetByID retrieves a plan with its items in display order
func (r *PlanRepository) GetByID(id int64) (*domain.Plan, error) {
	ctx := context.Background()

	plan := &domain.Plan{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, budget_item_id, year, month, created_at FROM plan WHERE id = $1`, id,
	).Scan(&plan.ID, &plan.BudgetItemID, &plan.Year, &plan.Month, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetByBudgetItem retrieves the plan attached to a budget item for a period
func (r *PlanRepository) GetByBudgetItem(budgetItemID int64, year, month int) (*domain.Plan, error) {
	ctx := context.Background()

	plan := &domain.Plan{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, budget_item_id, year, month, created_at
		 FROM plan WHERE budget_item_id = $1 AND year = $2 AND month = $3`,
		budgetItemID, year, month,
	).Scan(&plan.ID, &plan.BudgetItemID, &plan.Year, &plan.Month, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetAllByMonth retrieves every plan for a period with items loaded
func (r *PlanRepository) GetAllByMonth(year, month int) ([]*domain.Plan, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT id, budget_item_id, year, month, created_at
		 FROM plan WHERE year = $1 AND month = $2 ORDER BY id ASC`,
		year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		plan := &domain.Plan{}
		if err := rows.Scan(&plan.ID, &plan.BudgetItemID, &plan.Year, &plan.Month, &plan.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, plan := range plans {
		if err := r.loadItems(ctx, plan); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// ExistsByBudgetItem reports whether the budget item already has a plan for
// the period
func (r *PlanRepository) ExistsByBudgetItem(budgetItemID int64, year, month int) (bool, error) {
	ctx := context.Background()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM plan WHERE budget_item_id = $1 AND year = $2 AND month = $3)`,
		budgetItemID, year, month,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ReplaceItems swaps the plan's items for the given set and writes the total
// back to the owning budget item's planned amount, all in one transaction.
func (r *PlanRepository) ReplaceItems(planID int64, items []*domain.PlanItem, total decimal.Decimal) (*domain.Plan, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	plan := &domain.Plan{}
	err = tx.QueryRow(ctx,
		`SELECT id, budget_item_id, year, month, created_at FROM plan WHERE id = $1 FOR UPDATE`,
		planID,
	).Scan(&plan.ID, &plan.BudgetItemID, &plan.Year, &plan.Month, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM plan_item WHERE plan_id = $1`, planID); err != nil {
		return nil, err
	}

	for _, item := range items {
		item.PlanID = planID
		amount, err := decimalToPgNumeric(item.Amount)
		if err != nil {
			return nil, err
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO plan_item (plan_id, name, amount, display_order, from_subscription)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			item.PlanID, item.Name, amount, item.DisplayOrder, item.FromSubscription,
		).Scan(&item.ID)
		if err != nil {
			return nil, err
		}
	}

	planned, err := decimalToPgNumeric(total)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE budget_item SET planned_amount = $2 WHERE id = $1`,
		plan.BudgetItemID, planned); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	plan.Items = items
	return plan, nil
}

// Delete removes a plan and its items, resetting the owning budget item's
// planned amount to zero in the same transaction.
func (r *PlanRepository) Delete(id int64) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	zero, err := decimalToPgNumeric(decimal.Zero)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE budget_item SET planned_amount = $2
		 WHERE id = (SELECT budget_item_id FROM plan WHERE id = $1)`,
		id, zero); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM plan WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}

	return tx.Commit(ctx)
}

func (r *PlanRepository) loadItems(ctx context.Context, plan *domain.Plan) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, plan_id, name, amount, display_order, from_subscription
		 FROM plan_item WHERE plan_id = $1 ORDER BY display_order ASC`,
		plan.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	plan.Items = []*domain.PlanItem{}
	for rows.Next() {
		item := &domain.PlanItem{}
		var amount pgtype.Numeric
		if err := rows.Scan(&item.ID, &item.PlanID, &item.Name, &amount, &item.DisplayOrder, &item.FromSubscription); err != nil {
			return err
		}
		item.Amount = pgNumericToDecimal(amount)
		plan.Items = append(plan.Items, item)
	}
	return rows.Err()
}
