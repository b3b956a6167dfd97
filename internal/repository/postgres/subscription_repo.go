package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfouda/homebudget-backend/internal/domain"
)

// SubscriptionRepository implements domain.SubscriptionRepository using PostgreSQL
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// Create persists a new subscription
func (r *SubscriptionRepository) Create(subscription *domain.Subscription) (*domain.Subscription, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(subscription.Amount)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO subscription (name, amount, billing_day, category, recurrence, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`,
		subscription.Name, amount, subscription.BillingDay, subscription.Category,
		subscription.Recurrence, subscription.IsActive,
	).Scan(&subscription.ID, &subscription.CreatedAt, &subscription.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

// GetByID retrieves a subscription, active or not
func (r *SubscriptionRepository) GetByID(id int64) (*domain.Subscription, error) {
	ctx := context.Background()

	subscription := &domain.Subscription{}
	var amount pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, amount, billing_day, category, recurrence, is_active, created_at, updated_at
		 FROM subscription WHERE id = $1`, id,
	).Scan(&subscription.ID, &subscription.Name, &amount, &subscription.BillingDay,
		&subscription.Category, &subscription.Recurrence, &subscription.IsActive,
		&subscription.CreatedAt, &subscription.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	subscription.Amount = pgNumericToDecimal(amount)
	return subscription, nil
}

// GetAllActive retrieves active subscriptions sorted by name
func (r *SubscriptionRepository) GetAllActive() ([]*domain.Subscription, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, amount, billing_day, category, recurrence, is_active, created_at, updated_at
		 FROM subscription WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscriptions := []*domain.Subscription{}
	for rows.Next() {
		subscription := &domain.Subscription{}
		var amount pgtype.Numeric
		if err := rows.Scan(&subscription.ID, &subscription.Name, &amount, &subscription.BillingDay,
			&subscription.Category, &subscription.Recurrence, &subscription.IsActive,
			&subscription.CreatedAt, &subscription.UpdatedAt); err != nil {
			return nil, err
		}
		subscription.Amount = pgNumericToDecimal(amount)
		subscriptions = append(subscriptions, subscription)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// Update persists subscription changes
func (r *SubscriptionRepository) Update(subscription *domain.Subscription) (*domain.Subscription, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(subscription.Amount)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`UPDATE subscription
		 SET name = $2, amount = $3, billing_day = $4, category = $5, recurrence = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		subscription.ID, subscription.Name, amount, subscription.BillingDay,
		subscription.Category, subscription.Recurrence,
	).Scan(&subscription.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return subscription, nil
}

// Deactivate soft-deletes a subscription
func (r *SubscriptionRepository) Deactivate(id int64) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE subscription SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}
