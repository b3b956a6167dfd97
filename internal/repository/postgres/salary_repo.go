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

// SalaryRepository implements domain.SalaryRepository using PostgreSQL
type SalaryRepository struct {
	pool *pgxpool.Pool
}

// NewSalaryRepository creates a new SalaryRepository
func NewSalaryRepository(pool *pgxpool.Pool) *SalaryRepository {
	return &SalaryRepository{pool: pool}
}

// Create persists a new salary profile
func (r *SalaryRepository) Create(salary *domain.Salary) (*domain.Salary, error) {
	ctx := context.Background()

	args, err := salaryAmountArgs(salary)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO salary (name, regular_amount, federal_tax, medicare, social_security,
		    four_oh_one_k, extra_tax_withholding, health_savings_account, medical_insurance,
		    flexible_spending_account, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		append([]any{salary.Name}, append(args, salary.IsActive)...)...,
	).Scan(&salary.ID, &salary.CreatedAt, &salary.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return salary, nil
}

// GetByID retrieves a salary profile, active or not
func (r *SalaryRepository) GetByID(id int64) (*domain.Salary, error) {
	ctx := context.Background()

	salary, err := scanSalary(r.pool.QueryRow(ctx,
		`SELECT id, name, regular_amount, federal_tax, medicare, social_security,
		    four_oh_one_k, extra_tax_withholding, health_savings_account, medical_insurance,
		    flexible_spending_account, is_active, created_at, updated_at
		 FROM salary WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSalaryNotFound
		}
		return nil, err
	}
	return salary, nil
}

// GetAllActive retrieves active salary profiles sorted by name
func (r *SalaryRepository) GetAllActive() ([]*domain.Salary, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, regular_amount, federal_tax, medicare, social_security,
		    four_oh_one_k, extra_tax_withholding, health_savings_account, medical_insurance,
		    flexible_spending_account, is_active, created_at, updated_at
		 FROM salary WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	salaries := []*domain.Salary{}
	for rows.Next() {
		salary, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, salary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return salaries, nil
}

// Update persists salary changes; nil optional deductions clear the column
func (r *SalaryRepository) Update(salary *domain.Salary) (*domain.Salary, error) {
	ctx := context.Background()

	args, err := salaryAmountArgs(salary)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`UPDATE salary
		 SET name = $2, regular_amount = $3, federal_tax = $4, medicare = $5,
		     social_security = $6, four_oh_one_k = $7, extra_tax_withholding = $8,
		     health_savings_account = $9, medical_insurance = $10,
		     flexible_spending_account = $11, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		append([]any{salary.ID, salary.Name}, args...)...,
	).Scan(&salary.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSalaryNotFound
		}
		return nil, err
	}
	return salary, nil
}

// Deactivate soft-deletes a salary profile
func (r *SalaryRepository) Deactivate(id int64) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE salary SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSalaryNotFound
	}
	return nil
}

func salaryAmountArgs(salary *domain.Salary) ([]any, error) {
	regular, err := decimalToPgNumeric(salary.RegularAmount)
	if err != nil {
		return nil, err
	}
	federal, err := decimalToPgNumeric(salary.FederalTax)
	if err != nil {
		return nil, err
	}
	medicare, err := decimalToPgNumeric(salary.Medicare)
	if err != nil {
		return nil, err
	}
	social, err := decimalToPgNumeric(salary.SocialSecurity)
	if err != nil {
		return nil, err
	}

	args := []any{regular, federal, medicare, social}
	for _, optional := range []*decimal.Decimal{
		salary.FourOhOneK,
		salary.ExtraTaxWithholding,
		salary.HealthSavingsAccount,
		salary.MedicalInsurance,
		salary.FlexibleSpendingAccount,
	} {
		num, err := nullableDecimalToPgNumeric(optional)
		if err != nil {
			return nil, err
		}
		args = append(args, num)
	}
	return args, nil
}

func scanSalary(row pgx.Row) (*domain.Salary, error) {
	salary := &domain.Salary{}
	var (
		regular, federal, medicare, social      pgtype.Numeric
		fourOhOneK, extraTax, hsa, medical, fsa pgtype.Numeric
	)
	err := row.Scan(&salary.ID, &salary.Name, &regular, &federal, &medicare, &social,
		&fourOhOneK, &extraTax, &hsa, &medical, &fsa,
		&salary.IsActive, &salary.CreatedAt, &salary.UpdatedAt)
	if err != nil {
		return nil, err
	}
	salary.RegularAmount = pgNumericToDecimal(regular)
	salary.FederalTax = pgNumericToDecimal(federal)
	salary.Medicare = pgNumericToDecimal(medicare)
	salary.SocialSecurity = pgNumericToDecimal(social)
	salary.FourOhOneK = pgNumericToNullableDecimal(fourOhOneK)
	salary.ExtraTaxWithholding = pgNumericToNullableDecimal(extraTax)
	salary.HealthSavingsAccount = pgNumericToNullableDecimal(hsa)
	salary.MedicalInsurance = pgNumericToNullableDecimal(medical)
	salary.FlexibleSpendingAccount = pgNumericToNullableDecimal(fsa)
	return salary, nil
}
