package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is a paycheck profile: a gross amount and its per-check deductions.
// Deactivated salaries are kept for history but hidden from listings.
type Salary struct {
	ID                      int64            `json:"id"`
	Name                    string           `json:"name"`
	RegularAmount           decimal.Decimal  `json:"regularAmount"`
	FederalTax              decimal.Decimal  `json:"federalTax"`
	Medicare                decimal.Decimal  `json:"medicare"`
	SocialSecurity          decimal.Decimal  `json:"socialSecurity"`
	FourOhOneK              *decimal.Decimal `json:"fourOhOneK,omitempty"`
	ExtraTaxWithholding     *decimal.Decimal `json:"extraTaxWithholding,omitempty"`
	HealthSavingsAccount    *decimal.Decimal `json:"healthSavingsAccount,omitempty"`
	MedicalInsurance        *decimal.Decimal `json:"medicalInsurance,omitempty"`
	FlexibleSpendingAccount *decimal.Decimal `json:"flexibleSpendingAccount,omitempty"`
	IsActive                bool             `json:"isActive"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

// NetPay returns the regular amount minus every deduction that is set.
func (s *Salary) NetPay() decimal.Decimal {
	net := s.RegularAmount.
		Sub(s.FederalTax).
		Sub(s.Medicare).
		Sub(s.SocialSecurity)
	for _, d := range []*decimal.Decimal{
		s.FourOhOneK,
		s.ExtraTaxWithholding,
		s.HealthSavingsAccount,
		s.MedicalInsurance,
		s.FlexibleSpendingAccount,
	} {
		if d != nil {
			net = net.Sub(*d)
		}
	}
	return net
}

type SalaryRepository interface {
	Create(salary *Salary) (*Salary, error)
	GetByID(id int64) (*Salary, error)
	GetAllActive() ([]*Salary, error)
	Update(salary *Salary) (*Salary, error)
	Deactivate(id int64) error
}
