package service

import (
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// sectionTemplate is one entry of the default budget catalog.
type sectionTemplate struct {
	name     string
	isIncome bool
	items    []string
}

// defaultSections is the static catalog used to seed a new month. It is
// read-only process-wide reference data; order matters.
var defaultSections = []sectionTemplate{
	{"Income", true, []string{
		"Primary Salary", "Secondary Salary", "From Extra Savings", "From Vacation Savings",
		"From School Savings", "From Student Loan Savings", "From Emergency Savings",
		"Refunds/Reimbursements", "Side Business", "Taxes",
	}},
	{"Savings", false, []string{
		"Emergency Savings", "Primary Roth IRA", "Secondary Roth IRA",
		"College Fund", "Extra Savings",
	}},
	{"House", false, []string{
		"Mortgage", "Electric/Power", "Water/Sewer/Trash", "Mobile Phone",
		"Internet", "HOA", "House Supplies/Furnishings/Appliances", "Home Services",
	}},
	{"Daily Living", false, []string{
		"Groceries", "Restaurants", "Allowance", "Clothing", "Hair",
		"Cosmetics", "Amusement", "Sport", "Side Business",
	}},
	{"Giving", false, []string{
		"Tithe", "Gifts",
	}},
	{"Transportation", false, []string{
		"Gas & Public Bus", "Services/Repairs/Parts", "Auto Insurance",
		"Registration/License Renewal", "Tolls", "Traffic Ticket",
	}},
	{"Children", false, []string{
		"Kids Supplies", "Kids Activities", "School",
	}},
	{"Education", false, []string{
		"Tuition", "Student Loan", "Books & Supplies",
	}},
	{"Vacation", false, []string{
		"Vacation", "Airfare Travel", "Car Travel",
	}},
	{"Insurance", false, []string{
		"Life Insurance",
	}},
	{"Misc", false, []string{
		"Transfer", "Interest Payment", "Filing Taxes", "Federal Taxes",
		"State/Local Taxes", "Bank Fees",
	}},
}

// BuildDefaultBudget constructs the default section/item skeleton for a new
// month. Pure construction: nothing is persisted and all amounts start at
// zero. Display orders are assigned as 1-based position.
func BuildDefaultBudget(year, month int) *domain.Budget {
	budget := &domain.Budget{
		Year:     year,
		Month:    month,
		Sections: make([]*domain.Section, 0, len(defaultSections)),
	}

	for i, tmpl := range defaultSections {
		section := &domain.Section{
			Name:         tmpl.name,
			DisplayOrder: i + 1,
			IsIncome:     tmpl.isIncome,
			Items:        make([]*domain.BudgetItem, 0, len(tmpl.items)),
		}
		for j, itemName := range tmpl.items {
			section.Items = append(section.Items, &domain.BudgetItem{
				Name:          itemName,
				PlannedAmount: decimal.Zero,
				ActualAmount:  decimal.Zero,
				DisplayOrder:  j + 1,
			})
		}
		budget.Sections = append(budget.Sections, section)
	}

	return budget
}
