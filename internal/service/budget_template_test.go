package service

import (
	"testing"
)

func TestBuildDefaultBudget_Shape(t *testing.T) {
	budget := BuildDefaultBudget(2024, 3)

	if budget.Year != 2024 || budget.Month != 3 {
		t.Fatalf("Expected period 2024/3, got %d/%d", budget.Year, budget.Month)
	}
	if len(budget.Sections) == 0 {
		t.Fatal("Expected sections from the default catalog")
	}

	if budget.Sections[0].Name != "Income" || !budget.Sections[0].IsIncome {
		t.Errorf("Expected first section to be the income section, got %q", budget.Sections[0].Name)
	}
	for i, section := range budget.Sections {
		if section.DisplayOrder != i+1 {
			t.Errorf("Expected section %q display order %d, got %d", section.Name, i+1, section.DisplayOrder)
		}
		if i > 0 && section.IsIncome {
			t.Errorf("Expected only the first section to be income, %q is too", section.Name)
		}
		if len(section.Items) == 0 {
			t.Errorf("Expected section %q to have items", section.Name)
		}
		for j, item := range section.Items {
			if item.DisplayOrder != j+1 {
				t.Errorf("Expected item %q display order %d, got %d", item.Name, j+1, item.DisplayOrder)
			}
			if !item.PlannedAmount.IsZero() || !item.ActualAmount.IsZero() {
				t.Errorf("Expected item %q amounts to start at zero", item.Name)
			}
		}
	}
}

func TestBuildDefaultBudget_PureConstruction(t *testing.T) {
	first := BuildDefaultBudget(2024, 3)
	first.Sections[0].Name = "Mutated"

	second := BuildDefaultBudget(2024, 3)
	if second.Sections[0].Name != "Income" {
		t.Error("Expected template catalog to be unaffected by mutation of a generated budget")
	}
}
