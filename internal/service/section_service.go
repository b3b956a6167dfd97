package service

import (
	"strings"

	"github.com/pfouda/homebudget-backend/internal/domain"
)

// SectionService handles section business logic
type SectionService struct {
	sectionRepo domain.SectionRepository
	budgetRepo  domain.BudgetRepository
}

// NewSectionService creates a new SectionService
func NewSectionService(sectionRepo domain.SectionRepository, budgetRepo domain.BudgetRepository) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		budgetRepo:  budgetRepo,
	}
}

// SectionUpdate carries the optional fields of a section update; nil fields
// are left unchanged.
type SectionUpdate struct {
	Name     *string
	IsIncome *bool
}

// CreateSection appends a section to a budget, after its current sections
func (s *SectionService) CreateSection(budgetID int64, name string, isIncome bool) (*domain.SectionRollup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	if _, err := s.budgetRepo.GetByID(budgetID); err != nil {
		return nil, err
	}

	maxOrder, err := s.sectionRepo.MaxDisplayOrder(budgetID)
	if err != nil {
		return nil, err
	}

	section, err := s.sectionRepo.Create(&domain.Section{
		BudgetID:     budgetID,
		Name:         name,
		DisplayOrder: maxOrder + 1,
		IsIncome:     isIncome,
		Items:        []*domain.BudgetItem{},
	})
	if err != nil {
		return nil, err
	}
	return buildSectionRollup(section), nil
}

// UpdateSection applies a partial update to a section
func (s *SectionService) UpdateSection(id int64, update SectionUpdate) (*domain.SectionRollup, error) {
	section, err := s.sectionRepo.GetByIDWithItems(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if len(name) > domain.MaxNameLength {
			return nil, domain.ErrNameTooLong
		}
		section.Name = name
	}
	if update.IsIncome != nil {
		section.IsIncome = *update.IsIncome
	}

	section, err = s.sectionRepo.Update(section)
	if err != nil {
		return nil, err
	}
	return buildSectionRollup(section), nil
}

// DeleteSection removes a section and, by composition, its items
func (s *SectionService) DeleteSection(id int64) error {
	if _, err := s.sectionRepo.GetByID(id); err != nil {
		return err
	}
	return s.sectionRepo.Delete(id)
}
