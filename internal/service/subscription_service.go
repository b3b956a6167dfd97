package service

import (
	"strings"

	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SubscriptionService handles subscription template business logic
type SubscriptionService struct {
	subscriptionRepo domain.SubscriptionRepository
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(subscriptionRepo domain.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo}
}

// CreateSubscriptionInput carries the fields of a new subscription template
type CreateSubscriptionInput struct {
	Name       string
	Amount     decimal.Decimal
	BillingDay int
	Category   string
	Recurrence domain.RecurrenceType
}

// UpdateSubscriptionInput carries the optional fields of a subscription update
type UpdateSubscriptionInput struct {
	Name       *string
	Amount     *decimal.Decimal
	BillingDay *int
	Category   *string
	Recurrence *domain.RecurrenceType
}

// GetSubscriptions returns active subscriptions ordered by name
func (s *SubscriptionService) GetSubscriptions() ([]*domain.Subscription, error) {
	return s.subscriptionRepo.GetAllActive()
}

// GetSubscription returns a single subscription
func (s *SubscriptionService) GetSubscription(id int64) (*domain.Subscription, error) {
	return s.subscriptionRepo.GetByID(id)
}

// CreateSubscription validates and persists a new subscription template
func (s *SubscriptionService) CreateSubscription(input CreateSubscriptionInput) (*domain.Subscription, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrAmountRequired
	}
	if input.BillingDay < 1 || input.BillingDay > 31 {
		return nil, domain.ErrInvalidBillingDay
	}
	if input.Recurrence != domain.RecurrenceMonthly && input.Recurrence != domain.RecurrenceYearly {
		return nil, domain.ErrInvalidRecurrence
	}

	return s.subscriptionRepo.Create(&domain.Subscription{
		Name:       name,
		Amount:     input.Amount,
		BillingDay: input.BillingDay,
		Category:   strings.TrimSpace(input.Category),
		Recurrence: input.Recurrence,
		IsActive:   true,
	})
}

// UpdateSubscription applies a partial update to a subscription template
func (s *SubscriptionService) UpdateSubscription(id int64, input UpdateSubscriptionInput) (*domain.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if len(name) > domain.MaxNameLength {
			return nil, domain.ErrNameTooLong
		}
		subscription.Name = name
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domain.ErrAmountRequired
		}
		subscription.Amount = *input.Amount
	}
	if input.BillingDay != nil {
		if *input.BillingDay < 1 || *input.BillingDay > 31 {
			return nil, domain.ErrInvalidBillingDay
		}
		subscription.BillingDay = *input.BillingDay
	}
	if input.Category != nil {
		subscription.Category = strings.TrimSpace(*input.Category)
	}
	if input.Recurrence != nil {
		if *input.Recurrence != domain.RecurrenceMonthly && *input.Recurrence != domain.RecurrenceYearly {
			return nil, domain.ErrInvalidRecurrence
		}
		subscription.Recurrence = *input.Recurrence
	}

	return s.subscriptionRepo.Update(subscription)
}

// DeleteSubscription deactivates a subscription template
func (s *SubscriptionService) DeleteSubscription(id int64) error {
	if _, err := s.subscriptionRepo.GetByID(id); err != nil {
		return err
	}
	return s.subscriptionRepo.Deactivate(id)
}
