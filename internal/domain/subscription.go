package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecurrenceType string

const (
	RecurrenceMonthly RecurrenceType = "MONTHLY"
	RecurrenceYearly  RecurrenceType = "YEARLY"
)

// Subscription is a recurring charge template. Plan lines seeded from a
// subscription carry the fromSubscription flag.
type Subscription struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	BillingDay int             `json:"billingDay"`
	Category   string          `json:"category"`
	Recurrence RecurrenceType  `json:"recurrence"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type SubscriptionRepository interface {
	Create(subscription *Subscription) (*Subscription, error)
	GetByID(id int64) (*Subscription, error)
	GetAllActive() ([]*Subscription, error)
	Update(subscription *Subscription) (*Subscription, error)
	Deactivate(id int64) error
}
