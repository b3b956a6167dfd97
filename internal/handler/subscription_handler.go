package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pfouda/homebudget-backend/internal/domain"
	"github.com/pfouda/homebudget-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SubscriptionHandler handles subscription HTTP requests
type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// CreateSubscriptionRequest represents the create subscription request body
type CreateSubscriptionRequest struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	BillingDay int    `json:"billingDay"`
	Category   string `json:"category"`
	Recurrence string `json:"recurrence"`
}

// UpdateSubscriptionRequest represents the update subscription request body
type UpdateSubscriptionRequest struct {
	Name       *string `json:"name"`
	Amount     *string `json:"amount"`
	BillingDay *int    `json:"billingDay"`
	Category   *string `json:"category"`
	Recurrence *string `json:"recurrence"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	BillingDay int    `json:"billingDay"`
	Category   string `json:"category,omitempty"`
	Recurrence string `json:"recurrence"`
	IsActive   bool   `json:"isActive"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// GetSubscriptions handles GET /api/v1/subscriptions
func (h *SubscriptionHandler) GetSubscriptions(c echo.Context) error {
	subscriptions, err := h.subscriptionService.GetSubscriptions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list subscriptions")
		return NewInternalError(c, "Failed to list subscriptions")
	}

	response := make([]SubscriptionResponse, len(subscriptions))
	for i, subscription := range subscriptions {
		response[i] = toSubscriptionResponse(subscription)
	}
	return c.JSON(http.StatusOK, response)
}

// GetSubscription handles GET /api/v1/subscriptions/:id
func (h *SubscriptionHandler) GetSubscription(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid subscription ID", nil)
	}

	subscription, err := h.subscriptionService.GetSubscription(id)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			return NewNotFoundError(c, "Subscription not found")
		}
		log.Error().Err(err).Int64("subscription_id", id).Msg("Failed to get subscription")
		return NewInternalError(c, "Failed to get subscription")
	}

	return c.JSON(http.StatusOK, toSubscriptionResponse(subscription))
}

// CreateSubscription handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	var req CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Invalid amount"},
		})
	}

	subscription, err := h.subscriptionService.CreateSubscription(service.CreateSubscriptionInput{
		Name:       req.Name,
		Amount:     amount,
		BillingDay: req.BillingDay,
		Category:   req.Category,
		Recurrence: domain.RecurrenceType(req.Recurrence),
	})
	if err != nil {
		if response := subscriptionValidationResponse(c, err); response != nil {
			return response
		}
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create subscription")
		return NewInternalError(c, "Failed to create subscription")
	}

	log.Info().Int64("subscription_id", subscription.ID).Str("name", subscription.Name).Msg("Subscription created")
	return c.JSON(http.StatusCreated, toSubscriptionResponse(subscription))
}

// UpdateSubscription handles PUT /api/v1/subscriptions/:id
func (h *SubscriptionHandler) UpdateSubscription(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid subscription ID", nil)
	}

	var req UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateSubscriptionInput{
		Name:       req.Name,
		BillingDay: req.BillingDay,
		Category:   req.Category,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Invalid amount"},
			})
		}
		input.Amount = &amount
	}
	if req.Recurrence != nil {
		recurrence := domain.RecurrenceType(*req.Recurrence)
		input.Recurrence = &recurrence
	}

	subscription, err := h.subscriptionService.UpdateSubscription(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			return NewNotFoundError(c, "Subscription not found")
		}
		if response := subscriptionValidationResponse(c, err); response != nil {
			return response
		}
		log.Error().Err(err).Int64("subscription_id", id).Msg("Failed to update subscription")
		return NewInternalError(c, "Failed to update subscription")
	}

	return c.JSON(http.StatusOK, toSubscriptionResponse(subscription))
}

// DeleteSubscription handles DELETE /api/v1/subscriptions/:id
func (h *SubscriptionHandler) DeleteSubscription(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid subscription ID", nil)
	}

	if err := h.subscriptionService.DeleteSubscription(id); err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			return NewNotFoundError(c, "Subscription not found")
		}
		log.Error().Err(err).Int64("subscription_id", id).Msg("Failed to delete subscription")
		return NewInternalError(c, "Failed to delete subscription")
	}

	log.Info().Int64("subscription_id", id).Msg("Subscription deactivated")
	return c.NoContent(http.StatusNoContent)
}

func subscriptionValidationResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name cannot be empty"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidBillingDay):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "billingDay", Message: "Billing day must be between 1 and 31"},
		})
	case errors.Is(err, domain.ErrInvalidRecurrence):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "recurrence", Message: "Recurrence must be MONTHLY or YEARLY"},
		})
	}
	return nil
}

func toSubscriptionResponse(subscription *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:         subscription.ID,
		Name:       subscription.Name,
		Amount:     subscription.Amount.StringFixed(2),
		BillingDay: subscription.BillingDay,
		Category:   subscription.Category,
		Recurrence: string(subscription.Recurrence),
		IsActive:   subscription.IsActive,
		CreatedAt:  subscription.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  subscription.UpdatedAt.Format(time.RFC3339),
	}
}
