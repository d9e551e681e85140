package domain

import (
	"errors"
	"time"
)

// SubscriptionStatus represents the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
)

// validSubscriptionTransitions defines the allowed state machine transitions.
var validSubscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionActive:   {SubscriptionCanceled, SubscriptionPastDue},
	SubscriptionPastDue:  {SubscriptionActive, SubscriptionCanceled},
	SubscriptionCanceled: {SubscriptionActive},
}

var ErrSubscriptionNotFound = errors.New("subscription not found")
var ErrSubscriptionExists = errors.New("user already has an active subscription")
var ErrInvalidSubscriptionState = errors.New("invalid subscription state transition")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	for _, allowed := range validSubscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Subscription ties a user to a plan for a billing period.
type Subscription struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	PlanID     string             `json:"plan_id"`
	Status     SubscriptionStatus `json:"status"`
	StartDate  time.Time          `json:"start_date"`
	EndDate    *time.Time         `json:"end_date,omitempty"`
	RenewsAt   *time.Time         `json:"renews_at,omitempty"`
	CanceledAt *time.Time         `json:"canceled_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
