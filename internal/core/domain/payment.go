package domain

import (
	"errors"
	"time"
)

// PaymentStatus represents the state of a payment transaction.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

var ErrPaymentNotFound = errors.New("payment not found")
var ErrInvalidPaymentStatus = errors.New("invalid payment status")

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment records a single charge against a subscription. PaidAt is set only
// while the payment is in the PAID state.
type Payment struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	SubscriptionID string        `json:"subscription_id"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	Status         PaymentStatus `json:"status"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	Provider       string        `json:"provider,omitempty"`
	ExternalID     string        `json:"external_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
