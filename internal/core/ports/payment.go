package ports

import (
	"context"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// ListPaymentsFilter carries query parameters for payment listings.
type ListPaymentsFilter struct {
	UserID         string // optional: scope to one user
	SubscriptionID string // optional: scope to one subscription
	Status         string // optional: filter by status
	Page           int    // 1-based
	Limit          int    // capped by the service
}

// CreatePaymentInput carries the data needed to record a payment.
type CreatePaymentInput struct {
	UserID         string
	SubscriptionID string
	Amount         float64
	Currency       string
	Status         domain.PaymentStatus
	Provider       string
	ExternalID     string
}

// UpdatePaymentInput holds the admin-editable payment fields. Nil means keep.
type UpdatePaymentInput struct {
	Amount     *float64
	Currency   *string
	Status     *domain.PaymentStatus
	Provider   *string
	ExternalID *string
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context, filter ListPaymentsFilter) ([]*domain.Payment, int64, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id string) error
}

// PaymentService implements member payment reads and admin payment CRUD.
type PaymentService interface {
	ListMine(ctx context.Context, userID string, filter ListPaymentsFilter) ([]*domain.Payment, int64, error)
	GetMine(ctx context.Context, userID, paymentID string) (*domain.Payment, error)
	// ListForSubscription returns payments for a subscription the given user
	// owns; admins may read any subscription's payments.
	ListForSubscription(ctx context.Context, identity *domain.Identity, subscriptionID string) ([]*domain.Payment, error)
	List(ctx context.Context, filter ListPaymentsFilter) ([]*domain.Payment, int64, error)
	Get(ctx context.Context, id string) (*domain.Payment, error)
	Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error)
	Update(ctx context.Context, id string, in UpdatePaymentInput) (*domain.Payment, error)
	Delete(ctx context.Context, id string) error
}
