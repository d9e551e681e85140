package ports

import (
	"context"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// ListSubscriptionsFilter carries query parameters for the admin listing.
type ListSubscriptionsFilter struct {
	UserID string // optional: scope to one user
	Status string // optional: filter by status
	Page   int    // 1-based
	Limit  int    // capped by the service
}

// SubscriptionRepository defines persistence operations for subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	FindByID(ctx context.Context, id string) (*domain.Subscription, error)
	// FindActiveByUser returns the user's ACTIVE subscription, or
	// domain.ErrSubscriptionNotFound when there is none.
	FindActiveByUser(ctx context.Context, userID string) (*domain.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Subscription, error)
	CountByPlan(ctx context.Context, planID string) (int64, error)
	List(ctx context.Context, filter ListSubscriptionsFilter) ([]*domain.Subscription, int64, error)
	Update(ctx context.Context, s *domain.Subscription) error
}

// SubscriptionService implements the subscription lifecycle. Mine-suffixed
// operations enforce ownership by the calling user.
type SubscriptionService interface {
	ListMine(ctx context.Context, userID string) ([]*domain.Subscription, error)
	Current(ctx context.Context, userID string) (*domain.Subscription, error)
	GetMine(ctx context.Context, userID, subscriptionID string) (*domain.Subscription, error)
	CreateMine(ctx context.Context, userID, planID string) (*domain.Subscription, error)
	CancelMine(ctx context.Context, userID, subscriptionID string) (*domain.Subscription, error)
	ReactivateMine(ctx context.Context, userID, subscriptionID string) (*domain.Subscription, error)
	SwitchPlanMine(ctx context.Context, userID, subscriptionID, planID string) (*domain.Subscription, error)
	List(ctx context.Context, filter ListSubscriptionsFilter) ([]*domain.Subscription, int64, error)
	SetStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus) (*domain.Subscription, error)
}
