package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// SubscriptionService implements the subscription lifecycle.
type SubscriptionService struct {
	subs  ports.SubscriptionRepository
	plans ports.PlanRepository
	log   zerolog.Logger
}

func NewSubscriptionService(subs ports.SubscriptionRepository, plans ports.PlanRepository, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{subs: subs, plans: plans, log: log}
}

func (s *SubscriptionService) ListMine(ctx context.Context, userID string) ([]*domain.Subscription, error) {
	return s.subs.ListByUser(ctx, userID)
}

func (s *SubscriptionService) Current(ctx context.Context, userID string) (*domain.Subscription, error) {
	return s.subs.FindActiveByUser(ctx, userID)
}

func (s *SubscriptionService) GetMine(ctx context.Context, userID, subscriptionID string) (*domain.Subscription, error) {
	return s.ownedSubscription(ctx, userID, subscriptionID)
}

// CreateMine subscribes the user to a plan. A user holds at most one ACTIVE
// subscription at a time.
func (s *SubscriptionService) CreateMine(ctx context.Context, userID, planID string) (*domain.Subscription, error) {
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		return nil, err
	}
	if _, err := s.subs.FindActiveByUser(ctx, userID); err == nil {
		return nil, domain.ErrSubscriptionExists
	} else if err != domain.ErrSubscriptionNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	renews := now.AddDate(0, 1, 0)
	sub := &domain.Subscription{
		UserID:    userID,
		PlanID:    planID,
		Status:    domain.SubscriptionActive,
		StartDate: now,
		RenewsAt:  &renews,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.subs.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("subscription_id", created.ID).Str("plan_id", planID).Msg("subscription created")
	return created, nil
}

func (s *SubscriptionService) CancelMine(ctx context.Context, userID, subscriptionID string) (*domain.Subscription, error) {
	sub, err := s.ownedSubscription(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if err := s.applyStatus(sub, domain.SubscriptionCanceled); err != nil {
		return nil, err
	}
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info().Str("subscription_id", sub.ID).Msg("subscription canceled")
	return sub, nil
}

func (s *SubscriptionService) ReactivateMine(ctx context.Context, userID, subscriptionID string) (*domain.Subscription, error) {
	sub, err := s.ownedSubscription(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	// Reactivation must not produce a second active subscription.
	if active, err := s.subs.FindActiveByUser(ctx, userID); err == nil && active.ID != sub.ID {
		return nil, domain.ErrSubscriptionExists
	} else if err != nil && err != domain.ErrSubscriptionNotFound {
		return nil, err
	}

	if err := s.applyStatus(sub, domain.SubscriptionActive); err != nil {
		return nil, err
	}
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info().Str("subscription_id", sub.ID).Msg("subscription reactivated")
	return sub, nil
}

// SwitchPlanMine moves an ACTIVE subscription to another plan.
func (s *SubscriptionService) SwitchPlanMine(ctx context.Context, userID, subscriptionID, planID string) (*domain.Subscription, error) {
	sub, err := s.ownedSubscription(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubscriptionActive {
		return nil, domain.ErrInvalidSubscriptionState
	}
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		return nil, err
	}

	sub.PlanID = planID
	sub.UpdatedAt = time.Now().UTC()
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info().Str("subscription_id", sub.ID).Str("plan_id", planID).Msg("subscription plan switched")
	return sub, nil
}

func (s *SubscriptionService) List(ctx context.Context, filter ports.ListSubscriptionsFilter) ([]*domain.Subscription, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.subs.List(ctx, filter)
}

// SetStatus is the admin status override; the same transition rules apply.
func (s *SubscriptionService) SetStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus) (*domain.Subscription, error) {
	sub, err := s.subs.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if err := s.applyStatus(sub, status); err != nil {
		return nil, err
	}
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// applyStatus performs a checked transition and keeps the cancellation
// bookkeeping fields consistent with the new status.
func (s *SubscriptionService) applyStatus(sub *domain.Subscription, next domain.SubscriptionStatus) error {
	if !sub.Status.CanTransitionTo(next) {
		return domain.ErrInvalidSubscriptionState
	}

	now := time.Now().UTC()
	sub.Status = next
	sub.UpdatedAt = now

	switch next {
	case domain.SubscriptionCanceled:
		sub.CanceledAt = &now
		sub.EndDate = &now
		sub.RenewsAt = nil
	case domain.SubscriptionActive:
		renews := now.AddDate(0, 1, 0)
		sub.CanceledAt = nil
		sub.EndDate = nil
		sub.RenewsAt = &renews
	}
	return nil
}

// ownedSubscription loads a subscription and hides its existence from
// non-owners.
func (s *SubscriptionService) ownedSubscription(ctx context.Context, userID, subscriptionID string) (*domain.Subscription, error) {
	sub, err := s.subs.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, domain.ErrSubscriptionNotFound
	}
	return sub, nil
}
