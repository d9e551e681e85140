package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// PlanService implements plan reads for members and CRUD for admins.
type PlanService struct {
	plans ports.PlanRepository
	subs  ports.SubscriptionRepository
	log   zerolog.Logger
}

func NewPlanService(plans ports.PlanRepository, subs ports.SubscriptionRepository, log zerolog.Logger) *PlanService {
	return &PlanService{plans: plans, subs: subs, log: log}
}

func (s *PlanService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *PlanService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.FindByID(ctx, id)
}

func (s *PlanService) Create(ctx context.Context, in ports.PlanInput) (*domain.Plan, error) {
	now := time.Now().UTC()
	plan := &domain.Plan{
		Name:         in.Name,
		Price:        in.Price,
		MaxProfiles:  in.MaxProfiles,
		MaxDevices:   in.MaxDevices,
		VideoQuality: in.VideoQuality,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.plans.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("plan_id", created.ID).Str("name", created.Name).Msg("plan created")
	return created, nil
}

func (s *PlanService) Update(ctx context.Context, id string, in ports.PlanInput) (*domain.Plan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.Name = in.Name
	plan.Price = in.Price
	plan.MaxProfiles = in.MaxProfiles
	plan.MaxDevices = in.MaxDevices
	plan.VideoQuality = in.VideoQuality
	plan.UpdatedAt = time.Now().UTC()

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete refuses to remove a plan that subscriptions still reference.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if _, err := s.plans.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.subs.CountByPlan(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrPlanInUse
	}
	return s.plans.Delete(ctx, id)
}
