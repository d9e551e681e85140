package ports

import (
	"context"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

// PlanInput carries the editable plan fields.
type PlanInput struct {
	Name         string
	Price        float64
	MaxProfiles  int
	MaxDevices   int
	VideoQuality string
}

// PlanRepository defines persistence operations for plans.
type PlanRepository interface {
	Create(ctx context.Context, p *domain.Plan) (*domain.Plan, error)
	FindByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}

// PlanService implements plan reads for members and CRUD for admins.
type PlanService interface {
	List(ctx context.Context) ([]*domain.Plan, error)
	Get(ctx context.Context, id string) (*domain.Plan, error)
	Create(ctx context.Context, in PlanInput) (*domain.Plan, error)
	Update(ctx context.Context, id string, in PlanInput) (*domain.Plan, error)
	Delete(ctx context.Context, id string) error
}
