package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// ProfileService implements self-service viewing-profile management.
type ProfileService struct {
	profiles ports.ProfileRepository
	subs     ports.SubscriptionRepository
	plans    ports.PlanRepository
	// defaultMaxProfiles applies when the user has no active subscription.
	defaultMaxProfiles int
	log                zerolog.Logger
}

func NewProfileService(
	profiles ports.ProfileRepository,
	subs ports.SubscriptionRepository,
	plans ports.PlanRepository,
	defaultMaxProfiles int,
	log zerolog.Logger,
) *ProfileService {
	if defaultMaxProfiles < 1 {
		defaultMaxProfiles = 2
	}
	return &ProfileService{
		profiles:           profiles,
		subs:               subs,
		plans:              plans,
		defaultMaxProfiles: defaultMaxProfiles,
		log:                log,
	}
}

func (s *ProfileService) ListMine(ctx context.Context, userID string) ([]*domain.Profile, error) {
	return s.profiles.ListByUser(ctx, userID)
}

func (s *ProfileService) CreateMine(ctx context.Context, userID string, in ports.ProfileInput) (*domain.Profile, error) {
	limit, err := s.profileLimit(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.profiles.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(limit) {
		return nil, domain.ErrProfileLimitReached
	}

	if err := s.ensureNameFree(ctx, userID, in.Name, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		UserID:         userID,
		Name:           in.Name,
		Avatar:         in.Avatar,
		MaturityRating: in.MaturityRating,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := s.profiles.Create(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("profile_id", created.ID).Msg("profile created")
	return created, nil
}

func (s *ProfileService) UpdateMine(ctx context.Context, userID, profileID string, in ports.ProfileInput) (*domain.Profile, error) {
	profile, err := s.ownedProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" && !strings.EqualFold(in.Name, profile.Name) {
		if err := s.ensureNameFree(ctx, userID, in.Name, profileID); err != nil {
			return nil, err
		}
		profile.Name = in.Name
	}
	profile.Avatar = in.Avatar
	profile.MaturityRating = in.MaturityRating
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) DeleteMine(ctx context.Context, userID, profileID string) error {
	if _, err := s.ownedProfile(ctx, userID, profileID); err != nil {
		return err
	}
	return s.profiles.Delete(ctx, profileID)
}

// profileLimit is the active subscription's plan cap, or the configured
// default when the user has no active subscription.
func (s *ProfileService) profileLimit(ctx context.Context, userID string) (int, error) {
	sub, err := s.subs.FindActiveByUser(ctx, userID)
	if err != nil {
		if err == domain.ErrSubscriptionNotFound {
			return s.defaultMaxProfiles, nil
		}
		return 0, err
	}
	plan, err := s.plans.FindByID(ctx, sub.PlanID)
	if err != nil {
		return 0, err
	}
	if plan.MaxProfiles < 1 {
		return s.defaultMaxProfiles, nil
	}
	return plan.MaxProfiles, nil
}

// ownedProfile loads a profile and hides its existence from non-owners.
func (s *ProfileService) ownedProfile(ctx context.Context, userID, profileID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileService) ensureNameFree(ctx context.Context, userID, name, excludeID string) error {
	existing, err := s.profiles.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, p := range existing {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return domain.ErrProfileNameTaken
		}
	}
	return nil
}
