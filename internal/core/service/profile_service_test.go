package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

type profileFixture struct {
	svc      *ProfileService
	profiles *stubProfileRepo
	subs     *stubSubscriptionRepo
}

func newProfileFixture() *profileFixture {
	profiles := newStubProfileRepo()
	subs := newStubSubscriptionRepo()
	plans := newStubPlanRepo(
		&domain.Plan{ID: "plan-premium", Name: "Premium", MaxProfiles: 4},
	)
	return &profileFixture{
		svc:      NewProfileService(profiles, subs, plans, 2, zerolog.Nop()),
		profiles: profiles,
		subs:     subs,
	}
}

func (f *profileFixture) create(t *testing.T, userID, name string) *domain.Profile {
	t.Helper()
	p, err := f.svc.CreateMine(context.Background(), userID, ports.ProfileInput{Name: name})
	if err != nil {
		t.Fatalf("CreateMine(%q) error = %v", name, err)
	}
	return p
}

func TestCreateMineDefaultLimit(t *testing.T) {
	f := newProfileFixture()

	f.create(t, "u1", "Kids")
	f.create(t, "u1", "Main")

	if _, err := f.svc.CreateMine(context.Background(), "u1", ports.ProfileInput{Name: "Third"}); err != domain.ErrProfileLimitReached {
		t.Fatalf("CreateMine() error = %v, want ErrProfileLimitReached", err)
	}
}

func TestCreateMinePlanRaisesLimit(t *testing.T) {
	f := newProfileFixture()
	if _, err := f.subs.Create(context.Background(), &domain.Subscription{
		UserID:    "u1",
		PlanID:    "plan-premium",
		Status:    domain.SubscriptionActive,
		StartDate: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	for _, name := range []string{"One", "Two", "Three", "Four"} {
		f.create(t, "u1", name)
	}
	if _, err := f.svc.CreateMine(context.Background(), "u1", ports.ProfileInput{Name: "Five"}); err != domain.ErrProfileLimitReached {
		t.Fatalf("CreateMine() error = %v, want ErrProfileLimitReached", err)
	}
}

func TestCreateMineRejectsDuplicateName(t *testing.T) {
	f := newProfileFixture()
	f.create(t, "u1", "Kids")

	if _, err := f.svc.CreateMine(context.Background(), "u1", ports.ProfileInput{Name: "kids"}); err != domain.ErrProfileNameTaken {
		t.Fatalf("CreateMine() error = %v, want ErrProfileNameTaken (case-insensitive)", err)
	}

	// Another user may reuse the name.
	f.create(t, "u2", "Kids")
}

func TestUpdateMineRenames(t *testing.T) {
	f := newProfileFixture()
	p := f.create(t, "u1", "Kids")
	f.create(t, "u1", "Main")

	if _, err := f.svc.UpdateMine(context.Background(), "u1", p.ID, ports.ProfileInput{Name: "main"}); err != domain.ErrProfileNameTaken {
		t.Fatalf("UpdateMine() error = %v, want ErrProfileNameTaken", err)
	}

	updated, err := f.svc.UpdateMine(context.Background(), "u1", p.ID, ports.ProfileInput{Name: "Teens", Avatar: "avatar-3"})
	if err != nil {
		t.Fatalf("UpdateMine() error = %v", err)
	}
	if updated.Name != "Teens" || updated.Avatar != "avatar-3" {
		t.Fatalf("updated = %q/%q, want Teens/avatar-3", updated.Name, updated.Avatar)
	}
}

func TestUpdateMineKeepingOwnName(t *testing.T) {
	f := newProfileFixture()
	p := f.create(t, "u1", "Kids")

	// Re-submitting the current name is not a conflict.
	if _, err := f.svc.UpdateMine(context.Background(), "u1", p.ID, ports.ProfileInput{Name: "KIDS"}); err != nil {
		t.Fatalf("UpdateMine() error = %v", err)
	}
}

func TestProfileOwnershipIsHidden(t *testing.T) {
	f := newProfileFixture()
	p := f.create(t, "u1", "Kids")

	if _, err := f.svc.UpdateMine(context.Background(), "u2", p.ID, ports.ProfileInput{Name: "Mine"}); err != domain.ErrProfileNotFound {
		t.Fatalf("UpdateMine() error = %v, want ErrProfileNotFound", err)
	}
	if err := f.svc.DeleteMine(context.Background(), "u2", p.ID); err != domain.ErrProfileNotFound {
		t.Fatalf("DeleteMine() error = %v, want ErrProfileNotFound", err)
	}
}

func TestDeleteMine(t *testing.T) {
	f := newProfileFixture()
	p := f.create(t, "u1", "Kids")

	if err := f.svc.DeleteMine(context.Background(), "u1", p.ID); err != nil {
		t.Fatalf("DeleteMine() error = %v", err)
	}
	remaining, err := f.svc.ListMine(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("profiles after delete = %d, want 0", len(remaining))
	}
}
