package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

type subscriptionFixture struct {
	svc  *SubscriptionService
	subs *stubSubscriptionRepo
}

func newSubscriptionFixture() *subscriptionFixture {
	subs := newStubSubscriptionRepo()
	plans := newStubPlanRepo(
		&domain.Plan{ID: "plan-basic", Name: "Basic", Price: 7.99, MaxProfiles: 2},
		&domain.Plan{ID: "plan-premium", Name: "Premium", Price: 15.99, MaxProfiles: 4},
	)
	return &subscriptionFixture{
		svc:  NewSubscriptionService(subs, plans, zerolog.Nop()),
		subs: subs,
	}
}

func (f *subscriptionFixture) subscribe(t *testing.T, userID, planID string) *domain.Subscription {
	t.Helper()
	sub, err := f.svc.CreateMine(context.Background(), userID, planID)
	if err != nil {
		t.Fatalf("CreateMine() error = %v", err)
	}
	return sub
}

func TestCreateMine(t *testing.T) {
	f := newSubscriptionFixture()

	sub := f.subscribe(t, "u1", "plan-basic")
	if sub.Status != domain.SubscriptionActive {
		t.Fatalf("Status = %q, want ACTIVE", sub.Status)
	}
	if sub.RenewsAt == nil {
		t.Fatal("RenewsAt must be set on a new subscription")
	}
	if sub.PlanID != "plan-basic" {
		t.Fatalf("PlanID = %q, want plan-basic", sub.PlanID)
	}
}

func TestCreateMineUnknownPlan(t *testing.T) {
	f := newSubscriptionFixture()

	if _, err := f.svc.CreateMine(context.Background(), "u1", "plan-missing"); err != domain.ErrPlanNotFound {
		t.Fatalf("CreateMine() error = %v, want ErrPlanNotFound", err)
	}
}

func TestCreateMineRejectsSecondActive(t *testing.T) {
	f := newSubscriptionFixture()
	f.subscribe(t, "u1", "plan-basic")

	if _, err := f.svc.CreateMine(context.Background(), "u1", "plan-premium"); err != domain.ErrSubscriptionExists {
		t.Fatalf("CreateMine() error = %v, want ErrSubscriptionExists", err)
	}
}

func TestCancelMine(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t, "u1", "plan-basic")

	canceled, err := f.svc.CancelMine(context.Background(), "u1", sub.ID)
	if err != nil {
		t.Fatalf("CancelMine() error = %v", err)
	}
	if canceled.Status != domain.SubscriptionCanceled {
		t.Fatalf("Status = %q, want CANCELED", canceled.Status)
	}
	if canceled.CanceledAt == nil || canceled.EndDate == nil {
		t.Fatal("CanceledAt and EndDate must be set on cancellation")
	}
	if canceled.RenewsAt != nil {
		t.Fatal("RenewsAt must be cleared on cancellation")
	}

	// A canceled subscription cannot be canceled again.
	if _, err := f.svc.CancelMine(context.Background(), "u1", sub.ID); err != domain.ErrInvalidSubscriptionState {
		t.Fatalf("second cancel: error = %v, want ErrInvalidSubscriptionState", err)
	}
}

func TestReactivateMine(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t, "u1", "plan-basic")
	if _, err := f.svc.CancelMine(context.Background(), "u1", sub.ID); err != nil {
		t.Fatalf("CancelMine() error = %v", err)
	}

	revived, err := f.svc.ReactivateMine(context.Background(), "u1", sub.ID)
	if err != nil {
		t.Fatalf("ReactivateMine() error = %v", err)
	}
	if revived.Status != domain.SubscriptionActive {
		t.Fatalf("Status = %q, want ACTIVE", revived.Status)
	}
	if revived.CanceledAt != nil || revived.EndDate != nil {
		t.Fatal("cancellation bookkeeping must be cleared on reactivation")
	}
	if revived.RenewsAt == nil {
		t.Fatal("RenewsAt must be set on reactivation")
	}
}

func TestReactivateMineBlockedByOtherActive(t *testing.T) {
	f := newSubscriptionFixture()
	old := f.subscribe(t, "u1", "plan-basic")
	if _, err := f.svc.CancelMine(context.Background(), "u1", old.ID); err != nil {
		t.Fatalf("CancelMine() error = %v", err)
	}
	f.subscribe(t, "u1", "plan-premium")

	if _, err := f.svc.ReactivateMine(context.Background(), "u1", old.ID); err != domain.ErrSubscriptionExists {
		t.Fatalf("ReactivateMine() error = %v, want ErrSubscriptionExists", err)
	}
}

func TestSwitchPlanMine(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t, "u1", "plan-basic")

	switched, err := f.svc.SwitchPlanMine(context.Background(), "u1", sub.ID, "plan-premium")
	if err != nil {
		t.Fatalf("SwitchPlanMine() error = %v", err)
	}
	if switched.PlanID != "plan-premium" {
		t.Fatalf("PlanID = %q, want plan-premium", switched.PlanID)
	}
}

func TestSwitchPlanMineRequiresActive(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t, "u1", "plan-basic")
	if _, err := f.svc.CancelMine(context.Background(), "u1", sub.ID); err != nil {
		t.Fatalf("CancelMine() error = %v", err)
	}

	if _, err := f.svc.SwitchPlanMine(context.Background(), "u1", sub.ID, "plan-premium"); err != domain.ErrInvalidSubscriptionState {
		t.Fatalf("SwitchPlanMine() error = %v, want ErrInvalidSubscriptionState", err)
	}
}

func TestGetMineHidesOtherUsersSubscriptions(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t, "u1", "plan-basic")

	if _, err := f.svc.GetMine(context.Background(), "u2", sub.ID); err != domain.ErrSubscriptionNotFound {
		t.Fatalf("GetMine() error = %v, want ErrSubscriptionNotFound", err)
	}
}

func TestSetStatusFollowsTransitionRules(t *testing.T) {
	f := newSubscriptionFixture()
	sub := f.subscribe(t, "u1", "plan-basic")

	pastDue, err := f.svc.SetStatus(context.Background(), sub.ID, domain.SubscriptionPastDue)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if pastDue.Status != domain.SubscriptionPastDue {
		t.Fatalf("Status = %q, want PAST_DUE", pastDue.Status)
	}

	if _, err := f.svc.SetStatus(context.Background(), sub.ID, domain.SubscriptionPastDue); err != domain.ErrInvalidSubscriptionState {
		t.Fatalf("SetStatus() error = %v, want ErrInvalidSubscriptionState", err)
	}
}
