package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	rec := cloneUser(user)
	if rec.ID == "" {
		r.nextID++
		rec.ID = fmt.Sprintf("u%d", r.nextID)
	}
	r.users[rec.ID] = cloneUser(rec)
	return cloneUser(rec), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, _ ports.ListUsersFilter) ([]*domain.User, int64, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, int64(len(out)), nil
}

type stubProfileRepo struct {
	profiles  map[string]*domain.Profile
	nextID    int
	createErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	rec := cloneProfile(p)
	if rec.ID == "" {
		r.nextID++
		rec.ID = fmt.Sprintf("p%d", r.nextID)
	}
	r.profiles[rec.ID] = cloneProfile(rec)
	return cloneProfile(rec), nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) ListByUser(_ context.Context, userID string) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range r.profiles {
		if p.UserID == userID {
			out = append(out, cloneProfile(p))
		}
	}
	return out, nil
}

func (r *stubProfileRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, p := range r.profiles {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if _, ok := r.profiles[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	r.profiles[p.ID] = cloneProfile(p)
	return nil
}

func (r *stubProfileRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

type stubPlanRepo struct {
	plans map[string]*domain.Plan
}

func newStubPlanRepo(plans ...*domain.Plan) *stubPlanRepo {
	r := &stubPlanRepo{plans: make(map[string]*domain.Plan)}
	for _, p := range plans {
		r.plans[p.ID] = p
	}
	return r
}

func (r *stubPlanRepo) Create(_ context.Context, p *domain.Plan) (*domain.Plan, error) {
	r.plans[p.ID] = p
	return p, nil
}

func (r *stubPlanRepo) FindByID(_ context.Context, id string) (*domain.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return p, nil
}

func (r *stubPlanRepo) List(_ context.Context) ([]*domain.Plan, error) {
	out := make([]*domain.Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPlanRepo) Update(_ context.Context, p *domain.Plan) error {
	if _, ok := r.plans[p.ID]; !ok {
		return domain.ErrPlanNotFound
	}
	r.plans[p.ID] = p
	return nil
}

func (r *stubPlanRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.plans[id]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

type stubSubscriptionRepo struct {
	subs   map[string]*domain.Subscription
	nextID int
}

func newStubSubscriptionRepo() *stubSubscriptionRepo {
	return &stubSubscriptionRepo{subs: make(map[string]*domain.Subscription)}
}

func cloneSubscription(s *domain.Subscription) *domain.Subscription {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubSubscriptionRepo) Create(_ context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	rec := cloneSubscription(s)
	if rec.ID == "" {
		r.nextID++
		rec.ID = fmt.Sprintf("s%d", r.nextID)
	}
	r.subs[rec.ID] = cloneSubscription(rec)
	return cloneSubscription(rec), nil
}

func (r *stubSubscriptionRepo) FindByID(_ context.Context, id string) (*domain.Subscription, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	return cloneSubscription(s), nil
}

func (r *stubSubscriptionRepo) FindActiveByUser(_ context.Context, userID string) (*domain.Subscription, error) {
	for _, s := range r.subs {
		if s.UserID == userID && s.Status == domain.SubscriptionActive {
			return cloneSubscription(s), nil
		}
	}
	return nil, domain.ErrSubscriptionNotFound
}

func (r *stubSubscriptionRepo) ListByUser(_ context.Context, userID string) ([]*domain.Subscription, error) {
	var out []*domain.Subscription
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, cloneSubscription(s))
		}
	}
	return out, nil
}

func (r *stubSubscriptionRepo) CountByPlan(_ context.Context, planID string) (int64, error) {
	var n int64
	for _, s := range r.subs {
		if s.PlanID == planID {
			n++
		}
	}
	return n, nil
}

func (r *stubSubscriptionRepo) List(_ context.Context, _ ports.ListSubscriptionsFilter) ([]*domain.Subscription, int64, error) {
	out := make([]*domain.Subscription, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, cloneSubscription(s))
	}
	return out, int64(len(out)), nil
}

func (r *stubSubscriptionRepo) Update(_ context.Context, s *domain.Subscription) error {
	if _, ok := r.subs[s.ID]; !ok {
		return domain.ErrSubscriptionNotFound
	}
	r.subs[s.ID] = cloneSubscription(s)
	return nil
}

type stubContentRepo struct {
	contents map[string]*domain.Content
}

func newStubContentRepo(contents ...*domain.Content) *stubContentRepo {
	r := &stubContentRepo{contents: make(map[string]*domain.Content)}
	for _, c := range contents {
		r.contents[c.ID] = c
	}
	return r
}

func (r *stubContentRepo) Create(_ context.Context, c *domain.Content) (*domain.Content, error) {
	r.contents[c.ID] = c
	return c, nil
}

func (r *stubContentRepo) FindByID(_ context.Context, id string) (*domain.Content, error) {
	c, ok := r.contents[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return c, nil
}

func (r *stubContentRepo) List(_ context.Context, filter ports.ListContentsFilter) ([]*domain.Content, int64, error) {
	var out []*domain.Content
	for _, c := range r.contents {
		if filter.Type != "" && string(c.Type) != filter.Type {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *stubContentRepo) Update(_ context.Context, c *domain.Content) error {
	if _, ok := r.contents[c.ID]; !ok {
		return domain.ErrContentNotFound
	}
	r.contents[c.ID] = c
	return nil
}

func (r *stubContentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.contents[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.contents, id)
	return nil
}

type stubEpisodeRepo struct {
	episodes map[string]*domain.Episode
}

func newStubEpisodeRepo(episodes ...*domain.Episode) *stubEpisodeRepo {
	r := &stubEpisodeRepo{episodes: make(map[string]*domain.Episode)}
	for _, e := range episodes {
		r.episodes[e.ID] = e
	}
	return r
}

func (r *stubEpisodeRepo) Create(_ context.Context, e *domain.Episode) (*domain.Episode, error) {
	r.episodes[e.ID] = e
	return e, nil
}

func (r *stubEpisodeRepo) FindByID(_ context.Context, id string) (*domain.Episode, error) {
	e, ok := r.episodes[id]
	if !ok {
		return nil, domain.ErrEpisodeNotFound
	}
	return e, nil
}

func (r *stubEpisodeRepo) ListByContent(_ context.Context, contentID string, season int) ([]*domain.Episode, error) {
	var out []*domain.Episode
	for _, e := range r.episodes {
		if e.ContentID != contentID {
			continue
		}
		if season > 0 && e.SeasonNumber != season {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *stubEpisodeRepo) ExistsNumber(_ context.Context, contentID string, season, episode int, excludeID string) (bool, error) {
	for _, e := range r.episodes {
		if e.ID == excludeID {
			continue
		}
		if e.ContentID == contentID && e.SeasonNumber == season && e.EpisodeNumber == episode {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubEpisodeRepo) Update(_ context.Context, e *domain.Episode) error {
	if _, ok := r.episodes[e.ID]; !ok {
		return domain.ErrEpisodeNotFound
	}
	r.episodes[e.ID] = e
	return nil
}

func (r *stubEpisodeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.episodes[id]; !ok {
		return domain.ErrEpisodeNotFound
	}
	delete(r.episodes, id)
	return nil
}

func (r *stubEpisodeRepo) DeleteByContent(_ context.Context, contentID string) error {
	for id, e := range r.episodes {
		if e.ContentID == contentID {
			delete(r.episodes, id)
		}
	}
	return nil
}

type stubPlaybackRepo struct {
	playbacks map[string]*domain.Playback
	nextID    int
}

func newStubPlaybackRepo() *stubPlaybackRepo {
	return &stubPlaybackRepo{playbacks: make(map[string]*domain.Playback)}
}

func clonePlayback(p *domain.Playback) *domain.Playback {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPlaybackRepo) Create(_ context.Context, p *domain.Playback) (*domain.Playback, error) {
	rec := clonePlayback(p)
	if rec.ID == "" {
		r.nextID++
		rec.ID = fmt.Sprintf("pb%d", r.nextID)
	}
	r.playbacks[rec.ID] = clonePlayback(rec)
	return clonePlayback(rec), nil
}

func (r *stubPlaybackRepo) FindByID(_ context.Context, id string) (*domain.Playback, error) {
	p, ok := r.playbacks[id]
	if !ok {
		return nil, domain.ErrPlaybackNotFound
	}
	return clonePlayback(p), nil
}

func (r *stubPlaybackRepo) FindOpen(_ context.Context, profileID, device, contentID, episodeID string) (*domain.Playback, error) {
	for _, p := range r.playbacks {
		if p.ProfileID == profileID && p.Device == device &&
			p.ContentID == contentID && p.EpisodeID == episodeID && !p.Completed {
			return clonePlayback(p), nil
		}
	}
	return nil, domain.ErrPlaybackNotFound
}

func (r *stubPlaybackRepo) ListByProfiles(_ context.Context, profileIDs []string, _ ports.ListPlaybacksFilter) ([]*domain.Playback, int64, error) {
	ids := make(map[string]struct{}, len(profileIDs))
	for _, id := range profileIDs {
		ids[id] = struct{}{}
	}
	var out []*domain.Playback
	for _, p := range r.playbacks {
		if _, ok := ids[p.ProfileID]; ok {
			out = append(out, clonePlayback(p))
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPlaybackRepo) Update(_ context.Context, p *domain.Playback) error {
	if _, ok := r.playbacks[p.ID]; !ok {
		return domain.ErrPlaybackNotFound
	}
	r.playbacks[p.ID] = clonePlayback(p)
	return nil
}

func (r *stubPlaybackRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.playbacks[id]; !ok {
		return domain.ErrPlaybackNotFound
	}
	delete(r.playbacks, id)
	return nil
}

type stubDenylist struct {
	revoked map[string]time.Duration
	failErr error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if d.failErr != nil {
		return d.failErr
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if d.failErr != nil {
		return false, d.failErr
	}
	_, ok := d.revoked[tokenID]
	return ok, nil
}

type stubDedup struct {
	seen map[string]struct{}
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]struct{})}
}

func (d *stubDedup) key(playbackID string, progressSeconds int, ts time.Time) string {
	return fmt.Sprintf("%s:%d:%d", playbackID, progressSeconds, ts.Unix())
}

func (d *stubDedup) IsDuplicate(_ context.Context, playbackID string, progressSeconds int, ts time.Time) (bool, error) {
	_, ok := d.seen[d.key(playbackID, progressSeconds, ts)]
	return ok, nil
}

func (d *stubDedup) Mark(_ context.Context, playbackID string, progressSeconds int, ts time.Time) error {
	d.seen[d.key(playbackID, progressSeconds, ts)] = struct{}{}
	return nil
}
