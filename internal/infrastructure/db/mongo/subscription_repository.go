package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

const collectionSubscriptions = "subscriptions"

type SubscriptionRepository struct {
	col *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{col: db.Collection(collectionSubscriptions)}
}

type subscriptionDoc struct {
	ID         string     `bson:"_id"`
	UserID     string     `bson:"user_id"`
	PlanID     string     `bson:"plan_id"`
	Status     string     `bson:"status"`
	StartDate  time.Time  `bson:"start_date"`
	EndDate    *time.Time `bson:"end_date,omitempty"`
	RenewsAt   *time.Time `bson:"renews_at,omitempty"`
	CanceledAt *time.Time `bson:"canceled_at,omitempty"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at"`
}

func toSubscriptionDoc(s *domain.Subscription) subscriptionDoc {
	return subscriptionDoc{
		ID:         s.ID,
		UserID:     s.UserID,
		PlanID:     s.PlanID,
		Status:     string(s.Status),
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		RenewsAt:   s.RenewsAt,
		CanceledAt: s.CanceledAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (d subscriptionDoc) toDomain() *domain.Subscription {
	return &domain.Subscription{
		ID:         d.ID,
		UserID:     d.UserID,
		PlanID:     d.PlanID,
		Status:     domain.SubscriptionStatus(d.Status),
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		RenewsAt:   d.RenewsAt,
		CanceledAt: d.CanceledAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, toSubscriptionDoc(s)); err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}
	return s, nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id string) (*domain.Subscription, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SubscriptionRepository) FindActiveByUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "status": string(domain.SubscriptionActive)})
}

func (r *SubscriptionRepository) findOne(ctx context.Context, filter bson.M) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc subscriptionDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cur.Close(ctx)

	return r.decodeAll(ctx, cur)
}

func (r *SubscriptionRepository) CountByPlan(ctx context.Context, planID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"plan_id": planID})
}

func (r *SubscriptionRepository) List(ctx context.Context, filter ports.ListSubscriptionsFilter) ([]*domain.Subscription, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cur.Close(ctx)

	subs, err := r.decodeAll(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *domain.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, toSubscriptionDoc(s))
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*domain.Subscription, error) {
	var subs []*domain.Subscription
	for cur.Next(ctx) {
		var doc subscriptionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		subs = append(subs, doc.toDomain())
	}
	return subs, cur.Err()
}

// EnsureIndexes creates subscription lookup indexes. The partial unique index
// backs the one-active-subscription-per-user rule at the storage level.
func (r *SubscriptionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.SubscriptionActive)}),
		},
		{Keys: bson.D{{Key: "plan_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
