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

const collectionPayments = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

type paymentDoc struct {
	ID             string     `bson:"_id"`
	UserID         string     `bson:"user_id"`
	SubscriptionID string     `bson:"subscription_id"`
	Amount         float64    `bson:"amount"`
	Currency       string     `bson:"currency"`
	Status         string     `bson:"status"`
	PaidAt         *time.Time `bson:"paid_at,omitempty"`
	Provider       string     `bson:"provider,omitempty"`
	ExternalID     string     `bson:"external_id,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

func toPaymentDoc(p *domain.Payment) paymentDoc {
	return paymentDoc{
		ID:             p.ID,
		UserID:         p.UserID,
		SubscriptionID: p.SubscriptionID,
		Amount:         p.Amount,
		Currency:       p.Currency,
		Status:         string(p.Status),
		PaidAt:         p.PaidAt,
		Provider:       p.Provider,
		ExternalID:     p.ExternalID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (d paymentDoc) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:             d.ID,
		UserID:         d.UserID,
		SubscriptionID: d.SubscriptionID,
		Amount:         d.Amount,
		Currency:       d.Currency,
		Status:         domain.PaymentStatus(d.Status),
		PaidAt:         d.PaidAt,
		Provider:       d.Provider,
		ExternalID:     d.ExternalID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, toPaymentDoc(p)); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc paymentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PaymentRepository) List(ctx context.Context, filter ports.ListPaymentsFilter) ([]*domain.Payment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.SubscriptionID != "" {
		query["subscription_id"] = filter.SubscriptionID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer cur.Close(ctx)

	var payments []*domain.Payment
	for cur.Next(ctx) {
		var doc paymentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, doc.toDomain())
	}
	return payments, total, cur.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toPaymentDoc(p))
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// EnsureIndexes creates payment lookup indexes.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "subscription_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
