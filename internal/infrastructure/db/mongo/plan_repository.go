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
)

const collectionPlans = "plans"

type PlanRepository struct {
	col *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{col: db.Collection(collectionPlans)}
}

type planDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Price        float64   `bson:"price"`
	MaxProfiles  int       `bson:"max_profiles"`
	MaxDevices   int       `bson:"max_devices"`
	VideoQuality string    `bson:"video_quality"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toPlanDoc(p *domain.Plan) planDoc {
	return planDoc{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		MaxProfiles:  p.MaxProfiles,
		MaxDevices:   p.MaxDevices,
		VideoQuality: p.VideoQuality,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d planDoc) toDomain() *domain.Plan {
	return &domain.Plan{
		ID:           d.ID,
		Name:         d.Name,
		Price:        d.Price,
		MaxProfiles:  d.MaxProfiles,
		MaxDevices:   d.MaxDevices,
		VideoQuality: d.VideoQuality,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *PlanRepository) Create(ctx context.Context, p *domain.Plan) (*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, toPlanDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPlanNameTaken
		}
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	return p, nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc planDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PlanRepository) List(ctx context.Context) ([]*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer cur.Close(ctx)

	var plans []*domain.Plan
	for cur.Next(ctx) {
		var doc planDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode plan: %w", err)
		}
		plans = append(plans, doc.toDomain())
	}
	return plans, cur.Err()
}

func (r *PlanRepository) Update(ctx context.Context, p *domain.Plan) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toPlanDoc(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrPlanNameTaken
		}
		return fmt.Errorf("update plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

// EnsureIndexes creates the unique plan-name index.
func (r *PlanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
