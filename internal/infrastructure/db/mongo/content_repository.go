package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

const collectionContents = "contents"

type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection(collectionContents)}
}

type contentDoc struct {
	ID              string    `bson:"_id"`
	Title           string    `bson:"title"`
	Type            string    `bson:"type"`
	Description     string    `bson:"description,omitempty"`
	ReleaseYear     int       `bson:"release_year,omitempty"`
	DurationSeconds int       `bson:"duration_seconds,omitempty"`
	AgeRating       string    `bson:"age_rating,omitempty"`
	Genres          string    `bson:"genres,omitempty"`
	VideoURL        string    `bson:"video_url,omitempty"`
	Thumbnail       string    `bson:"thumbnail,omitempty"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func toContentDoc(c *domain.Content) contentDoc {
	return contentDoc{
		ID:              c.ID,
		Title:           c.Title,
		Type:            string(c.Type),
		Description:     c.Description,
		ReleaseYear:     c.ReleaseYear,
		DurationSeconds: c.DurationSeconds,
		AgeRating:       c.AgeRating,
		Genres:          c.Genres,
		VideoURL:        c.VideoURL,
		Thumbnail:       c.Thumbnail,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (d contentDoc) toDomain() *domain.Content {
	return &domain.Content{
		ID:              d.ID,
		Title:           d.Title,
		Type:            domain.ContentType(d.Type),
		Description:     d.Description,
		ReleaseYear:     d.ReleaseYear,
		DurationSeconds: d.DurationSeconds,
		AgeRating:       d.AgeRating,
		Genres:          d.Genres,
		VideoURL:        d.VideoURL,
		Thumbnail:       d.Thumbnail,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (r *ContentRepository) Create(ctx context.Context, c *domain.Content) (*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, toContentDoc(c)); err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}
	return c, nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ContentRepository) List(ctx context.Context, filter ports.ListContentsFilter) ([]*domain.Content, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Genre != "" {
		query["genres"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Genre), Options: "i"}
	}
	if filter.ReleaseYear != 0 {
		query["release_year"] = filter.ReleaseYear
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count contents: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list contents: %w", err)
	}
	defer cur.Close(ctx)

	var contents []*domain.Content
	for cur.Next(ctx) {
		var doc contentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode content: %w", err)
		}
		contents = append(contents, doc.toDomain())
	}
	return contents, total, cur.Err()
}

func (r *ContentRepository) Update(ctx context.Context, c *domain.Content) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, toContentDoc(c))
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

// EnsureIndexes creates catalog search indexes.
func (r *ContentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "release_year", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
