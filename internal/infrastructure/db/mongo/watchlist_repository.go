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

const collectionWatchlists = "watchlists"

type WatchlistRepository struct {
	col *mongo.Collection
}

func NewWatchlistRepository(db *mongo.Database) *WatchlistRepository {
	return &WatchlistRepository{col: db.Collection(collectionWatchlists)}
}

type watchlistDoc struct {
	ID        string    `bson:"_id"`
	ProfileID string    `bson:"profile_id"`
	ContentID string    `bson:"content_id"`
	AddedAt   time.Time `bson:"added_at"`
}

func toWatchlistDoc(w *domain.WatchlistItem) watchlistDoc {
	return watchlistDoc{
		ID:        w.ID,
		ProfileID: w.ProfileID,
		ContentID: w.ContentID,
		AddedAt:   w.AddedAt,
	}
}

func (d watchlistDoc) toDomain() *domain.WatchlistItem {
	return &domain.WatchlistItem{
		ID:        d.ID,
		ProfileID: d.ProfileID,
		ContentID: d.ContentID,
		AddedAt:   d.AddedAt,
	}
}

func (r *WatchlistRepository) Create(ctx context.Context, w *domain.WatchlistItem) (*domain.WatchlistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, toWatchlistDoc(w)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyInWatchlist
		}
		return nil, fmt.Errorf("insert watchlist item: %w", err)
	}
	return w, nil
}

func (r *WatchlistRepository) FindByID(ctx context.Context, id string) (*domain.WatchlistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc watchlistDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWatchlistItemNotFound
		}
		return nil, fmt.Errorf("find watchlist item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *WatchlistRepository) ListByProfiles(ctx context.Context, profileIDs []string) ([]*domain.WatchlistItem, error) {
	if len(profileIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"profile_id": bson.M{"$in": profileIDs}},
		options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list watchlist items: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.WatchlistItem
	for cur.Next(ctx) {
		var doc watchlistDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode watchlist item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cur.Err()
}

func (r *WatchlistRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrWatchlistItemNotFound
	}
	return nil
}

// EnsureIndexes creates the unique (profile, content) index.
func (r *WatchlistRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "content_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
