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

const collectionEpisodes = "episodes"

type EpisodeRepository struct {
	col *mongo.Collection
}

func NewEpisodeRepository(db *mongo.Database) *EpisodeRepository {
	return &EpisodeRepository{col: db.Collection(collectionEpisodes)}
}

type episodeDoc struct {
	ID              string     `bson:"_id"`
	ContentID       string     `bson:"content_id"`
	SeasonNumber    int        `bson:"season_number"`
	EpisodeNumber   int        `bson:"episode_number"`
	Title           string     `bson:"title"`
	DurationMinutes int        `bson:"duration_minutes,omitempty"`
	ReleaseDate     *time.Time `bson:"release_date,omitempty"`
	VideoURL        string     `bson:"video_url,omitempty"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
}

func toEpisodeDoc(e *domain.Episode) episodeDoc {
	return episodeDoc{
		ID:              e.ID,
		ContentID:       e.ContentID,
		SeasonNumber:    e.SeasonNumber,
		EpisodeNumber:   e.EpisodeNumber,
		Title:           e.Title,
		DurationMinutes: e.DurationMinutes,
		ReleaseDate:     e.ReleaseDate,
		VideoURL:        e.VideoURL,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (d episodeDoc) toDomain() *domain.Episode {
	return &domain.Episode{
		ID:              d.ID,
		ContentID:       d.ContentID,
		SeasonNumber:    d.SeasonNumber,
		EpisodeNumber:   d.EpisodeNumber,
		Title:           d.Title,
		DurationMinutes: d.DurationMinutes,
		ReleaseDate:     d.ReleaseDate,
		VideoURL:        d.VideoURL,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (r *EpisodeRepository) Create(ctx context.Context, e *domain.Episode) (*domain.Episode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, toEpisodeDoc(e)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEpisodeNumberTaken
		}
		return nil, fmt.Errorf("insert episode: %w", err)
	}
	return e, nil
}

func (r *EpisodeRepository) FindByID(ctx context.Context, id string) (*domain.Episode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc episodeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEpisodeNotFound
		}
		return nil, fmt.Errorf("find episode: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EpisodeRepository) ListByContent(ctx context.Context, contentID string, season int) ([]*domain.Episode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"content_id": contentID}
	if season > 0 {
		query["season_number"] = season
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "season_number", Value: 1},
		{Key: "episode_number", Value: 1},
	})

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer cur.Close(ctx)

	var episodes []*domain.Episode
	for cur.Next(ctx) {
		var doc episodeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode episode: %w", err)
		}
		episodes = append(episodes, doc.toDomain())
	}
	return episodes, cur.Err()
}

func (r *EpisodeRepository) ExistsNumber(ctx context.Context, contentID string, season, episode int, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"content_id":     contentID,
		"season_number":  season,
		"episode_number": episode,
	}
	if excludeID != "" {
		query["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return false, fmt.Errorf("count episodes: %w", err)
	}
	return count > 0, nil
}

func (r *EpisodeRepository) Update(ctx context.Context, e *domain.Episode) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, toEpisodeDoc(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEpisodeNumberTaken
		}
		return fmt.Errorf("update episode: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEpisodeNotFound
	}
	return nil
}

func (r *EpisodeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete episode: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEpisodeNotFound
	}
	return nil
}

func (r *EpisodeRepository) DeleteByContent(ctx context.Context, contentID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"content_id": contentID}); err != nil {
		return fmt.Errorf("delete episodes by content: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique (content, season, episode) index.
func (r *EpisodeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "content_id", Value: 1},
				{Key: "season_number", Value: 1},
				{Key: "episode_number", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
