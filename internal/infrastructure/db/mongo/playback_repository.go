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

const collectionPlaybacks = "playbacks"

type PlaybackRepository struct {
	col *mongo.Collection
}

func NewPlaybackRepository(db *mongo.Database) *PlaybackRepository {
	return &PlaybackRepository{col: db.Collection(collectionPlaybacks)}
}

// Device and EpisodeID are stored without omitempty so that the open-session
// lookup matches on their zero values too.
type playbackDoc struct {
	ID              string     `bson:"_id"`
	ProfileID       string     `bson:"profile_id"`
	ContentID       string     `bson:"content_id"`
	EpisodeID       string     `bson:"episode_id"`
	StartedAt       time.Time  `bson:"started_at"`
	EndedAt         *time.Time `bson:"ended_at,omitempty"`
	ProgressSeconds int        `bson:"progress_seconds"`
	Completed       bool       `bson:"completed"`
	Device          string     `bson:"device"`
	DurationSeconds int        `bson:"duration_seconds,omitempty"`
	LastSeenAt      *time.Time `bson:"last_seen_at,omitempty"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
}

func toPlaybackDoc(p *domain.Playback) playbackDoc {
	return playbackDoc{
		ID:              p.ID,
		ProfileID:       p.ProfileID,
		ContentID:       p.ContentID,
		EpisodeID:       p.EpisodeID,
		StartedAt:       p.StartedAt,
		EndedAt:         p.EndedAt,
		ProgressSeconds: p.ProgressSeconds,
		Completed:       p.Completed,
		Device:          p.Device,
		DurationSeconds: p.DurationSeconds,
		LastSeenAt:      p.LastSeenAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (d playbackDoc) toDomain() *domain.Playback {
	return &domain.Playback{
		ID:              d.ID,
		ProfileID:       d.ProfileID,
		ContentID:       d.ContentID,
		EpisodeID:       d.EpisodeID,
		StartedAt:       d.StartedAt,
		EndedAt:         d.EndedAt,
		ProgressSeconds: d.ProgressSeconds,
		Completed:       d.Completed,
		Device:          d.Device,
		DurationSeconds: d.DurationSeconds,
		LastSeenAt:      d.LastSeenAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (r *PlaybackRepository) Create(ctx context.Context, p *domain.Playback) (*domain.Playback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, toPlaybackDoc(p)); err != nil {
		return nil, fmt.Errorf("insert playback: %w", err)
	}
	return p, nil
}

func (r *PlaybackRepository) FindByID(ctx context.Context, id string) (*domain.Playback, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

func (r *PlaybackRepository) FindOpen(ctx context.Context, profileID, device, contentID, episodeID string) (*domain.Playback, error) {
	filter := bson.M{
		"profile_id": profileID,
		"device":     device,
		"content_id": contentID,
		"episode_id": episodeID,
		"completed":  false,
	}
	// Prefer the most recent session when several are open.
	opts := options.FindOne().SetSort(bson.D{{Key: "started_at", Value: -1}})
	return r.findOne(ctx, filter, opts)
}

func (r *PlaybackRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Playback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc playbackDoc
	var err error
	if opts != nil {
		err = r.col.FindOne(ctx, filter, opts).Decode(&doc)
	} else {
		err = r.col.FindOne(ctx, filter).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlaybackNotFound
		}
		return nil, fmt.Errorf("find playback: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PlaybackRepository) ListByProfiles(ctx context.Context, profileIDs []string, filter ports.ListPlaybacksFilter) ([]*domain.Playback, int64, error) {
	if len(profileIDs) == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"profile_id": bson.M{"$in": profileIDs}}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count playbacks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list playbacks: %w", err)
	}
	defer cur.Close(ctx)

	var playbacks []*domain.Playback
	for cur.Next(ctx) {
		var doc playbackDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode playback: %w", err)
		}
		playbacks = append(playbacks, doc.toDomain())
	}
	return playbacks, total, cur.Err()
}

func (r *PlaybackRepository) Update(ctx context.Context, p *domain.Playback) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toPlaybackDoc(p))
	if err != nil {
		return fmt.Errorf("update playback: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlaybackNotFound
	}
	return nil
}

func (r *PlaybackRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete playback: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlaybackNotFound
	}
	return nil
}

// EnsureIndexes creates playback lookup indexes.
func (r *PlaybackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "profile_id", Value: 1}, {Key: "started_at", Value: -1}}},
		{
			Keys: bson.D{
				{Key: "profile_id", Value: 1},
				{Key: "device", Value: 1},
				{Key: "content_id", Value: 1},
				{Key: "episode_id", Value: 1},
				{Key: "completed", Value: 1},
			},
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
