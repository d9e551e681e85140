package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index the service relies on. Called
// once at startup; index creation is idempotent on the Mongo side.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}

	repos := map[string]indexed{
		collectionUsers:         NewUserRepository(db),
		collectionProfiles:      NewProfileRepository(db),
		collectionPlans:         NewPlanRepository(db),
		collectionSubscriptions: NewSubscriptionRepository(db),
		collectionPayments:      NewPaymentRepository(db),
		collectionContents:      NewContentRepository(db),
		collectionEpisodes:      NewEpisodeRepository(db),
		collectionPlaybacks:     NewPlaybackRepository(db),
		collectionWatchlists:    NewWatchlistRepository(db),
	}

	for name, repo := range repos {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", name, err)
		}
	}
	return nil
}
