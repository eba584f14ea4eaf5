package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/escapade-app/escapade/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoStore struct {
	client   *mongo.Client
	database *mongo.Database

	*activityStore
	*favoriteStore
	*userStore
}

func New(ctx context.Context, uri string, db string) (store.Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	database := client.Database(db)
	return &mongoStore{
		client:        client,
		database:      database,
		activityStore: &activityStore{client, database, database.Collection("activities")},
		favoriteStore: &favoriteStore{client, database, database.Collection("favorites")},
		userStore:     &userStore{client, database, database.Collection("users")},
	}, nil
}

// Init creates the collections and the indexes the engine logic depends on.
// The unique (user_id, activity_id) index on favorites is load-bearing: it
// is the only thing resolving concurrent toggle races.
func (m *mongoStore) Init(ctx context.Context) error {
	collections := []string{"activities", "favorites", "users"}
	for _, col := range collections {
		err := m.database.CreateCollection(ctx, col)
		if err != nil && !errors.As(err, &mongo.CommandError{}) {
			return err
		}
	}

	indexes := map[string][]mongo.IndexModel{
		"favorites": {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "activity_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "order", Value: 1}},
			},
		},
		"activities": {
			{Keys: bson.D{{Key: "city", Value: 1}}},
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for col, models := range indexes {
		if _, err := m.database.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %v indexes: %w", col, err)
		}
	}

	return nil
}

func (m *mongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
