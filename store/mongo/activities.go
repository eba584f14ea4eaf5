package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/escapade-app/escapade/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type activityStore struct {
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection
}

func ActivityStore(client *mongo.Client, database, collection string) store.ActivityStore {
	db := client.Database(database)
	col := db.Collection(collection)

	return &activityStore{
		client: client,
		db:     db,
		col:    col,
	}
}

func (a *activityStore) Activity(ctx context.Context, id string) (*store.Activity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrActivityNotFound
	}

	res := a.col.FindOne(ctx, bson.M{"_id": oid})

	activity := &store.Activity{}
	if err := res.Decode(activity); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrActivityNotFound
		}

		return nil, fmt.Errorf("failed to decode an activity: %w", err)
	}

	return activity, nil
}

func (a *activityStore) SearchActivities(ctx context.Context, filter store.ActivityFilter, opts ...store.SearchOptions) ([]*store.Activity, int64, error) {
	opt := store.DefaultSearchOptions()
	if len(opts) != 0 {
		opt = opts[0].Clamp()
	}

	bsonFilter := filterBSON(filter)

	total, err := a.col.CountDocuments(ctx, bsonFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	cur, err := a.col.Find(
		ctx,
		bsonFilter,
		options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetSkip(opt.Skip).
			SetLimit(opt.Limit),
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to find activities: %w", err)
	}

	activities := make([]*store.Activity, 0)
	if err := cur.All(ctx, &activities); err != nil {
		return nil, 0, fmt.Errorf("failed to decode activities: %w", err)
	}

	return activities, total, nil
}

func (a *activityStore) LatestActivities(ctx context.Context, limit int64) ([]*store.Activity, error) {
	cur, err := a.col.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to find latest activities: %w", err)
	}

	activities := make([]*store.Activity, 0)
	if err := cur.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}

	return activities, nil
}

func (a *activityStore) Cities(ctx context.Context) ([]string, error) {
	values, err := a.col.Distinct(ctx, "city", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	cities := make([]string, 0, len(values))
	for _, v := range values {
		if city, ok := v.(string); ok {
			cities = append(cities, city)
		}
	}

	return cities, nil
}

func (a *activityStore) CreateActivity(ctx context.Context, activity *store.Activity) (*store.Activity, error) {
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}

	activity.CreatedAt = time.Now()
	activity.UpdatedAt = time.Now()

	if _, err := a.col.InsertOne(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to insert activity: %w", err)
	}

	return activity, nil
}

func (a *activityStore) DeleteActivity(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, store.ErrActivityNotFound
	}

	res, err := a.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete activity: %w", err)
	}

	return res.DeletedCount > 0, nil
}

func filterBSON(f store.ActivityFilter) bson.D {
	filter := bson.D{}

	if f.OwnerID != "" {
		filter = append(filter, bson.E{Key: "owner_id", Value: f.OwnerID})
	}

	if f.City != "" {
		filter = append(filter, bson.E{Key: "city", Value: f.City})
	}

	if f.Price != 0 {
		filter = append(filter, bson.E{Key: "price", Value: f.Price})
	}

	if f.Name != "" {
		filter = append(filter, bson.E{
			Key: "name",
			Value: bson.D{
				{Key: "$regex", Value: regexp.QuoteMeta(f.Name)},
				{Key: "$options", Value: "i"},
			},
		})
	}

	return filter
}
