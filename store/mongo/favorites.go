package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/escapade-app/escapade/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type favoriteStore struct {
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection
}

func FavoriteStore(client *mongo.Client, database, collection string) store.FavoriteStore {
	db := client.Database(database)
	col := db.Collection(collection)

	return &favoriteStore{
		client: client,
		db:     db,
		col:    col,
	}
}

func (f *favoriteStore) Favorite(ctx context.Context, userID, activityID string) (*store.Favorite, error) {
	res := f.col.FindOne(ctx, bson.M{"user_id": userID, "activity_id": activityID})

	fav := &store.Favorite{}
	if err := res.Decode(fav); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrFavoriteNotFound
		}

		return nil, fmt.Errorf("failed to decode a favorite: %w", err)
	}

	return fav, nil
}

func (f *favoriteStore) ListFavorites(ctx context.Context, userID string) ([]*store.Favorite, error) {
	cur, err := f.col.Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"order": 1}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}

	favorites := make([]*store.Favorite, 0)
	if err := cur.All(ctx, &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}

	return favorites, nil
}

// FavoritedActivityIDs projects activity_id only. It deliberately never
// fetches or decodes full documents; the UI queries this on every card
// render.
func (f *favoriteStore) FavoritedActivityIDs(ctx context.Context, userID string) ([]string, error) {
	cur, err := f.col.Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().SetProjection(bson.M{"activity_id": 1}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}

	var projections []struct {
		ActivityID string `bson:"activity_id"`
	}

	if err := cur.All(ctx, &projections); err != nil {
		return nil, fmt.Errorf("failed to decode favorite projections: %w", err)
	}

	ids := make([]string, 0, len(projections))
	for _, p := range projections {
		ids = append(ids, p.ActivityID)
	}

	return ids, nil
}

func (f *favoriteStore) CountFavorites(ctx context.Context, userID string) (int64, error) {
	count, err := f.col.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	return count, nil
}

// MaxFavoriteOrder returns the highest order value among the user's
// favorites, or -1 when the user has none.
func (f *favoriteStore) MaxFavoriteOrder(ctx context.Context, userID string) (int64, error) {
	res := f.col.FindOne(
		ctx,
		bson.M{"user_id": userID},
		options.FindOne().SetSort(bson.M{"order": -1}).SetProjection(bson.M{"order": 1}),
	)

	top := &struct {
		Order int64 `bson:"order"`
	}{}

	if err := res.Decode(top); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return -1, nil
		}

		return 0, fmt.Errorf("failed to find max favorite order: %w", err)
	}

	return top.Order, nil
}

func (f *favoriteStore) CreateFavorite(ctx context.Context, fav *store.Favorite) (*store.Favorite, error) {
	if fav.ID.IsZero() {
		fav.ID = primitive.NewObjectID()
	}

	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now()
	}

	if _, err := f.col.InsertOne(ctx, fav); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrFavoriteExists
		}

		return nil, fmt.Errorf("failed to insert favorite: %w", err)
	}

	return fav, nil
}

func (f *favoriteStore) DeleteFavorite(ctx context.Context, userID, activityID string) (bool, error) {
	res, err := f.col.DeleteOne(ctx, bson.M{"user_id": userID, "activity_id": activityID})
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}

	return res.DeletedCount > 0, nil
}

// SetFavoriteOrder applies all order assignments as a single bulk write so
// readers observe either the old or the new ordering, never a mix.
func (f *favoriteStore) SetFavoriteOrder(ctx context.Context, userID string, orders []store.FavoriteOrder) error {
	if len(orders) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(orders))
	for _, o := range orders {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"user_id": userID, "activity_id": o.ActivityID}).
			SetUpdate(bson.M{"$set": bson.M{"order": o.Order}}))
	}

	if _, err := f.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("failed to bulk update favorite order: %w", err)
	}

	return nil
}

func (f *favoriteStore) DeleteFavoritesByActivity(ctx context.Context, activityID string) (int64, error) {
	res, err := f.col.DeleteMany(ctx, bson.M{"activity_id": activityID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorites by activity: %w", err)
	}

	return res.DeletedCount, nil
}
