package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FavoriteStore interface {
	Favorite(ctx context.Context, userID, activityID string) (*Favorite, error)
	ListFavorites(ctx context.Context, userID string) ([]*Favorite, error)
	FavoritedActivityIDs(ctx context.Context, userID string) ([]string, error)
	CountFavorites(ctx context.Context, userID string) (int64, error)
	MaxFavoriteOrder(ctx context.Context, userID string) (int64, error)
	CreateFavorite(ctx context.Context, fav *Favorite) (*Favorite, error)
	DeleteFavorite(ctx context.Context, userID, activityID string) (bool, error)
	SetFavoriteOrder(ctx context.Context, userID string, orders []FavoriteOrder) error
	DeleteFavoritesByActivity(ctx context.Context, activityID string) (int64, error)
}

// Favorite is a user's bookmark of an activity. The (UserID, ActivityID)
// pair is unique; Order is a per-user sort key that may contain gaps but
// never duplicates.
type Favorite struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string             `json:"user_id" bson:"user_id"`
	ActivityID string             `json:"activity_id" bson:"activity_id"`
	Order      int64              `json:"order" bson:"order"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// FavoriteOrder is one (activity, order) assignment of a bulk reorder.
type FavoriteOrder struct {
	ActivityID string
	Order      int64
}
