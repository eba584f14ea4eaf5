package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityStore interface {
	Activity(ctx context.Context, id string) (*Activity, error)
	SearchActivities(ctx context.Context, filter ActivityFilter, opts ...SearchOptions) ([]*Activity, int64, error)
	LatestActivities(ctx context.Context, limit int64) ([]*Activity, error)
	Cities(ctx context.Context) ([]string, error)
	CreateActivity(ctx context.Context, activity *Activity) (*Activity, error)
	DeleteActivity(ctx context.Context, id string) (bool, error)
}

type Activity struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	City        string             `json:"city" bson:"city"`
	Price       int64              `json:"price" bson:"price"`
	Description string             `json:"description" bson:"description"`
	OwnerID     string             `json:"owner_id" bson:"owner_id"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ActivityFilter narrows a search. Zero values mean "any": an empty City
// matches all cities, a zero Price matches all prices and an empty Name
// skips the name match entirely.
type ActivityFilter struct {
	OwnerID string
	City    string
	Name    string
	Price   int64
}

type SearchOptions struct {
	Limit int64
	Skip  int64
}

const (
	defaultLimit = 15
	maxLimit     = 100
)

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit: defaultLimit,
		Skip:  0,
	}
}

// Clamp normalizes user-supplied pagination to sane bounds.
func (o SearchOptions) Clamp() SearchOptions {
	if o.Limit < 1 {
		o.Limit = defaultLimit
	}

	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}

	if o.Skip < 0 {
		o.Skip = 0
	}

	return o
}
