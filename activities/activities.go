package activities

import (
	"context"
	"errors"

	"github.com/escapade-app/escapade/store"
	"go.uber.org/zap"
)

var ErrNotOwner = errors.New("activity belongs to another user")

const latestLimit = 3

// FavoriteRemover cleans up favorites referencing a deleted activity. The
// favorites collection keeps no database-level cascade, so Delete must call
// this on every removal.
type FavoriteRemover interface {
	RemoveByActivity(ctx context.Context, activityID string) error
}

type Paginated struct {
	Items []*store.Activity
	Total int64
}

type Service struct {
	store     store.ActivityStore
	favorites FavoriteRemover
	log       *zap.SugaredLogger
}

func NewService(activities store.ActivityStore, favorites FavoriteRemover, log *zap.SugaredLogger) *Service {
	return &Service{
		store:     activities,
		favorites: favorites,
		log:       log,
	}
}

func (s *Service) List(ctx context.Context, opts store.SearchOptions) (*Paginated, error) {
	items, total, err := s.store.SearchActivities(ctx, store.ActivityFilter{}, opts)
	if err != nil {
		return nil, err
	}

	return &Paginated{Items: items, Total: total}, nil
}

func (s *Service) Latest(ctx context.Context) ([]*store.Activity, error) {
	return s.store.LatestActivities(ctx, latestLimit)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string, opts store.SearchOptions) (*Paginated, error) {
	items, total, err := s.store.SearchActivities(ctx, store.ActivityFilter{OwnerID: ownerID}, opts)
	if err != nil {
		return nil, err
	}

	return &Paginated{Items: items, Total: total}, nil
}

func (s *Service) ListByCity(ctx context.Context, city, name string, price int64, opts store.SearchOptions) (*Paginated, error) {
	filter := store.ActivityFilter{
		City:  city,
		Name:  name,
		Price: price,
	}

	items, total, err := s.store.SearchActivities(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &Paginated{Items: items, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*store.Activity, error) {
	return s.store.Activity(ctx, id)
}

func (s *Service) Cities(ctx context.Context) ([]string, error) {
	return s.store.Cities(ctx)
}

func (s *Service) Create(ctx context.Context, ownerID string, activity *store.Activity) (*store.Activity, error) {
	activity.OwnerID = ownerID
	return s.store.CreateActivity(ctx, activity)
}

// Delete removes an owned activity and cascades to its favorites.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	activity, err := s.store.Activity(ctx, id)
	if err != nil {
		return err
	}

	if activity.OwnerID != userID {
		return ErrNotOwner
	}

	deleted, err := s.store.DeleteActivity(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		return store.ErrActivityNotFound
	}

	if err := s.favorites.RemoveByActivity(ctx, id); err != nil {
		// The activity is already gone; a failed cleanup leaves dangling
		// favorites behind, which is worth an error-level trace.
		s.log.Errorw("failed to remove favorites of deleted activity",
			"activity_id", id,
			"error", err,
		)

		return err
	}

	return nil
}
