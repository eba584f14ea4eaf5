package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/escapade-app/escapade/store"
	"go.uber.org/zap"
)

var (
	ErrDuplicateActivityIDs = errors.New("duplicate activity ids")
	ErrCountMismatch        = errors.New("activity ids count does not match favorites count")
	ErrNotFavorited         = errors.New("activity id is not among the user's favorites")
)

// ActivityLookup resolves an activity by id, failing with
// store.ErrActivityNotFound when it doesn't exist. It is the only thing the
// engine needs from the activity side.
type ActivityLookup interface {
	Activity(ctx context.Context, id string) (*store.Activity, error)
}

// Service maintains a user's ordered favorites. It holds no locks across
// storage calls; the unique (user, activity) index is the sole arbiter of
// concurrent toggles, which keeps the logic correct across multiple server
// processes.
type Service struct {
	store      store.FavoriteStore
	activities ActivityLookup
	log        *zap.SugaredLogger
}

func NewService(favorites store.FavoriteStore, activities ActivityLookup, log *zap.SugaredLogger) *Service {
	return &Service{
		store:      favorites,
		activities: activities,
		log:        log,
	}
}

// Toggle favorites the activity if it isn't favorited and unfavorites it if
// it is. Returns true when the activity ended up favorited.
//
// The existence check and the insert are not atomic. When two toggles for
// the same pair race, the unique index rejects the second insert; that exact
// signal is absorbed here and answered with a compensating delete, so the
// caller never sees a duplicate-key error and at most one favorite survives.
func (s *Service) Toggle(ctx context.Context, userID, activityID string) (bool, error) {
	if _, err := s.activities.Activity(ctx, activityID); err != nil {
		return false, err
	}

	_, err := s.store.Favorite(ctx, userID, activityID)
	switch {
	case err == nil:
		if _, err := s.store.DeleteFavorite(ctx, userID, activityID); err != nil {
			return false, err
		}

		return false, nil
	case !errors.Is(err, store.ErrFavoriteNotFound):
		return false, err
	}

	maxOrder, err := s.store.MaxFavoriteOrder(ctx, userID)
	if err != nil {
		return false, err
	}

	_, err = s.store.CreateFavorite(ctx, &store.Favorite{
		UserID:     userID,
		ActivityID: activityID,
		Order:      maxOrder + 1,
		CreatedAt:  time.Now(),
	})

	if err != nil {
		if errors.Is(err, store.ErrFavoriteExists) {
			// A concurrent toggle won the insert race; treat this call as
			// the removal half of the pair.
			s.log.Debugw("toggle lost insert race, removing favorite",
				"user_id", userID,
				"activity_id", activityID,
			)

			if _, err := s.store.DeleteFavorite(ctx, userID, activityID); err != nil {
				return false, err
			}

			return false, nil
		}

		return false, err
	}

	return true, nil
}

// ListByUser returns the user's favorites sorted ascending by order.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*store.Favorite, error) {
	return s.store.ListFavorites(ctx, userID)
}

// ActivityIDs returns the ids of the user's favorited activities without
// hydrating the activities themselves.
func (s *Service) ActivityIDs(ctx context.Context, userID string) ([]string, error) {
	return s.store.FavoritedActivityIDs(ctx, userID)
}

// Reorder assigns order = index for every activity id at its position in
// activityIDs. The ids must be an exact permutation of the user's favorited
// activity ids; any violation aborts before a single write is issued. The
// assignments go out as one bulk update, so readers never observe a partial
// reordering.
func (s *Service) Reorder(ctx context.Context, userID string, activityIDs []string) ([]*store.Favorite, error) {
	seen := make(map[string]struct{}, len(activityIDs))
	for _, id := range activityIDs {
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateActivityIDs, id)
		}

		seen[id] = struct{}{}
	}

	current, err := s.store.FavoritedActivityIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(activityIDs) != len(current) {
		return nil, fmt.Errorf("%w: got %v, have %v", ErrCountMismatch, len(activityIDs), len(current))
	}

	favorited := make(map[string]struct{}, len(current))
	for _, id := range current {
		favorited[id] = struct{}{}
	}

	for _, id := range activityIDs {
		if _, ok := favorited[id]; !ok {
			return nil, fmt.Errorf("%w: %v", ErrNotFavorited, id)
		}
	}

	orders := make([]store.FavoriteOrder, 0, len(activityIDs))
	for i, id := range activityIDs {
		orders = append(orders, store.FavoriteOrder{
			ActivityID: id,
			Order:      int64(i),
		})
	}

	if err := s.store.SetFavoriteOrder(ctx, userID, orders); err != nil {
		return nil, err
	}

	return s.store.ListFavorites(ctx, userID)
}

// RemoveByActivity deletes every favorite of the activity regardless of
// owner. Idempotent; activity deletion calls this to keep favorites free of
// dangling references.
func (s *Service) RemoveByActivity(ctx context.Context, activityID string) error {
	deleted, err := s.store.DeleteFavoritesByActivity(ctx, activityID)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.log.Infow("removed favorites of deleted activity",
			"activity_id", activityID,
			"count", deleted,
		)
	}

	return nil
}
