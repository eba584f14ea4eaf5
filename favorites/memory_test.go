package favorites_test

import (
	"context"
	"sort"
	"sync"

	"github.com/escapade-app/escapade/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory store.FavoriteStore. It emulates the storage
// unique index: CreateFavorite under the mutex rejects an existing
// (user, activity) pair with store.ErrFavoriteExists, which is exactly the
// signal the engine's race handling keys on.
type memStore struct {
	mu   sync.Mutex
	favs map[string]*store.Favorite

	// conflictNext forces the next CreateFavorite to report a duplicate,
	// simulating a lost insert race without real concurrency.
	conflictNext bool
}

func newMemStore() *memStore {
	return &memStore{favs: make(map[string]*store.Favorite)}
}

func key(userID, activityID string) string {
	return userID + ":" + activityID
}

func (m *memStore) Favorite(_ context.Context, userID, activityID string) (*store.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fav, ok := m.favs[key(userID, activityID)]; ok {
		clone := *fav
		return &clone, nil
	}

	return nil, store.ErrFavoriteNotFound
}

func (m *memStore) ListFavorites(_ context.Context, userID string) ([]*store.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	favorites := make([]*store.Favorite, 0)
	for _, fav := range m.favs {
		if fav.UserID == userID {
			clone := *fav
			favorites = append(favorites, &clone)
		}
	}

	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].Order < favorites[j].Order
	})

	return favorites, nil
}

func (m *memStore) FavoritedActivityIDs(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0)
	for _, fav := range m.favs {
		if fav.UserID == userID {
			ids = append(ids, fav.ActivityID)
		}
	}

	return ids, nil
}

func (m *memStore) CountFavorites(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, fav := range m.favs {
		if fav.UserID == userID {
			count++
		}
	}

	return count, nil
}

func (m *memStore) MaxFavoriteOrder(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	max := int64(-1)
	for _, fav := range m.favs {
		if fav.UserID == userID && fav.Order > max {
			max = fav.Order
		}
	}

	return max, nil
}

func (m *memStore) CreateFavorite(_ context.Context, fav *store.Favorite) (*store.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflictNext {
		m.conflictNext = false
		return nil, store.ErrFavoriteExists
	}

	k := key(fav.UserID, fav.ActivityID)
	if _, ok := m.favs[k]; ok {
		return nil, store.ErrFavoriteExists
	}

	if fav.ID.IsZero() {
		fav.ID = primitive.NewObjectID()
	}

	clone := *fav
	m.favs[k] = &clone
	return fav, nil
}

func (m *memStore) DeleteFavorite(_ context.Context, userID, activityID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(userID, activityID)
	if _, ok := m.favs[k]; !ok {
		return false, nil
	}

	delete(m.favs, k)
	return true, nil
}

func (m *memStore) SetFavoriteOrder(_ context.Context, userID string, orders []store.FavoriteOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range orders {
		if fav, ok := m.favs[key(userID, o.ActivityID)]; ok {
			fav.Order = o.Order
		}
	}

	return nil
}

func (m *memStore) DeleteFavoritesByActivity(_ context.Context, activityID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for k, fav := range m.favs {
		if fav.ActivityID == activityID {
			delete(m.favs, k)
			deleted++
		}
	}

	return deleted, nil
}

// memLookup resolves a fixed set of activity ids.
type memLookup struct {
	known map[string]*store.Activity
}

func newMemLookup(ids ...string) *memLookup {
	known := make(map[string]*store.Activity, len(ids))
	for _, id := range ids {
		known[id] = &store.Activity{Name: "activity " + id}
	}

	return &memLookup{known: known}
}

func (l *memLookup) Activity(_ context.Context, id string) (*store.Activity, error) {
	if activity, ok := l.known[id]; ok {
		return activity, nil
	}

	return nil, store.ErrActivityNotFound
}
