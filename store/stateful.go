package store

import (
	"context"

	cache "github.com/patrickmn/go-cache"
)

const citiesKey = "cities"

// StatefulStore is a read-through cache on top of another Store. Activities
// and the city list are cached; favorites are never cached because their
// consistency under concurrent toggles depends on always hitting storage.
type StatefulStore struct {
	Store
	cache *cache.Cache
}

func NewStatefulStore(store Store, c *cache.Cache) Store {
	return &StatefulStore{
		Store: store,
		cache: c,
	}
}

func (s *StatefulStore) Activity(ctx context.Context, id string) (*Activity, error) {
	if a, ok := s.cache.Get("activities:" + id); ok {
		activity := a.(*Activity)
		return activity, nil
	}

	activity, err := s.Store.Activity(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set("activities:"+activity.ID.Hex(), activity, 0)
	return activity, nil
}

func (s *StatefulStore) CreateActivity(ctx context.Context, a *Activity) (*Activity, error) {
	activity, err := s.Store.CreateActivity(ctx, a)
	if err != nil {
		return nil, err
	}

	s.cache.Set("activities:"+activity.ID.Hex(), activity, 0)
	s.cache.Delete(citiesKey)
	return activity, nil
}

func (s *StatefulStore) DeleteActivity(ctx context.Context, id string) (bool, error) {
	deleted, err := s.Store.DeleteActivity(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.cache.Delete("activities:" + id)
		s.cache.Delete(citiesKey)
	}

	return deleted, nil
}

func (s *StatefulStore) Cities(ctx context.Context) ([]string, error) {
	if c, ok := s.cache.Get(citiesKey); ok {
		cities := c.([]string)
		return cities, nil
	}

	cities, err := s.Store.Cities(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(citiesKey, cities, cache.DefaultExpiration)
	return cities, nil
}
