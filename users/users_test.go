package users_test

import (
	"context"
	"testing"

	"github.com/escapade-app/escapade/store"
	"github.com/escapade-app/escapade/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUserStore struct {
	byID    map[string]*store.User
	byEmail map[string]*store.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		byID:    make(map[string]*store.User),
		byEmail: make(map[string]*store.User),
	}
}

func (m *memUserStore) User(_ context.Context, id string) (*store.User, error) {
	if user, ok := m.byID[id]; ok {
		return user, nil
	}

	return nil, store.ErrUserNotFound
}

func (m *memUserStore) UserByEmail(_ context.Context, email string) (*store.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}

	return nil, store.ErrUserNotFound
}

func (m *memUserStore) UsersByIDs(_ context.Context, ids []string) ([]*store.User, error) {
	found := make([]*store.User, 0)
	for _, id := range ids {
		if user, ok := m.byID[id]; ok {
			found = append(found, user)
		}
	}

	return found, nil
}

func (m *memUserStore) CreateUser(_ context.Context, user *store.User) (*store.User, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return nil, store.ErrUserExists
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	m.byID[user.ID.Hex()] = user
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *memUserStore) CountUsers(context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	service := users.NewService(newMemUserStore())

	user, err := service.Create(ctx, "alice@example.com", "Alice", "hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")

	assert.True(t, service.CheckPassword(user, "hunter22"))
	assert.False(t, service.CheckPassword(user, "wrong"))

	_, err = service.Create(ctx, "alice@example.com", "Other Alice", "secret")
	assert.ErrorIs(t, err, store.ErrUserExists)
}

func TestByIDs(t *testing.T) {
	ctx := context.Background()
	service := users.NewService(newMemUserStore())

	alice, err := service.Create(ctx, "alice@example.com", "Alice", "pw")
	require.NoError(t, err)
	bob, err := service.Create(ctx, "bob@example.com", "Bob", "pw")
	require.NoError(t, err)

	got, err := service.ByIDs(ctx, []string{bob.ID.Hex(), "missing", alice.ID.Hex()})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Bob", got[0].Name)
	assert.Nil(t, got[1])
	assert.Equal(t, "Alice", got[2].Name)
}

func TestLoader(t *testing.T) {
	ctx := context.Background()
	service := users.NewService(newMemUserStore())

	alice, err := service.Create(ctx, "alice@example.com", "Alice", "pw")
	require.NoError(t, err)

	loader := users.NewLoader(service)

	got, err := loader.Load(ctx, alice.ID.Hex())()
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	missing, err := loader.Load(ctx, "missing")()
	require.NoError(t, err)
	assert.Nil(t, missing)
}
