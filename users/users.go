package users

import (
	"context"
	"fmt"

	"github.com/escapade-app/escapade/store"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	store store.UserStore
}

func NewService(users store.UserStore) *Service {
	return &Service{store: users}
}

func (s *Service) Get(ctx context.Context, id string) (*store.User, error) {
	return s.store.User(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*store.User, error) {
	return s.store.UserByEmail(ctx, email)
}

// Create hashes the password and persists the user. Email uniqueness is
// enforced by the storage layer (store.ErrUserExists).
func (s *Service) Create(ctx context.Context, email, name, password string) (*store.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.CreateUser(ctx, &store.User{
		Email:    email,
		Name:     name,
		Password: string(hash),
	})
}

func (s *Service) CheckPassword(user *store.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// ByIDs returns the users in the same order as the requested ids, with nil
// holes for ids that don't resolve. Batch shape required by the dataloader.
func (s *Service) ByIDs(ctx context.Context, ids []string) ([]*store.User, error) {
	users, err := s.store.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*store.User, len(users))
	for _, user := range users {
		byID[user.ID.Hex()] = user
	}

	ordered := make([]*store.User, len(ids))
	for i, id := range ids {
		ordered[i] = byID[id]
	}

	return ordered, nil
}
