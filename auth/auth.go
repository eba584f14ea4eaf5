package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/escapade-app/escapade/store"
	"github.com/escapade-app/escapade/users"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type userIDKey struct{}

type Service struct {
	users  *users.Service
	secret []byte
	ttl    time.Duration
}

func NewService(users *users.Service, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) SignUp(ctx context.Context, email, name, password string) (*store.User, error) {
	return s.users.Create(ctx, email, name, password)
}

// SignIn verifies the credentials and mints a signed token. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *store.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}

		return "", nil, err
	}

	if !s.users.CheckPassword(user, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.Sign(user.ID.Hex())
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *Service) Sign(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// Verify parses the token and returns the user id it was issued for.
func (s *Service) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// WithUserID stores the authenticated user id in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user id, or ErrUnauthenticated when the
// request carried no valid credentials.
func UserID(ctx context.Context) (string, error) {
	if id, ok := ctx.Value(userIDKey{}).(string); ok && id != "" {
		return id, nil
	}

	return "", ErrUnauthenticated
}
