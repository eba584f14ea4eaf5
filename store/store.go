package store

import (
	"context"
	"errors"
)

type Store interface {
	ActivityStore
	FavoriteStore
	UserStore
	Init(context.Context) error
	Close(context.Context) error
}

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrFavoriteExists is returned by CreateFavorite when the (user, activity)
	// pair already has a favorite. It is the only signal derived from the
	// storage unique index; callers rely on it to detect lost insert races.
	ErrFavoriteExists = errors.New("favorite already exists")

	ErrUserExists = errors.New("user already exists")
)
