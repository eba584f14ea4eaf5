package resolvers

import (
	"errors"

	"github.com/escapade-app/escapade/activities"
	"github.com/escapade-app/escapade/auth"
	"github.com/escapade-app/escapade/favorites"
	"github.com/escapade-app/escapade/store"
)

// clientError is an error the caller can correct. It satisfies the
// ResolverError interface of graph-gophers/graphql-go, so the code lands in
// the error's extensions.
type clientError struct {
	code    string
	message string
}

func (e *clientError) Error() string {
	return e.message
}

func (e *clientError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// classify translates domain errors into client errors and hides everything
// else behind a generic message. Internal errors are logged by the caller.
func (r *Resolver) classify(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		return &clientError{code: "UNAUTHENTICATED", message: "authentication required"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &clientError{code: "UNAUTHENTICATED", message: err.Error()}
	case errors.Is(err, store.ErrActivityNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrFavoriteNotFound):
		return &clientError{code: "NOT_FOUND", message: err.Error()}
	case errors.Is(err, favorites.ErrDuplicateActivityIDs),
		errors.Is(err, favorites.ErrCountMismatch),
		errors.Is(err, favorites.ErrNotFavorited):
		return &clientError{code: "BAD_USER_INPUT", message: err.Error()}
	case errors.Is(err, store.ErrUserExists):
		return &clientError{code: "BAD_USER_INPUT", message: "email already registered"}
	case errors.Is(err, activities.ErrNotOwner):
		return &clientError{code: "FORBIDDEN", message: err.Error()}
	}

	r.log.Errorw("resolver failed", "error", err)
	return errors.New("internal server error")
}
