package users

import (
	"context"

	"github.com/escapade-app/escapade/store"
	"github.com/graph-gophers/dataloader/v7"
)

type loaderKey struct{}

// Loader batches user lookups within a single request, so resolving the
// owner of every activity on a page costs one query.
type Loader = dataloader.Loader[string, *store.User]

func NewLoader(service *Service) *Loader {
	batch := func(ctx context.Context, ids []string) []*dataloader.Result[*store.User] {
		results := make([]*dataloader.Result[*store.User], len(ids))

		users, err := service.ByIDs(ctx, ids)
		if err != nil {
			for i := range ids {
				results[i] = &dataloader.Result[*store.User]{Error: err}
			}

			return results
		}

		for i, user := range users {
			results[i] = &dataloader.Result[*store.User]{Data: user}
		}

		return results
	}

	return dataloader.NewBatchedLoader(batch)
}

// WithLoader attaches a fresh per-request loader to the context.
func WithLoader(ctx context.Context, loader *Loader) context.Context {
	return context.WithValue(ctx, loaderKey{}, loader)
}

// LoaderFor extracts the request's loader, if any.
func LoaderFor(ctx context.Context) (*Loader, bool) {
	loader, ok := ctx.Value(loaderKey{}).(*Loader)
	return loader, ok
}
