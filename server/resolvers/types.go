package resolvers

import (
	"context"
	"errors"

	"github.com/escapade-app/escapade/activities"
	"github.com/escapade-app/escapade/store"
	"github.com/escapade-app/escapade/users"
	graphql "github.com/graph-gophers/graphql-go"
)

type activityResolver struct {
	activity *store.Activity
	root     *Resolver
}

func (r *activityResolver) ID() graphql.ID {
	return graphql.ID(r.activity.ID.Hex())
}

func (r *activityResolver) Name() string {
	return r.activity.Name
}

func (r *activityResolver) City() string {
	return r.activity.City
}

func (r *activityResolver) Price() int32 {
	return int32(r.activity.Price)
}

func (r *activityResolver) Description() string {
	return r.activity.Description
}

// Owner resolves through the per-request loader when one is attached, so a
// page of activities costs one user query instead of one per card.
func (r *activityResolver) Owner(ctx context.Context) (*userResolver, error) {
	if r.activity.OwnerID == "" {
		return nil, nil
	}

	var (
		user *store.User
		err  error
	)

	if loader, ok := users.LoaderFor(ctx); ok {
		user, err = loader.Load(ctx, r.activity.OwnerID)()
	} else {
		user, err = r.root.users.Get(ctx, r.activity.OwnerID)
	}

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil
		}

		return nil, r.root.classify(err)
	}

	if user == nil {
		return nil, nil
	}

	return &userResolver{user: user}, nil
}

func (r *activityResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.activity.CreatedAt}
}

func (r *Resolver) newActivityResolvers(items []*store.Activity) []*activityResolver {
	resolvers := make([]*activityResolver, 0, len(items))
	for _, activity := range items {
		resolvers = append(resolvers, &activityResolver{activity: activity, root: r})
	}

	return resolvers
}

type favoriteResolver struct {
	favorite *store.Favorite
	root     *Resolver
}

func (r *favoriteResolver) ID() graphql.ID {
	return graphql.ID(r.favorite.ID.Hex())
}

// Activity hydrates the referenced activity on demand; list and projection
// queries never pay for it.
func (r *favoriteResolver) Activity(ctx context.Context) (*activityResolver, error) {
	activity, err := r.root.activities.Get(ctx, r.favorite.ActivityID)
	if err != nil {
		return nil, r.root.classify(err)
	}

	return &activityResolver{activity: activity, root: r.root}, nil
}

func (r *favoriteResolver) Order() int32 {
	return int32(r.favorite.Order)
}

func (r *favoriteResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.favorite.CreatedAt}
}

type userResolver struct {
	user *store.User
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID.Hex())
}

func (r *userResolver) Email() string {
	return r.user.Email
}

func (r *userResolver) Name() string {
	return r.user.Name
}

func (r *userResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.user.CreatedAt}
}

type signInResolver struct {
	user *store.User
}

func (r *signInResolver) User() *userResolver {
	return &userResolver{user: r.user}
}

type paginatedResolver struct {
	page *activities.Paginated
	root *Resolver
}

func (r *Resolver) newPaginatedResolver(page *activities.Paginated) *paginatedResolver {
	return &paginatedResolver{page: page, root: r}
}

func (r *paginatedResolver) Items() []*activityResolver {
	return r.root.newActivityResolvers(r.page.Items)
}

func (r *paginatedResolver) Total() int32 {
	return int32(r.page.Total)
}
