// Package resolvers implements the GraphQL resolver tree over the domain
// services.
package resolvers

import (
	"context"
	"net/http"
	"time"

	"github.com/escapade-app/escapade/activities"
	"github.com/escapade-app/escapade/auth"
	"github.com/escapade-app/escapade/favorites"
	"github.com/escapade-app/escapade/store"
	"github.com/escapade-app/escapade/users"
	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

type writerKey struct{}

// WithWriter stores the response writer so login/logout resolvers can set
// the session cookie.
func WithWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, writerKey{}, w)
}

func writerFor(ctx context.Context) (http.ResponseWriter, bool) {
	w, ok := ctx.Value(writerKey{}).(http.ResponseWriter)
	return w, ok
}

type Resolver struct {
	activities *activities.Service
	favorites  *favorites.Service
	users      *users.Service
	auth       *auth.Service
	cookieTTL  time.Duration
	log        *zap.SugaredLogger
}

func New(
	activities *activities.Service,
	favorites *favorites.Service,
	users *users.Service,
	auth *auth.Service,
	cookieTTL time.Duration,
	log *zap.SugaredLogger,
) *Resolver {
	return &Resolver{
		activities: activities,
		favorites:  favorites,
		users:      users,
		auth:       auth,
		cookieTTL:  cookieTTL,
		log:        log,
	}
}

type paginationArgs struct {
	Limit  *int32
	Offset *int32
}

func searchOptions(limit, offset *int32) store.SearchOptions {
	opts := store.DefaultSearchOptions()
	if limit != nil {
		opts.Limit = int64(*limit)
	}

	if offset != nil {
		opts.Skip = int64(*offset)
	}

	return opts.Clamp()
}

func (r *Resolver) GetActivities(ctx context.Context, args paginationArgs) (*paginatedResolver, error) {
	page, err := r.activities.List(ctx, searchOptions(args.Limit, args.Offset))
	if err != nil {
		return nil, r.classify(err)
	}

	return r.newPaginatedResolver(page), nil
}

func (r *Resolver) GetLatestActivities(ctx context.Context) ([]*activityResolver, error) {
	latest, err := r.activities.Latest(ctx)
	if err != nil {
		return nil, r.classify(err)
	}

	return r.newActivityResolvers(latest), nil
}

func (r *Resolver) GetActivitiesByUser(ctx context.Context, args paginationArgs) (*paginatedResolver, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, r.classify(err)
	}

	page, err := r.activities.ListByOwner(ctx, userID, searchOptions(args.Limit, args.Offset))
	if err != nil {
		return nil, r.classify(err)
	}

	return r.newPaginatedResolver(page), nil
}

func (r *Resolver) GetCities(ctx context.Context) ([]string, error) {
	cities, err := r.activities.Cities(ctx)
	if err != nil {
		return nil, r.classify(err)
	}

	return cities, nil
}

func (r *Resolver) GetActivitiesByCity(ctx context.Context, args struct {
	City     string
	Activity *string
	Price    *int32
	Limit    *int32
	Offset   *int32
}) (*paginatedResolver, error) {
	var (
		name  string
		price int64
	)

	if args.Activity != nil {
		name = *args.Activity
	}

	if args.Price != nil {
		price = int64(*args.Price)
	}

	page, err := r.activities.ListByCity(ctx, args.City, name, price, searchOptions(args.Limit, args.Offset))
	if err != nil {
		return nil, r.classify(err)
	}

	return r.newPaginatedResolver(page), nil
}

func (r *Resolver) GetActivity(ctx context.Context, args struct{ ID graphql.ID }) (*activityResolver, error) {
	activity, err := r.activities.Get(ctx, string(args.ID))
	if err != nil {
		return nil, r.classify(err)
	}

	return &activityResolver{activity: activity, root: r}, nil
}

func (r *Resolver) GetMyFavorites(ctx context.Context) ([]*favoriteResolver, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, r.classify(err)
	}

	favs, err := r.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, r.classify(err)
	}

	resolvers := make([]*favoriteResolver, 0, len(favs))
	for _, fav := range favs {
		resolvers = append(resolvers, &favoriteResolver{favorite: fav, root: r})
	}

	return resolvers, nil
}

func (r *Resolver) GetMyFavoritedActivityIds(ctx context.Context) ([]string, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, r.classify(err)
	}

	ids, err := r.favorites.ActivityIDs(ctx, userID)
	if err != nil {
		return nil, r.classify(err)
	}

	return ids, nil
}

type signUpInput struct {
	Email    string
	Name     string
	Password string
}

func (r *Resolver) Register(ctx context.Context, args struct{ Input signUpInput }) (*userResolver, error) {
	user, err := r.auth.SignUp(ctx, args.Input.Email, args.Input.Name, args.Input.Password)
	if err != nil {
		return nil, r.classify(err)
	}

	return &userResolver{user: user}, nil
}

type signInInput struct {
	Email    string
	Password string
}

func (r *Resolver) Login(ctx context.Context, args struct{ Input signInInput }) (*signInResolver, error) {
	token, user, err := r.auth.SignIn(ctx, args.Input.Email, args.Input.Password)
	if err != nil {
		return nil, r.classify(err)
	}

	if w, ok := writerFor(ctx); ok {
		auth.SetCookie(w, token, r.cookieTTL)
	}

	return &signInResolver{user: user}, nil
}

func (r *Resolver) Logout(ctx context.Context) (bool, error) {
	if w, ok := writerFor(ctx); ok {
		auth.ClearCookie(w)
	}

	return true, nil
}

type createActivityInput struct {
	Name        string
	City        string
	Price       int32
	Description string
}

func (r *Resolver) CreateActivity(ctx context.Context, args struct{ Input createActivityInput }) (*activityResolver, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, r.classify(err)
	}

	activity, err := r.activities.Create(ctx, userID, &store.Activity{
		Name:        args.Input.Name,
		City:        args.Input.City,
		Price:       int64(args.Input.Price),
		Description: args.Input.Description,
	})

	if err != nil {
		return nil, r.classify(err)
	}

	return &activityResolver{activity: activity, root: r}, nil
}

func (r *Resolver) DeleteActivity(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return false, r.classify(err)
	}

	if err := r.activities.Delete(ctx, userID, string(args.ID)); err != nil {
		return false, r.classify(err)
	}

	return true, nil
}

func (r *Resolver) ToggleFavorite(ctx context.Context, args struct{ ActivityID graphql.ID }) (bool, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return false, r.classify(err)
	}

	added, err := r.favorites.Toggle(ctx, userID, string(args.ActivityID))
	if err != nil {
		return false, r.classify(err)
	}

	return added, nil
}

func (r *Resolver) ReorderFavorites(ctx context.Context, args struct{ ActivityIDs []string }) ([]*favoriteResolver, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, r.classify(err)
	}

	favs, err := r.favorites.Reorder(ctx, userID, args.ActivityIDs)
	if err != nil {
		return nil, r.classify(err)
	}

	resolvers := make([]*favoriteResolver, 0, len(favs))
	for _, fav := range favs {
		resolvers = append(resolvers, &favoriteResolver{favorite: fav, root: r})
	}

	return resolvers, nil
}
