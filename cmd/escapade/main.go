package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escapade-app/escapade/activities"
	"github.com/escapade-app/escapade/auth"
	"github.com/escapade-app/escapade/favorites"
	"github.com/escapade-app/escapade/internal/config"
	"github.com/escapade-app/escapade/internal/logger"
	"github.com/escapade-app/escapade/ratelimit"
	"github.com/escapade-app/escapade/server"
	"github.com/escapade-app/escapade/server/resolvers"
	"github.com/escapade-app/escapade/store"
	"github.com/escapade-app/escapade/store/mongo"
	"github.com/escapade-app/escapade/users"
	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

func initStore(mongoURI, database string) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongo, err := mongo.New(ctx, mongoURI, database)
	if err != nil {
		return nil, err
	}

	if err := mongo.Init(ctx); err != nil {
		return nil, err
	}

	store := store.NewStatefulStore(mongo, cache.New(30*time.Minute, 1*time.Hour))
	return store, nil
}

func newLimiter(cfg *config.Ratelimit, log *zap.SugaredLogger) (ratelimit.Limiter, error) {
	if cfg == nil || cfg.Limit == 0 {
		return nil, nil
	}

	if cfg.Type == "redis" {
		return ratelimit.NewRedis(cfg.RedisURI, cfg.Limit, cfg.WindowDuration())
	}

	return ratelimit.NewMemory(cfg.Limit, cfg.WindowDuration()), nil
}

func main() {
	cfg, err := config.FromFile("config.json")
	if err != nil {
		fmt.Println("config not found: ", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Sentry)
	if err != nil {
		fmt.Println("failed to initialise logger: ", err)
		os.Exit(1)
	}

	st, err := initStore(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("failed to initialise a database: %v", err)
	}

	limiter, err := newLimiter(cfg.Ratelimit, log)
	if err != nil {
		log.Fatalf("failed to initialise a rate limiter: %v", err)
	}

	userService := users.NewService(st)
	authService := auth.NewService(userService, cfg.Auth.Secret, cfg.Auth.TTL())
	favoriteService := favorites.NewService(st, st, log)
	activityService := activities.NewService(st, favoriteService, log)

	resolver := resolvers.New(activityService, favoriteService, userService, authService, cfg.Auth.TTL(), log)

	router := server.New(server.Options{
		Resolver:    resolver,
		Users:       userService,
		Auth:        authService,
		Limiter:     limiter,
		Log:         log,
		Playground:  cfg.HTTP.Playground,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		log.Infof("listening on %v", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("failed to shut down server: %v", err)
	}

	if limiter != nil {
		limiter.Close()
	}

	st.Close(ctx)
}
