// Package server wires the GraphQL API onto an HTTP router.
package server

import (
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/escapade-app/escapade/auth"
	"github.com/escapade-app/escapade/ratelimit"
	gqlschema "github.com/escapade-app/escapade/server/graphql"
	"github.com/escapade-app/escapade/server/resolvers"
	"github.com/escapade-app/escapade/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"
)

// GraphqlHandler is the universal handler for all GraphQL queries and
// mutations, bound to POST. Each request gets a fresh user loader and a
// handle on the response writer for cookie-setting resolvers.
func GraphqlHandler(resolver *resolvers.Resolver, userService *users.Service) gin.HandlerFunc {
	schema := graphql.MustParseSchema(gqlschema.Schema, resolver)
	h := &relay.Handler{Schema: schema}

	return func(c *gin.Context) {
		ctx := resolvers.WithWriter(c.Request.Context(), c.Writer)
		ctx = users.WithLoader(ctx, users.NewLoader(userService))

		h.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	}
}

type Options struct {
	Resolver    *resolvers.Resolver
	Users       *users.Service
	Auth        *auth.Service
	Limiter     ratelimit.Limiter
	Log         *zap.SugaredLogger
	Playground  bool
	CORSOrigins []string
}

func New(opts Options) *gin.Engine {
	router := gin.Default()

	if len(opts.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = opts.CORSOrigins
		corsConfig.AllowCredentials = true
		router.Use(cors.New(corsConfig))
	} else {
		router.Use(cors.Default())
	}

	if opts.Limiter != nil {
		router.Use(ratelimit.Middleware(opts.Limiter, opts.Log))
	}

	router.Use(auth.Middleware(opts.Auth))

	router.POST("/graphql", GraphqlHandler(opts.Resolver, opts.Users))

	if opts.Playground {
		router.GET("/", func(c *gin.Context) {
			playground.Handler("GraphQL", "/graphql").ServeHTTP(c.Writer, c.Request)
		})
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
