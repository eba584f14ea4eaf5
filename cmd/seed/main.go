package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/escapade-app/escapade/internal/config"
	"github.com/escapade-app/escapade/internal/logger"
	"github.com/escapade-app/escapade/seed"
	"github.com/escapade-app/escapade/store/mongo"
	"github.com/escapade-app/escapade/users"
)

func main() {
	cfg, err := config.FromFile("config.json")
	if err != nil {
		fmt.Println("config not found: ", err)
		os.Exit(1)
	}

	log, err := logger.New("")
	if err != nil {
		fmt.Println("failed to initialise logger: ", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := mongo.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("failed to initialise a database: %v", err)
	}
	defer st.Close(ctx)

	if err := st.Init(ctx); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	if err := seed.New(st, users.NewService(st), log).Run(ctx); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
}
