package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/miendev/mongo-identity/internal/config"
	"github.com/miendev/mongo-identity/internal/logger"
	"github.com/miendev/mongo-identity/mongostore"
)

// Bootstrap binary: connects to the document store and performs the one-time
// schema setup (index creation) the stores rely on. Run it before any
// consuming process constructs a store.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conn, err := mongostore.NewConnection(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatal("failed to connect to document store", "error", err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}()

	if err := conn.EnsureIndexes(ctx, cfg.Mongo.UsersCollection, cfg.Mongo.RolesCollection); err != nil {
		logger.Fatal("failed to ensure indexes", "error", err)
	}

	logger.Info("identity store indexes ensured",
		"database", cfg.Mongo.Database,
		"users_collection", cfg.Mongo.UsersCollection,
		"roles_collection", cfg.Mongo.RolesCollection)
}
