package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkpress/blog-api/internal/api"
	"github.com/inkpress/blog-api/internal/core/service"
	"github.com/inkpress/blog-api/internal/infrastructure/db/mongo"
	"github.com/inkpress/blog-api/internal/infrastructure/db/redis"
	"github.com/inkpress/blog-api/internal/infrastructure/storage"
	"github.com/inkpress/blog-api/internal/pkg/config"
	"github.com/inkpress/blog-api/pkg/logger"
)

const (
	sessionTTL   = 24 * time.Hour
	postCacheTTL = 30 * time.Second
)

func main() {
	// .env is a development convenience; real deployments set the environment.
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongo.NewUserRepository(db)
	postRepo := mongo.NewPostRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create post indexes")
	}

	covers, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare upload directory")
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, sessionTTL)
	authService := service.NewAuthService(userRepo, tokens)
	postCache := redis.NewPostCache(rdb, postCacheTTL)
	postService := service.NewPostService(postRepo, postCache, log)

	e := api.NewRouter(cfg, api.Deps{
		Auth:   authService,
		Posts:  postService,
		Tokens: tokens,
		Covers: covers,
		Mongo:  db,
		Redis:  rdb,
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
