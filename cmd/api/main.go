package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/internal/server"
	"github.com/platewise/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}

	rng := service.NewLockedRand(rand.New(rand.NewSource(time.Now().UnixNano())))

	gemini := service.NewGeminiService(cfg.Gemini, logger)
	if !gemini.Configured() {
		logger.Warn("no model API key configured, recipe generation will use template fallback only")
	}

	svcs := server.Services{
		Auth:      service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.TTL),
		Profile:   service.NewProfileService(db),
		Recipes:   service.NewRecipeService(db, cfg.Dedup, logger),
		Generator: service.NewRecipeGenerator(gemini, rng, logger),
		Drafts:    service.NewDraftService(redisClient),
	}

	srv := server.New(cfg, svcs, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
