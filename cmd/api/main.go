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

	"github.com/timmy/calsnap/internal/api"
	"github.com/timmy/calsnap/internal/api/middleware"
	"github.com/timmy/calsnap/internal/config"
	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/logger"
	"github.com/timmy/calsnap/internal/repository"
	"github.com/timmy/calsnap/internal/scheduler"
	"github.com/timmy/calsnap/internal/service"
	"github.com/timmy/calsnap/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	log := logger.NewFromEnv(nil)
	logger.SetDefaultLogger(log)
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	loc := cfg.Session.Location()
	defaults := domain.Session{
		UserID:       cfg.Session.DefaultUserID,
		GoalCalories: cfg.Session.DefaultGoalCalories,
	}
	if err := defaults.Validate(); err != nil {
		logger.Warn("Invalid session defaults, using built-in ones: %v", err)
		defaults = *domain.DefaultSession()
	}

	mealRepo := repository.NewMealRepository(db)
	sessionRepo := repository.NewSessionRepository(db, defaults)
	profileRepo := repository.NewProfileRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Photos are kept only when a bucket endpoint is configured
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled() {
		s3Storage, err := storage.NewStorage(&cfg.Storage, api.ImagePath)
		if err != nil {
			logger.Fatal("Failed to initialize storage: %v", err)
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			logger.Fatal("Failed to ensure storage bucket: %v", err)
		}
		objectStorage = s3Storage
		logger.Info("Photo storage enabled: endpoint=%s, bucket=%s", cfg.Storage.Endpoint, cfg.Storage.Bucket)
	} else {
		logger.Info("Photo storage disabled: meal photos are not kept")
	}

	gateway, err := service.NewGateway(&service.VLMConfig{
		Provider:  cfg.VLM.Provider,
		Model:     cfg.VLM.Model,
		APIKey:    cfg.VLM.APIKey,
		BaseURL:   cfg.VLM.BaseURL,
		MaxTokens: cfg.VLM.MaxTokens,
		Timeout:   cfg.VLM.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize model gateway: %v", err)
	}
	if cfg.VLM.APIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; photo analysis will fail")
	}

	mealService := service.NewMealService(
		gateway,
		mealRepo,
		sessionRepo,
		summaryRepo,
		objectStorage,
		log,
		&service.MealServiceConfig{Location: loc},
	)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(ctx, mealService, cfg.Scheduler.SnapshotSpec, loc)
		if err := sched.Start(); err != nil {
			logger.Fatal("Failed to start scheduler: %v", err)
		}
	}

	router := api.SetupRouter(&api.Services{
		Meals:    mealService,
		Sessions: service.NewSessionService(sessionRepo),
		Profiles: service.NewProfileService(profileRepo, sessionRepo, mealRepo),
		Feed:     service.NewCommunityFeed(),
		Model:    gateway.Model(),
		Photos:   objectStorage != nil,
	}, &api.RouterConfig{
		Mode:         cfg.Server.Mode,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
	}, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting API server: port=%d, mode=%s, model=%s", cfg.Server.Port, cfg.Server.Mode, gateway.Model())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server exited")
}
