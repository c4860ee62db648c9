package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/inov8tr/placement-api/internal/cache"
	"github.com/inov8tr/placement-api/internal/config"
	"github.com/inov8tr/placement-api/internal/engine"
	"github.com/inov8tr/placement-api/internal/repository"
	"github.com/inov8tr/placement-api/internal/service"
	"github.com/inov8tr/placement-api/internal/transport/rest"
	"github.com/inov8tr/placement-api/internal/transport/ws"
)

// @title Placement Test API
// @version 1.0
// @description Adaptive English placement testing engine
// @host localhost:8080
// @BasePath /v1
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to ping Redis", zap.Error(err))
	}
	logger.Info("connected to Redis")

	// Repositories
	testRepo := repository.NewTestRepo(db)
	sectionRepo := repository.NewSectionRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	passageRepo := repository.NewPassageRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	seedRepo := repository.NewSeedRepo(db)

	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to ensure response indexes", zap.Error(err))
	}

	// Caches
	sessions := cache.NewSessionCache(rdb)
	locks := cache.NewSectionLock(rdb)

	// Engine
	seeder := engine.NewSeeder(cfg.Engine)
	pool := repository.NewContentPool(questionRepo, passageRepo)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	selector := engine.NewSelector(pool, cfg.Engine, rng)

	// Services
	authSvc := service.NewAuthService(cfg)
	surveySvc := service.NewSurveyService(surveyRepo)
	contentSvc := service.NewContentService(questionRepo, passageRepo)
	testSvc := service.NewTestService(
		testRepo, sectionRepo, responseRepo, questionRepo, passageRepo,
		surveyRepo, seedRepo, sessions, locks, seeder, selector,
		cfg.Engine, authSvc, logger,
	)

	// Proctor monitor hub (wsHub implements service.Broadcaster)
	wsHub := ws.NewHub(logger)
	testSvc.SetBroadcaster(wsHub)
	wsHandler := ws.NewHandler(wsHub, authSvc, logger)

	container := &rest.Container{
		AuthService:    authSvc,
		SurveyService:  surveySvc,
		TestService:    testSvc,
		ContentService: contentSvc,
		WSHandler:      wsHandler,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
