// Package app connects the backing stores and builds the service graph
// shared by the server and the seed command.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vibeform/internal/cache"
	"vibeform/internal/config"
	"vibeform/internal/log"
	"vibeform/internal/repository"
	"vibeform/internal/service"
	"vibeform/internal/transport/ws"
)

type App struct {
	Config *config.Config
	Mongo  *mongo.Client
	Redis  *redis.Client

	FormRepo     repository.FormRepo
	ResponseRepo repository.ResponseRepo
	UserRepo     repository.UserRepo

	SessionCache cache.SessionCache
	SummaryCache cache.SummaryCache

	AuthService     *service.AuthService
	FormService     *service.FormService
	ResponseService *service.ResponseService
	SummaryService  *service.SummaryService
	FillService     *service.FillService

	Hub *ws.Hub
}

// New connects to MongoDB and Redis and wires every service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Info("Connected to MongoDB")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	log.Info("Connected to Redis")

	db := mongoClient.Database(cfg.MongoDB)
	a := &App{
		Config:       cfg,
		Mongo:        mongoClient,
		Redis:        rdb,
		FormRepo:     repository.NewFormRepo(db),
		ResponseRepo: repository.NewResponseRepo(db),
		UserRepo:     repository.NewUserRepo(db),
		SessionCache: cache.NewSessionCache(rdb, cfg.SessionTTL),
		SummaryCache: cache.NewSummaryCache(rdb, cfg.SummaryTTL),
		Hub:          ws.NewHub(),
	}

	if err := a.UserRepo.EnsureIndexes(ctx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}

	a.AuthService = service.NewAuthService(a.UserRepo, cfg.JWTSecret, cfg.TokenTTL)
	a.FormService = service.NewFormService(a.FormRepo, a.ResponseRepo, a.SummaryCache)
	a.ResponseService = service.NewResponseService(a.FormService, a.FormRepo, a.ResponseRepo)
	a.SummaryService = service.NewSummaryService(a.FormService, a.ResponseRepo, a.SummaryCache)
	a.FillService = service.NewFillService(a.FormService, a.SessionCache, a.ResponseService)

	// Inject broadcaster (Hub implements service.Broadcaster)
	a.FillService.SetBroadcaster(a.Hub)

	return a, nil
}

// Close releases the store connections.
func (a *App) Close(ctx context.Context) {
	if err := a.Redis.Close(); err != nil {
		log.Warnf("closing Redis: %v", err)
	}
	if err := a.Mongo.Disconnect(ctx); err != nil {
		log.Warnf("closing MongoDB: %v", err)
	}
}
