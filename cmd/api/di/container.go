package di

import (
	"fmt"
	"time"

	"webucket-api/cmd/api/infrastructure"
	"webucket-api/internal/adapter/cache"
	gormadapter "webucket-api/internal/adapter/db/gorm"
	ginhandler "webucket-api/internal/adapter/gin/handler"
	"webucket-api/internal/adapter/gin/middleware"
	"webucket-api/internal/adapter/gin/router"
	"webucket-api/internal/adapter/repository/cached"
	"webucket-api/internal/config"
	"webucket-api/internal/usecase/auth"
	"webucket-api/internal/usecase/bucket"
	"webucket-api/internal/usecase/user"
	redisclient "webucket-api/pkg/redis"
	"webucket-api/pkg/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	AuthUC      auth.Usecase
	BucketUC    bucket.Usecase
	RateLimiter *middleware.RateLimiter
	Handlers    router.Handlers
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis client (nil when disabled)
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Initialize repositories
	var userRepo user.Repository = gormadapter.NewUserRepo(db, l)
	if rdb != nil {
		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		userRepo = cached.NewUserRepository(userRepo, userCache, l)
	}
	bucketRepo := gormadapter.NewBucketRepo(db, l)
	itemRepo := gormadapter.NewItemRepo(db, l)

	// Initialize token manager
	tokens, err := security.NewTokenManager(
		cfg.Auth.TokenSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	// Initialize use cases
	userUC := user.New(userRepo, l)
	authUC := auth.New(userRepo, tokens, l)
	bucketUC := bucket.New(bucketRepo, itemRepo, userRepo, l)

	// Initialize rate limiter
	var rateLimiter *middleware.RateLimiter
	if rdb != nil {
		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	// Initialize Gin handlers
	handlers := router.Handlers{
		Auth:   ginhandler.NewAuthHandler(authUC, l),
		User:   ginhandler.NewUserHandler(userUC, l),
		Bucket: ginhandler.NewBucketHandler(bucketUC, l),
	}

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		UserUC:      userUC,
		AuthUC:      authUC,
		BucketUC:    bucketUC,
		RateLimiter: rateLimiter,
		Handlers:    handlers,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
