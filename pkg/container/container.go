package container

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"beetlevault-backend/internal/config"
	infracache "beetlevault-backend/internal/infrastructure/cache"
	"beetlevault-backend/internal/infrastructure/database"
	"beetlevault-backend/internal/infrastructure/storage"

	"beetlevault-backend/internal/domains/beetle"
	beetlehandler "beetlevault-backend/internal/domains/beetle/handler"
	beetlerepo "beetlevault-backend/internal/domains/beetle/repository"
	beetleservice "beetlevault-backend/internal/domains/beetle/service"
	"beetlevault-backend/internal/domains/user"
	uploadhandler "beetlevault-backend/internal/domains/upload/handler"
	userhandler "beetlevault-backend/internal/domains/user/handler"
	userrepo "beetlevault-backend/internal/domains/user/repository"
	userservice "beetlevault-backend/internal/domains/user/service"

	pkgcache "beetlevault-backend/pkg/cache"
	"beetlevault-backend/pkg/token"
)

const memorySweepInterval = time.Minute

// Container wires every dependency of the application. Built once at
// startup, torn down once at shutdown.
type Container struct {
	Config *config.Config

	DB     *database.PostgresDB
	Cache  pkgcache.Cache
	Tokens *token.Manager

	UserRepository   user.Repository
	BeetleRepository beetle.Repository

	UserService   user.Service
	BeetleService beetle.Service

	UserHandler   *userhandler.UserHandler
	BeetleHandler *beetlehandler.BeetleHandler
	PublicHandler *beetlehandler.PublicHandler
	UploadHandler *uploadhandler.UploadHandler

	redis  *infracache.RedisCache
	memory *pkgcache.Memory
}

// New builds the full dependency graph. Postgres and MinIO are required;
// Redis degrades to the in-process cache when unreachable.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, err
	}

	c.Cache = c.connectCache(ctx, cfg)
	c.Tokens = token.NewManager(cfg.Session.Secret)

	c.UserRepository = userrepo.NewPostgresRepository(c.DB.Pool)
	c.BeetleRepository = beetlerepo.NewPostgresRepository(c.DB.Pool)

	c.UserService = userservice.NewUserService(c.UserRepository)
	c.BeetleService = beetleservice.NewBeetleService(c.BeetleRepository)

	c.UserHandler = userhandler.NewUserHandler(c.UserService, c.Tokens)
	c.BeetleHandler = beetlehandler.NewBeetleHandler(c.BeetleService, c.Cache)
	c.PublicHandler = beetlehandler.NewPublicHandler(c.BeetleService, c.Cache)

	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, err
	}
	c.UploadHandler = uploadhandler.NewUploadHandler(store, storage.NewImageProcessor())

	return c, nil
}

// connectCache tries Redis first and falls back to the in-process cache so
// the API stays up without a cache server.
func (c *Container) connectCache(ctx context.Context, cfg *config.Config) pkgcache.Cache {
	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process cache")
		c.memory = pkgcache.NewMemory()
		c.memory.StartSweeper(memorySweepInterval)
		return c.memory
	}

	log.Info().Str("host", cfg.Redis.Host).Msg("✅ Connected to Redis")
	c.redis = redisCache
	return redisCache
}

// Cleanup releases every held resource. Safe to call once during shutdown.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}
	if c.memory != nil {
		c.memory.Stop()
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Container cleanup complete")
}
