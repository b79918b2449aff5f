package container

import (
	"f1grid/internal/config"
	"f1grid/internal/service"
	"f1grid/internal/service/ergast"
	"f1grid/internal/service/fallback"
	"f1grid/pkg/logger"
	"f1grid/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Services    *service.Services
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	// Initialize Redis client if Redis URL is configured. The service runs
	// uncached when Redis is missing or unreachable.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	cacheStore := service.NewCacheStore(redisClient, logger.Logger)
	remoteSource := ergast.NewService(cfg.StatsAPIURL, cfg.FetchTimeout, logger)
	fallbackSource := fallback.NewService(cfg.FallbackPath, logger)

	services := &service.Services{
		Teams: service.NewTeamService(cacheStore, remoteSource, fallbackSource, logger),
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		RedisClient: redisClient,
		Services:    services,
	}, nil
}

// GetTeamService returns the team service
func (c *Container) GetTeamService() *service.TeamService {
	return c.Services.Teams
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
