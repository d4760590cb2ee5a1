package di

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"techquiz-server/internal/seed"
	"techquiz-server/internal/seed/adapter/persistence"
	"techquiz-server/internal/seed/adapter/security"
	"techquiz-server/internal/seed/config"
	"techquiz-server/internal/shared/database"
	apperrors "techquiz-server/internal/shared/errors"
	"techquiz-server/internal/shared/eventbus"
	"techquiz-server/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

const closeTimeout = 30 * time.Second

// Container owns the process-wide resources and the seed module built on them
type Container struct {
	mu sync.RWMutex
	// Configuration
	Config *config.Config
	// Logger
	Logger logger.Logger
	// Connections
	Connection  *database.Connection
	RedisClient *redis.Client
	// Module instances
	EventBus     *eventbus.MemoryBus
	SeedModule   *seed.SeedModule
	TokenService *security.JWTokenService
}

// NewContainer creates a container. A nil logger is replaced by one built from
// cfg; production environments always log JSON.
func NewContainer(cfg *config.Config, log logger.Logger) *Container {
	if log == nil {
		format := cfg.Log.Format
		if cfg.IsProduction() {
			format = "json"
		}
		log = logger.New(cfg.Log.Backend, cfg.Log.Level, format)
	}
	return &Container{
		Config: cfg,
		Logger: log,
	}
}

// Initialize connects to MongoDB, optionally to Redis, and builds the seed module
func (c *Container) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	conn, err := database.Connect(ctx, database.ConnectionConfig{
		URI:            c.Config.Mongo.URI,
		AppName:        c.Config.Mongo.AppName,
		ConnectTimeout: c.Config.Mongo.ConnectTimeout,
	}, c.Logger)
	if err != nil {
		return err
	}
	c.Connection = conn

	db, err := conn.Database(c.Config.Mongo.DatabaseName)
	if err != nil {
		return err
	}

	c.EventBus = eventbus.New(c.Logger.WithComponent("eventbus"))

	var journal *persistence.RedisSeedJournal
	if c.Config.Redis.Enabled {
		journal = c.initializeJournal(ctx)
	}

	module, err := seed.NewSeedModule(db, c.Config, c.EventBus, journal, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create seed module: %w", err)
	}
	c.SeedModule = module
	return nil
}

// initializeJournal returns nil when Redis is unreachable; seeding runs without a journal
func (c *Container) initializeJournal(ctx context.Context) *persistence.RedisSeedJournal {
	client := config.NewRedisClient(&c.Config.Redis)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warnf("Redis unavailable at %s, seed journal disabled: %v", c.Config.Redis.GetAddr(), err)
		_ = client.Close()
		return nil
	}

	c.RedisClient = client
	c.Logger.Infof("Seed journal enabled on stream %s", c.Config.Redis.Stream)
	return persistence.NewRedisSeedJournal(client, c.Config.Redis.Stream, c.Config.Redis.StreamMaxLength, c.Logger)
}

// InitializeAdmin builds the token service used by the admin API
func (c *Container) InitializeAdmin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.Config.ValidateAdmin(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	tokens, err := security.NewJWTokenService(&c.Config.Admin)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}
	c.TokenService = tokens
	return nil
}

// GetSeedModule returns the seed module instance
func (c *Container) GetSeedModule() *seed.SeedModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SeedModule
}

// HealthCheck pings MongoDB and, when enabled, Redis
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Connection == nil {
		return apperrors.NewInfrastructureError("MongoDB connection not initialized").WithComponent("mongodb")
	}
	if err := c.Connection.Ping(ctx); err != nil {
		return apperrors.NewInfrastructureError("MongoDB health check failed").WithComponent("mongodb").WithCause(err)
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Ping(ctx).Err(); err != nil {
			return apperrors.NewInfrastructureError("Redis health check failed").WithComponent("redis").WithCause(err)
		}
	}

	return nil
}

// Close releases connections in reverse order of initialization
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
		c.RedisClient = nil
	}

	if c.Connection != nil {
		if err := c.Connection.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close mongodb connection: %w", err))
		}
		c.Connection = nil
	}

	c.SeedModule = nil
	return errors.Join(errs...)
}
