package di

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/userfeed/userfeed/cmd/userfeed/infrastructure"
	"github.com/userfeed/userfeed/internal/adapter/backend"
	"github.com/userfeed/userfeed/internal/adapter/cache"
	"github.com/userfeed/userfeed/internal/config"
	domain "github.com/userfeed/userfeed/internal/domain/user"
	"github.com/userfeed/userfeed/internal/feed"
	"github.com/userfeed/userfeed/internal/repository"
	redisclient "github.com/userfeed/userfeed/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client
	Backend     backend.Backend
	Users       repository.Repository[domain.User]
	Feed        *feed.Channel
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	b, err := backend.NewMemoryBackend(l, backend.WithDelay(cfg.Backend.Delay()))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend: %w", err)
	}

	var users repository.Repository[domain.User] = repository.NewUserRepository(b, l)

	// The read cache is opt-in; without it every fetch goes to the backend.
	var rdb *redisclient.Client
	if cfg.Redis.Enabled {
		rdb, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}

		userCache := cache.NewRedisUserCache(rdb.Client, cfg.Redis.TTL(), l)
		users = repository.NewCachedUserRepository(users, userCache, l)
	}

	return &Container{
		Config:      cfg,
		Logger:      l,
		RedisClient: rdb,
		Backend:     b,
		Users:       users,
		Feed:        feed.NewChannel(l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.Feed != nil {
		if err := c.Feed.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close update feed: %w", err))
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
