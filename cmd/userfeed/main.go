package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/userfeed/userfeed/cmd/userfeed/di"
	"github.com/userfeed/userfeed/internal/config"
	domain "github.com/userfeed/userfeed/internal/domain/user"
	"github.com/userfeed/userfeed/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application exited with error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.NewWithConfig(logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    os.Getenv("APP_ENV"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = l.Sync()
	}()

	c, err := di.NewContainer(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			l.Warn("container close", zap.Error(err))
		}
	}()

	ctx := context.Background()

	users, err := c.Users.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch all users: %w", err)
	}
	for _, u := range users {
		fmt.Println(u)
	}

	u, err := c.Users.FetchByID(ctx, 2)
	if err != nil {
		return fmt.Errorf("fetch user 2: %w", err)
	}
	fmt.Println("by id:", u)

	sub, err := c.Feed.Subscribe(func(u domain.User) {
		fmt.Println("update:", u)
	})
	if err != nil {
		return fmt.Errorf("subscribe to feed: %w", err)
	}
	defer sub.Unsubscribe()

	if err := c.Feed.Publish(domain.User{ID: 4, Name: "David", Email: "david@mail.com"}); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	if err := c.Feed.Publish(domain.User{ID: 5, Name: "Eva", Email: "eva@mail.com"}); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}
