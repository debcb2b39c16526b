package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/yatube-go/yatube/internal/config"
	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/middlewares"
	"github.com/yatube-go/yatube/pkg/cache"
	"github.com/yatube-go/yatube/pkg/db"
	"github.com/yatube-go/yatube/pkg/job"
	"github.com/yatube-go/yatube/pkg/logger"
	"github.com/yatube-go/yatube/pkg/redis"
)

const (
	groupSlugPrefix = "yatube:groups:slug"
	groupListPrefix = "yatube:groups:all"
)

// setup loads the configuration and builds the logger. The returned func
// flushes the logger and must be deferred.
func setup(c *cli.Context) (config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load(c.StringSlice("env-file")...)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	log, flush := logger.New(cfg.Log, middlewares.RequestIDExtractor())
	return cfg, log, flush, nil
}

func connectDB(ctx context.Context, cfg config.Config, log *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "database connected")
	return pool, nil
}

// migrateAll applies the application schema, then river's.
func migrateAll(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, log *slog.Logger) error {
	if err := db.Migrate(ctx, pool, repository.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	if err := job.Migrate(ctx, pool, log); err != nil {
		return fmt.Errorf("migrate jobs: %w", err)
	}
	return nil
}

// connectRedis returns nil when REDIS_URL is unset.
func connectRedis(ctx context.Context, cfg config.Config, log *slog.Logger) (goredis.UniversalClient, error) {
	if !cfg.Redis.Enabled() {
		log.InfoContext(ctx, "redis disabled, using in-memory group cache")
		return nil, nil
	}
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "redis connected")
	return client, nil
}

type groupCaches struct {
	bySlug cache.Cache[repository.Group]
	all    cache.Cache[[]repository.Group]
}

func newGroupCaches(cfg config.Cache, client goredis.UniversalClient) groupCaches {
	if client != nil {
		return groupCaches{
			bySlug: cache.NewRedis[repository.Group](client, nil, cache.RedisConfig{Prefix: groupSlugPrefix, DefaultTTL: cfg.GroupTTL}),
			all:    cache.NewRedis[[]repository.Group](client, nil, cache.RedisConfig{Prefix: groupListPrefix, DefaultTTL: cfg.GroupTTL}),
		}
	}
	return groupCaches{
		bySlug: cache.NewMemory[repository.Group](cache.MemoryConfig{DefaultTTL: cfg.GroupTTL, MaxEntries: cfg.MemoryMaxGroups}),
		all:    cache.NewMemory[[]repository.Group](cache.MemoryConfig{DefaultTTL: cfg.GroupTTL, MaxEntries: 1}),
	}
}

func (g groupCaches) Close(context.Context) error {
	return errors.Join(g.bySlug.Close(), g.all.Close())
}
