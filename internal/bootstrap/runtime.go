// Package bootstrap prepares the shared runtime dependencies of the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"skillshare/internal/cache"
	"skillshare/internal/config"
	"skillshare/internal/database"
	"skillshare/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// Seed, when set, populates the database after the schema is applied.
	Seed *seed.Options
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// The returned Redis client is nil when REDIS_URL is empty or unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := cache.InitRedis(cfg.RedisURL)

	if opts.Seed != nil {
		if _, err := seed.Run(ctx, db, *opts.Seed); err != nil {
			return nil, nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return db, rdb, nil
}
