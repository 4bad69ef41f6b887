// Package repositories selects and opens the configured storage backends.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	"github.com/SscSPs/karangnongko_farm/internal/platform/config"
	"github.com/SscSPs/karangnongko_farm/internal/repositories/blob/s3"
	"github.com/SscSPs/karangnongko_farm/internal/repositories/cache/redis"
	"github.com/SscSPs/karangnongko_farm/internal/repositories/database/mongodb"
	"github.com/SscSPs/karangnongko_farm/internal/repositories/database/pgsql"
	"github.com/SscSPs/karangnongko_farm/internal/repositories/database/sqlite"
	"github.com/SscSPs/karangnongko_farm/internal/repositories/memory"
	"github.com/SscSPs/karangnongko_farm/migrations"
	"github.com/SscSPs/karangnongko_farm/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open builds the repository provider for cfg. The returned cleanup closes
// every connection that was opened and is safe to call once.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	var provider portsrepo.RepositoryProvider
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		p, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return provider, cleanup, fmt.Errorf("initialize database pool: %w", err)
		}
		closers = append(closers, func() { database.ClosePgxPool(p) })
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, migrations.FS, logger); err != nil {
			return provider, cleanup, err
		}
		pool = p
	}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		provider.SlotStore = memory.NewSlotStore()
	case config.StoreSQLite:
		store, err := sqlite.NewSlotStore(ctx, cfg.SQLitePath)
		if err != nil {
			return provider, cleanup, err
		}
		closers = append(closers, func() { _ = store.Close() })
		provider.SlotStore = store
	case config.StorePostgres:
		provider.SlotStore = pgsql.NewSlotStore(pool)
	case config.StoreRedis:
		store, err := redis.NewSlotStore(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.StoreKeyPrefix,
		})
		if err != nil {
			return provider, cleanup, err
		}
		closers = append(closers, func() { _ = store.Close() })
		provider.SlotStore = store
	case config.StoreMongo:
		store, err := mongodb.NewSlotStore(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return provider, cleanup, err
		}
		closers = append(closers, func() { _ = store.Close(context.Background()) })
		provider.SlotStore = store
	case config.StoreS3:
		store, err := s3.NewSlotStore(ctx, s3.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
			Prefix:    cfg.StoreKeyPrefix,
		})
		if err != nil {
			return provider, cleanup, err
		}
		provider.SlotStore = store
	default:
		return provider, cleanup, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if pool != nil {
		provider.UserRepo = pgsql.NewUserRepository(pool)
	}

	logger.Info("Record store ready", slog.String("driver", cfg.StoreDriver))
	return provider, cleanup, nil
}
