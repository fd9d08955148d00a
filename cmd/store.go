package main

import (
	"context"
	"fmt"
	"time"

	"electrumcrawler/adapters/leveldbstore"
	"electrumcrawler/adapters/pgstore"
	"electrumcrawler/adapters/redisstore"
	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	storePrefix = "server"
	storeTable  = "server_records"
)

// openStore connects the configured backend. The returned closer releases it.
func openStore(ctx context.Context, config *CrawlerConfig, logger log.Logger) (interfaces.Store[domain.ServerRecord], func() error, error) {
	marshal := helpers.MarshalJSON[domain.ServerRecord]
	unmarshal := helpers.UnmarshalJSON[domain.ServerRecord]

	switch config.Backend {
	case backendRedis:
		redisClient, err := redisstore.NewRedisUniversalClient(config.Redis.Addr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis client: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		level.Info(logger).Log("msg", "Connected to Redis")
		return redisstore.NewStore[domain.ServerRecord](redisClient, storePrefix, marshal, unmarshal), redisClient.Close, nil

	case backendLevelDB:
		db, err := leveldbstore.Open(config.LevelDBPath)
		if err != nil {
			return nil, nil, err
		}
		level.Info(logger).Log("msg", "Opened LevelDB", "path", config.LevelDBPath)
		return leveldbstore.NewStore[domain.ServerRecord](db, storePrefix, marshal, unmarshal), db.Close, nil

	case backendPostgres:
		db, err := pgstore.NewPostgres(config.PostgresDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := pgstore.Migrate(db, storeTable); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get postgres pool: %w", err)
		}
		level.Info(logger).Log("msg", "Connected to Postgres")
		return pgstore.NewStore[domain.ServerRecord](db, storeTable, marshal, unmarshal), sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", config.Backend)
	}
}
