package main

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/storefront/internal/config"
	"github.com/rogerio-castellano/storefront/internal/db"
	"github.com/rogerio-castellano/storefront/internal/redissvc"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"go.uber.org/zap"
)

// openStore builds the snapshot store for the configured driver. The returned func releases
// its connections.
func openStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (repo.SnapshotStore, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("memory storage selected: catalog and cart are lost on exit")
		return repo.NewInMemorySnapshotStore(), noop, nil

	case config.DriverFile:
		store, err := repo.NewFileSnapshotStore(cfg.File.Dir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using file storage", zap.String("dir", cfg.File.Dir))
		return store, noop, nil

	case config.DriverRedis:
		rdb, err := redissvc.Connect(ctx, redissvc.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis storage", zap.String("addr", cfg.Redis.Addr))
		return repo.NewRedisSnapshotStore(rdb), func() { rdb.Close() }, nil

	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx, database); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info("using postgres storage")
		return repo.NewPostgresSnapshotStore(database), func() { database.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
