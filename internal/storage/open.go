package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rts-backend/internal/config"
	"rts-backend/internal/db"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Opened is a ready backend plus the hook that releases it.
type Opened struct {
	Store   Store
	Watcher Watcher
	Close   func() error
}

// Open connects the backend named by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Opened, error) {
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("storage: memory backend, catalog changes are lost on restart")
		return &Opened{Store: NewMemory(), Close: noop}, nil

	case config.BackendFile:
		fs, err := NewFile(cfg.FileDir)
		if err != nil {
			return nil, fmt.Errorf("file storage: %w", err)
		}
		log.Info("storage: file backend", slog.String("dir", cfg.FileDir))
		return &Opened{Store: fs, Watcher: fs, Close: noop}, nil

	case config.BackendRedis:
		var rs *RedisStore
		if cfg.RedisURL != "" {
			var err error
			rs, err = NewRedisFromURL(cfg.RedisURL)
			if err != nil {
				return nil, fmt.Errorf("redis url: %w", err)
			}
		} else {
			rs = NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info("storage: redis connected")
		return &Opened{Store: rs, Close: rs.Close}, nil

	case config.BackendMongo:
		client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := db.EnsureIndexes(ctx, cols); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info("storage: mongo connected", slog.String("db", cfg.MongoDB))
		closeFn := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		}
		return &Opened{Store: NewMongo(cols.KV), Close: closeFn}, nil

	case config.BackendSQLite, config.BackendPostgres:
		dialector := sqlite.Open(cfg.SQLiteDSN)
		if cfg.StorageBackend == config.BackendPostgres {
			dialector = postgres.Open(cfg.PostgresDSN)
		}
		gdb, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return nil, fmt.Errorf("%s open: %w", cfg.StorageBackend, err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("%s handle: %w", cfg.StorageBackend, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s ping: %w", cfg.StorageBackend, err)
		}
		ss, err := NewSQL(gdb)
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s migrate: %w", cfg.StorageBackend, err)
		}
		log.Info("storage: sql connected", slog.String("driver", cfg.StorageBackend))
		return &Opened{Store: ss, Close: sqlDB.Close}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
