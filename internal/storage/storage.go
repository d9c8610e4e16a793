package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/diyabansal-1605/full-stack-project/internal/config"
	"github.com/redis/go-redis/v9"
)

// CredentialStore is the client-side key/value storage that survives
// restarts. Writers are not coordinated: the last write wins.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

var ErrNotFound = errors.New("key not found")

// Open returns the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (CredentialStore, error) {
	switch cfg.Backend {
	case config.StorageFile:
		return NewFileStore(cfg.Path), nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return NewRedisStore(client), nil
	case config.StorageSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
