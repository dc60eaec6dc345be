package cache

import (
	"context"
	"fmt"
	"time"
)

// Store caches resolved variant paths keyed by Key. Implementations are safe
// for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Len(ctx context.Context) (int, error)
	Stats(ctx context.Context) (map[string]any, error)
	Close(ctx context.Context) error
}

// Config selects and sizes a cache store.
type Config struct {
	Driver   string
	Capacity int
	TTL      time.Duration
	Redis    *RedisConfig
}

// RedisConfig carries connection details for the redis driver.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// Key builds the canonical cache key for one rendered lookup.
func Key(url, variant string, quality int, format string) string {
	return fmt.Sprintf("%s|%s|%d|%s", url, variant, quality, format)
}
