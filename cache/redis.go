// Package cache holds the Redis-backed cache for derived chart payloads.
// The comparison view refetches every friend's history, so its response is
// cached per user and invalidated whenever a weight entry or friend edge for
// that user changes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	Client *redis.Client
	ctx    = context.Background()
)

func InitRedis(logger *zap.Logger) error {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}

	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	addr := fmt.Sprintf("%s:%s", redisHost, redisPort)

	Client = redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if err := Client.Ping(ctx).Err(); err != nil {
		logger.Error("redis_connection_failed",
			zap.Error(err),
			zap.String("addr", addr),
		)
		Client = nil // run uncached rather than erroring every request
		return err
	}

	logger.Info("redis_connected", zap.String("addr", addr))
	return nil
}

// ComparisonKey is the cache key for a user's friend-comparison payload.
func ComparisonKey(userID uint, window string) string {
	return fmt.Sprintf("comparison:%d:%s", userID, window)
}

func Set(key string, value interface{}, expiration time.Duration) error {
	if Client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return Client.Set(ctx, key, data, expiration).Err()
}

// Get reads key into dest; a miss is reported as an error wrapping redis.Nil.
func Get(key string, dest interface{}) error {
	if Client == nil {
		return redis.Nil
	}
	val, err := Client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// InvalidateComparisons drops every cached comparison payload. A user's new
// weight entry changes the view of everyone who friended them, and edges are
// bidirectional, so a targeted invalidation would need the reverse graph;
// the payloads are cheap to rebuild.
func InvalidateComparisons() error {
	if Client == nil {
		return nil
	}
	return deletePattern("comparison:*")
}

func deletePattern(pattern string) error {
	var cursor uint64
	for {
		keys, next, err := Client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := Client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete keys failed: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func Close() error {
	if Client != nil {
		return Client.Close()
	}
	return nil
}
