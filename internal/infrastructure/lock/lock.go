// Package lock provides the cross-process lock used to serialize order
// creation per fingerprint.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another holder is left alone.
// KEYS[1] = lock key
// ARGV[1] = owner token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ application.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, logger: logger}
}

// NewRedisClient builds a client from config and checks it answers.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return noop, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return noop, false, nil
	}

	release := func() {
		// the caller's context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Warn("failed to release lock", "key", key, "error", err)
		}
	}
	return release, true, nil
}

// NoopLocker grants every lock. Used when no Redis is configured; the
// fingerprint constraint in the store still keeps creation idempotent.
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string) (func(), bool, error) {
	return noop, true, nil
}

func noop() {}
