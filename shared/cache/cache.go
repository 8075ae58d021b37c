package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"saleema/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	clearBatchSize        = 100
)

// Nil is returned by Get on a cache miss.
const Nil = redis.Nil

// RedisCache stores JSON values. Strings are stored raw so counters and
// tokens stay readable from redis-cli.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) error
	Get(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	// Clear unlinks every key matching the glob pattern.
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// traced runs op inside a cache span tagged with key.
func (cache *redisCache) traced(ctx context.Context, operation, key string, op func(ctx context.Context) error) error {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+operation)
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	err := op(ctx)
	if err != nil && err != Nil { //nolint:errorlint
		scope.TraceError(err)
	}

	return err
}

func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) error {
	return cache.traced(ctx, "Save", key, func(ctx context.Context) error {
		payload, err := encode(value)
		if err != nil {
			return err
		}

		if err := cache.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
			return fmt.Errorf("failed to set cache value: %w", err)
		}

		log.Debug().Str("key", key).Int("ttl_seconds", duration).Msg("cache saved")

		return nil
	})
}

func (cache *redisCache) Get(ctx context.Context, key string, value any) error {
	return cache.traced(ctx, "Get", key, func(ctx context.Context) error {
		raw, err := cache.client.Get(ctx, key).Result()
		if err == Nil { //nolint:errorlint
			return Nil
		}

		if err != nil {
			return fmt.Errorf("failed to get cache value: %w", err)
		}

		return decode(raw, value)
	})
}

func (cache *redisCache) Delete(ctx context.Context, key string) error {
	return cache.traced(ctx, "Delete", key, func(ctx context.Context) error {
		if err := cache.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete cache value: %w", err)
		}

		return nil
	})
}

func (cache *redisCache) Clear(ctx context.Context, pattern string) error {
	return cache.traced(ctx, "Clear", pattern, func(ctx context.Context) error {
		iter := cache.client.Scan(ctx, 0, pattern, clearBatchSize).Iterator()
		batch := make([]string, 0, clearBatchSize)

		flush := func() error {
			if len(batch) == 0 {
				return nil
			}

			if err := cache.client.Unlink(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to clear cache values: %w", err)
			}

			batch = batch[:0]

			return nil
		}

		for iter.Next(ctx) {
			batch = append(batch, iter.Val())

			if len(batch) == clearBatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		return flush()
	})
}

func encode(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return string(payload), nil
}

func decode(raw string, value any) error {
	if s, ok := value.(*string); ok {
		*s = raw

		return nil
	}

	if err := json.Unmarshal([]byte(raw), value); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}
