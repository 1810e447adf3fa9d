package redis

import (
	"context"
	"encoding"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/cache"
)

// Cache is the Redis-backed cache.Cache used for company profiles.
type Cache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func New(opts cache.Options) *Cache {
	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = cache.DefaultOptions().DefaultTTL
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.RedisURL,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}),
		defaultTTL: ttl,
	}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	var payload interface{}
	switch v := value.(type) {
	case string, []byte:
		payload = v
	case encoding.BinaryMarshaler:
		data, err := v.MarshalBinary()
		if err != nil {
			return err
		}
		payload = data
	default:
		return cache.ErrInvalidValue
	}

	return c.client.Set(ctx, key, payload, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return cache.ErrNotFound
	}
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case *string:
		*v = string(data)
	case *[]byte:
		*v = data
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(data)
	default:
		return cache.ErrInvalidValue
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
