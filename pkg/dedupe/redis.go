package dedupe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "landing:lead:"

// RedisGuard shares dedupe state between instances.
type RedisGuard struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisGuard wraps an existing client.
func NewRedisGuard(client redis.UniversalClient, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return client, nil
}

func (g *RedisGuard) FirstSeen(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, keyPrefix+key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("error recording lead key: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Forget(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("error forgetting lead key: %w", err)
	}
	return nil
}
