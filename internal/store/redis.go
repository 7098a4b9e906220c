package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/integrador/internal/config"
	"github.com/MKhiriev/integrador/models"
	"github.com/redis/go-redis/v9"
)

// incrementScript counts a hit and starts the expiry on the first hit of a
// window. It returns {count, pttl in milliseconds}.
var incrementScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisRateLimitStore is a [RateLimitStore] shared by every instance pointed
// at the same Redis server. Counter updates run as one Lua script so the
// increment and the expiry are atomic.
type RedisRateLimitStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisClient opens a client for the configured Redis server.
func NewRedisClient(cfg config.Redis) redis.UniversalClient {
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Address},
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisRateLimitStore returns a store keeping counters under prefix.
func NewRedisRateLimitStore(client redis.UniversalClient, prefix string) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client, prefix: prefix}
}

func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (models.RateLimitCounter, error) {
	if window <= 0 {
		return models.RateLimitCounter{}, ErrInvalidWindow
	}

	windowMs := window.Milliseconds()
	if windowMs < 1 {
		windowMs = 1
	}

	values, err := incrementScript.Run(ctx, s.client, []string{s.prefix + key}, windowMs).Int64Slice()
	if err != nil {
		return models.RateLimitCounter{}, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}
	if len(values) != 2 {
		return models.RateLimitCounter{}, fmt.Errorf("%w: unexpected script reply %v", ErrCounterUnavailable, values)
	}

	return models.RateLimitCounter{
		Count:      values[0],
		ResetAfter: time.Duration(values[1]) * time.Millisecond,
	}, nil
}

func (s *RedisRateLimitStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}
	return nil
}

// Ping checks that the Redis server answers.
func (s *RedisRateLimitStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}
	return nil
}

func (s *RedisRateLimitStore) Close() error {
	return s.client.Close()
}
