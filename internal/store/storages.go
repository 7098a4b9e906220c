package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/integrador/internal/config"
	"github.com/MKhiriev/integrador/internal/logger"
)

// Storages groups every store the services depend on.
type Storages struct {
	RateLimitStore RateLimitStore
}

// NewStorages builds the stores selected by cfg. The Redis backend is pinged
// once so a misconfigured server fails at startup rather than on the first
// request.
func NewStorages(ctx context.Context, cfg config.RateLimit, log *logger.Logger) (*Storages, error) {
	switch cfg.Backend {
	case config.RateLimitBackendMemory, "":
		log.Info().Msg("using in-memory rate limit store")
		return &Storages{RateLimitStore: NewMemoryRateLimitStore(nil)}, nil

	case config.RateLimitBackendRedis:
		redisStore := NewRedisRateLimitStore(NewRedisClient(cfg.Redis), cfg.KeyPrefix)
		if err := redisStore.Ping(ctx); err != nil {
			_ = redisStore.Close()
			return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.Redis.Address, err)
		}
		log.Info().Str("address", cfg.Redis.Address).Msg("using redis rate limit store")
		return &Storages{RateLimitStore: redisStore}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Close releases every store.
func (s *Storages) Close() error {
	if s == nil || s.RateLimitStore == nil {
		return nil
	}
	return s.RateLimitStore.Close()
}
