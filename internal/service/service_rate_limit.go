package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/integrador/internal/config"
	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/store"
	"github.com/MKhiriev/integrador/models"
)

// rateLimitService applies a fixed quota per window over a counter store.
type rateLimitService struct {
	store  store.RateLimitStore
	max    int
	window time.Duration
	logger *logger.Logger
}

// NewRateLimitService returns a RateLimitService allowing cfg.Max requests
// per cfg.Window for every key.
func NewRateLimitService(rateLimitStore store.RateLimitStore, cfg config.RateLimit, logger *logger.Logger) RateLimitService {
	return &rateLimitService{
		store:  rateLimitStore,
		max:    cfg.Max,
		window: cfg.Window,
		logger: logger,
	}
}

func (s *rateLimitService) Allow(ctx context.Context, key string) (models.RateLimitDecision, error) {
	counter, err := s.store.Increment(ctx, key, s.window)
	if err != nil {
		return models.RateLimitDecision{}, fmt.Errorf("error counting request: %w", err)
	}

	decision := models.RateLimitDecision{
		Allowed:    counter.Count <= int64(s.max),
		Limit:      s.max,
		Remaining:  max(s.max-int(counter.Count), 0),
		ResetAfter: counter.ResetAfter,
	}
	if !decision.Allowed {
		logger.FromContext(ctx).Warn().
			Str("client", key).
			Int64("count", counter.Count).
			Dur("reset_after", counter.ResetAfter).
			Msg("rate limit exceeded")
		return decision, &RateLimitExceededError{Decision: decision}
	}

	return decision, nil
}
