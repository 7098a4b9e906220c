// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// package sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key, issuer and a positive duration are required", ErrInvalidAppConfigs)
	}
	if cfg.App.CookieName == "" {
		return fmt.Errorf("%w: empty cookie name", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.BodyLimit <= 0 {
		return fmt.Errorf("%w: address and a positive body limit are required", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidServerConfigs)
	}

	if cfg.RateLimit.Max <= 0 || cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: quota and window must be positive", ErrInvalidRateLimitConfigs)
	}
	switch cfg.RateLimit.Backend {
	case RateLimitBackendMemory:
	case RateLimitBackendRedis:
		if cfg.RateLimit.Redis.Address == "" {
			return fmt.Errorf("%w: redis backend without address", ErrInvalidRateLimitConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidRateLimitConfigs, cfg.RateLimit.Backend)
	}

	if len(cfg.CORS.AllowedOrigins) == 0 || slices.Contains(cfg.CORS.AllowedOrigins, "") {
		return fmt.Errorf("%w: allowed origins must be non-empty", ErrInvalidCORSConfigs)
	}

	return nil
}
