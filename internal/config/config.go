// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// integrador service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix  — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env        — direct environment variable name for scalar fields.
//   - envDefault — value used when the variable is unset.
type StructuredConfig struct {
	// App holds credential settings: token signing and session cookies.
	App App `envPrefix:"APP_"`

	// Server holds the listen address, timeouts and proxy trust settings.
	Server Server `envPrefix:"SERVER_"`

	// RateLimit holds the quota, the window and the counter backend.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// CORS holds the cross-origin policy.
	CORS CORS `envPrefix:"CORS_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control credential
// verification and issuance.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token and
	// validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" envDefault:"integrador"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"24h"`

	// CookieName is the name of the session cookie read by the authenticate
	// decorator when no bearer header is present.
	// Env: APP_COOKIE_NAME
	CookieName string `env:"COOKIE_NAME" envDefault:"token"`

	// CookieSecret, when set, makes the service sign session cookies with
	// HMAC-SHA256 and reject cookies whose signature does not match.
	// Env: APP_COOKIE_SECRET
	CookieSecret string `env:"COOKIE_SECRET"`

	// Version is the semantic version string advertised in the API docs.
	// Env: APP_VERSION
	Version string `env:"VERSION" envDefault:"1.0.0"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" envDefault:"0.0.0.0:8080"`

	// RequestTimeout bounds reading a request and writing its response.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// ShutdownTimeout bounds the graceful shutdown of in-flight requests.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// BodyLimit is the largest accepted request body in bytes.
	// Env: SERVER_BODY_LIMIT
	BodyLimit int64 `env:"BODY_LIMIT" envDefault:"1048576"`

	// TrustProxy makes the client identity the first X-Forwarded-For hop
	// instead of the connection's remote address.
	// Env: SERVER_TRUST_PROXY
	TrustProxy bool `env:"TRUST_PROXY"`
}

// Rate limit counter backends.
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// RateLimit holds the fixed-window quota applied to every client identity.
type RateLimit struct {
	// Max is the number of requests accepted per client per window.
	// Env: RATE_LIMIT_MAX
	Max int `env:"MAX" envDefault:"400"`

	// Window is the length of one counting window.
	// Env: RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW" envDefault:"1m"`

	// Backend selects the counter store: "memory" or "redis".
	// Env: RATE_LIMIT_BACKEND
	Backend string `env:"BACKEND" envDefault:"memory"`

	// KeyPrefix namespaces counter keys in a shared Redis instance.
	// Env: RATE_LIMIT_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"integrador:ratelimit:"`

	// Redis holds the connection settings used when Backend is "redis".
	Redis Redis `envPrefix:"REDIS_"`
}

// Redis holds connection settings for the Redis counter backend.
type Redis struct {
	// Address is the "host:port" of the Redis server.
	// Env: RATE_LIMIT_REDIS_ADDRESS
	Address string `env:"ADDRESS"`

	// Password authenticates against the Redis server.
	// Env: RATE_LIMIT_REDIS_PASSWORD
	Password string `env:"PASSWORD"`

	// DB is the logical database index.
	// Env: RATE_LIMIT_REDIS_DB
	DB int `env:"DB"`
}

// CORS holds the cross-origin policy.
type CORS struct {
	// AllowedOrigins lists origins permitted to call the API. "*" allows any.
	// Env: CORS_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	// MaxAge is how long browsers may cache a preflight response.
	// Env: CORS_MAX_AGE
	MaxAge time.Duration `env:"MAX_AGE"`
}

// Log holds logger settings.
type Log struct {
	// Level is the minimum zerolog level that is written (e.g. "info").
	// Env: LOG_LEVEL
	Level string `env:"LEVEL" envDefault:"info"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables (with defaults)
//  2. Command-line flags
//  3. Config file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return Load(os.Args[1:])
}

// Load is [GetStructuredConfig] with an explicit argument list.
func Load(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withFile().
		build()
}
