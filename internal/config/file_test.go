package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseFile_JSON(t *testing.T) {
	// Arrange
	p := writeConfigFile(t, "config.json", `{
		"app": {
			"token_sign_key": "jwt_secret",
			"token_issuer": "test_issuer",
			"token_duration": "1h",
			"cookie_secret": "cookie_secret"
		},
		"server": {
			"http_address": "localhost:8080",
			"request_timeout": "30s",
			"body_limit": 512,
			"trust_proxy": true
		},
		"rate_limit": {
			"max": 5,
			"window": "2s",
			"backend": "redis",
			"redis": { "address": "localhost:6379", "db": 1 }
		},
		"cors": { "allowed_origins": ["https://app.example"] },
		"log": { "level": "error" }
	}`)

	// Act
	cfg, err := parseFile(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "cookie_secret", cfg.App.CookieSecret)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(512), cfg.Server.BodyLimit)
	assert.True(t, cfg.Server.TrustProxy)

	assert.Equal(t, 5, cfg.RateLimit.Max)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, RateLimitBackendRedis, cfg.RateLimit.Backend)
	assert.Equal(t, Redis{Address: "localhost:6379", DB: 1}, cfg.RateLimit.Redis)

	assert.Equal(t, []string{"https://app.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Empty(t, cfg.ConfigFilePath)
}

func TestParseFile_YAML(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.YML"} {
		t.Run(name, func(t *testing.T) {
			p := writeConfigFile(t, name, `
app:
  token_sign_key: yaml_secret
  token_duration: 90m
server:
  http_address: 127.0.0.1:9000
  shutdown_timeout: 1000000000
rate_limit:
  max: 7
  window: 1m
cors:
  allowed_origins:
    - "*"
`)

			cfg, err := parseFile(p)

			require.NoError(t, err)
			assert.Equal(t, "yaml_secret", cfg.App.TokenSignKey)
			assert.Equal(t, 90*time.Minute, cfg.App.TokenDuration)
			assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
			assert.Equal(t, time.Second, cfg.Server.ShutdownTimeout)
			assert.Equal(t, 7, cfg.RateLimit.Max)
			assert.Equal(t, time.Minute, cfg.RateLimit.Window)
			assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		})
	}
}

func TestParseFile_FileNotFound(t *testing.T) {
	cfg, err := parseFile("definitely-does-not-exist.json")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a config file")
}

func TestParseFile_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantMsg string
	}{
		{"invalid json", "bad.json", `{ this is not json }`, "error decoding json configs"},
		{"invalid json duration", "bad.json", `{"app": {"token_duration": "not-a-duration"}}`, "error decoding json configs"},
		{"invalid json duration type", "bad.json", `{"app": {"token_duration": true}}`, "error decoding json configs"},
		{"invalid yaml", "bad.yaml", "app: [unclosed", "error decoding yaml configs"},
		{"invalid yaml duration", "bad.yaml", "app:\n  token_duration: later\n", "error decoding yaml configs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFile(writeConfigFile(t, tt.file, tt.body))

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseFile_EmptyObject(t *testing.T) {
	cfg, err := parseFile(writeConfigFile(t, "empty.json", `{}`))

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
