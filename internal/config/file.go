package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of a config file. The same structure is
// read from JSON and from YAML.
type fileConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		CookieName    string   `json:"cookie_name" yaml:"cookie_name"`
		CookieSecret  string   `json:"cookie_secret" yaml:"cookie_secret"`
		Version       string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
		BodyLimit       int64    `json:"body_limit" yaml:"body_limit"`
		TrustProxy      bool     `json:"trust_proxy" yaml:"trust_proxy"`
	} `json:"server" yaml:"server"`

	RateLimit struct {
		Max       int      `json:"max" yaml:"max"`
		Window    Duration `json:"window" yaml:"window"`
		Backend   string   `json:"backend" yaml:"backend"`
		KeyPrefix string   `json:"key_prefix" yaml:"key_prefix"`
		Redis     struct {
			Address  string `json:"address" yaml:"address"`
			Password string `json:"password" yaml:"password"`
			DB       int    `json:"db" yaml:"db"`
		} `json:"redis" yaml:"redis"`
	} `json:"rate_limit" yaml:"rate_limit"`

	CORS struct {
		AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
		MaxAge         Duration `json:"max_age" yaml:"max_age"`
	} `json:"cors" yaml:"cors"`

	Log struct {
		Level string `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`
}

// parseFile reads the config file at path. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  fileCfg.App.TokenSignKey,
			TokenIssuer:   fileCfg.App.TokenIssuer,
			TokenDuration: time.Duration(fileCfg.App.TokenDuration),
			CookieName:    fileCfg.App.CookieName,
			CookieSecret:  fileCfg.App.CookieSecret,
			Version:       fileCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:     fileCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(fileCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fileCfg.Server.ShutdownTimeout),
			BodyLimit:       fileCfg.Server.BodyLimit,
			TrustProxy:      fileCfg.Server.TrustProxy,
		},
		RateLimit: RateLimit{
			Max:       fileCfg.RateLimit.Max,
			Window:    time.Duration(fileCfg.RateLimit.Window),
			Backend:   fileCfg.RateLimit.Backend,
			KeyPrefix: fileCfg.RateLimit.KeyPrefix,
			Redis: Redis{
				Address:  fileCfg.RateLimit.Redis.Address,
				Password: fileCfg.RateLimit.Redis.Password,
				DB:       fileCfg.RateLimit.Redis.DB,
			},
		},
		CORS: CORS{
			AllowedOrigins: fileCfg.CORS.AllowedOrigins,
			MaxAge:         time.Duration(fileCfg.CORS.MaxAge),
		},
		Log: Log{Level: fileCfg.Log.Level},
	}, nil
}

// Duration is a wrapper around time.Duration that supports unmarshaling from
// strings like "1h", "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var nanos int64
	if err := value.Decode(&nanos); err == nil {
		*d = Duration(time.Duration(nanos))
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
