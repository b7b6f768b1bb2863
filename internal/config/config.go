// Package config loads server and CLI settings from an optional file,
// LUMBERTRACE_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "LUMBERTRACE"

const (
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type AppConfig struct {
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
}

// IsDevelopment reports whether pretty logging and gin debug mode apply.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type StorageConfig struct {
	Driver      string         `mapstructure:"driver"`
	SeedOnEmpty bool           `mapstructure:"seed_on_empty"`
	Badger      BadgerConfig   `mapstructure:"badger"`
	Postgres    PostgresConfig `mapstructure:"postgres"`
}

type BadgerConfig struct {
	Path       string        `mapstructure:"path"`
	InMemory   bool          `mapstructure:"in_memory"`
	GCInterval time.Duration `mapstructure:"gc_interval"`
}

type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type AuthConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	Operator     string        `mapstructure:"operator"`
	PasswordHash string        `mapstructure:"password_hash"`
}

type HTTPConfig struct {
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// RateLimitConfig limits requests per client IP. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type TracingConfig struct {
	Stdout bool `mapstructure:"stdout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")

	v.SetDefault("storage.driver", DriverBadger)
	v.SetDefault("storage.seed_on_empty", true)
	v.SetDefault("storage.badger.path", "data/lumbertrace")
	v.SetDefault("storage.badger.in_memory", false)
	v.SetDefault("storage.badger.gc_interval", 10*time.Minute)
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.max_conns", 10)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("auth.operator", "operator")
	v.SetDefault("auth.password_hash", "")

	v.SetDefault("http.rate_limit.rps", 20.0)
	v.SetDefault("http.rate_limit.burst", 40)
	v.SetDefault("http.cors.allowed_origins", []string{"*"})

	v.SetDefault("tracing.stdout", false)
}

// Load reads configuration. path may be empty, in which case only the
// environment and defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverBadger:
		if !c.Storage.Badger.InMemory && c.Storage.Badger.Path == "" {
			errs = append(errs, errors.New("storage.badger.path is required unless in_memory is set"))
		}
	case DriverPostgres:
		if c.Storage.Postgres.DSN == "" {
			errs = append(errs, errors.New("storage.postgres.dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port %d out of range", c.App.Port))
	}

	if c.Auth.Enabled {
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("auth.jwt_secret is required when auth is enabled"))
		}
		if c.Auth.PasswordHash == "" {
			errs = append(errs, errors.New("auth.password_hash is required when auth is enabled"))
		}
	}

	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
