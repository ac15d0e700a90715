package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`
	LogFile   string `env:"LOG_FILE"`

	// Concurrency bounds the number of aircraft enriched in parallel.
	Concurrency int `env:"ENRICH_CONCURRENCY, default=4"`

	OpenSky OpenSkyConfig
	Cache   CacheConfig
	Redis   RedisConfig
}

type OpenSkyConfig struct {
	BaseURL      string        `env:"OPENSKY_BASE_URL,      default=https://opensky-network.org/api"`
	TokenURL     string        `env:"OPENSKY_TOKEN_URL"`
	ClientID     string        `env:"OPENSKY_CLIENT_ID"`
	ClientSecret string        `env:"OPENSKY_CLIENT_SECRET"`
	Username     string        `env:"OPENSKY_USERNAME"`
	Password     string        `env:"OPENSKY_PASSWORD"`
	Timeout      time.Duration `env:"OPENSKY_TIMEOUT,       default=10s"`
	RateInterval time.Duration `env:"OPENSKY_RATE_INTERVAL, default=200ms"`
	RateBurst    int           `env:"OPENSKY_RATE_BURST,    default=4"`
}

// OAuth reports whether client credentials are configured.
func (c OpenSkyConfig) OAuth() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// CacheConfig controls the upstream lookup cache. A zero TTL disables it.
type CacheConfig struct {
	TTL  time.Duration `env:"CACHE_TTL,  default=30s"`
	Size int           `env:"CACHE_SIZE, default=1024"`
}

// RedisConfig selects a shared Redis cache instead of the in-process one.
// Empty Addr leaves Redis off.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("ENRICH_CONCURRENCY must be at least 1, got %d", c.Concurrency)
	}
	if c.OpenSky.Timeout <= 0 {
		return fmt.Errorf("OPENSKY_TIMEOUT must be positive, got %s", c.OpenSky.Timeout)
	}
	if c.OpenSky.RateInterval < 0 {
		return fmt.Errorf("OPENSKY_RATE_INTERVAL must not be negative, got %s", c.OpenSky.RateInterval)
	}
	if (c.OpenSky.ClientID == "") != (c.OpenSky.ClientSecret == "") {
		return fmt.Errorf("OPENSKY_CLIENT_ID and OPENSKY_CLIENT_SECRET must be set together")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}
