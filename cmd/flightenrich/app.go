package main

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/flightcard/enrichment-service/internal/api"
	"github.com/flightcard/enrichment-service/internal/api/handler"
	"github.com/flightcard/enrichment-service/internal/core/ports"
	"github.com/flightcard/enrichment-service/internal/core/service"
	"github.com/flightcard/enrichment-service/internal/infrastructure/cache"
	rediscache "github.com/flightcard/enrichment-service/internal/infrastructure/db/redis"
	"github.com/flightcard/enrichment-service/internal/infrastructure/opensky"
	"github.com/flightcard/enrichment-service/internal/pkg/config"
)

const redisKeyPrefix = "flightenrich:"

// app holds the wired services for one process.
type app struct {
	services api.Services
	redis    *goredis.Client
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) *app {
	a := &app{}

	client := opensky.NewClient(clientOptions(cfg.OpenSky)...)
	logAuthMethod(cfg.OpenSky, log)

	var wrap func(ports.DataSource) ports.DataSource
	if store := a.newStore(ctx, cfg, log); store != nil {
		wrap = cache.Wrap(store, log)
	}
	sources := opensky.NewProvider(client, log, wrap)

	a.services = api.Services{
		Enrich: service.NewEnrichmentService(sources, cfg.Concurrency, log),
		Routes: service.NewRouteService(log),
		Nearby: service.NewNearbyService(sources, log),
	}
	return a
}

func clientOptions(c config.OpenSkyConfig) []opensky.ClientOption {
	opts := []opensky.ClientOption{
		opensky.WithBaseURL(c.BaseURL),
		opensky.WithTimeout(c.Timeout),
		opensky.WithRateLimit(c.RateInterval, c.RateBurst),
	}
	if c.OAuth() {
		opts = append(opts, opensky.WithClientCredentials(c.ClientID, c.ClientSecret, c.TokenURL))
	}
	if c.Username != "" && c.Password != "" {
		opts = append(opts, opensky.WithBasicAuth(c.Username, c.Password))
	}
	return opts
}

func logAuthMethod(c config.OpenSkyConfig, log zerolog.Logger) {
	switch {
	case c.OAuth():
		log.Info().Str("client_id", c.ClientID).Msg("opensky auth: oauth2 client credentials")
	case c.Username != "":
		log.Info().Str("username", c.Username).Msg("opensky auth: basic")
	default:
		log.Info().Msg("opensky auth: anonymous")
	}
}

// newStore picks the lookup cache: Redis when configured and reachable,
// otherwise in-process. A zero TTL disables caching.
func (a *app) newStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) ports.Cache {
	if cfg.Cache.TTL == 0 {
		return nil
	}
	if cfg.Redis.Enabled() {
		rdb, err := rediscache.Connect(ctx, rediscache.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err == nil {
			a.redis = rdb
			log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis lookup cache")
			return rediscache.NewCache(rdb, redisKeyPrefix, cfg.Cache.TTL, log)
		}
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, using in-process cache")
	}
	return cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL)
}

// pinger returns the Redis client for readiness checks, or nil.
func (a *app) pinger() handler.Pinger {
	if a.redis == nil {
		return nil
	}
	return a.redis
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
