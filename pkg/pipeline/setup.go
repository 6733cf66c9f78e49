package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/banner"
	"github.com/mcbanners/banners/pkg/cache"
	"github.com/mcbanners/banners/pkg/config"
	"github.com/mcbanners/banners/pkg/httputil"
	"github.com/mcbanners/banners/pkg/integrations"
	"github.com/mcbanners/banners/pkg/saved"
	"github.com/mcbanners/banners/pkg/service"
)

// Setup wires a runner from cfg: entity cache, upstream clients,
// normalization services, resolver and saved-banner store. Close the runner
// to release the cache and store connections.
func Setup(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Runner, error) {
	if logger == nil {
		logger = log.Default()
	}

	c, err := OpenCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		c.Close()
		return nil, err
	}

	shared, perBackend := UpstreamOptions(cfg.Upstream, logger)
	clients := service.NewClients(service.Credentials{
		OreAPIKey:        cfg.Upstream.OreAPIKey,
		CurseForgeAPIKey: cfg.Upstream.CurseForgeAPIKey,
		BuiltByBitToken:  cfg.Upstream.BuiltByBitToken,
	}, shared, perBackend)

	registry := service.NewRegistryFromClients(clients, logger)
	svc := service.New(service.Config{
		Registry:  registry,
		Pinger:    clients.Pinger(logger),
		Cache:     c,
		Keyer:     cache.NewScopedKeyer(cfg.Cache.Prefix),
		EntityTTL: cfg.Cache.EntityTTL,
		ServerTTL: cfg.Cache.ServerTTL,
		Logger:    logger,
	})

	r := NewRunner(banner.NewResolver(svc, logger), saved.NewService(store), logger)
	r.closers = []io.Closer{c}

	logger.Debug("pipeline ready",
		"cache", cfg.Cache.Driver,
		"store", cfg.Store.Driver,
		"backends", len(registry.Backends()))
	return r, nil
}

// OpenCache creates the entity cache selected by cfg.Driver.
func OpenCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Driver {
	case "", "memory":
		mc := cache.NewMemoryCache()
		mc.StartSweeper(cfg.SweepInterval)
		return mc, nil
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		fc, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		return fc, nil
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// OpenStore creates the saved-banner store selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (saved.Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return saved.NewMemoryStore(), nil
	case "mongo":
		ms, err := saved.NewMongoStore(ctx, saved.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// UpstreamOptions converts cfg into client options shared by every backend,
// plus per-backend base URL overrides keyed by backend name.
func UpstreamOptions(cfg config.UpstreamConfig, logger *log.Logger) ([]integrations.Option, map[string][]integrations.Option) {
	shared := []integrations.Option{
		integrations.WithTimeout(cfg.Timeout),
		integrations.WithRateLimit(cfg.Rate, cfg.Burst),
		integrations.WithRetry(httputil.Policy{Attempts: cfg.Attempts, Delay: cfg.RetryDelay}),
		integrations.WithMaxImageSize(cfg.MaxImageBytes),
		integrations.WithLogger(logger),
	}
	perBackend := make(map[string][]integrations.Option, len(cfg.BaseURLs))
	for name, u := range cfg.BaseURLs {
		perBackend[name] = append(perBackend[name], integrations.WithBaseURL(u))
	}
	return shared, perBackend
}
