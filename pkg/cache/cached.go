package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mcbanners/banners/pkg/observability"
)

// Cached returns the value stored under key, or calls compute and stores
// its result. Failed computations are never stored, so a later call retries
// upstream. Cache backend failures degrade to a direct compute.
func Cached[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func(context.Context) (*T, error)) (*T, error) {
	hooks := observability.Cache()

	if c != nil {
		data, hit, err := c.Get(ctx, key)
		switch {
		case err != nil:
			hooks.OnCacheSkip(ctx, key, err)
		case hit:
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				hooks.OnCacheHit(ctx, key)
				return &v, nil
			}
			_ = c.Delete(ctx, key)
			hooks.OnCacheMiss(ctx, key)
		default:
			hooks.OnCacheMiss(ctx, key)
		}
	}

	v, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil || v == nil {
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		hooks.OnCacheSkip(ctx, key, err)
		return v, nil
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		hooks.OnCacheSkip(ctx, key, err)
		return v, nil
	}
	hooks.OnCacheSet(ctx, key, len(data))
	return v, nil
}
