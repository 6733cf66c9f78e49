// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about banner rendering, cache operations, and upstream calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//		observability.SetUpstreamHooks(&myUpstreamHooks{})
//		observability.SetCacheHooks(&myCacheHooks{})
//		// ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnResolveStart(ctx, bannerType)
//	// ... resolve entity ...
//	observability.Pipeline().OnResolveComplete(ctx, bannerType, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the banner pipeline.
type PipelineHooks interface {
	// Resolve events
	OnResolveStart(ctx context.Context, bannerType string)
	OnResolveComplete(ctx context.Context, bannerType string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, key string, size int)

	// OnCacheSkip records a computed value that was not cached because it failed.
	OnCacheSkip(ctx context.Context, key string, err error)
}

// =============================================================================
// Upstream Hooks
// =============================================================================

// UpstreamHooks receives events from upstream HTTP client operations.
type UpstreamHooks interface {
	// OnRequest records an outgoing request.
	OnRequest(ctx context.Context, backend, method, url string)

	// OnResponse records a response.
	OnResponse(ctx context.Context, backend, method, url string, statusCode int, duration time.Duration)

	// OnError records a transport failure (connection error, timeout).
	OnError(ctx context.Context, backend, method, url string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnResolveStart(context.Context, string)                            {}
func (NoopPipelineHooks) OnResolveComplete(context.Context, string, time.Duration, error)    {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)         {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)        {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)    {}
func (NoopCacheHooks) OnCacheSkip(context.Context, string, error) {}

// NoopUpstreamHooks is a no-op implementation of UpstreamHooks.
type NoopUpstreamHooks struct{}

func (NoopUpstreamHooks) OnRequest(context.Context, string, string, string) {}
func (NoopUpstreamHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}
func (NoopUpstreamHooks) OnError(context.Context, string, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	upstreamHooks UpstreamHooks = NoopUpstreamHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks for the pipeline runs
// that start afterwards. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetUpstreamHooks registers custom upstream hooks.
// This should be called once at application startup before any HTTP operations.
func SetUpstreamHooks(h UpstreamHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		upstreamHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Upstream returns the registered upstream hooks.
func Upstream() UpstreamHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return upstreamHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	upstreamHooks = NoopUpstreamHooks{}
}
