// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about collector runs, cache operations, and upstream calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCollectorHooks(&myCollectorHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Collector().OnCollectStart(ctx, "github", len(urls))
//	// ... collect ...
//	observability.Collector().OnCollectComplete(ctx, "github", stats, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Collector Hooks
// =============================================================================

// CollectStats summarizes one collector run.
type CollectStats struct {
	Reused  int // Fresh entries taken from the cache
	Fetched int // Entries fetched from upstream
	Skipped int // References that could not be resolved
}

// CollectorHooks receives events from the enrichment collectors.
type CollectorHooks interface {
	// OnCollectStart records the start of a collector run over n references.
	OnCollectStart(ctx context.Context, provider string, n int)

	// OnFetch records a single upstream fetch for ref.
	OnFetch(ctx context.Context, provider, ref string, duration time.Duration, err error)

	// OnCollectComplete records the end of a collector run.
	OnCollectComplete(ctx context.Context, provider string, stats CollectStats, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a read of an existing blob.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a read of a key never written.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a blob write.
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCollectorHooks is a no-op implementation of CollectorHooks.
type NoopCollectorHooks struct{}

func (NoopCollectorHooks) OnCollectStart(context.Context, string, int)                   {}
func (NoopCollectorHooks) OnFetch(context.Context, string, string, time.Duration, error) {}
func (NoopCollectorHooks) OnCollectComplete(context.Context, string, CollectStats, time.Duration) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	collectorHooks CollectorHooks = NoopCollectorHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetCollectorHooks registers custom collector hooks.
// This should be called once at application startup before any collector runs.
func SetCollectorHooks(h CollectorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		collectorHooks = h
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

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Collector returns the registered collector hooks.
func Collector() CollectorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return collectorHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	collectorHooks = NoopCollectorHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
