// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module call hooks at interesting points (a tree parsed,
// a drawing pass finished, a cache hit, an API request served) without
// depending on any observability backend. Applications register their own
// implementations at startup; until they do, every hook is a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDrawHooks(&myDrawHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Draw().OnDrawStart(ctx, drawer, nodeCount)
//	// ... draw ...
//	observability.Draw().OnDrawComplete(ctx, drawer, primitives, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Draw Hooks
// =============================================================================

// DrawHooks receives events from the drawing pipeline.
type DrawHooks interface {
	// Parse events
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)

	// Draw events
	OnDrawStart(ctx context.Context, drawer string, nodeCount int)
	OnDrawComplete(ctx context.Context, drawer string, primitives int, duration time.Duration, err error)

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
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP traffic, both requests served by the
// API and remote trees fetched by the client.
type HTTPHooks interface {
	// OnRequest records an HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDrawHooks is a no-op implementation of DrawHooks.
type NoopDrawHooks struct{}

func (NoopDrawHooks) OnParseStart(context.Context, string)                                {}
func (NoopDrawHooks) OnParseComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopDrawHooks) OnDrawStart(context.Context, string, int)                            {}
func (NoopDrawHooks) OnDrawComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopDrawHooks) OnRenderStart(context.Context, string)                               {}
func (NoopDrawHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

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
	drawHooks  DrawHooks  = NoopDrawHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetDrawHooks registers custom drawing pipeline hooks.
// This should be called once at application startup.
func SetDrawHooks(h DrawHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		drawHooks = h
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

// Draw returns the registered drawing pipeline hooks.
func Draw() DrawHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return drawHooks
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
	drawHooks = NoopDrawHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
