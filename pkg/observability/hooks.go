// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph evaluation, graph mutations and graph library
// store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so packages such as graph
// and store never import a metrics backend. [PrometheusHooks] is the bundled
// backend used by the API server.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    h := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	    observability.SetGraphHooks(h)
//	    observability.SetStoreHooks(h)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Graph().OnEvaluateStart(ctx, runID, len(order))
//	// ... apply xforms ...
//	observability.Graph().OnEvaluateComplete(ctx, runID, applied, failed, skipped, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from graph evaluation and mutation.
type GraphHooks interface {
	// Evaluation events
	OnEvaluateStart(ctx context.Context, runID string, nodeCount int)
	OnApply(ctx context.Context, runID, xformType string, status int, duration time.Duration)
	OnEvaluateComplete(ctx context.Context, runID string, applied, failed, skipped int, duration time.Duration)

	// OnMutation records a structural change ("add", "delete", "connect", "disconnect").
	OnMutation(ctx context.Context, op string, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from graph library store operations.
type StoreHooks interface {
	// OnStoreHit records a successful lookup.
	OnStoreHit(ctx context.Context, backend string)

	// OnStoreMiss records a lookup for a missing key.
	OnStoreMiss(ctx context.Context, backend string)

	// OnStoreSet records a write.
	OnStoreSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnEvaluateStart(context.Context, string, int)                {}
func (NoopGraphHooks) OnApply(context.Context, string, string, int, time.Duration) {}
func (NoopGraphHooks) OnEvaluateComplete(context.Context, string, int, int, int, time.Duration) {
}
func (NoopGraphHooks) OnMutation(context.Context, string, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreHit(context.Context, string)      {}
func (NoopStoreHooks) OnStoreMiss(context.Context, string)     {}
func (NoopStoreHooks) OnStoreSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	graphHooks GraphHooks = NoopGraphHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before any graph is evaluated.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	graphHooks = NoopGraphHooks{}
	storeHooks = NoopStoreHooks{}
}
