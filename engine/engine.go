// Package engine is the policy layer of the cache: it owns everything the
// storage core does not care about. The core tracks frequencies and evicts;
// the engine decides how misses are filled, how writes reach the backing
// store, what happens after a read, and who hears about it all.
package engine

import (
	"context"

	"github.com/krisalay/lfu-cache/refresh"
	"github.com/krisalay/lfu-cache/types"
	"github.com/krisalay/lfu-cache/writepolicy"
)

// Engine bundles the pluggable behaviors around a cache. Any field except
// Metrics may be nil, which disables that behavior.
type Engine struct {

	// Loader fills misses from the backing store (read-through). With a
	// nil Loader a miss is just a miss.
	Loader types.Loader

	// WritePolicy propagates cache writes to the backing store. With a nil
	// policy writes stay in memory.
	WritePolicy writepolicy.Policy

	// Refresh runs after successful reads, off the critical decisions but
	// on the read path; see the refresh package.
	Refresh refresh.Hook

	// Metrics hears lifecycle events. Never nil; defaults to NoopMetrics.
	Metrics types.Metrics
}

func New(loader types.Loader, wp writepolicy.Policy, hook refresh.Hook, metrics types.Metrics) *Engine {
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	return &Engine{
		Loader:      loader,
		WritePolicy: wp,
		Refresh:     hook,
		Metrics:     metrics,
	}
}

// Load fetches a missing key from the backing store.
func (e *Engine) Load(ctx context.Context, key string) (any, error) {
	if e.Loader == nil {
		return nil, nil
	}
	return e.Loader.Load(ctx, key)
}

// OnRead runs read-side behavior after a hit or a successful load.
func (e *Engine) OnRead(key string, value any) {
	if e.Refresh != nil {
		e.Metrics.Refresh()
		e.Refresh.OnRead(key, value)
	}
}

// OnWrite propagates a cache write according to the write policy.
func (e *Engine) OnWrite(ctx context.Context, key string, value any) {
	if e.WritePolicy != nil {
		e.WritePolicy.OnWrite(ctx, key, value)
	}
}

// Close shuts down background work, flushing pending write-backs.
func (e *Engine) Close() {
	if e.WritePolicy != nil {
		e.WritePolicy.Close()
	}
}
