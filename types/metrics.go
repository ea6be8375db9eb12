package types

import "sync/atomic"

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
}

// Metrics receives cache lifecycle events. Implementations must be safe for
// concurrent use: events may be reported from whichever goroutine currently
// holds a shard lock.
type Metrics interface {

	// Hit is called when a lookup returns a live value.
	Hit()

	// Miss is called when a lookup finds nothing usable (absent or expired).
	Miss()

	// Eviction is called when an entry is removed to make room.
	Eviction()

	// Expire is called when an entry is removed because its TTL passed.
	Expire()

	// Refresh is called when a read triggers the refresh hook.
	Refresh()
}

// NoopMetrics ignores all events. It is the default so callers who do not
// care about metrics never need nil checks.
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Expire()   {}
func (NoopMetrics) Refresh()  {}

// Counters is a Metrics implementation backed by atomic counters. A single
// Counters value can be shared across shards, and Snapshot reads it without
// taking any cache lock.
type Counters struct {
	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	expirations atomic.Uint64
	refreshes   atomic.Uint64
}

func (c *Counters) Hit()      { c.hits.Add(1) }
func (c *Counters) Miss()     { c.misses.Add(1) }
func (c *Counters) Eviction() { c.evictions.Add(1) }
func (c *Counters) Expire()   { c.expirations.Add(1) }
func (c *Counters) Refresh()  { c.refreshes.Add(1) }

// Snapshot returns the counter values at this instant.
func (c *Counters) Snapshot() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
	}
}
