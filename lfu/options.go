package lfu

import (
	"time"

	"github.com/krisalay/lfu-cache/expiration"
	"github.com/krisalay/lfu-cache/types"
)

// An Option configures a Cache at construction time.
type Option func(*Cache)

// WithTTL makes every entry expire a fixed duration after it is written.
// Shorthand for WithExpiration(expiration.FixedTTL{TTL: ttl}).
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.strategy = expiration.FixedTTL{TTL: ttl}
	}
}

// WithExpiration installs an expiration strategy for entries written
// without an explicit TTL.
func WithExpiration(s expiration.Strategy) Option {
	return func(c *Cache) {
		c.strategy = s
	}
}

// WithClock replaces the wall clock. Tests use this to drive expiry
// deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithOnEvict registers a callback invoked with every entry removed to make
// room. It runs synchronously inside Put and Resize; keep it cheap. Entries
// leaving through Delete or expiry do not trigger it.
func WithOnEvict(fn func(key string, value any)) Option {
	return func(c *Cache) {
		c.onEvict = fn
	}
}

// WithMetrics registers an observer for cache lifecycle events, in addition
// to the built-in counters reported by Stats.
func WithMetrics(m types.Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.observer = m
		}
	}
}
