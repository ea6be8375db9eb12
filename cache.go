// Package cache assembles the O(1) LFU core in lfu/ into ready-to-use
// caches. Two concurrency modes are provided on top of the unsynchronized
// core: Locked serializes everything behind one mutex, Sharded partitions
// the key space across independently locked cores. Both can read through to
// a backing store and propagate writes via a write policy; see the engine
// package.
package cache

import (
	"context"
	"time"

	"github.com/krisalay/lfu-cache/types"
)

// Cache is the contract shared by Locked and Sharded.
type Cache interface {

	// Get returns the value for key. A present, unexpired entry is a hit.
	// On a miss with a Loader configured, the value is fetched from the
	// backing store, cached and returned. ok reports whether a usable
	// value was found anywhere; err is non-nil only when a load fails.
	Get(ctx context.Context, key string) (value any, ok bool, err error)

	// Put stores value under key and forwards it to the write policy.
	Put(ctx context.Context, key string, value any)

	// PutTTL is Put with an explicit per-entry time-to-live.
	PutTTL(ctx context.Context, key string, value any, ttl time.Duration)

	// Delete removes key, reporting whether it was present.
	Delete(key string) bool

	// Resize changes the total capacity, evicting as needed to shrink.
	Resize(capacity int) error

	// Len returns the number of resident entries.
	Len() int

	// Stats returns aggregated hit/miss/eviction/expiration counters.
	Stats() types.Stats

	// Close flushes pending write-backs and stops background work.
	Close()
}
