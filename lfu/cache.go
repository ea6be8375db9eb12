package lfu

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/krisalay/lfu-cache/expiration"
	"github.com/krisalay/lfu-cache/types"
)

// ErrInvalidCapacity is returned when a cache is created or resized with a
// negative capacity. Zero is legal: a cache that stores nothing.
var ErrInvalidCapacity = errors.New("cache capacity must not be negative")

// Cache is an O(1) LFU cache with LRU tie-breaking. It is not safe for
// concurrent use; see the package documentation.
type Cache struct {
	capacity int
	arena    arena
	buckets  map[uint64]*bucket // frequency index, buckets created lazily
	index    map[string]int32   // key index, handle into the arena
	minFreq  uint64             // meaningful only while the cache is non-empty

	strategy expiration.Strategy
	now      func() time.Time
	onEvict  func(key string, value any)
	observer types.Metrics

	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	expirations atomic.Uint64
}

// New creates a cache holding at most capacity entries.
func New(capacity int, opts ...Option) (*Cache, error) {
	if capacity < 0 {
		return nil, errors.WithMessagef(ErrInvalidCapacity, "capacity %d", capacity)
	}
	c := &Cache{
		capacity: capacity,
		buckets:  make(map[uint64]*bucket),
		index:    make(map[string]int32),
		now:      time.Now,
		observer: types.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the value stored under key. A present, unexpired entry counts
// as a hit and has its access frequency raised by one; anything else is a
// miss. Expired entries are removed on the way out, without a frequency
// bump, so an expired read shrinks the cache.
func (c *Cache) Get(key string) (any, bool) {
	h, ok := c.index[key]
	if !ok {
		c.misses.Add(1)
		c.observer.Miss()
		return nil, false
	}

	e := c.arena.at(h)
	now := c.now()
	if !e.expireAt.IsZero() && now.After(e.expireAt) {
		c.expirations.Add(1)
		c.misses.Add(1)
		c.observer.Expire()
		c.observer.Miss()
		c.remove(key, h)
		c.check()
		return nil, false
	}

	if c.strategy != nil {
		e.expireAt = c.strategy.OnAccess(now, e.expireAt)
	}
	value := e.value
	c.promote(h)
	c.hits.Add(1)
	c.observer.Hit()
	c.check()
	return value, true
}

// Put stores value under key. An existing key is overwritten and promoted
// exactly as a Get would promote it; a new key starts at frequency 1,
// evicting the current victim first if the cache is full. With capacity 0
// Put does nothing.
func (c *Cache) Put(key string, value any) {
	var deadline time.Time
	if c.strategy != nil {
		deadline = c.strategy.Deadline(c.now())
	}
	c.put(key, value, deadline)
}

// PutTTL stores value under key with an explicit time-to-live, overriding
// the cache-wide expiration strategy for this entry. A non-positive ttl
// stores the entry without expiry.
func (c *Cache) PutTTL(key string, value any, ttl time.Duration) {
	var deadline time.Time
	if ttl > 0 {
		deadline = c.now().Add(ttl)
	}
	c.put(key, value, deadline)
}

func (c *Cache) put(key string, value any, deadline time.Time) {
	if c.capacity == 0 {
		return
	}

	if h, ok := c.index[key]; ok {
		e := c.arena.at(h)
		if !e.expireAt.IsZero() && c.now().After(e.expireAt) {
			// The old entry is already dead; replace it instead of
			// promoting a frequency nobody earned.
			c.expirations.Add(1)
			c.observer.Expire()
			c.remove(key, h)
		} else {
			e.value = value
			e.expireAt = deadline
			c.promote(h)
			c.check()
			return
		}
	}

	if len(c.index) == c.capacity {
		c.evict()
	}

	h := c.arena.alloc()
	*c.arena.at(h) = entry{
		key:      key,
		value:    value,
		freq:     1,
		expireAt: deadline,
		prev:     none,
		next:     none,
	}
	c.index[key] = h
	c.bucketFor(1).addFront(&c.arena, h)
	// A fresh entry sits at the lowest possible frequency, so it is always
	// a valid new minimum.
	c.minFreq = 1
	c.check()
}

// Delete removes key from the cache. It reports whether the key was present.
func (c *Cache) Delete(key string) bool {
	h, ok := c.index[key]
	if !ok {
		return false
	}
	c.remove(key, h)
	c.check()
	return true
}

// Resize changes the capacity. Shrinking evicts least-frequently-used
// entries until the cache fits; growing only raises the bound.
func (c *Cache) Resize(capacity int) error {
	if capacity < 0 {
		return errors.WithMessagef(ErrInvalidCapacity, "resize to %d", capacity)
	}
	for len(c.index) > capacity {
		c.evict()
	}
	c.capacity = capacity
	c.check()
	return nil
}

// Len returns the number of resident entries.
func (c *Cache) Len() int {
	return len(c.index)
}

// Cap returns the current capacity.
func (c *Cache) Cap() int {
	return c.capacity
}

// Stats returns the hit/miss/eviction/expiration counters. The counters are
// atomic, so Stats may be called without external locking even while other
// goroutines mutate the cache under their own lock.
func (c *Cache) Stats() types.Stats {
	return types.Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
	}
}

// promote moves an entry from its bucket to the head of the bucket one
// frequency up, creating that bucket if needed.
func (c *Cache) promote(h int32) {
	e := c.arena.at(h)
	oldFreq := e.freq
	e.freq++

	b := c.buckets[oldFreq]
	b.remove(&c.arena, h)
	if b.empty() {
		delete(c.buckets, oldFreq)
		// The minimum bucket can only drain here because its last
		// occupant was just promoted, so the new minimum is exactly one
		// higher. No search needed.
		if oldFreq == c.minFreq {
			c.minFreq++
		}
	}

	c.bucketFor(e.freq).addFront(&c.arena, h)
}

// evict removes the tail of the minimum-frequency bucket: the least
// recently used among the least frequently used.
func (c *Cache) evict() {
	b := c.buckets[c.minFreq]
	if b == nil {
		panic("lfu: no bucket at the minimum frequency")
	}
	h, ok := b.removeBack(&c.arena)
	if !ok {
		panic("lfu: empty bucket at the minimum frequency")
	}

	e := c.arena.at(h)
	key, value := e.key, e.value
	delete(c.index, key)
	c.arena.release(h)
	if b.empty() {
		delete(c.buckets, c.minFreq)
		c.repairMinFreq()
	}

	c.evictions.Add(1)
	c.observer.Eviction()
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

// remove takes an entry out through the same door as eviction: unlink from
// its bucket, drop from the key index, recycle the slot. Used by Delete and
// by expired reads.
func (c *Cache) remove(key string, h int32) {
	e := c.arena.at(h)
	f := e.freq
	b := c.buckets[f]
	b.remove(&c.arena, h)
	delete(c.index, key)
	c.arena.release(h)
	if b.empty() {
		delete(c.buckets, f)
		if f == c.minFreq {
			c.repairMinFreq()
		}
	}
}

// repairMinFreq recomputes the minimum after the bucket holding it emptied
// on a non-promotion path. Promotion advances the minimum by exactly one,
// but a removal can leave a gap of any size, so this scans the frequency
// index. The index holds one entry per distinct access count, a handful in
// practice.
func (c *Cache) repairMinFreq() {
	if len(c.index) == 0 {
		c.minFreq = 0
		return
	}
	first := true
	for f := range c.buckets {
		if first || f < c.minFreq {
			c.minFreq = f
			first = false
		}
	}
}

// bucketFor returns the bucket at frequency f, creating it if absent.
func (c *Cache) bucketFor(f uint64) *bucket {
	b, ok := c.buckets[f]
	if !ok {
		b = newBucket()
		c.buckets[f] = b
	}
	return b
}
