package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/lfu"
	"github.com/krisalay/lfu-cache/shard"
	"github.com/krisalay/lfu-cache/types"
)

// Sharded partitions the key space across n independently locked LFU
// cores. Keys route to shards by hash, so goroutines working on different
// shards never contend. Each shard gets its own slice of the capacity;
// LFU/LRU ordering is exact within a shard, and no eviction ordering is
// guaranteed across shards.
type Sharded struct {
	shards   []*shard.Shard
	selector shard.Selector
	engine   *engine.Engine
	sf       singleflight.Group
}

// NewSharded creates a cache with n shards and the given total capacity.
// eng may be nil for a memory-only cache with no backing store.
func NewSharded(n, capacity int, eng *engine.Engine, opts ...lfu.Option) (*Sharded, error) {
	if n <= 0 {
		n = 1
	}
	if capacity < 0 {
		return nil, errors.WithMessagef(lfu.ErrInvalidCapacity, "capacity %d", capacity)
	}
	if eng == nil {
		eng = engine.New(nil, nil, nil, nil)
	}
	opts = append(opts, lfu.WithMetrics(eng.Metrics))

	shards := make([]*shard.Shard, n)
	for i := range shards {
		s, err := shard.New(sliceCapacity(capacity, n, i), opts...)
		if err != nil {
			return nil, err
		}
		shards[i] = s
	}
	return &Sharded{
		shards:   shards,
		selector: shard.HashSelector{},
		engine:   eng,
	}, nil
}

// sliceCapacity spreads capacity evenly; the first shards absorb the
// remainder so no slot is lost to integer division.
func sliceCapacity(capacity, n, i int) int {
	per := capacity / n
	if i < capacity%n {
		per++
	}
	return per
}

func (c *Sharded) Get(ctx context.Context, key string) (any, bool, error) {
	sh := c.selector.Select(key, c.shards)
	if v, ok := sh.Get(key); ok {
		c.engine.OnRead(key, v)
		return v, true, nil
	}

	if c.engine.Loader == nil {
		return nil, false, nil
	}

	// Collapse concurrent loads of the same missing key into one store
	// call; the other callers share the result.
	v, err, _ := c.sf.Do(key, func() (any, error) {
		return c.engine.Load(ctx, key)
	})
	if err != nil {
		return nil, false, errors.Wrapf(err, "loading %q", key)
	}
	if v == nil {
		return nil, false, nil
	}

	// Loaded values go straight into the shard, not back through the
	// write policy.
	sh.Put(key, v)
	c.engine.OnRead(key, v)
	return v, true, nil
}

func (c *Sharded) Put(ctx context.Context, key string, value any) {
	c.selector.Select(key, c.shards).Put(key, value)
	c.engine.OnWrite(ctx, key, value)
}

func (c *Sharded) PutTTL(ctx context.Context, key string, value any, ttl time.Duration) {
	c.selector.Select(key, c.shards).PutTTL(key, value, ttl)
	c.engine.OnWrite(ctx, key, value)
}

func (c *Sharded) Delete(key string) bool {
	return c.selector.Select(key, c.shards).Delete(key)
}

// Resize redistributes a new total capacity across the shards, evicting
// within any shard that must shrink.
func (c *Sharded) Resize(capacity int) error {
	if capacity < 0 {
		return errors.WithMessagef(lfu.ErrInvalidCapacity, "resize to %d", capacity)
	}
	n := len(c.shards)
	for i, sh := range c.shards {
		if err := sh.Resize(sliceCapacity(capacity, n, i)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Sharded) Len() int {
	total := 0
	for _, sh := range c.shards {
		total += sh.Len()
	}
	return total
}

// Stats sums the per-shard counters.
func (c *Sharded) Stats() types.Stats {
	var total types.Stats
	for _, sh := range c.shards {
		s := sh.Stats()
		total.Hits += s.Hits
		total.Misses += s.Misses
		total.Evictions += s.Evictions
		total.Expirations += s.Expirations
	}
	return total
}

func (c *Sharded) Close() {
	c.engine.Close()
}
