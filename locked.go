package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/lfu"
	"github.com/krisalay/lfu-cache/types"
)

// Locked is the single-lock concurrency mode: one LFU core behind one
// mutex. Correct for any number of goroutines, but every operation
// serializes; use Sharded when that becomes the bottleneck.
type Locked struct {
	mu     sync.Mutex
	core   *lfu.Cache
	engine *engine.Engine
	sf     singleflight.Group
}

// NewLocked creates a mutex-guarded cache. eng may be nil for a
// memory-only cache with no backing store.
func NewLocked(capacity int, eng *engine.Engine, opts ...lfu.Option) (*Locked, error) {
	if eng == nil {
		eng = engine.New(nil, nil, nil, nil)
	}
	opts = append(opts, lfu.WithMetrics(eng.Metrics))
	core, err := lfu.New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Locked{core: core, engine: eng}, nil
}

func (l *Locked) Get(ctx context.Context, key string) (any, bool, error) {
	l.mu.Lock()
	v, ok := l.core.Get(key)
	l.mu.Unlock()
	if ok {
		l.engine.OnRead(key, v)
		return v, true, nil
	}

	if l.engine.Loader == nil {
		return nil, false, nil
	}

	// The lock is released during the load; singleflight collapses
	// concurrent fetches of the same missing key into one store call.
	v, err, _ := l.sf.Do(key, func() (any, error) {
		return l.engine.Load(ctx, key)
	})
	if err != nil {
		return nil, false, errors.Wrapf(err, "loading %q", key)
	}
	if v == nil {
		return nil, false, nil
	}

	// The value came from the store, so it is not echoed back through the
	// write policy.
	l.mu.Lock()
	l.core.Put(key, v)
	l.mu.Unlock()

	l.engine.OnRead(key, v)
	return v, true, nil
}

func (l *Locked) Put(ctx context.Context, key string, value any) {
	l.mu.Lock()
	l.core.Put(key, value)
	l.mu.Unlock()
	l.engine.OnWrite(ctx, key, value)
}

func (l *Locked) PutTTL(ctx context.Context, key string, value any, ttl time.Duration) {
	l.mu.Lock()
	l.core.PutTTL(key, value, ttl)
	l.mu.Unlock()
	l.engine.OnWrite(ctx, key, value)
}

func (l *Locked) Delete(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.core.Delete(key)
}

func (l *Locked) Resize(capacity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.core.Resize(capacity)
}

func (l *Locked) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.core.Len()
}

func (l *Locked) Stats() types.Stats {
	return l.core.Stats()
}

func (l *Locked) Close() {
	l.engine.Close()
}
