package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/lfu-cache"
	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/lfu"
	"github.com/krisalay/lfu-cache/types"
	"github.com/krisalay/lfu-cache/writepolicy"
)

// testStore is an in-memory backing store with call counting.
type testStore struct {
	mu    sync.RWMutex
	data  map[string]any
	loads int
}

func newTestStore() *testStore {
	return &testStore{data: make(map[string]any)}
}

func (s *testStore) Load(_ context.Context, key string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.data[key], nil
}

func (s *testStore) Put(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *testStore) set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *testStore) get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key]
}

func (s *testStore) loadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}

// failStore always fails its loads.
type failStore struct{}

func (failStore) Load(context.Context, string) (any, error) {
	return nil, errors.New("store down")
}

func (failStore) Put(context.Context, string, any) error {
	return nil
}

func newSharded(t *testing.T, capacity int) (*cache.Sharded, *testStore) {
	t.Helper()
	store := newTestStore()
	eng := engine.New(store, writepolicy.NewWriteBack(store, 1024), nil, &types.Counters{})
	c, err := cache.NewSharded(2, capacity, eng)
	require.NoError(t, err)
	return c, store
}

func TestShardedPutGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newSharded(t, 10)
	defer c.Close()

	c.Put(ctx, "key1", "value1")
	v, ok, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value1", v)
}

func TestShardedReadThrough(t *testing.T) {
	ctx := context.Background()
	c, store := newSharded(t, 10)
	defer c.Close()

	store.set("keyX", "store-value")

	// First read faults the value in from the store.
	v, ok, err := c.Get(ctx, "keyX")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "store-value", v)
	loads := store.loadCount()

	// Second read is served from memory.
	v, ok, err = c.Get(ctx, "keyX")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "store-value", v)
	assert.Equal(t, loads, store.loadCount())

	// Missing in both cache and store.
	_, ok, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShardedLoadErrorSurfaces(t *testing.T) {
	eng := engine.New(failStore{}, nil, nil, nil)
	c, err := cache.NewSharded(2, 10, eng)
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "k")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store down")
}

func TestShardedUpdateExistingKey(t *testing.T) {
	ctx := context.Background()
	c, _ := newSharded(t, 10)
	defer c.Close()

	c.Put(ctx, "key1", "value1")
	c.Put(ctx, "key1", "value2")
	assert.Equal(t, 1, c.Len())

	v, _, _ := c.Get(ctx, "key1")
	assert.Equal(t, "value2", v)
}

func TestShardedDelete(t *testing.T) {
	ctx := context.Background()
	// No loader: a deleted key must stay gone.
	c, err := cache.NewSharded(2, 10, nil)
	require.NoError(t, err)
	defer c.Close()

	c.Put(ctx, "key1", "value1")
	assert.True(t, c.Delete("key1"))
	assert.False(t, c.Delete("key1"))

	_, ok, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShardedEvictionReloadsFromStore(t *testing.T) {
	ctx := context.Background()
	c, store := newSharded(t, 2)
	defer c.Close()

	store.set("key1", "value1")

	// Overflow the cache; whichever keys are evicted can still be
	// reloaded from the backing store.
	for i := 0; i < 10; i++ {
		c.Put(ctx, fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
	}
	assert.LessOrEqual(t, c.Len(), 2)

	v, ok, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value1", v)
}

func TestShardedTTLExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewSharded(2, 10, nil)
	require.NoError(t, err)
	defer c.Close()

	c.PutTTL(ctx, "ttlKey", "temp", 50*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	_, ok, err := c.Get(ctx, "ttlKey")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestShardedWriteBackReachesStore(t *testing.T) {
	ctx := context.Background()
	c, store := newSharded(t, 10)

	c.Put(ctx, "key1", "value1")
	c.Close() // drains the write-back queue

	assert.Equal(t, "value1", store.get("key1"))
}

func TestShardedStatsAggregate(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewSharded(4, 100, nil)
	require.NoError(t, err)
	defer c.Close()

	for i := 0; i < 20; i++ {
		c.Put(ctx, fmt.Sprintf("key-%d", i), i)
	}
	for i := 0; i < 20; i++ {
		_, ok, _ := c.Get(ctx, fmt.Sprintf("key-%d", i))
		require.True(t, ok)
	}
	_, ok, _ := c.Get(ctx, "absent")
	require.False(t, ok)

	s := c.Stats()
	assert.Equal(t, uint64(20), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
}

func TestShardedResize(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewSharded(2, 100, nil)
	require.NoError(t, err)
	defer c.Close()

	for i := 0; i < 50; i++ {
		c.Put(ctx, fmt.Sprintf("key-%d", i), i)
	}
	require.Equal(t, 50, c.Len())

	require.NoError(t, c.Resize(10))
	assert.LessOrEqual(t, c.Len(), 10)

	assert.True(t, errors.Is(c.Resize(-1), lfu.ErrInvalidCapacity))
}

func TestShardedConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c, store := newSharded(t, 1000)
	defer c.Close()

	store.set("shared", "value")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j%20)
				c.Put(ctx, key, j)
				if v, ok, err := c.Get(ctx, "shared"); err != nil || !ok || v != "value" {
					t.Errorf("shared read: v=%v ok=%v err=%v", v, ok, err)
					return
				}
				c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
}

func TestLockedBasicOperations(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewLocked(10, nil)
	require.NoError(t, err)
	defer c.Close()

	c.Put(ctx, "k", "v")
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", v)

	assert.True(t, c.Delete("k"))
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestLockedReadThroughSingleflight(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	store.set("key", "value")

	eng := engine.New(store, nil, nil, nil)
	c, err := cache.NewLocked(10, eng)
	require.NoError(t, err)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, ok, err := c.Get(ctx, "key")
			if err != nil || !ok || v != "value" {
				t.Errorf("get: v=%v ok=%v err=%v", v, ok, err)
			}
		}()
	}
	wg.Wait()

	// Concurrent misses collapse; far fewer loads than readers.
	assert.Less(t, store.loadCount(), 10)
}

func TestCacheInterface(t *testing.T) {
	var _ cache.Cache = (*cache.Locked)(nil)
	var _ cache.Cache = (*cache.Sharded)(nil)
}
