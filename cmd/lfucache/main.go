// Demo of the sharded LFU cache: read-through, TTL, eviction, write-back.
package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	cache "github.com/krisalay/lfu-cache"
	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/types"
	"github.com/krisalay/lfu-cache/writepolicy"
)

type memStore struct {
	mu   sync.RWMutex
	data map[string]any
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]any)}
}

func (s *memStore) Load(_ context.Context, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fmt.Println("STORE  → load:", key)
	return s.data[key], nil
}

func (s *memStore) Put(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func main() {
	ctx := context.Background()

	fmt.Println("==================== SYSTEM BOOT ====================")
	fmt.Println("EVICTION : LFU with LRU tie-break, O(1)")
	fmt.Println("SHARDS   : 4")
	fmt.Println("CAPACITY : 20 keys")
	fmt.Println("WRITES   : write-back")

	store := newMemStore()
	store.data["a"] = "alpha"
	store.data["b"] = "beta"

	counters := &types.Counters{}
	eng := engine.New(store, writepolicy.NewWriteBack(store, 1024), nil, counters)

	c, err := cache.NewSharded(4, 20, eng)
	if err != nil {
		panic(err)
	}

	fmt.Println("\n==================== 1) CACHE MISS ====================")
	v, _, _ := c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a =", v)

	fmt.Println("\n==================== 2) CACHE HIT ====================")
	v, _, _ = c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a =", v)

	fmt.Println("\n==================== 3) TTL EXPIRY ====================")
	c.PutTTL(ctx, "x", "temp-value", time.Second)
	fmt.Println("CACHE  → PUT x (TTL = 1s)")
	time.Sleep(2 * time.Second)
	_, ok, _ := c.Get(ctx, "x")
	fmt.Println("CACHE  → GET x after TTL: found =", ok)

	fmt.Println("\n==================== 4) SINGLEFLIGHT ====================")
	c.Delete("b")
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			val, _, _ := c.Get(ctx, "b")
			fmt.Printf("GOROUTINE-%d → GET b = %v\n", id, val)
		}(i)
	}
	wg.Wait()

	fmt.Println("\n==================== 5) EVICTION ====================")
	// The frequently read "a" survives a flood of one-shot keys.
	c.Get(ctx, "a")
	c.Get(ctx, "a")
	for i := 0; i < 50; i++ {
		c.Put(ctx, fmt.Sprintf("k%d", i), i)
	}
	store.delete("a")
	v, ok, _ = c.Get(ctx, "a")
	fmt.Printf("CACHE  → GET a after flood = %v (still cached = %v)\n", v, ok)

	fmt.Println("\n==================== METRICS ====================")
	s := c.Stats()
	fmt.Printf("HITS        : %d\n", s.Hits)
	fmt.Printf("MISSES      : %d\n", s.Misses)
	fmt.Printf("EVICTIONS   : %d\n", s.Evictions)
	fmt.Printf("EXPIRATIONS : %d\n", s.Expirations)

	fmt.Println("\n==================== SHUTDOWN ====================")
	c.Close()
	fmt.Println("SYSTEM → cache closed cleanly")
}
