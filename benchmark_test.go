package cache_test

import (
	"context"
	"fmt"
	"testing"

	cache "github.com/krisalay/lfu-cache"
	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/lfu"
	"github.com/krisalay/lfu-cache/writepolicy"
)

func newBenchmarkCache(b *testing.B) *cache.Sharded {
	b.Helper()
	store := newTestStore()
	eng := engine.New(store, writepolicy.NewWriteBack(store, 4096), nil, nil)
	c, err := cache.NewSharded(8, 100000, eng)
	if err != nil {
		b.Fatal(err)
	}
	return c
}

func BenchmarkCoreGetHit(b *testing.B) {
	c, err := lfu.New(1024)
	if err != nil {
		b.Fatal(err)
	}
	c.Put("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}

func BenchmarkCorePut(b *testing.B) {
	c, err := lfu.New(1024)
	if err != nil {
		b.Fatal(err)
	}
	keys := make([]string, 4096)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(keys[i%len(keys)], i)
	}
}

func BenchmarkShardedGetHit(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)
	defer c.Close()

	c.Put(ctx, "key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, "key")
	}
}

func BenchmarkShardedGetMiss(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, fmt.Sprintf("miss-%d", i))
	}
}

func BenchmarkShardedPut(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(ctx, fmt.Sprintf("key-%d", i), i)
	}
}

func BenchmarkShardedParallelGet(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)
	defer c.Close()

	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		c.Put(ctx, keys[i], i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.Get(ctx, keys[i%len(keys)])
			i++
		}
	})
}

func BenchmarkLockedParallelGet(b *testing.B) {
	ctx := context.Background()
	c, err := cache.NewLocked(100000, nil)
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()

	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		c.Put(ctx, keys[i], i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.Get(ctx, keys[i%len(keys)])
			i++
		}
	})
}
