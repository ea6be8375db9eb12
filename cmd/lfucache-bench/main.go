// lfucache-bench drives a sharded cache with a configurable mixed workload
// and reports throughput.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	cache "github.com/krisalay/lfu-cache"
	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/writepolicy"
)

var cli struct {
	Shards     int           `default:"8" help:"Number of cache shards."`
	Capacity   int           `default:"200000" help:"Total cache capacity."`
	Keys       int           `default:"100000" help:"Size of the key space."`
	Goroutines int           `default:"200" help:"Concurrent workers."`
	Ops        int           `default:"5000" help:"Operations per worker."`
	WriteRatio float64       `default:"0.1" help:"Fraction of operations that are writes."`
	TTL        time.Duration `default:"0" help:"Per-entry TTL (0 disables expiry)."`
	WriteBack  bool          `default:"true" negatable:"" help:"Queue writes to the backing store."`
}

type nullStore struct{}

func (nullStore) Load(context.Context, string) (any, error) { return nil, nil }
func (nullStore) Put(context.Context, string, any) error    { return nil }

func main() {
	kong.Parse(&cli,
		kong.Name("lfucache-bench"),
		kong.Description("Load generator for the sharded O(1) LFU cache."))

	ctx := context.Background()

	var policy writepolicy.Policy
	if cli.WriteBack {
		policy = writepolicy.NewWriteBack(nullStore{}, 4096)
	}
	eng := engine.New(nullStore{}, policy, nil, nil)

	c, err := cache.NewSharded(cli.Shards, cli.Capacity, eng)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	fmt.Println("================ CACHE LOAD BENCHMARK =================")
	fmt.Println("Shards       :", cli.Shards)
	fmt.Println("Capacity     :", humanize.Comma(int64(cli.Capacity)))
	fmt.Println("Key space    :", humanize.Comma(int64(cli.Keys)))
	fmt.Println("Goroutines   :", cli.Goroutines)
	fmt.Println("Ops/goroutine:", humanize.Comma(int64(cli.Ops)))

	keys := make([]string, cli.Keys)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		if cli.TTL > 0 {
			c.PutTTL(ctx, keys[i], i, cli.TTL)
		} else {
			c.Put(ctx, keys[i], i)
		}
	}

	var hits, misses atomic.Uint64
	start := time.Now()

	var wg sync.WaitGroup
	for g := 0; g < cli.Goroutines; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < cli.Ops; i++ {
				key := keys[rng.Intn(len(keys))]
				if rng.Float64() < cli.WriteRatio {
					c.Put(ctx, key, i)
					continue
				}
				if _, ok, _ := c.Get(ctx, key); ok {
					hits.Add(1)
				} else {
					misses.Add(1)
				}
			}
		}(int64(g))
	}
	wg.Wait()

	elapsed := time.Since(start)
	total := cli.Goroutines * cli.Ops
	rate := float64(total) / elapsed.Seconds()

	fmt.Println("------------------------------------------------------")
	fmt.Println("Total ops :", humanize.Comma(int64(total)))
	fmt.Println("Elapsed   :", elapsed.Round(time.Millisecond))
	fmt.Printf("Throughput: %s ops/s\n", humanize.CommafWithDigits(rate, 0))
	fmt.Println("Hits      :", humanize.Comma(int64(hits.Load())))
	fmt.Println("Misses    :", humanize.Comma(int64(misses.Load())))

	s := c.Stats()
	fmt.Println("Evictions :", humanize.Comma(int64(s.Evictions)))
}
