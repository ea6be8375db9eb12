// Package shard wraps the unsynchronized LFU core in a mutex so it can be
// used as one partition of a larger cache. Each shard owns an independent
// slice of the key space with its own lock, its own frequency structure and
// its own share of the capacity; LFU ordering is exact within a shard and
// unspecified across shards.
package shard

import (
	"sync"
	"time"

	"github.com/krisalay/lfu-cache/lfu"
	"github.com/krisalay/lfu-cache/types"
)

// Shard is one independently locked cache partition.
//
// A read/write lock would buy nothing here: every Get mutates frequency
// state, so every operation needs exclusive access anyway.
type Shard struct {
	mu   sync.Mutex
	core *lfu.Cache
}

// New creates a shard with its own capacity slice.
func New(capacity int, opts ...lfu.Option) (*Shard, error) {
	core, err := lfu.New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Shard{core: core}, nil
}

func (s *Shard) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Get(key)
}

func (s *Shard) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.core.Put(key, value)
}

func (s *Shard) PutTTL(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.core.PutTTL(key, value, ttl)
}

func (s *Shard) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Delete(key)
}

func (s *Shard) Resize(capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Resize(capacity)
}

func (s *Shard) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Len()
}

// Stats reads the shard's counters. The counters themselves are atomic, so
// no lock is taken.
func (s *Shard) Stats() types.Stats {
	return s.core.Stats()
}
