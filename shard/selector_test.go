package shard_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/lfu-cache/shard"
)

func newShards(t *testing.T, n int) []*shard.Shard {
	t.Helper()
	shards := make([]*shard.Shard, n)
	for i := range shards {
		s, err := shard.New(16)
		require.NoError(t, err)
		shards[i] = s
	}
	return shards
}

func TestSelectIsDeterministic(t *testing.T) {
	shards := newShards(t, 8)
	sel := shard.HashSelector{}

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key-%d", i)
		first := sel.Select(key, shards)
		for j := 0; j < 5; j++ {
			assert.Same(t, first, sel.Select(key, shards))
		}
	}
}

func TestSelectUsesAllShards(t *testing.T) {
	shards := newShards(t, 4)
	sel := shard.HashSelector{}

	seen := make(map[*shard.Shard]int)
	for i := 0; i < 1000; i++ {
		seen[sel.Select(fmt.Sprintf("key-%d", i), shards)]++
	}
	// FNV should not funnel a varied key set into a subset of shards.
	assert.Len(t, seen, 4)
}

func TestShardIsolation(t *testing.T) {
	shards := newShards(t, 2)

	shards[0].Put("k", "zero")
	_, ok := shards[1].Get("k")
	assert.False(t, ok)

	v, ok := shards[0].Get("k")
	require.True(t, ok)
	assert.Equal(t, "zero", v)
}
