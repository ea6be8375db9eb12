package shard

import "hash/fnv"

// Selector decides which shard handles a given key. The mapping must be
// deterministic: the same key always routes to the same shard, otherwise
// entries would silently duplicate across partitions.
type Selector interface {
	Select(key string, shards []*Shard) *Shard
}

// HashSelector routes keys by FNV-1a hash modulo the shard count. FNV is
// fast, non-cryptographic and spreads typical key sets evenly.
type HashSelector struct{}

func (HashSelector) Select(key string, shards []*Shard) *Shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return shards[int(h.Sum32())%len(shards)]
}
