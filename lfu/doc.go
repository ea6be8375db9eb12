// Package lfu implements an O(1) least-frequently-used cache with
// least-recently-used tie-breaking.
//
// The structure follows the scheme described in "An O(1) algorithm for
// implementing the LFU cache eviction scheme" (Shah, Mitra, Matani): a key
// index gives O(1) lookup, a frequency index maps each access count to a
// recency-ordered bucket of entries, and a running minimum frequency
// identifies the eviction bucket without scanning. Every Get and Put is a
// constant number of map and link operations.
//
// Instead of an intrusive pointer-linked list, entries live in an arena (a
// slice with a free-list) and link to each other through stable int32
// handles. That keeps link/unlink O(1) while confining the whole cyclic
// structure to one allocation site.
//
// A Cache is not safe for concurrent use. Wrap it in a mutex, or use the
// Locked and Sharded types in the root package. Because every Get mutates
// frequency state there is no useful read-only path to protect with an
// RWMutex; plain mutual exclusion is the right primitive.
package lfu
