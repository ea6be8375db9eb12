package lfu

import "time"

// none marks an empty link or an absent handle.
const none = int32(-1)

// entry is one resident key/value pair. Entries are owned by exactly one
// frequency bucket; the key index refers to them by handle only.
type entry struct {
	key      string
	value    any
	freq     uint64
	expireAt time.Time // zero => no TTL
	prev     int32     // neighbour handles within the bucket list
	next     int32
}

// arena is the backing store for entries. Handles are indices into slots and
// stay valid until the entry is released, so buckets can link entries
// together without holding pointers into a growing slice.
type arena struct {
	slots []entry
	free  []int32 // recycled handles, used LIFO
}

// alloc returns a handle to a zeroed slot.
func (a *arena) alloc() int32 {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		return h
	}
	a.slots = append(a.slots, entry{})
	return int32(len(a.slots) - 1)
}

// release returns a slot to the free-list. The slot is cleared so the value
// it held becomes collectable immediately.
func (a *arena) release(h int32) {
	a.slots[h] = entry{prev: none, next: none}
	a.free = append(a.free, h)
}

// at returns the entry for a handle. The pointer is only valid until the
// next alloc; callers must not retain it across mutations.
func (a *arena) at(h int32) *entry {
	return &a.slots[h]
}
