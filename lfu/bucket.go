package lfu

// bucket is the recency-ordered list of all entries sharing one access
// count. The head is the most recently used entry at that count, the tail
// the least recently used. Links run through the arena, so a bucket is just
// a pair of handles and a length.
//
// An empty bucket must not stay in the frequency index; callers delete it
// as soon as its last entry leaves.
type bucket struct {
	head int32
	tail int32
	size int
}

func newBucket() *bucket {
	return &bucket{head: none, tail: none}
}

// addFront links an entry in at the head, marking it most recently used
// within this frequency.
func (b *bucket) addFront(a *arena, h int32) {
	e := a.at(h)
	e.prev = none
	e.next = b.head
	if b.head != none {
		a.at(b.head).prev = h
	}
	b.head = h
	if b.tail == none {
		b.tail = h
	}
	b.size++
}

// remove unlinks an entry from anywhere in the list. The handle must belong
// to this bucket; no search takes place.
func (b *bucket) remove(a *arena, h int32) {
	e := a.at(h)
	if e.prev != none {
		a.at(e.prev).next = e.next
	} else {
		b.head = e.next
	}
	if e.next != none {
		a.at(e.next).prev = e.prev
	} else {
		b.tail = e.prev
	}
	e.prev = none
	e.next = none
	b.size--
}

// removeBack unlinks and returns the tail entry, the least recently used at
// this frequency. Reports false if the bucket is empty.
func (b *bucket) removeBack(a *arena) (int32, bool) {
	if b.tail == none {
		return none, false
	}
	h := b.tail
	b.remove(a, h)
	return h, true
}

func (b *bucket) empty() bool {
	return b.size == 0
}
