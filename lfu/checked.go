//go:build checked

package lfu

import "fmt"

// check walks the whole structure and verifies every invariant after a
// mutation. Any violation is a bug in this package, so it fails loudly.
// Only builds tagged "checked" pay for this; release builds get the no-op
// version.
func (c *Cache) check() {
	total := 0
	for f, b := range c.buckets {
		if b.empty() {
			c.bug("empty bucket at frequency %d left in the index", f)
		}
		n := 0
		prev := none
		for h := b.head; h != none; h = c.arena.at(h).next {
			e := c.arena.at(h)
			if e.freq != f {
				c.bug("entry %q has frequency %d but sits in bucket %d", e.key, e.freq, f)
			}
			if e.prev != prev {
				c.bug("entry %q has a broken prev link", e.key)
			}
			if got, ok := c.index[e.key]; !ok || got != h {
				c.bug("entry %q is not indexed under its own handle", e.key)
			}
			if e.next == none && b.tail != h {
				c.bug("bucket %d tail does not point at its last entry", f)
			}
			prev = h
			n++
		}
		if n != b.size {
			c.bug("bucket %d says size %d but links %d entries", f, b.size, n)
		}
		total += n
	}
	if total != len(c.index) {
		c.bug("key index holds %d entries but buckets hold %d", len(c.index), total)
	}
	if len(c.index) > 0 {
		var min uint64
		first := true
		for f := range c.buckets {
			if first || f < min {
				min, first = f, false
			}
		}
		if c.minFreq != min {
			c.bug("minFreq is %d but the smallest resident frequency is %d", c.minFreq, min)
		}
	}
	if len(c.index) > c.capacity {
		c.bug("size %d exceeds capacity %d", len(c.index), c.capacity)
	}
}

func (c *Cache) bug(format string, args ...any) {
	panic("lfu: invariant violation: " + fmt.Sprintf(format, args...))
}
