// Package expiration defines when cache entries stop being valid.
//
// Strategies work on plain deadlines rather than on entries, so the cache
// core can store expiry as a single timestamp and stays free to lay its
// entries out however it likes.
package expiration

import "time"

// Strategy computes and maintains entry deadlines. The zero time means
// "never expires".
type Strategy interface {

	// Deadline returns the expiry deadline for an entry written at now.
	Deadline(now time.Time) time.Time

	// OnAccess returns the (possibly extended) deadline for an entry read
	// at now. Fixed-TTL strategies return deadline unchanged; sliding
	// strategies push it forward.
	OnAccess(now, deadline time.Time) time.Time
}

// FixedTTL expires an entry a constant duration after it was written,
// no matter how often it is read. A non-positive TTL disables expiry.
type FixedTTL struct {
	TTL time.Duration
}

func (f FixedTTL) Deadline(now time.Time) time.Time {
	if f.TTL <= 0 {
		return time.Time{}
	}
	return now.Add(f.TTL)
}

// OnAccess leaves the deadline alone; reads do not keep a fixed-TTL entry
// alive.
func (f FixedTTL) OnAccess(_, deadline time.Time) time.Time {
	return deadline
}

// SlidingTTL expires an entry a constant duration after it was last
// touched. As long as the entry keeps getting read it stays alive;
// once nobody wants it, it ages out.
type SlidingTTL struct {
	TTL time.Duration
}

func (s SlidingTTL) Deadline(now time.Time) time.Time {
	if s.TTL <= 0 {
		return time.Time{}
	}
	return now.Add(s.TTL)
}

// OnAccess pushes the deadline forward from the time of this read.
func (s SlidingTTL) OnAccess(now, deadline time.Time) time.Time {
	if s.TTL <= 0 || deadline.IsZero() {
		return deadline
	}
	return now.Add(s.TTL)
}
