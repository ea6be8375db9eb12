// Package writepolicy decides how cache writes reach the backing store.
// Write-through pushes synchronously; write-back queues and flushes from a
// background worker. With no policy configured, writes stay in memory only.
package writepolicy

import "context"

// Policy is called by the engine on every cache write.
type Policy interface {

	// OnWrite propagates a cache write to the backing store, now or later
	// depending on the policy.
	OnWrite(ctx context.Context, key string, value any)

	// Close flushes anything still pending and stops background work.
	Close()
}
