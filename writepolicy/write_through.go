package writepolicy

import (
	"context"

	"github.com/krisalay/lfu-cache/types"
)

// WriteThrough forwards every cache write to the backing store before the
// cache write is considered done. A slow store makes cache writes slow; in
// exchange the store never lags behind the cache.
type WriteThrough struct {
	store types.Loader
}

func NewWriteThrough(store types.Loader) *WriteThrough {
	return &WriteThrough{store: store}
}

func (w *WriteThrough) OnWrite(ctx context.Context, key string, value any) {
	// Store errors are not the cache's to handle; the caller owns the
	// store and can observe it directly.
	_ = w.store.Put(ctx, key, value)
}

func (w *WriteThrough) Close() {}
