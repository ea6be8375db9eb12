package writepolicy

import (
	"context"
	"sync"

	"github.com/krisalay/lfu-cache/types"
)

type writeReq struct {
	ctx   context.Context
	key   string
	value any
}

// WriteBack queues cache writes and flushes them to the backing store from
// a single background worker. Writes are eventually consistent: if the
// queue is full the write is dropped rather than blocking the cache.
type WriteBack struct {
	store types.Loader
	ch    chan writeReq
	wg    sync.WaitGroup
}

// NewWriteBack starts the flush worker. buffer bounds how many writes may
// be pending before new ones are dropped.
func NewWriteBack(store types.Loader, buffer int) *WriteBack {
	w := &WriteBack{
		store: store,
		ch:    make(chan writeReq, buffer),
	}
	w.wg.Add(1)
	go w.worker()
	return w
}

func (w *WriteBack) OnWrite(ctx context.Context, key string, value any) {
	select {
	case w.ch <- writeReq{ctx, key, value}:
	default:
		// Queue full. Dropping keeps the cache fast; the store misses
		// this update.
	}
}

func (w *WriteBack) worker() {
	defer w.wg.Done()
	for req := range w.ch {
		_ = w.store.Put(req.ctx, req.key, req.value)
	}
}

// Close stops accepting writes and drains the queue before returning.
func (w *WriteBack) Close() {
	close(w.ch)
	w.wg.Wait()
}
