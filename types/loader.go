package types

import "context"

// Loader is the contract between the cache and a backing store.
type Loader interface {

	// Load is called on a cache miss to fetch the value for key from the
	// backing store. Returning a nil value with a nil error means the key
	// does not exist anywhere; the cache reports a plain miss.
	Load(ctx context.Context, key string) (any, error)

	// Put writes a value back to the backing store. Write policies decide
	// when this is called; it never stores anything in the cache itself.
	Put(ctx context.Context, key string, value any) error
}
