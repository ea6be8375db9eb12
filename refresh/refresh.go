// Package refresh lets callers react to cache reads, typically to warm an
// entry in the background before it expires.
package refresh

// Hook is invoked after every successful cache read. It runs on the read
// path, so implementations must be fast and non-blocking; anything slow
// belongs in a goroutine the hook starts itself.
type Hook interface {
	OnRead(key string, value any)
}

// Func adapts a plain function to the Hook interface.
type Func func(key string, value any)

func (f Func) OnRead(key string, value any) {
	f(key, value)
}
