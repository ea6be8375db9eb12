//go:build !checked

package lfu

// check is a no-op outside "checked" builds. See checked.go.
func (c *Cache) check() {}
