// Package cache provides a small generic LRU cache.
//
// It memoizes font source queries: resolving a family list against the
// system font index is far more expensive than hashing the query.
//
//	c := cache.New[string, source.Descriptor](64)
//	c.Set(key, desc)
//	desc, ok := c.Get(key)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
