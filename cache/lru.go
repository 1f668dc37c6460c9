// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is a typed, size bounded LRU cache extends golang-lru.
// It's safe for concurrent use.
type LRU[K comparable, V any] struct {
	cache   *lru.Cache
	maxSize int
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{c, maxSize}, nil
}

// MustNewLRU is like NewLRU but panics on invalid size.
func MustNewLRU[K comparable, V any](maxSize int) *LRU[K, V] {
	c, err := NewLRU[K, V](maxSize)
	if err != nil {
		panic(err)
	}
	return c
}

// Add adds a value to the cache, evicting the least recently used entry if full.
func (l *LRU[K, V]) Add(key K, value V) {
	l.cache.Add(key, value)
}

// Get looks up a key's value and marks it as most recently used.
func (l *LRU[K, V]) Get(key K) (v V, ok bool) {
	if raw, has := l.cache.Get(key); has {
		return raw.(V), true
	}
	return
}

// Peek looks up a key's value without updating recency.
func (l *LRU[K, V]) Peek(key K) (v V, ok bool) {
	if raw, has := l.cache.Peek(key); has {
		return raw.(V), true
	}
	return
}

// Keys returns the cached keys, from oldest to newest.
func (l *LRU[K, V]) Keys() []K {
	raw := l.cache.Keys()
	keys := make([]K, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, k.(K))
	}
	return keys
}

// Loader defines loader to load value.
type Loader[K comparable, V any] func(key K) (V, error)

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU[K, V]) GetOrLoad(key K, loader Loader[K, V]) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		return v, err
	}

	l.Add(key, v)
	return v, nil
}

// Clone returns an independent copy with the same capacity and recency order.
func (l *LRU[K, V]) Clone() *LRU[K, V] {
	cpy := MustNewLRU[K, V](l.maxSize)
	cpy.Merge(l)
	return cpy
}

// Merge adds every entry of other into l, oldest first, so other's most
// recently used entries end up the most recent in l.
func (l *LRU[K, V]) Merge(other *LRU[K, V]) {
	for _, k := range other.Keys() {
		if v, ok := other.Peek(k); ok {
			l.Add(k, v)
		}
	}
}
