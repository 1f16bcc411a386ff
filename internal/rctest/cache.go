package rctest

import (
	lru "github.com/hashicorp/golang-lru/v2"

	rcforest "github.com/rcforest/go-rcforest"
)

// SubtreeCache is an extra differential check layered on top of a
// forest under stress test: it independently caches the last N
// GetSubtree results and, on every lookup, compares the cached value
// against a freshly recomputed one. A mismatch means something
// invalidated a cached aggregate without the cache being told —
// exactly the class of bug a pure "does it return the same answer"
// check would miss if the forest only ever happened to be queried
// once per vertex.
type SubtreeCache[V comparable, E comparable] struct {
	forest rcforest.Forest[V, E]
	cache  *lru.Cache[int, V]
}

// NewSubtreeCache wraps forest with an LRU of the given size.
func NewSubtreeCache[V comparable, E comparable](forest rcforest.Forest[V, E], size int) (*SubtreeCache[V, E], error) {
	c, err := lru.New[int, V](size)
	if err != nil {
		return nil, err
	}
	return &SubtreeCache[V, E]{forest: forest, cache: c}, nil
}

// Invalidate drops every cached entry, for use after a batch that could
// have changed subtree aggregates.
func (s *SubtreeCache[V, E]) Invalidate() { s.cache.Purge() }

// Get returns the current GetSubtree(vertex) and reports whether the
// value differs from what was cached for vertex before this call, if
// anything was cached at all. The harness treats a mismatch as a
// failed differential check; it then always refreshes the cache entry.
func (s *SubtreeCache[V, E]) Get(vertex int) (value V, mismatch bool, err error) {
	fresh, err := s.forest.GetSubtree(vertex)
	if err != nil {
		return value, false, err
	}
	if cached, ok := s.cache.Get(vertex); ok && cached != fresh {
		mismatch = true
	}
	s.cache.Add(vertex, fresh)
	return fresh, mismatch, nil
}
