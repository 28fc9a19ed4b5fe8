package tangle

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type memoEntry struct {
	result Address
	deps   *Tree
}

// Memo caches (term -> Evaluate result) pairs keyed by the term's
// Address, bounded by an LRU eviction policy (spec.md §1's suggested
// "cache (result, deps) pairs, invalidate by intersecting the dependency
// set with changed state"). A Memo is only ever valid against the one
// Heap it was built for; mixing Addresses from two Heaps into one Memo
// silently corrupts it, the same caveat Evaluator carries for Heap.
type Memo struct {
	heap  *Heap
	cache *lru.Cache[Address, memoEntry]
}

// NewMemo builds a Memo holding at most size entries.
func NewMemo(heap *Heap, size int) (*Memo, error) {
	c, err := lru.New[Address, memoEntry](size)
	if err != nil {
		return nil, err
	}
	return &Memo{heap: heap, cache: c}, nil
}

// Get returns the cached (result, deps) for term, if present.
func (m *Memo) Get(term Address) (Address, *Tree, bool) {
	e, ok := m.cache.Get(term)
	if !ok {
		return NoAddress, NilDeps(), false
	}
	return e.result, e.deps, true
}

// Put records the outcome of evaluating term.
func (m *Memo) Put(term, result Address, deps *Tree) {
	m.cache.Add(term, memoEntry{result: result, deps: deps})
}

// Invalidate evicts every cached entry whose dependency set intersects
// changed (spec.md §1's cache-invalidation primitive), returning the
// number of entries removed.
func (m *Memo) Invalidate(changed []Address) int {
	removed := 0
	for _, term := range m.cache.Keys() {
		e, ok := m.cache.Peek(term)
		if !ok {
			continue
		}
		if e.deps.Intersects(m.heap, changed) {
			m.cache.Remove(term)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently cached.
func (m *Memo) Len() int { return m.cache.Len() }

// Purge clears the cache entirely.
func (m *Memo) Purge() { m.cache.Purge() }
