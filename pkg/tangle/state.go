package tangle

import (
	"sync"

	"github.com/google/uuid"
)

// StateStore is the embedder-facing collaborator spec.md §6 calls "state":
// a mapping from Condition to value term. Keys are compared by Condition
// hash plus the same collision-tolerant Equals discipline used everywhere
// else in the heap (spec.md §6 "State store contract"). Evaluate accepts
// any StateStore; NilStore and MapStore below are the two this package
// ships, the former for evaluating against an always-empty state (spec.md
// §6 "the NULL sentinel for empty state"), the latter a minimal concrete
// implementation an embedder (or a test) can populate directly.
type StateStore interface {
	// Lookup returns the value bound to condition and true, or
	// (NoAddress, false) if the condition is unresolved.
	Lookup(h *Heap, condition Address) (Address, bool)
}

// NilStore is the empty StateStore: every condition is unresolved.
type NilStore struct{}

func (NilStore) Lookup(h *Heap, condition Address) (Address, bool) {
	return NoAddress, false
}

type storeEntry struct {
	condition Address
	value     Address
}

// MapStore is a minimal concrete StateStore, bucketed by condition hash
// with a linear scan for the exact match (the same discipline Hashmap
// itself uses), guarded by a RWMutex so one MapStore can be safely shared
// by an embedder that resolves conditions from multiple goroutines between
// evaluation rounds (the evaluator's own single-threaded invariant, spec.md
// §5, is about one Heap during one evaluate call — it says nothing about
// how a StateStore is populated).
type MapStore struct {
	mu      sync.RWMutex
	heap    *Heap
	entries map[uint64][]storeEntry
}

// NewMapStore creates an empty MapStore. heap is the Heap whose Conditions
// will be used as keys — Condition hashes and Equals are only meaningful
// relative to one heap.
func NewMapStore(heap *Heap) *MapStore {
	return &MapStore{heap: heap, entries: make(map[uint64][]storeEntry)}
}

func (m *MapStore) Lookup(h *Heap, condition Address) (Address, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bucket := m.entries[h.Hash(condition)]
	for _, e := range bucket {
		if h.Equals(e.condition, condition) {
			return e.value, true
		}
	}
	return NoAddress, false
}

// Resolve populates (or overwrites) the value bound to condition. It
// models the embedder's "resume" step (spec.md §5): populate the state
// store, then call evaluate again on the same term graph.
func (m *MapStore) Resolve(condition, value Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.heap
	key := h.Hash(condition)
	bucket := m.entries[key]
	for i, e := range bucket {
		if h.Equals(e.condition, condition) {
			bucket[i].value = value
			return
		}
	}
	m.entries[key] = append(bucket, storeEntry{condition: condition, value: value})
}

// NewToken returns a fresh correlation token as a String term, using
// google/uuid the way prysmaticlabs-prysm's request layer mints request
// ids — used when a caller builds a set/increment/decrement Condition and
// does not supply their own token (see builtins_variable.go).
func (h *Heap) NewToken() Address {
	return h.String(uuid.NewString())
}
