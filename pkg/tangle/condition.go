package tangle

import "sort"

// NewCondition allocates a Condition: a (kind, payload, token) triple whose
// hash commingles all three (spec.md §3, §4.2.6). token is the heap's Nil
// singleton when the condition has no correlation token.
func (h *Heap) NewCondition(kind string, payload []Address, token Address) Address {
	addr := h.allocate(TagCondition)
	h.slots[addr] = slot{
		tag:            TagCondition,
		fields:         payload,
		length:         len(payload),
		conditionKind:  kind,
		conditionToken: token,
	}
	return h.init(addr)
}

func (h *Heap) ConditionKind(addr Address) string    { return h.slot(addr).conditionKind }
func (h *Heap) ConditionPayload(addr Address) []Address { return h.slot(addr).fields }
func (h *Heap) ConditionToken(addr Address) Address  { return h.slot(addr).conditionToken }

// NewEffect wraps a Condition as a state-lookup request (spec.md §3, §4.2.6).
func (h *Heap) NewEffect(condition Address) Address {
	addr := h.allocate(TagEffect)
	h.slots[addr] = slot{tag: TagEffect, fields: []Address{condition}, length: 1}
	return h.init(addr)
}

func (h *Heap) EffectCondition(addr Address) Address {
	return h.slot(addr).fields[0]
}

// NewSignal wraps a dependency Tree of unresolved/failed Conditions as a
// first-class term (spec.md §3, §4.2.6). The tree is flattened into a
// sorted, deduplicated slice of Condition addresses for storage: Signal's
// own hash and Format output only ever need the member set, never the
// tree's internal shape, so there is no value in heap-allocating the cons
// structure spec.md's data model sketches for Tree — see DESIGN.md for why
// this is the one place the literal "Tree is a cons pair" wording is
// implemented with a flat slice instead.
func (h *Heap) NewSignal(conditions *Tree) Address {
	members := conditions.Members()
	addr := h.allocate(TagSignal)
	h.slots[addr] = slot{tag: TagSignal, fields: members, length: len(members)}
	return h.init(addr)
}

// NewSignalOf is a convenience for a Signal wrapping a single condition.
func (h *Heap) NewSignalOf(condition Address) Address {
	return h.NewSignal(SingletonDeps(h, condition))
}

func (h *Heap) SignalConditions(addr Address) *Tree {
	s := h.slot(addr)
	t := NilDeps()
	for _, c := range s.fields {
		t = t.Union(h, SingletonDeps(h, c))
	}
	return t
}

// SignalUnion merges two Signals into one whose condition set is the union
// of both (spec.md §4.2.6, invariant #3: commutative, associative, idempotent).
func (h *Heap) SignalUnion(a, b Address) Address {
	return h.NewSignal(h.SignalConditions(a).Union(h, h.SignalConditions(b)))
}

// --- Tree: the dependency-set / signal-condition-set value type ---
//
// spec.md models both a Signal's condition set and an evaluation's
// dependency set as a Tree: a balanced-union binary tree of Conditions,
// ordered by condition hash, with commutative/idempotent/associative
// union and a distinct NULL (empty) sentinel. Tree is implemented here as
// a persistent, Heap-independent-at-the-Go-level value (a nil *Tree is
// the NULL sentinel) backed by a sorted, deduplicated slice of Condition
// addresses; union is a linear merge. This gives the required algebraic
// properties directly from slice-merge semantics without needing a
// balanced-tree rebalancing implementation, at the cost of O(n) union
// instead of O(log n) — acceptable here since dependency sets in a single
// evaluation are small relative to the term graph itself.
type Tree struct {
	members []Address // sorted by heap.Hash(addr), deduplicated by heap.Equals
}

// NilDeps returns the empty dependency set (spec.md's NULL sentinel).
func NilDeps() *Tree { return nil }

// SingletonDeps returns a dependency set containing exactly one condition.
func SingletonDeps(h *Heap, condition Address) *Tree {
	return &Tree{members: []Address{condition}}
}

// Members returns the set's conditions in hash order. A nil receiver (the
// NULL sentinel) yields a nil slice.
func (t *Tree) Members() []Address {
	if t == nil {
		return nil
	}
	return t.members
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.members)
}

// Union merges two dependency sets. It is commutative, associative and
// idempotent (spec.md invariant #4): merging a set with itself, or with
// ∅, or in either order, yields an equal set.
func (t *Tree) Union(h *Heap, other *Tree) *Tree {
	if t.Len() == 0 {
		return other
	}
	if other.Len() == 0 {
		return t
	}
	merged := make([]Address, 0, t.Len()+other.Len())
	i, j := 0, 0
	a, b := t.members, other.members
	for i < len(a) && j < len(b) {
		switch compareConditions(h, a[i], b[j]) {
		case -1:
			merged = append(merged, a[i])
			i++
		case 1:
			merged = append(merged, b[j])
			j++
		default:
			merged = append(merged, a[i])
			i++
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return &Tree{members: merged}
}

// Intersects reports whether any condition in t also appears (by Equals)
// in changed. This is the cache-invalidation primitive spec.md §1
// describes: "intersecting changed keys with the stored dependency set."
func (t *Tree) Intersects(h *Heap, changed []Address) bool {
	if t.Len() == 0 || len(changed) == 0 {
		return false
	}
	sortedChanged := append([]Address(nil), changed...)
	sort.Slice(sortedChanged, func(i, j int) bool {
		return h.Hash(sortedChanged[i]) < h.Hash(sortedChanged[j])
	})
	i, j := 0, 0
	for i < len(t.members) && j < len(sortedChanged) {
		switch compareConditions(h, t.members[i], sortedChanged[j]) {
		case -1:
			i++
		case 1:
			j++
		default:
			return true
		}
	}
	return false
}

// compareConditions orders two conditions by hash, breaking ties (hash
// collisions between distinct conditions) by treating hash-equal,
// tag-equal, length-equal conditions as the same element — consistent
// with the heap-wide Equals discipline (spec.md invariant #2).
func compareConditions(h *Heap, a, b Address) int {
	ha, hb := h.Hash(a), h.Hash(b)
	switch {
	case ha < hb:
		return -1
	case ha > hb:
		return 1
	case h.Equals(a, b):
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// DependencyConditions returns the set's members as a slice, matching the
// embedder API's get_state_dependencies (spec.md §6).
func DependencyConditions(t *Tree) []Address {
	return t.Members()
}
