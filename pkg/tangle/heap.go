package tangle

import "fmt"

// recordHashThreshold is the field count at which a Record grows an
// auxiliary lookup hashmap instead of doing a linear key scan (spec.md
// §3, "Records of >= 16 fields maintain an auxiliary hashmap").
const recordHashThreshold = 16

// hashmapMinBuckets is the smallest bucket array a Hashmap/Hashset
// allocates the moment it stops being empty (spec.md §3).
const hashmapMinBuckets = 8

// hashmapLoadFactor is the maximum load before a Hashmap doubles its
// bucket array (spec.md §3, §4.2.3, §9).
const hashmapLoadFactor = 0.75

// Heap is a linear arena of terms. It is the sole owner of every Address it
// hands out; terms are never individually freed (spec.md §3 "Lifecycle") —
// only short-lived Cells are explicitly released (see cell.go).
//
// A Heap is not safe for concurrent use. Evaluation is specified as
// single-threaded (spec.md §5); a caller that wants concurrency shards
// work across independent Heaps, never shares one.
type Heap struct {
	slots []slot

	// singletons, populated once in NewHeap.
	nilAddr         Address
	trueAddr        Address
	falseAddr       Address
	emptyListAddr   Address
	emptyRecordAddr Address
	emptyHashmapAddr Address
	emptyHashsetAddr Address
	emptyIterAddr   Address

	freeCells []Address
}

// NewHeap allocates an empty heap with its interned singletons already in
// place.
func NewHeap() *Heap {
	h := &Heap{slots: make([]slot, 0, 256)}
	h.nilAddr = h.allocScalar(TagNil, slot{})
	h.trueAddr = h.allocScalar(TagBool, slot{boolVal: true})
	h.falseAddr = h.allocScalar(TagBool, slot{boolVal: false})
	h.emptyListAddr = h.allocScalar(TagList, slot{fields: nil, length: 0})
	h.emptyRecordAddr = h.allocScalar(TagRecord, slot{fields: nil, keys: nil, length: 0})
	h.emptyHashmapAddr = h.allocScalar(TagHashmap, slot{length: 0})
	h.emptyHashsetAddr = h.allocScalar(TagHashset, slot{length: 0})
	h.emptyIterAddr = h.allocScalar(TagIteratorEmpty, slot{})
	return h
}

// allocate reserves a new slot for the given tag and returns its address.
// The slot is zero-valued and not yet initialized (spec.md §4.1 "allocate").
func (h *Heap) allocate(tag Tag) Address {
	addr := Address(len(h.slots))
	h.slots = append(h.slots, slot{tag: tag})
	return addr
}

// allocScalar is a convenience used internally and by singleton
// construction: allocate, fill in the body, init, return.
func (h *Heap) allocScalar(tag Tag, body slot) Address {
	addr := h.allocate(tag)
	body.tag = tag
	h.slots[addr] = body
	return h.init(addr)
}

// init computes and stores the structural hash for the slot at addr, marks
// it immutable, and returns addr unchanged (spec.md §4.1 "init"). Calling
// init twice on the same address is a no-op past the first call: terms are
// immutable once initialized, matching the "Bodies are variant-specific
// fields ... terms are not individually freed" lifecycle.
func (h *Heap) init(addr Address) Address {
	s := &h.slots[addr]
	if s.init {
		return addr
	}
	s.hash = h.structuralHash(addr)
	s.init = true
	return addr
}

// redirect rewrites old in place to be a one-field redirect pointing at
// new. Every subsequent load through old transparently follows the
// redirect (spec.md §4.1 "redirect"). Used by ListPush whenever it
// reallocates a List instead of extending it in place.
func (h *Heap) redirect(old, new Address) {
	h.slots[old] = slot{tag: TagRedirect, redirectTo: new, init: true, hash: h.slots[h.resolve(new)].hash}
}

// resolve follows redirect chains and returns the terminal address.
func (h *Heap) resolve(addr Address) Address {
	for {
		s := &h.slots[addr]
		if s.tag != TagRedirect {
			return addr
		}
		addr = s.redirectTo
	}
}

func (h *Heap) slot(addr Address) *slot {
	return &h.slots[h.resolve(addr)]
}

// Tag returns the variant of the term at addr, following redirects.
func (h *Heap) Tag(addr Address) Tag {
	return h.slot(addr).tag
}

// Length returns the term's field/item count (spec.md §4.1 equality uses
// this alongside hash and tag).
func (h *Heap) Length(addr Address) int {
	return h.slot(addr).length
}

// Hash returns the term's precomputed structural hash.
func (h *Heap) Hash(addr Address) uint64 {
	return h.slot(addr).hash
}

// Equals implements spec.md invariant #2: hash, tag and length equal
// implies the terms are considered equal. This is a deliberately
// collision-tolerant fast path, not a recursive structural comparison —
// callers that need exact equality in the face of hash collisions must
// perform their own deep check; none of the builtins in this package do,
// matching the spec's documented tolerance.
func (h *Heap) Equals(a, b Address) bool {
	sa, sb := h.slot(a), h.slot(b)
	return sa.hash == sb.hash && sa.tag == sb.tag && sa.length == sb.length
}

func (h *Heap) fieldGet(addr Address, i int) Address {
	return h.slot(addr).fields[i]
}

func (h *Heap) fieldSet(addr Address, i int, v Address) {
	h.slot(addr).fields[i] = v
}

// --- scalar constructors ---

// Nil returns the interned Nil singleton.
func (h *Heap) Nil() Address { return h.nilAddr }

// Bool returns the interned Boolean(true)/Boolean(false) singleton.
func (h *Heap) Bool(v bool) Address {
	if v {
		return h.trueAddr
	}
	return h.falseAddr
}

// Int allocates an Int term.
func (h *Heap) Int(v int64) Address {
	return h.allocScalar(TagInt, slot{intVal: v})
}

// Float allocates a Float term.
func (h *Heap) Float(v float64) Address {
	return h.allocScalar(TagFloat, slot{floatVal: v})
}

// String allocates a String term.
func (h *Heap) String(v string) Address {
	return h.allocScalar(TagString, slot{stringVal: v, length: len(v)})
}

// Symbol allocates a Symbol term from an opaque 32-bit tag.
func (h *Heap) Symbol(v uint32) Address {
	return h.allocScalar(TagSymbol, slot{symbolVal: v})
}

// IntValue, FloatValue, StringValue, SymbolValue, BoolValue panic if addr
// is not the matching tag; callers (builtins, Format) are expected to have
// already checked Tag(addr) via the overload-matching protocol in §4.3.
func (h *Heap) IntValue(addr Address) int64     { return h.mustTag(addr, TagInt).intVal }
func (h *Heap) FloatValue(addr Address) float64 { return h.mustTag(addr, TagFloat).floatVal }
func (h *Heap) StringValue(addr Address) string { return h.mustTag(addr, TagString).stringVal }
func (h *Heap) SymbolValue(addr Address) uint32 { return h.mustTag(addr, TagSymbol).symbolVal }
func (h *Heap) BoolValue(addr Address) bool     { return h.mustTag(addr, TagBool).boolVal }

func (h *Heap) mustTag(addr Address, want Tag) *slot {
	s := h.slot(addr)
	if s.tag != want {
		panic(fmt.Sprintf("tangle: expected %s term, got %s", want, s.tag))
	}
	return s
}

// IsAtomic reports whether a term is fully reduced and state-independent:
// a scalar, or an aggregate/closure whose components are all themselves
// atomic (spec.md §3 "Invariants", §4.5 step 1). Application, Variable,
// Effect, Signal and Tree are never atomic; everything else is atomic iff
// its children are.
func (h *Heap) IsAtomic(addr Address) bool {
	s := h.slot(addr)
	switch s.tag {
	case TagNil, TagBool, TagInt, TagFloat, TagString, TagSymbol,
		TagConstructor, TagBuiltin:
		return true
	case TagApplication, TagVariable, TagEffect, TagSignal, TagTree, TagCell:
		return false
	case TagList:
		for _, f := range s.fields {
			if !h.IsAtomic(f) {
				return false
			}
		}
		return true
	case TagRecord:
		for _, k := range s.keys {
			if !h.IsAtomic(k) {
				return false
			}
		}
		for _, f := range s.fields {
			if !h.IsAtomic(f) {
				return false
			}
		}
		return true
	case TagHashmap, TagHashset:
		for _, b := range s.hmBuckets {
			if !b.occupied {
				continue
			}
			if !h.IsAtomic(b.key) || (s.tag == TagHashmap && !h.IsAtomic(b.value)) {
				return false
			}
		}
		return true
	case TagLambda:
		return h.IsAtomic(s.fields[0])
	case TagPartial:
		for _, f := range s.fields {
			if !h.IsAtomic(f) {
				return false
			}
		}
		return true
	case TagCondition:
		for _, f := range s.fields {
			if !h.IsAtomic(f) {
				return false
			}
		}
		return s.conditionToken == NoAddress || h.IsAtomic(s.conditionToken)
	default:
		if isIteratorTag(s.tag) {
			for _, f := range s.fields {
				if f != NoAddress && !h.IsAtomic(f) {
					return false
				}
			}
			return true
		}
		return false
	}
}
