package tangle

// hmBucket is one open-addressed slot of a Hashmap's (or Hashset's) bucket
// array. An empty bucket is encoded by occupied == false (spec.md §4.2.3
// "Empty buckets encoded by a zero key slot" — occupied is that zero/non-
// zero distinction made explicit rather than relying on a sentinel key
// value, since keys are heap addresses and 0 is a valid one).
type hmBucket struct {
	occupied bool
	key      Address
	value    Address // NoAddress for Hashset entries
}

// NewHashmap builds a Hashmap from key/value pairs, following the same
// open-addressing discipline as Set (spec.md §3, §4.2.3): 8-bucket minimum
// once non-empty, 0.75 load factor, linear probing with wrap.
func (h *Heap) NewHashmap(keys, values []Address) Address {
	if len(keys) == 0 {
		return h.emptyHashmapAddr
	}
	addr := h.allocate(TagHashmap)
	s := &h.slots[addr]
	s.hmBuckets = newBucketArray(bucketCountFor(len(keys)))
	for i, k := range keys {
		hmInsert(h, s, k, values[i])
	}
	s.length = len(keys)
	return h.init(addr)
}

func bucketCountFor(n int) int {
	c := hashmapMinBuckets
	for float64(n) > float64(c)*hashmapLoadFactor {
		c *= 2
	}
	return c
}

func newBucketArray(n int) []hmBucket {
	return make([]hmBucket, n)
}

// hmInsert performs linear-probed insertion/overwrite without resizing;
// callers must ensure the bucket array has room (see HashmapSet for the
// resize-on-demand path).
func hmInsert(h *Heap, s *slot, key, value Address) {
	n := len(s.hmBuckets)
	idx := int(h.Hash(key) % uint64(n))
	for i := 0; i < n; i++ {
		b := &s.hmBuckets[(idx+i)%n]
		if !b.occupied {
			*b = hmBucket{occupied: true, key: key, value: value}
			return
		}
		if h.Equals(b.key, key) {
			b.value = value
			return
		}
	}
	panic("tangle: hashmap bucket array full, caller failed to size ahead of insert")
}

// HashmapGet looks up key, returning (value, true) or (NoAddress, false).
func (h *Heap) HashmapGet(addr, key Address) (Address, bool) {
	s := h.slot(addr)
	n := len(s.hmBuckets)
	if n == 0 {
		return NoAddress, false
	}
	idx := int(h.Hash(key) % uint64(n))
	for i := 0; i < n; i++ {
		b := &s.hmBuckets[(idx+i)%n]
		if !b.occupied {
			return NoAddress, false
		}
		if h.Equals(b.key, key) {
			return b.value, true
		}
	}
	return NoAddress, false
}

func (h *Heap) HashmapHas(addr, key Address) bool {
	_, ok := h.HashmapGet(addr, key)
	return ok
}

// HashmapSet returns a new Hashmap with key bound to value, copying the
// entire bucket table into a fresh allocation (spec.md §4.2.3: "set copies
// the entire table into a new allocation — immutable semantics"), growing
// it first if the resulting load factor would exceed 0.75.
func (h *Heap) HashmapSet(addr, key, value Address) Address {
	s := h.slot(addr)
	existing, had := h.HashmapGet(addr, key)
	newLen := s.length
	if !had {
		newLen++
	} else if existing == value {
		return addr
	}

	bucketCount := len(s.hmBuckets)
	if bucketCount == 0 {
		bucketCount = hashmapMinBuckets
	}
	for float64(newLen) > float64(bucketCount)*hashmapLoadFactor {
		bucketCount *= 2
	}

	newAddr := h.allocate(s.tag)
	ns := &h.slots[newAddr]
	ns.hmBuckets = newBucketArray(bucketCount)
	for _, b := range s.hmBuckets {
		if b.occupied {
			hmInsert(h, ns, b.key, b.value)
		}
	}
	hmInsert(h, ns, key, value)
	ns.length = newLen
	return h.init(newAddr)
}

// HashmapEntries returns the occupied (key, value) pairs in bucket-array
// (insertion-unrelated, implementation-defined but deterministic for a
// fixed build history) order, per spec.md §3 "insertion order undefined".
func (h *Heap) HashmapEntries(addr Address) (keys, values []Address) {
	s := h.slot(addr)
	keys = make([]Address, 0, s.length)
	values = make([]Address, 0, s.length)
	for _, b := range s.hmBuckets {
		if b.occupied {
			keys = append(keys, b.key)
			values = append(values, b.value)
		}
	}
	return keys, values
}

// --- Hashset: a Hashmap wrapper with nil values (spec.md §3) ---

func (h *Heap) NewHashset(members []Address) Address {
	if len(members) == 0 {
		return h.emptyHashsetAddr
	}
	addr := h.allocate(TagHashset)
	s := &h.slots[addr]
	s.hmBuckets = newBucketArray(bucketCountFor(len(members)))
	for _, m := range members {
		hmInsert(h, s, m, h.nilAddr)
	}
	s.length = len(members)
	return h.init(addr)
}

func (h *Heap) HashsetHas(addr, member Address) bool {
	return h.HashmapHas(addr, member)
}

func (h *Heap) HashsetAdd(addr, member Address) Address {
	return h.HashmapSet(addr, member, h.nilAddr)
}

func (h *Heap) HashsetMembers(addr Address) []Address {
	keys, _ := h.HashmapEntries(addr)
	return keys
}
