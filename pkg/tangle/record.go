package tangle

// NewRecord builds a Record from parallel key/value address slices
// (spec.md §3, §4.2.2). When len(keys) >= recordHashThreshold an auxiliary
// lookup hashmap mirroring key->index is built eagerly at construction
// time; below threshold, Get/Has fall back to a linear key scan.
func (h *Heap) NewRecord(keys, values []Address) Address {
	if len(keys) == 0 {
		return h.emptyRecordAddr
	}
	addr := h.allocate(TagRecord)
	s := &h.slots[addr]
	s.keys = keys
	s.fields = values
	s.length = len(keys)
	if len(keys) >= recordHashThreshold {
		s.lookup = buildRecordIndex(h, keys)
	}
	return h.init(addr)
}

func buildRecordIndex(h *Heap, keys []Address) map[uint64][]int {
	idx := make(map[uint64][]int, len(keys))
	for i, k := range keys {
		hv := h.Hash(k)
		idx[hv] = append(idx[hv], i)
	}
	return idx
}

func (h *Heap) RecordKeys(addr Address) []Address   { return h.slot(addr).keys }
func (h *Heap) RecordValues(addr Address) []Address { return h.slot(addr).fields }
func (h *Heap) RecordLength(addr Address) int       { return h.slot(addr).length }

// RecordGet returns the value bound to key, or (NoAddress, false).
func (h *Heap) RecordGet(addr, key Address) (Address, bool) {
	s := h.slot(addr)
	if s.lookup != nil {
		for _, i := range s.lookup[h.Hash(key)] {
			if h.Equals(s.keys[i], key) {
				return s.fields[i], true
			}
		}
		return NoAddress, false
	}
	for i, k := range s.keys {
		if h.Equals(k, key) {
			return s.fields[i], true
		}
	}
	return NoAddress, false
}

func (h *Heap) RecordHas(addr, key Address) bool {
	_, ok := h.RecordGet(addr, key)
	return ok
}

// RecordSet performs a structural update, returning a new Record. If value
// is already equal (via Equals) to the current binding, the same record is
// returned unchanged (spec.md §4.2.2, invariant #6). Setting a key that is
// not already present appends it.
func (h *Heap) RecordSet(addr, key, value Address) Address {
	s := h.slot(addr)
	for i, k := range s.keys {
		if h.Equals(k, key) {
			if h.Equals(s.fields[i], value) {
				return addr
			}
			newKeys := append([]Address(nil), s.keys...)
			newValues := append([]Address(nil), s.fields...)
			newValues[i] = value
			return h.NewRecord(newKeys, newValues)
		}
	}
	newKeys := append(append([]Address(nil), s.keys...), key)
	newValues := append(append([]Address(nil), s.fields...), value)
	return h.NewRecord(newKeys, newValues)
}

// RecordIterate yields key/value pairs as a List of two-element Lists, the
// same shape §4.2.2 "iterate" describes informally ("yields key/value
// pairs").
func (h *Heap) RecordIterate(addr Address) Iterator {
	s := h.slot(addr)
	pairs := make([]Address, s.length)
	for i := range s.keys {
		pairs[i] = h.NewList([]Address{s.keys[i], s.fields[i]})
	}
	return h.ListAsIterator(h.NewList(pairs))
}
