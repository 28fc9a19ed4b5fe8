package tangle

// Cell is scratch, explicitly-mutable heap storage (spec.md §9's escape
// hatch for "implementations may track iteration state out of band").
// It is not currently wired into any builtin or iterator: every iterator
// driver in this package (flattenIterator included) threads its state
// through plain Go struct fields on the Iterator value instead, which is
// enough for a value that never outlives the call stack of the loop
// driving it. Cell stays defined for the case spec.md §9 anticipates but
// this implementation hasn't needed yet: iteration state that must
// survive independently of its driving Go frame, heap-resident the way a
// redirect or a memo entry is.
//
// Unlike every other term, a Cell's field is mutated in place after
// construction and its hash is never read — Cells never appear in a
// Signal's condition set or a List's items, so they never need to compare
// equal to anything. The Heap still owns the slot (no separate allocator),
// but a released Cell is pushed onto a free list and its address reused by
// the next NewCell call, the way the teacher's worker pool recycles
// goroutine slots instead of spawning fresh ones per task.
func (h *Heap) NewCell(value Address) Address {
	if n := len(h.freeCells); n > 0 {
		addr := h.freeCells[n-1]
		h.freeCells = h.freeCells[:n-1]
		h.slots[addr] = slot{tag: TagCell, fields: []Address{value}, length: 1, init: true}
		return addr
	}
	addr := h.allocate(TagCell)
	h.slots[addr] = slot{tag: TagCell, fields: []Address{value}, length: 1, init: true}
	return addr
}

func (h *Heap) CellGet(addr Address) Address {
	return h.slot(addr).fields[0]
}

func (h *Heap) CellSet(addr, value Address) {
	h.slot(addr).fields[0] = value
}

// ReleaseCell returns a Cell's slot to the free list once its owning
// iterator is exhausted or abandoned. Calling it is an optimization, not a
// correctness requirement: an un-released Cell is simply never reused and
// lingers harmlessly at the end of the arena.
func (h *Heap) ReleaseCell(addr Address) {
	h.freeCells = append(h.freeCells, addr)
}
