package tangle

// NewList allocates a List from a fully materialized slice of item
// addresses. Lists are allocated with capacity >= length (spec.md §3);
// here capacity is cap(items) as handed in by the caller, or len(items)
// when the caller has no opinion.
func (h *Heap) NewList(items []Address) Address {
	if len(items) == 0 {
		return h.emptyListAddr
	}
	addr := h.allocate(TagList)
	s := &h.slots[addr]
	s.fields = items
	s.length = len(items)
	return h.init(addr)
}

func (h *Heap) ListLength(addr Address) int {
	return h.slot(addr).length
}

func (h *Heap) ListGet(addr Address, i int) (Address, bool) {
	s := h.slot(addr)
	if i < 0 || i >= s.length {
		return NoAddress, false
	}
	return s.fields[i], true
}

func (h *Heap) ListItems(addr Address) []Address {
	return h.slot(addr).fields
}

// ListPush appends one item, extending in place when addr is the most
// recently allocated heap object and has spare capacity, otherwise
// reallocating and redirecting the old address (spec.md §4.2.1 "List").
func (h *Heap) ListPush(addr, item Address) Address {
	s := h.slot(addr)
	if h.isLatestAllocation(addr) && cap(s.fields) > len(s.fields) {
		s.fields = append(s.fields, item)
		s.length++
		s.hash = h.structuralHash(addr)
		return addr
	}
	newItems := growAppend(s.fields, item)
	newAddr := h.allocate(TagList)
	h.slots[newAddr] = slot{tag: TagList, fields: newItems, length: len(newItems)}
	h.init(newAddr)
	if addr != newAddr {
		h.redirect(addr, newAddr)
	}
	return newAddr
}

// ListPushFront prepends one item. There is no in-place fast path for the
// front (every existing index shifts), matching spec.md's "push_front" as
// a distinct, always-reallocating operation from "push".
func (h *Heap) ListPushFront(addr, item Address) Address {
	old := h.slot(addr).fields
	items := make([]Address, 0, len(old)+1)
	items = append(items, item)
	items = append(items, old...)
	return h.NewList(items)
}

// ListUnion concatenates two lists (spec.md §4.2.1 "union (concatenation)").
func (h *Heap) ListUnion(a, b Address) Address {
	sa, sb := h.slot(a), h.slot(b)
	if sa.length == 0 {
		return b
	}
	if sb.length == 0 {
		return a
	}
	items := make([]Address, 0, sa.length+sb.length)
	items = append(items, sa.fields...)
	items = append(items, sb.fields...)
	return h.NewList(items)
}

func (h *Heap) ListSlice(addr Address, start, end int) Address {
	s := h.slot(addr)
	if start < 0 {
		start = 0
	}
	if end > s.length {
		end = s.length
	}
	if start >= end {
		return h.emptyListAddr
	}
	sliced := make([]Address, end-start)
	copy(sliced, s.fields[start:end])
	return h.NewList(sliced)
}

// ListSet performs a structural update at index, returning a new List
// (spec.md §4.2.1 "set" — List update is always copy-on-write, unlike
// push's in-place fast path, since an arbitrary index may alias other
// readers of the backing array).
func (h *Heap) ListSet(addr Address, index int, value Address) (Address, bool) {
	s := h.slot(addr)
	if index < 0 || index >= s.length {
		return NoAddress, false
	}
	if h.Equals(s.fields[index], value) {
		return addr, true
	}
	items := append([]Address(nil), s.fields...)
	items[index] = value
	return h.NewList(items), true
}

func (h *Heap) ListReverse(addr Address) Address {
	s := h.slot(addr)
	rev := make([]Address, s.length)
	for i, v := range s.fields {
		rev[s.length-1-i] = v
	}
	return h.NewList(rev)
}

// ListFindIndex returns the index of the first item equal (via Equals) to
// target, or -1.
func (h *Heap) ListFindIndex(addr, target Address) int {
	s := h.slot(addr)
	for i, v := range s.fields {
		if h.Equals(v, target) {
			return i
		}
	}
	return -1
}

func (h *Heap) isLatestAllocation(addr Address) bool {
	return h.resolve(addr) == Address(len(h.slots)-1)
}

func growAppend(items []Address, item Address) []Address {
	if len(items) == cap(items) {
		newCap := cap(items) * 2
		if newCap == 0 {
			newCap = 4
		}
		grown := make([]Address, len(items), newCap)
		copy(grown, items)
		items = grown
	}
	return append(items, item)
}

// ListCollect materializes an iterator into a List (spec.md §4.2.1
// "collect"): if source is already a List, it is returned unchanged; if
// its size_hint is known, the backing array is pre-allocated exactly;
// otherwise it grows by doubling. Items are not forced — whatever the
// iterator yields (possibly an unevaluated Application, for MapIterator)
// is stored as-is.
func (h *Heap) ListCollect(ev *Evaluator, it Iterator, state StateStore) (Address, *Tree) {
	if lst, ok := it.(listIterator); ok {
		return lst.listAddr, NilDeps()
	}
	deps := NilDeps()
	var items []Address
	if n, ok := it.SizeHint(); ok {
		items = make([]Address, 0, n)
	}
	cur := it
	for {
		item, next, itemDeps, ok := cur.Next(ev, state)
		deps = deps.Union(h, itemDeps)
		if !ok {
			break
		}
		items = append(items, item)
		cur = next
	}
	return h.NewList(items), deps
}

// ListCollectStrict is ListCollect's strict sibling: every item is forced
// to weak head normal form. If any item becomes a Signal, no List is
// built: every remaining item is still forced, and the result is one
// Signal holding the union of every signal encountered (spec.md §4.2.1
// "collect_strict").
func (h *Heap) ListCollectStrict(ev *Evaluator, it Iterator, state StateStore) (Address, *Tree) {
	deps := NilDeps()
	var items []Address
	var signal *Tree
	cur := it
	for {
		item, next, itemDeps, ok := cur.Next(ev, state)
		deps = deps.Union(h, itemDeps)
		if !ok {
			break
		}
		result, evalDeps := ev.Evaluate(item, state)
		deps = deps.Union(h, evalDeps)
		if h.Tag(result) == TagSignal {
			sigTree := h.SignalConditions(result)
			if signal == nil {
				signal = sigTree
			} else {
				signal = signal.Union(h, sigTree)
			}
		} else if signal == nil {
			items = append(items, result)
		}
		cur = next
	}
	if signal != nil {
		return h.NewSignal(signal), deps
	}
	return h.NewList(items), deps
}

// listIterator lets a List masquerade as an Iterator so generic
// collection code need not special-case "source is already a list".
type listIterator struct {
	listAddr Address
	items    []Address
	pos      int
}

func (h *Heap) ListAsIterator(addr Address) Iterator {
	s := h.slot(addr)
	return listIterator{listAddr: addr, items: s.fields, pos: 0}
}

func (l listIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	if l.pos >= len(l.items) {
		return NoAddress, nil, NilDeps(), false
	}
	return l.items[l.pos], listIterator{listAddr: l.listAddr, items: l.items, pos: l.pos + 1}, NilDeps(), true
}

func (l listIterator) SizeHint() (int, bool) {
	return len(l.items) - l.pos, true
}

// --- partition list: two-way buffer used by FilterIterator-adjacent
// consumers that need to split a collection without an intermediate copy
// (spec.md §4.2.1 "Partition list"). ---

// PartitionList writes items satisfying pred from the low end and the
// rest from the high end of one contiguous buffer, then splits the
// buffer into two List terms at the midpoint. The right partition is
// reversed on finalization to restore original relative order.
func PartitionList(items []Address, pred func(Address) bool) (left, right []Address) {
	buf := make([]Address, len(items))
	lo, hi := 0, len(items)
	for _, it := range items {
		if pred(it) {
			buf[lo] = it
			lo++
		} else {
			hi--
			buf[hi] = it
		}
	}
	left = append([]Address(nil), buf[:lo]...)
	right = make([]Address, len(items)-lo)
	for i, j := 0, len(items)-1; i < len(right); i, j = i+1, j-1 {
		right[i] = buf[j]
	}
	return left, right
}
