package tangle

// Iterator is the execution-time (not heap-resident) driver behind every
// lazy collection term (spec.md §4.2.5). Each step returns the yielded
// item (a heap Address), the Iterator to use for the next step, any
// dependencies incurred producing this item, and whether a item was
// produced at all. Iterator values themselves are plain Go values — only
// the *original* iterator term (as built by NewRangeIterator and friends)
// is heap-resident; mid-iteration state lives on the Go stack/heap the
// normal way, following spec.md §9's "Implementations may alternatively
// inline this state ... when the surrounding ownership model allows stack
// allocation of finite-lifetime cells."
type Iterator interface {
	Next(ev *Evaluator, state StateStore) (item Address, next Iterator, deps *Tree, ok bool)
	SizeHint() (n int, known bool)
}

func exhausted() (Address, Iterator, *Tree, bool) {
	return NoAddress, nil, NilDeps(), false
}

// newIterTerm is the common constructor shape for every iterator variant:
// allocate a slot of the given tag holding fields as its only payload.
func (h *Heap) newIterTerm(tag Tag, fields []Address) Address {
	addr := h.allocate(tag)
	h.slots[addr] = slot{tag: tag, fields: fields, length: len(fields)}
	return h.init(addr)
}

// rebuildIterator reconstructs an iterator term of the same tag as
// original with newFields, used by substitute.go / shift when an
// iterator term (e.g. one embedded in a Lambda body) needs its captured
// sub-terms rewritten.
func (h *Heap) rebuildIterator(original Address, newFields []Address) Address {
	return h.newIterTerm(h.Tag(original), newFields)
}

// IteratorFor builds the Go-level Iterator driver for a heap-resident
// iterator term.
func (h *Heap) IteratorFor(addr Address) Iterator {
	s := h.slot(addr)
	switch s.tag {
	case TagIteratorEmpty:
		return emptyIterator{}
	case TagIteratorOnce:
		return onceIterator{value: s.fields[0]}
	case TagIteratorRange:
		return rangeIterator{offset: h.IntValue(s.fields[0]), remaining: h.IntValue(s.fields[1])}
	case TagIteratorRepeat:
		return repeatIterator{value: s.fields[0]}
	case TagIteratorIntegers:
		return integersIterator{next: 0}
	case TagIteratorMap:
		return mapIterator{source: h.IteratorFor(s.fields[0]), fn: s.fields[1]}
	case TagIteratorFilter:
		return filterIterator{source: h.IteratorFor(s.fields[0]), pred: s.fields[1]}
	case TagIteratorFlatten:
		return flattenIterator{outer: h.IteratorFor(s.fields[0])}
	case TagIteratorZip:
		return zipIterator{a: h.IteratorFor(s.fields[0]), b: h.IteratorFor(s.fields[1])}
	case TagIteratorTake:
		return takeIterator{source: h.IteratorFor(s.fields[0]), remaining: h.IntValue(s.fields[1])}
	case TagIteratorSkip:
		return skipIterator{source: h.IteratorFor(s.fields[0]), remaining: h.IntValue(s.fields[1])}
	case TagIteratorIntersperse:
		return intersperseIterator{source: h.IteratorFor(s.fields[0]), sep: s.fields[1], atSep: false, started: false}
	case TagIteratorIndexedAccessor:
		return indexedAccessorIterator{source: h.IteratorFor(s.fields[0]), index: int(h.IntValue(s.fields[1]))}
	case TagIteratorHashmapKeys:
		keys, _ := h.HashmapEntries(s.fields[0])
		return sliceIterator{items: keys}
	case TagIteratorHashmapValues:
		_, values := h.HashmapEntries(s.fields[0])
		return sliceIterator{items: values}
	case TagList:
		return h.ListAsIterator(addr)
	default:
		panic("tangle: not an iterable term: " + s.tag.String())
	}
}

// IsIterable reports whether a term can be driven by IteratorFor — used
// by the query resolver and by strict builtins that accept "any
// iterable" (spec.md §4.4's "Iterable (List, Range, etc.)" rows).
func (h *Heap) IsIterable(addr Address) bool {
	return h.Tag(addr) == TagList || isIteratorTag(h.Tag(addr))
}

// sliceIterator drives a precomputed, fully materialized slice — used for
// HashmapKeysIterator/HashmapValuesIterator, whose members are already
// known in full at construction time.
type sliceIterator struct {
	items []Address
	pos   int
}

func (it sliceIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	if it.pos >= len(it.items) {
		return exhausted()
	}
	return it.items[it.pos], sliceIterator{items: it.items, pos: it.pos + 1}, NilDeps(), true
}

func (it sliceIterator) SizeHint() (int, bool) { return len(it.items) - it.pos, true }
