package tangle

// --- heap term constructors ---

func (h *Heap) NewEmptyIterator() Address {
	return h.emptyIterAddr
}

func (h *Heap) NewOnceIterator(value Address) Address {
	return h.newIterTerm(TagIteratorOnce, []Address{value})
}

func (h *Heap) NewRangeIterator(offset, length int64) Address {
	return h.newIterTerm(TagIteratorRange, []Address{h.Int(offset), h.Int(length)})
}

func (h *Heap) NewRepeatIterator(value Address) Address {
	return h.newIterTerm(TagIteratorRepeat, []Address{value})
}

func (h *Heap) NewIntegersIterator() Address {
	return h.newIterTerm(TagIteratorIntegers, nil)
}

func (h *Heap) NewHashmapKeysIterator(hashmap Address) Address {
	return h.newIterTerm(TagIteratorHashmapKeys, []Address{hashmap})
}

func (h *Heap) NewHashmapValuesIterator(hashmap Address) Address {
	return h.newIterTerm(TagIteratorHashmapValues, []Address{hashmap})
}

// --- Go-level drivers ---

type emptyIterator struct{}

func (emptyIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	return exhausted()
}
func (emptyIterator) SizeHint() (int, bool) { return 0, true }

type onceIterator struct {
	value Address
	spent bool
}

func (it onceIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	if it.spent {
		return exhausted()
	}
	return it.value, onceIterator{value: it.value, spent: true}, NilDeps(), true
}

func (it onceIterator) SizeHint() (int, bool) {
	if it.spent {
		return 0, true
	}
	return 1, true
}

// rangeIterator yields offset+i for i in [0, remaining) (spec.md §4.2.5
// "RangeIterator(offset, length)").
type rangeIterator struct {
	offset    int64
	remaining int64
}

func (it rangeIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	if it.remaining <= 0 {
		return exhausted()
	}
	return ev.heap.Int(it.offset), rangeIterator{offset: it.offset + 1, remaining: it.remaining - 1}, NilDeps(), true
}

func (it rangeIterator) SizeHint() (int, bool) {
	if it.remaining < 0 {
		return 0, true
	}
	return int(it.remaining), true
}

type repeatIterator struct {
	value Address
}

func (it repeatIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	return it.value, it, NilDeps(), true
}

func (it repeatIterator) SizeHint() (int, bool) { return 0, false }

// integersIterator yields 0, 1, 2, ... (spec.md §4.2.5 "IntegersIterator").
type integersIterator struct {
	next int64
}

func (it integersIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	return ev.heap.Int(it.next), integersIterator{next: it.next + 1}, NilDeps(), true
}

func (it integersIterator) SizeHint() (int, bool) { return 0, false }
