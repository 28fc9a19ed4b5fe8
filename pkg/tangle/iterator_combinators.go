package tangle

// --- heap term constructors ---

func (h *Heap) NewMapIterator(source, fn Address) Address {
	return h.newIterTerm(TagIteratorMap, []Address{source, fn})
}

func (h *Heap) NewFilterIterator(source, pred Address) Address {
	return h.newIterTerm(TagIteratorFilter, []Address{source, pred})
}

func (h *Heap) NewFlattenIterator(outer Address) Address {
	return h.newIterTerm(TagIteratorFlatten, []Address{outer})
}

func (h *Heap) NewZipIterator(a, b Address) Address {
	return h.newIterTerm(TagIteratorZip, []Address{a, b})
}

func (h *Heap) NewTakeIterator(source Address, n int64) Address {
	return h.newIterTerm(TagIteratorTake, []Address{source, h.Int(n)})
}

func (h *Heap) NewSkipIterator(source Address, n int64) Address {
	return h.newIterTerm(TagIteratorSkip, []Address{source, h.Int(n)})
}

func (h *Heap) NewIntersperseIterator(source, sep Address) Address {
	return h.newIterTerm(TagIteratorIntersperse, []Address{source, sep})
}

func (h *Heap) NewIndexedAccessorIterator(source Address, start int64) Address {
	return h.newIterTerm(TagIteratorIndexedAccessor, []Address{source, h.Int(start)})
}

// --- Go-level drivers ---

// mapIterator yields fn(item) for each source item, built but left
// unevaluated (spec.md §4.2.5 "MapIterator(source, fn)") — forcing it is
// the caller's job, the same way ListCollect leaves list items unforced.
type mapIterator struct {
	source Iterator
	fn     Address
}

func (it mapIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	item, next, deps, ok := it.source.Next(ev, state)
	if !ok {
		return NoAddress, nil, deps, false
	}
	mapped := ev.heap.Apply(it.fn, []Address{item})
	return mapped, mapIterator{source: next, fn: it.fn}, deps, true
}

func (it mapIterator) SizeHint() (int, bool) { return it.source.SizeHint() }

// filterIterator yields only source items for which pred(item) reduces to
// a truthy Bool. Unlike Map, the predicate must actually run (a filter
// can't decide whether to skip an item without forcing it), so Next takes
// an *Evaluator and folds every predicate's dependencies into the item it
// ultimately yields (spec.md §4.2.5 "predicate evaluation happens inside
// next, combined with dependencies").
type filterIterator struct {
	source Iterator
	pred   Address
}

func (it filterIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	h := ev.heap
	deps := NilDeps()
	cur := it.source
	for {
		item, next, itemDeps, ok := cur.Next(ev, state)
		deps = deps.Union(h, itemDeps)
		if !ok {
			return NoAddress, nil, deps, false
		}
		result, evalDeps := ev.Evaluate(h.Apply(it.pred, []Address{item}), state)
		deps = deps.Union(h, evalDeps)
		if h.Tag(result) == TagSignal {
			return result, filterIterator{source: next, pred: it.pred}, deps, true
		}
		if h.Tag(result) == TagBool && h.BoolValue(result) {
			return item, filterIterator{source: next, pred: it.pred}, deps, true
		}
		cur = next
	}
}

func (it filterIterator) SizeHint() (int, bool) { return 0, false }

// flattenIterator drains one inner iterable per outer item, yielding its
// items in turn before pulling the next outer item (spec.md §4.2.5
// "FlattenIterator(outer)"). A Signal outer item is yielded directly
// rather than treated as iterable, matching the rest of the package's
// convention of propagating signals instead of trying to iterate them.
type flattenIterator struct {
	outer Iterator
	inner Iterator
}

func (it flattenIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	h := ev.heap
	outer, inner := it.outer, it.inner
	deps := NilDeps()
	for {
		if inner != nil {
			item, next, d, ok := inner.Next(ev, state)
			deps = deps.Union(h, d)
			if ok {
				return item, flattenIterator{outer: outer, inner: next}, deps, true
			}
			inner = nil
		}

		outerItem, outerNext, d, ok := outer.Next(ev, state)
		deps = deps.Union(h, d)
		if !ok {
			return NoAddress, nil, deps, false
		}
		outer = outerNext

		if h.Tag(outerItem) == TagSignal {
			return outerItem, flattenIterator{outer: outer, inner: nil}, deps, true
		}
		if !h.IsIterable(outerItem) {
			return h.invalidFunctionArgs(outerItem), flattenIterator{outer: outer, inner: nil}, deps, true
		}
		inner = h.IteratorFor(outerItem)
	}
}

func (it flattenIterator) SizeHint() (int, bool) { return 0, false }

// zipIterator yields a 2-item List pairing corresponding elements of a and
// b, stopping as soon as either is exhausted (spec.md §4.2.5 "ZipIterator
// (a, b)").
type zipIterator struct {
	a, b Iterator
}

func (it zipIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	h := ev.heap
	aItem, aNext, aDeps, aOk := it.a.Next(ev, state)
	if !aOk {
		return NoAddress, nil, aDeps, false
	}
	bItem, bNext, bDeps, bOk := it.b.Next(ev, state)
	deps := aDeps.Union(h, bDeps)
	if !bOk {
		return NoAddress, nil, deps, false
	}
	pair := h.NewList([]Address{aItem, bItem})
	return pair, zipIterator{a: aNext, b: bNext}, deps, true
}

func (it zipIterator) SizeHint() (int, bool) {
	an, aOk := it.a.SizeHint()
	bn, bOk := it.b.SizeHint()
	if !aOk || !bOk {
		return 0, false
	}
	if an < bn {
		return an, true
	}
	return bn, true
}

// takeIterator yields at most `remaining` more items from source (spec.md
// §4.2.5 "TakeIterator(source, count)").
type takeIterator struct {
	source    Iterator
	remaining int64
}

func (it takeIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	if it.remaining <= 0 {
		return exhausted()
	}
	item, next, deps, ok := it.source.Next(ev, state)
	if !ok {
		return NoAddress, nil, deps, false
	}
	return item, takeIterator{source: next, remaining: it.remaining - 1}, deps, true
}

func (it takeIterator) SizeHint() (int, bool) {
	n, ok := it.source.SizeHint()
	if !ok || int64(n) > it.remaining {
		return int(it.remaining), true
	}
	return n, true
}

// skipIterator discards the first `remaining` source items, then yields
// everything after (spec.md §4.2.5 "SkipIterator(source, count)").
type skipIterator struct {
	source    Iterator
	remaining int64
}

func (it skipIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	h := ev.heap
	cur := it.source
	deps := NilDeps()
	for n := it.remaining; n > 0; n-- {
		_, next, d, ok := cur.Next(ev, state)
		deps = deps.Union(h, d)
		if !ok {
			return NoAddress, nil, deps, false
		}
		cur = next
	}
	item, next, d, ok := cur.Next(ev, state)
	deps = deps.Union(h, d)
	if !ok {
		return NoAddress, nil, deps, false
	}
	return item, skipIterator{source: next, remaining: 0}, deps, true
}

func (it skipIterator) SizeHint() (int, bool) {
	n, ok := it.source.SizeHint()
	if !ok {
		return 0, false
	}
	remaining := int64(n) - it.remaining
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining), true
}

// intersperseIterator yields source items with sep inserted between every
// pair of consecutive items (spec.md §4.2.5 "IntersperseIterator(source,
// separator)") — never a leading or trailing separator. It peeks one item
// ahead so it knows, at the moment it yields an item, whether another one
// is coming (and therefore whether a separator follows).
type intersperseIterator struct {
	source  Iterator
	sep     Address
	atSep   bool
	started bool
	pending Address
	hasPending bool
}

func (it intersperseIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	h := ev.heap

	if it.atSep {
		return it.sep, intersperseIterator{
			source: it.source, sep: it.sep, atSep: false, started: true,
			pending: it.pending, hasPending: it.hasPending,
		}, NilDeps(), true
	}

	var item Address
	src := it.source
	deps := NilDeps()
	if it.hasPending {
		item = it.pending
	} else {
		next, nextIter, d, ok := src.Next(ev, state)
		deps = deps.Union(h, d)
		if !ok {
			return NoAddress, nil, deps, false
		}
		item = next
		src = nextIter
	}

	peeked, peekedNext, peekDeps, ok := src.Next(ev, state)
	deps = deps.Union(h, peekDeps)
	if !ok {
		return item, intersperseIterator{source: src, sep: it.sep, atSep: false, started: true}, deps, true
	}
	return item, intersperseIterator{
		source: peekedNext, sep: it.sep, atSep: true, started: true,
		pending: peeked, hasPending: true,
	}, deps, true
}

func (it intersperseIterator) SizeHint() (int, bool) {
	n, ok := it.source.SizeHint()
	if !ok || n == 0 {
		return n, ok
	}
	return 2*n - 1, true
}

// indexedAccessorIterator pairs each source item with its position as a
// 2-item List [index, item] (spec.md §4.2.5 "IndexedAccessorIterator
// (source)").
type indexedAccessorIterator struct {
	source Iterator
	index  int
}

func (it indexedAccessorIterator) Next(ev *Evaluator, state StateStore) (Address, Iterator, *Tree, bool) {
	item, next, deps, ok := it.source.Next(ev, state)
	if !ok {
		return NoAddress, nil, deps, false
	}
	h := ev.heap
	pair := h.NewList([]Address{h.Int(int64(it.index)), item})
	return pair, indexedAccessorIterator{source: next, index: it.index + 1}, deps, true
}

func (it indexedAccessorIterator) SizeHint() (int, bool) { return it.source.SizeHint() }
