package tangle

import "testing"

func collectFormat(t *testing.T, h *Heap, ev *Evaluator, it Iterator) string {
	t.Helper()
	result, _ := h.ListCollectStrict(ev, it, NilStore{})
	return h.Format(result)
}

func TestEmptyIteratorYieldsNothing(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)
	if got, want := collectFormat(t, h, ev, h.IteratorFor(h.NewEmptyIterator())), "[]"; got != want {
		t.Errorf("EmptyIterator: got %q, want %q", got, want)
	}
}

func TestOnceIteratorYieldsExactlyOnce(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)
	if got, want := collectFormat(t, h, ev, h.IteratorFor(h.NewOnceIterator(h.Int(9)))), "[9]"; got != want {
		t.Errorf("OnceIterator: got %q, want %q", got, want)
	}
}

func TestRangeIteratorYieldsOffsetThroughLength(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)
	if got, want := collectFormat(t, h, ev, h.IteratorFor(h.NewRangeIterator(5, 3))), "[5, 6, 7]"; got != want {
		t.Errorf("RangeIterator(5, 3): got %q, want %q", got, want)
	}
}

func TestRepeatIteratorYieldsForever(t *testing.T) {
	h := NewHeap()
	it := h.IteratorFor(h.NewRepeatIterator(h.Int(1)))
	ev := NewEvaluator(h)
	limited := takeIterator{source: it, remaining: 3}
	if got, want := collectFormat(t, h, ev, limited), "[1, 1, 1]"; got != want {
		t.Errorf("RepeatIterator (taken 3): got %q, want %q", got, want)
	}
}

func TestIntegersIteratorYieldsFromZero(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)
	limited := takeIterator{source: h.IteratorFor(h.NewIntegersIterator()), remaining: 4}
	if got, want := collectFormat(t, h, ev, limited), "[0, 1, 2, 3]"; got != want {
		t.Errorf("IntegersIterator (taken 4): got %q, want %q", got, want)
	}
}

func TestHashmapKeysAndValuesIterators(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)
	hm := h.NewHashmap(nil, nil)
	hm = h.HashmapSet(hm, h.String("a"), h.Int(1))
	hm = h.HashmapSet(hm, h.String("b"), h.Int(2))

	keys, _ := h.ListCollect(ev, h.IteratorFor(h.NewHashmapKeysIterator(hm)), NilStore{})
	if len(h.ListItems(keys)) != 2 {
		t.Errorf("HashmapKeysIterator: got %s, want 2 keys", h.Format(keys))
	}
	values, _ := h.ListCollect(ev, h.IteratorFor(h.NewHashmapValuesIterator(hm)), NilStore{})
	if len(h.ListItems(values)) != 2 {
		t.Errorf("HashmapValuesIterator: got %s, want 2 values", h.Format(values))
	}
}
