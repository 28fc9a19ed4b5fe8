package tangle

import "testing"

// TestScanDefersToStateStore mirrors S8: Scan always surfaces as an
// unresolved Effect describing the fold, leaving the running computation
// to the state store rather than performing it inline.
func TestScanDefersToStateStore(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	source := h.NewRangeIterator(1, 5)
	reducer := h.NewBuiltin(BuiltinAdd)

	term := h.NewApplication(h.NewBuiltin(BuiltinScan), []Address{source, h.Int(0), reducer})
	unresolved, deps := ev.Evaluate(term, NilStore{})
	if h.Tag(unresolved) != TagSignal {
		t.Fatalf("Scan without a resolving store: got %s, want a Signal", h.Format(unresolved))
	}
	if deps.Len() != 1 {
		t.Fatalf("expected one dependency, got %d", deps.Len())
	}

	store := NewMapStore(h)
	cond := h.NewCondition(conditionScan, []Address{source, h.Int(0), reducer}, h.Nil())
	store.Resolve(cond, h.Int(15))

	resolved, _ := ev.Evaluate(term, store)
	if h.Tag(resolved) != TagInt || h.IntValue(resolved) != 15 {
		t.Fatalf("Scan resolved via store: got %s, want 15", h.Format(resolved))
	}
}

func TestScanRejectsNonIterableSource(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	term := h.NewApplication(h.NewBuiltin(BuiltinScan), []Address{h.Int(1), h.Int(0), h.NewBuiltin(BuiltinAdd)})
	result, _ := ev.Evaluate(term, NilStore{})
	if h.Tag(result) != TagSignal {
		t.Fatalf("Scan(non-iterable): got %s, want a Signal", h.Format(result))
	}
}
