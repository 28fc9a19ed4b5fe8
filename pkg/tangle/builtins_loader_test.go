package tangle

import "testing"

// TestResolveLoaderResultsListCorrelation mirrors S7: positionally-keyed
// batch results line up 1:1 with the requested keys.
func TestResolveLoaderResultsListCorrelation(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	keys := h.NewList([]Address{h.String("a"), h.String("b")})
	results := h.NewList([]Address{h.Int(1), h.Int(2)})

	result, _ := evalBuiltin(h, ev, BuiltinResolveLoaderResults, keys, results)
	if h.Tag(result) != TagList {
		t.Fatalf("ResolveLoaderResults: got %s, want a List", h.Format(result))
	}
	items := h.ListItems(result)
	if len(items) != 2 || h.IntValue(items[0]) != 1 || h.IntValue(items[1]) != 2 {
		t.Errorf("ResolveLoaderResults: got %s, want [1, 2]", h.Format(result))
	}
}

func TestResolveLoaderResultsRecordCorrelation(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	keys := h.NewList([]Address{h.String("a"), h.String("b")})
	results := h.NewRecord([]Address{h.String("a"), h.String("b")}, []Address{h.Int(1), h.Int(2)})

	result, _ := evalBuiltin(h, ev, BuiltinResolveLoaderResults, keys, results)
	items := h.ListItems(result)
	if len(items) != 2 || h.IntValue(items[0]) != 1 || h.IntValue(items[1]) != 2 {
		t.Errorf("ResolveLoaderResults(record): got %s, want [1, 2]", h.Format(result))
	}
}

func TestResolveLoaderResultsMissingKeySignals(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	keys := h.NewList([]Address{h.String("a"), h.String("b")})
	results := h.NewRecord([]Address{h.String("a")}, []Address{h.Int(1)})

	result, _ := evalBuiltin(h, ev, BuiltinResolveLoaderResults, keys, results)
	if h.Tag(result) != TagSignal {
		t.Fatalf("expected a Signal for a missing key, got %s", h.Format(result))
	}
	conds := h.SignalConditions(result).Members()
	if len(conds) != 1 || h.ConditionKind(conds[0]) != conditionLoaderError {
		t.Fatalf("expected a %s condition, got %v", conditionLoaderError, conds)
	}
	msg := h.StringValue(h.ConditionPayload(conds[0])[0])
	if msg != `Missing result for key: "b"` {
		t.Errorf("message: got %q", msg)
	}
}

func TestResolveLoaderResultsLengthMismatchSignals(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	keys := h.NewList([]Address{h.String("a"), h.String("b")})
	results := h.NewList([]Address{h.Int(1), h.Int(2), h.Int(3)})

	result, _ := evalBuiltin(h, ev, BuiltinResolveLoaderResults, keys, results)
	if h.Tag(result) != TagSignal {
		t.Fatalf("expected a Signal for a length mismatch, got %s", h.Format(result))
	}
	conds := h.SignalConditions(result).Members()
	msg := h.StringValue(h.ConditionPayload(conds[0])[0])
	want := "Expected 2 results, received 3"
	if msg != want {
		t.Errorf("message: got %q, want %q", msg, want)
	}
}
