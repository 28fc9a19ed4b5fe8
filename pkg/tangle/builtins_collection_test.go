package tangle

import "testing"

func TestGetHasSetOverloadsAcrossCollections(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	rec := h.NewRecord([]Address{h.String("a")}, []Address{h.Int(1)})
	got, _ := evalBuiltin(h, ev, BuiltinGet, rec, h.String("a"))
	if h.IntValue(got) != 1 {
		t.Errorf("Get(record, a): got %s, want 1", h.Format(got))
	}
	missing, _ := evalBuiltin(h, ev, BuiltinGet, rec, h.String("z"))
	if h.Tag(missing) != TagNil {
		t.Errorf("Get(record, missing key): got %s, want nil", h.Format(missing))
	}

	list := h.NewList([]Address{h.Int(10), h.Int(20)})
	got, _ = evalBuiltin(h, ev, BuiltinGet, list, h.Int(1))
	if h.IntValue(got) != 20 {
		t.Errorf("Get(list, 1): got %s, want 20", h.Format(got))
	}

	has, _ := evalBuiltin(h, ev, BuiltinHas, rec, h.String("a"))
	if !h.BoolValue(has) {
		t.Error("Has(record, a): want true")
	}

	set, _ := evalBuiltin(h, ev, BuiltinSet, list, h.Int(0), h.Int(99))
	items := h.ListItems(set)
	if h.IntValue(items[0]) != 99 {
		t.Errorf("Set(list, 0, 99): got %s", h.Format(set))
	}
}

func TestIterateNormalizesEachCollectionShape(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	rec := h.NewRecord([]Address{h.String("a"), h.String("b")}, []Address{h.Int(1), h.Int(2)})
	result, _ := evalBuiltin(h, ev, BuiltinIterate, rec)
	if h.Tag(result) != TagList || len(h.ListItems(result)) != 2 {
		t.Fatalf("Iterate(record): got %s, want a 2-item List of pairs", h.Format(result))
	}
	pair := h.ListItems(result)[0]
	if h.Tag(pair) != TagList || len(h.ListItems(pair)) != 2 {
		t.Errorf("Iterate(record) pair shape: got %s", h.Format(pair))
	}
}

func TestResolveListShortCircuitsOnSignal(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	unresolved := h.NewApplication(h.NewBuiltin(BuiltinGetVariable), []Address{h.String("missing"), h.Int(0)})
	list := h.NewList([]Address{h.Int(1), unresolved, h.Int(3)})

	result, _ := evalBuiltin(h, ev, BuiltinResolveList, list)
	if h.Tag(result) != TagSignal {
		t.Fatalf("ResolveList([1, unresolved, 3]): got %s, want a Signal", h.Format(result))
	}
}

func TestResolveListAllResolved(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	list := h.NewList([]Address{h.Int(1), h.Int(2), h.Int(3)})
	result, _ := evalBuiltin(h, ev, BuiltinResolveList, list)
	if h.Tag(result) != TagList {
		t.Fatalf("ResolveList([1, 2, 3]): got %s, want a List", h.Format(result))
	}
	items := h.ListItems(result)
	if len(items) != 3 || h.IntValue(items[2]) != 3 {
		t.Errorf("ResolveList([1, 2, 3]): got %s", h.Format(result))
	}
}

func TestConstructListIsVariadic(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	result, _ := evalBuiltin(h, ev, BuiltinConstructList, h.Int(1), h.Int(2), h.Int(3), h.Int(4))
	items := h.ListItems(result)
	if len(items) != 4 || h.IntValue(items[3]) != 4 {
		t.Errorf("ConstructList(1,2,3,4): got %s", h.Format(result))
	}
}
