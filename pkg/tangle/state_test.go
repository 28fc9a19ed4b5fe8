package tangle

import "testing"

func TestNilStoreAlwaysUnresolved(t *testing.T) {
	h := NewHeap()
	cond := h.NewCondition("tangle::x", nil, h.Nil())

	_, ok := NilStore{}.Lookup(h, cond)
	if ok {
		t.Error("NilStore.Lookup: want always unresolved")
	}
}

func TestMapStoreResolveAndLookupRoundTrip(t *testing.T) {
	h := NewHeap()
	store := NewMapStore(h)
	cond := h.NewCondition("tangle::x", []Address{h.String("k")}, h.Nil())

	if _, ok := store.Lookup(h, cond); ok {
		t.Fatal("Lookup before Resolve: want unresolved")
	}

	store.Resolve(cond, h.Int(42))
	v, ok := store.Lookup(h, cond)
	if !ok || h.IntValue(v) != 42 {
		t.Fatalf("Lookup after Resolve: got (%s, %v), want (42, true)", h.Format(v), ok)
	}
}

func TestMapStoreResolveOverwritesExistingEntry(t *testing.T) {
	h := NewHeap()
	store := NewMapStore(h)
	cond := h.NewCondition("tangle::x", nil, h.Nil())

	store.Resolve(cond, h.Int(1))
	store.Resolve(cond, h.Int(2))

	v, ok := store.Lookup(h, cond)
	if !ok || h.IntValue(v) != 2 {
		t.Fatalf("Lookup after overwrite: got (%s, %v), want (2, true)", h.Format(v), ok)
	}
}

func TestMapStoreDistinguishesStructurallyDifferentConditions(t *testing.T) {
	h := NewHeap()
	store := NewMapStore(h)
	condA := h.NewCondition("tangle::x", []Address{h.String("a")}, h.Nil())
	condB := h.NewCondition("tangle::x", []Address{h.String("b")}, h.Nil())

	store.Resolve(condA, h.Int(1))

	if _, ok := store.Lookup(h, condB); ok {
		t.Error("Lookup(condB): want unresolved, condA's entry leaked across distinct conditions")
	}
}

func TestNewTokenProducesDistinctStrings(t *testing.T) {
	h := NewHeap()
	a, b := h.NewToken(), h.NewToken()
	if h.Tag(a) != TagString || h.Tag(b) != TagString {
		t.Fatalf("NewToken: want String terms")
	}
	if h.StringValue(a) == h.StringValue(b) {
		t.Error("NewToken: two calls produced the same token")
	}
}
