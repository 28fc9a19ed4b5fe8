package tangle

import "testing"

func TestHashmapGetSetRoundTrip(t *testing.T) {
	h := NewHeap()
	hm := h.NewHashmap(
		[]Address{h.String("a"), h.String("b")},
		[]Address{h.Int(1), h.Int(2)},
	)

	v, ok := h.HashmapGet(hm, h.String("b"))
	if !ok || h.IntValue(v) != 2 {
		t.Fatalf("HashmapGet(b): got (%v, %v), want (2, true)", v, ok)
	}

	updated := h.HashmapSet(hm, h.String("c"), h.Int(3))
	if h.HashmapHas(hm, h.String("c")) {
		t.Error("expected the original hashmap to be unaffected by HashmapSet")
	}
	v, ok = h.HashmapGet(updated, h.String("c"))
	if !ok || h.IntValue(v) != 3 {
		t.Errorf("HashmapGet(c) on updated map: got (%v, %v), want (3, true)", v, ok)
	}
}

func TestHashmapManyKeysNoCollisionLoss(t *testing.T) {
	h := NewHeap()
	const n = 200
	hm := h.NewHashmap(nil, nil)
	for i := 0; i < n; i++ {
		hm = h.HashmapSet(hm, h.Int(int64(i)), h.Int(int64(i*i)))
	}
	for i := 0; i < n; i++ {
		v, ok := h.HashmapGet(hm, h.Int(int64(i)))
		if !ok {
			t.Fatalf("HashmapGet(%d): expected hit after %d insertions", i, n)
		}
		if h.IntValue(v) != int64(i*i) {
			t.Errorf("HashmapGet(%d): got %d, want %d", i, h.IntValue(v), i*i)
		}
	}
}

func TestHashsetAddAndMembers(t *testing.T) {
	h := NewHeap()
	hs := h.NewHashset([]Address{h.String("x")})
	hs = h.HashsetAdd(hs, h.String("y"))

	if !h.HashsetHas(hs, h.String("x")) || !h.HashsetHas(hs, h.String("y")) {
		t.Fatal("expected both members present after HashsetAdd")
	}
	if h.HashsetHas(hs, h.String("z")) {
		t.Error("expected an absent member to report false")
	}
	if len(h.HashsetMembers(hs)) != 2 {
		t.Errorf("expected 2 members, got %d", len(h.HashsetMembers(hs)))
	}
}
