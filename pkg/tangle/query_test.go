package tangle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildProjectShape returns a unary Lambda that projects a record's
// "foo"/"baz" fields into {first: foo, second: baz} (spec.md §8 S1/S2).
func buildProjectShape(h *Heap) Address {
	get := h.NewBuiltin(BuiltinGet)
	self := h.NewVariable(0)
	foo := h.NewApplication(get, []Address{self, h.String("foo")})
	baz := h.NewApplication(get, []Address{self, h.String("baz")})
	ctor := h.NewConstructor([]Address{h.String("first"), h.String("second")})
	body := h.NewApplication(ctor, []Address{foo, baz})
	return h.NewLambda(1, false, body)
}

// TestResolveQueryBranchRecordRoundTrip mirrors S1: applying a shape
// lambda to a record selects and renames its fields.
func TestResolveQueryBranchRecordRoundTrip(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	rec := h.NewRecord(
		[]Address{h.String("foo"), h.String("bar"), h.String("baz")},
		[]Address{h.Int(1), h.Int(2), h.Int(3)},
	)
	shape := buildProjectShape(h)

	result, deps := ev.ResolveQueryBranch(rec, shape, NilStore{})
	require.Equal(t, TagRecord, h.Tag(result), "ResolveQueryBranch(record): got %s", h.Format(result))

	first, _ := h.RecordGet(result, h.String("first"))
	second, _ := h.RecordGet(result, h.String("second"))
	assert.Equal(t, int64(1), h.IntValue(first))
	assert.Equal(t, int64(3), h.IntValue(second))
	assert.Equal(t, 0, deps.Len(), "expected no dependencies for a fully resolved record")
}

// TestResolveQueryBranchNestedIterable mirrors S2: a 3x3 nested list of
// records resolved with the same shape, recursing through the outer and
// inner iterables before applying the shape to each leaf record. The
// formatted grid is diffed against the expected 3x3 shape with go-cmp so a
// mismatch at any cell reports the full structural diff, not just the
// first failing assertion.
func TestResolveQueryBranchNestedIterable(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	makeRow := func(base int64) Address {
		recs := make([]Address, 3)
		for i := 0; i < 3; i++ {
			v := base + int64(i)
			recs[i] = h.NewRecord(
				[]Address{h.String("foo"), h.String("bar"), h.String("baz")},
				[]Address{h.Int(v), h.Int(v + 1), h.Int(v + 2)},
			)
		}
		return h.NewList(recs)
	}
	grid := h.NewList([]Address{makeRow(1), makeRow(4), makeRow(7)})
	shape := buildProjectShape(h)

	result, deps := ev.ResolveQueryBranch(grid, shape, NilStore{})
	require.Equal(t, TagList, h.Tag(result), "ResolveQueryBranch(grid): got %s", h.Format(result))

	rows := h.ListItems(result)
	require.Len(t, rows, 3)

	got := make([][]string, len(rows))
	for i, row := range rows {
		cells := h.ListItems(row)
		got[i] = make([]string, len(cells))
		for j, cell := range cells {
			got[i][j] = h.Format(cell)
		}
	}
	want := [][]string{
		{`{ "first": 1, "second": 3 }`, `{ "first": 2, "second": 4 }`, `{ "first": 3, "second": 5 }`},
		{`{ "first": 4, "second": 6 }`, `{ "first": 5, "second": 7 }`, `{ "first": 6, "second": 8 }`},
		{`{ "first": 7, "second": 9 }`, `{ "first": 8, "second": 10 }`, `{ "first": 9, "second": 11 }`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved grid mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, deps.Len(), "expected no dependencies")
}

func TestResolveQueryBranchNilIsIdentity(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	shape := buildProjectShape(h)
	result, deps := ev.ResolveQueryBranch(h.Nil(), shape, NilStore{})
	assert.Equal(t, TagNil, h.Tag(result))
	assert.Equal(t, 0, deps.Len())
}

func TestResolveQueryBranchPropagatesFieldSignal(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	// shape: x => {first: GetVariable("missing", 0)}
	get := h.NewBuiltin(BuiltinGetVariable)
	field := h.NewApplication(get, []Address{h.String("missing"), h.Int(0)})
	ctor := h.NewConstructor([]Address{h.String("first")})
	body := h.NewApplication(ctor, []Address{field})
	shape := h.NewLambda(1, false, body)

	rec := h.NewRecord([]Address{h.String("foo")}, []Address{h.Int(1)})
	result, deps := ev.ResolveQueryBranch(rec, shape, NilStore{})
	require.Equal(t, TagSignal, h.Tag(result), "expected an unresolved shape field to propagate as a Signal, got %s", h.Format(result))
	assert.Equal(t, 1, deps.Len(), "expected one dependency on the unresolved Effect")
}

func TestResolveQueryLeafAtomicIsIdentity(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	for _, addr := range []Address{h.Int(5), h.String("x"), h.Bool(true), h.Nil()} {
		result, deps := ev.ResolveQueryLeaf(addr, NilStore{})
		assert.Equal(t, addr, result, "ResolveQueryLeaf(%s): want identity", h.Format(addr))
		assert.Equal(t, 0, deps.Len())
	}
}

func TestResolveQueryLeafZeroArityLambda(t *testing.T) {
	h := NewHeap()
	ev := NewEvaluator(h)

	thunk := h.NewLambda(0, false, h.Int(99))
	result, _ := ev.ResolveQueryLeaf(thunk, NilStore{})
	require.Equal(t, TagInt, h.Tag(result))
	assert.Equal(t, int64(99), h.IntValue(result))
}
