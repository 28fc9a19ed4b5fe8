package main

import (
	"fmt"

	"github.com/gitrdm/tangle/pkg/tangle"
)

// scenario bundles a runnable demo term graph with the state it expects to
// evaluate against. Each one mirrors one of the package's documented
// end-to-end walkthroughs (spec.md §8), the way gokando's own
// cmd/example/main.go strings together one named demo function per pattern.
type scenario struct {
	name        string
	description string
	build       func(h *tangle.Heap) (tangle.Address, tangle.StateStore)
}

var scenarios = []scenario{
	{"s1", "record field lookup round-trip", scenarioRecordRoundTrip},
	{"s2", "nested iterator resolution (range -> map -> filter -> collect)", scenarioNestedIterator},
	{"s3", "effect lookup, hit and miss", scenarioEffectLookup},
	{"s4", "lambda application with nested de Bruijn indices", scenarioNestedLambda},
	{"s5", "collection resolution short-circuiting on a signal", scenarioCollectionSignal},
	{"s6", "request normalization via ToRequest", scenarioToRequest},
	{"s7", "loader key batching via ResolveLoaderResults", scenarioLoaderBatch},
	{"s8", "running fold deferred to the state store via Scan", scenarioScan},
}

func findScenario(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenario{}, false
}

// scenarioRecordRoundTrip builds {a: 1, b: 2} and reads field "b" back out
// through the Get builtin, the simplest possible evaluate() round trip.
func scenarioRecordRoundTrip(h *tangle.Heap) (tangle.Address, tangle.StateStore) {
	rec := h.NewRecord(
		[]tangle.Address{h.String("a"), h.String("b")},
		[]tangle.Address{h.Int(1), h.Int(2)},
	)
	get := h.NewBuiltin(tangle.BuiltinGet)
	term := h.NewApplication(get, []tangle.Address{rec, h.String("b")})
	return term, tangle.NilStore{}
}

// scenarioNestedIterator chains Range -> filter(even) -> map(*10) -> collect,
// exercising the combinator iterators without ever materializing an
// intermediate List.
func scenarioNestedIterator(h *tangle.Heap) (tangle.Address, tangle.StateStore) {
	isEven := h.NewLambda(1, false, h.NewApplication(
		h.NewBuiltin(tangle.BuiltinEq),
		[]tangle.Address{
			h.NewApplication(h.NewBuiltin(tangle.BuiltinRemainder), []tangle.Address{h.NewVariable(0), h.Int(2)}),
			h.Int(0),
		},
	))
	timesTen := h.NewLambda(1, false, h.NewApplication(
		h.NewBuiltin(tangle.BuiltinMultiply),
		[]tangle.Address{h.NewVariable(0), h.Int(10)},
	))

	rangeTerm := h.NewRangeIterator(0, 10)
	filtered := h.NewFilterIterator(rangeTerm, isEven)
	mapped := h.NewMapIterator(filtered, timesTen)

	collect := h.NewBuiltin(tangle.BuiltinCollectList)
	term := h.NewApplication(collect, []tangle.Address{mapped})
	return term, tangle.NilStore{}
}

// scenarioEffectLookup builds a Record holding two GetVariable applications:
// one whose condition the state store resolves, one it does not. Evaluate
// returns a Record as it is, without reducing its fields, so the printed
// result shows both applications unreduced and no dependencies; neither
// lookup is performed.
func scenarioEffectLookup(h *tangle.Heap) (tangle.Address, tangle.StateStore) {
	present := h.NewApplication(h.NewBuiltin(tangle.BuiltinGetVariable), []tangle.Address{h.String("counter"), h.Int(0)})
	absent := h.NewApplication(h.NewBuiltin(tangle.BuiltinGetVariable), []tangle.Address{h.String("unset"), h.Int(0)})

	store := tangle.NewMapStore(h)
	cond := h.NewCondition("tangle::variable::get", []tangle.Address{h.String("counter"), h.Int(0)}, h.Nil())
	store.Resolve(cond, h.Int(42))

	term := h.NewRecord(
		[]tangle.Address{h.String("present"), h.String("absent")},
		[]tangle.Address{present, absent},
	)
	return term, store
}

// scenarioNestedLambda builds (x => y => x + y)(3)(4), so substitution must
// correctly shift the outer binder's de Bruijn index under the inner lambda.
func scenarioNestedLambda(h *tangle.Heap) (tangle.Address, tangle.StateStore) {
	add := h.NewBuiltin(tangle.BuiltinAdd)
	inner := h.NewLambda(1, false, h.NewApplication(add, []tangle.Address{h.NewVariable(1), h.NewVariable(0)}))
	outer := h.NewLambda(1, false, inner)

	appliedToThree := h.NewApplication(outer, []tangle.Address{h.Int(3)})
	term := h.NewApplication(appliedToThree, []tangle.Address{h.Int(4)})
	return term, tangle.NilStore{}
}

// scenarioCollectionSignal resolves a three-item list where the middle item
// is an unresolved Effect: ResolveList must report the Signal rather than a
// partially-evaluated List.
func scenarioCollectionSignal(h *tangle.Heap) (tangle.Address, tangle.StateStore) {
	unresolved := h.NewApplication(h.NewBuiltin(tangle.BuiltinGetVariable), []tangle.Address{h.String("missing"), h.Int(0)})
	list := h.NewList([]tangle.Address{h.Int(1), unresolved, h.Int(3)})
	resolve := h.NewBuiltin(tangle.BuiltinResolveList)
	term := h.NewApplication(resolve, []tangle.Address{list})
	return term, tangle.NilStore{}
}

// scenarioToRequest normalizes a Record that supplies only "url" into the
// canonical four-field request shape.
func scenarioToRequest(h *tangle.Heap) (tangle.Address, tangle.StateStore) {
	loose := h.NewRecord([]tangle.Address{h.String("url")}, []tangle.Address{h.String("https://example.test/widgets")})
	toRequest := h.NewBuiltin(tangle.BuiltinToRequest)
	term := h.NewApplication(toRequest, []tangle.Address{loose})
	return term, tangle.NilStore{}
}

// scenarioLoaderBatch correlates three requested keys against a
// Record of batched fetch results keyed by the same three names,
// exercising ResolveLoaderResults' pure key/result correlation.
func scenarioLoaderBatch(h *tangle.Heap) (tangle.Address, tangle.StateStore) {
	keys := h.NewList([]tangle.Address{h.String("u1"), h.String("u2"), h.String("u3")})
	results := h.NewRecord(
		[]tangle.Address{h.String("u1"), h.String("u2"), h.String("u3")},
		[]tangle.Address{h.String("Widget One"), h.String("Widget Two"), h.String("Widget Three")},
	)
	resolveLoader := h.NewBuiltin(tangle.BuiltinResolveLoaderResults)
	term := h.NewApplication(resolveLoader, []tangle.Address{keys, results})
	return term, tangle.NilStore{}
}

// scenarioScan describes a running sum over 1..5, deferred entirely to the
// state store as a single tangle::scan Effect.
func scenarioScan(h *tangle.Heap) (tangle.Address, tangle.StateStore) {
	source := h.NewRangeIterator(1, 5)
	reducer := h.NewBuiltin(tangle.BuiltinAdd)
	scan := h.NewBuiltin(tangle.BuiltinScan)
	term := h.NewApplication(scan, []tangle.Address{source, h.Int(0), reducer})

	store := tangle.NewMapStore(h)
	cond := h.NewCondition("tangle::scan", []tangle.Address{source, h.Int(0), reducer}, h.Nil())
	store.Resolve(cond, h.Int(15))
	return term, store
}

func describeScenarios() string {
	out := "available scenarios:\n"
	for _, s := range scenarios {
		out += fmt.Sprintf("  %-4s %s\n", s.name, s.description)
	}
	return out
}
