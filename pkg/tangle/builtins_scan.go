package tangle

func init() {
	registerBuiltin(BuiltinScan, "Scan", 3, []bool{true, true, true}, scanImpl)
}

const conditionScan = "tangle::scan"

// scanImpl describes a running fold over iterable, seeded by seed and
// combined by reducer, as an Effect rather than performing it eagerly.
// This lets an incremental StateStore (spec.md §1's whole premise) carry
// the accumulator forward itself between re-evaluations keyed on this
// same (iterable, seed, reducer) Condition, instead of the evaluator
// replaying the fold from seed on every dependency change.
func scanImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	if !h.IsIterable(args[0]) {
		return h.invalidFunctionArgs(args...), NilDeps()
	}
	cond := h.NewCondition(conditionScan, args, h.Nil())
	return h.NewEffect(cond), NilDeps()
}
