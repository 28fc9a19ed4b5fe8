package tangle

func init() {
	registerBuiltin(BuiltinIdentity, "Identity", 1, []bool{true}, identityImpl)
	registerBuiltin(BuiltinApply, "Apply", 2, []bool{true, true}, applyImpl)
	registerBuiltin(BuiltinThrow, "Throw", 1, []bool{true}, throwImpl)
	registerBuiltin(BuiltinNot, "Not", 1, []bool{true}, notImpl)
	registerBuiltin(BuiltinIsTruthy, "IsTruthy", 1, []bool{true}, isTruthyImpl)
}

func identityImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	return args[0], NilDeps()
}

// applyImpl calls fn with the items of a List as its argument list
// (spec.md §4.2 "Apply" — the builtin form of an embedder-driven
// function call, as opposed to the Application term the evaluator builds
// for source-level calls).
func applyImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	fn, argList := args[0], args[1]
	if h.Tag(argList) != TagList {
		return h.invalidFunctionArgs(fn, argList), NilDeps()
	}
	return h.NewApplication(fn, h.ListItems(argList)), NilDeps()
}

const thrownConditionKind = "tangle::thrown"

// throwImpl raises value as a Signal: a user-level abort that a StateStore
// can never resolve, distinct from an Effect's "not yet known" (spec.md
// §4.6 "InvalidFunctionArgsCondition" siblings).
func throwImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	cond := h.NewCondition(thrownConditionKind, []Address{args[0]}, h.Nil())
	return h.NewSignalOf(cond), NilDeps()
}

func notImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	if h.Tag(args[0]) != TagBool {
		return h.invalidFunctionArgs(args[0]), NilDeps()
	}
	return h.Bool(!h.BoolValue(args[0])), NilDeps()
}

// isTruthy implements the language's truthiness rule: everything is
// truthy except Nil and Boolean(false) (spec.md §4.2 "IsTruthy").
func isTruthyImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	v := args[0]
	if h.Tag(v) == TagNil {
		return h.Bool(false), NilDeps()
	}
	if h.Tag(v) == TagBool {
		return h.Bool(h.BoolValue(v)), NilDeps()
	}
	return h.Bool(true), NilDeps()
}
