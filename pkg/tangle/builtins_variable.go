package tangle

func init() {
	registerBuiltin(BuiltinGetVariable, "GetVariable", 2, []bool{true, true}, getVariableImpl)
	registerBuiltin(BuiltinSetVariable, "SetVariable", 2, []bool{true, true}, setVariableImpl)
	registerBuiltin(BuiltinIncrementVariable, "IncrementVariable", 1, []bool{true}, incrementVariableImpl)
	registerBuiltin(BuiltinDecrementVariable, "DecrementVariable", 1, []bool{true}, decrementVariableImpl)
	registerBuiltin(BuiltinGetter, "Getter", 0, nil, getterImpl)
	registerBuiltin(BuiltinSetter, "Setter", 0, nil, setterImpl)
	registerBuiltin(BuiltinVariable, "Variable", 1, []bool{true}, variableImpl)
}

// The variable condition kinds a StateStore must understand to back
// mutable, externally-owned state (spec.md §3.5's expansion of the
// "externally supplied state" contract beyond plain read-only lookups).
const (
	conditionVariableGet       = "tangle::variable::get"
	conditionVariableSet       = "tangle::variable::set"
	conditionVariableIncrement = "tangle::variable::increment"
	conditionVariableDecrement = "tangle::variable::decrement"
)

func variableEffect(h *Heap, kind string, payload []Address, token Address) Address {
	cond := h.NewCondition(kind, payload, token)
	return h.NewEffect(cond)
}

// getVariableImpl builds an Effect the evaluator's reduce loop will
// immediately hand to the StateStore — GetVariable itself never touches
// state directly, it only describes the request (spec.md §4.2.6). The
// payload is `[symbol, initial]` and the token is always Nil (spec.md §6
// "reflex::variable::get — payload [symbol, initial], token Nil").
func getVariableImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	return variableEffect(h, conditionVariableGet, args[:2], h.Nil()), NilDeps()
}

// setVariableImpl builds a `set` Effect carrying a fresh correlation
// token (spec.md §6 "reflex::variable::set — payload [symbol, value],
// token from caller"): since this builtin's own signature has no token
// argument, one is minted per call the way an embedder's own caller would
// mint one before invoking it.
func setVariableImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	return variableEffect(h, conditionVariableSet, args[:2], h.NewToken()), NilDeps()
}

func incrementVariableImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	return variableEffect(h, conditionVariableIncrement, args[:1], h.NewToken()), NilDeps()
}

func decrementVariableImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	return variableEffect(h, conditionVariableDecrement, args[:1], h.NewToken()), NilDeps()
}

// getterImpl/setterImpl hand back the GetVariable/SetVariable builtins as
// first-class values, so callers can pass "the getter" around without
// naming a particular variable id yet.
func getterImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	return ev.heap.NewBuiltin(BuiltinGetVariable), NilDeps()
}

func setterImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	return ev.heap.NewBuiltin(BuiltinSetVariable), NilDeps()
}

// variableImpl bundles a single variable id's accessor closures into a
// two-field Record, the ergonomic "ref" shape embedders build once and
// pass around instead of threading the id through every call site.
func variableImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	id := args[0]
	getClosure := h.NewPartial(h.NewBuiltin(BuiltinGetVariable), []Address{id})
	setClosure := h.NewPartial(h.NewBuiltin(BuiltinSetVariable), []Address{id})
	keys := []Address{h.String("get"), h.String("set")}
	values := []Address{getClosure, setClosure}
	return h.NewRecord(keys, values), NilDeps()
}
