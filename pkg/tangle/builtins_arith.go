package tangle

func init() {
	allStrict2 := []bool{true, true}

	registerBuiltin(BuiltinAdd, "Add", 2, allStrict2, numericBinary(
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b }))
	registerBuiltin(BuiltinSubtract, "Subtract", 2, allStrict2, numericBinary(
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b }))
	registerBuiltin(BuiltinMultiply, "Multiply", 2, allStrict2, numericBinary(
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b }))
	registerBuiltin(BuiltinDivide, "Divide", 2, allStrict2, divideImpl)
	registerBuiltin(BuiltinRemainder, "Remainder", 2, allStrict2, remainderImpl)
	registerBuiltin(BuiltinPow, "Pow", 2, allStrict2, powImpl)
	registerBuiltin(BuiltinAbs, "Abs", 1, []bool{true}, absImpl)
	registerBuiltin(BuiltinMax, "Max", 2, allStrict2, numericBinary(
		func(a, b int64) int64 {
			if a > b {
				return a
			}
			return b
		},
		func(a, b float64) float64 {
			if a > b {
				return a
			}
			return b
		}))
	registerBuiltin(BuiltinMin, "Min", 2, allStrict2, numericBinary(
		func(a, b int64) int64 {
			if a < b {
				return a
			}
			return b
		},
		func(a, b float64) float64 {
			if a < b {
				return a
			}
			return b
		}))

	registerBuiltin(BuiltinEq, "Eq", 2, allStrict2, eqImpl)
	registerBuiltin(BuiltinLt, "Lt", 2, allStrict2, comparisonImpl(func(c int) bool { return c < 0 }))
	registerBuiltin(BuiltinLte, "Lte", 2, allStrict2, comparisonImpl(func(c int) bool { return c <= 0 }))
	registerBuiltin(BuiltinGt, "Gt", 2, allStrict2, comparisonImpl(func(c int) bool { return c > 0 }))
	registerBuiltin(BuiltinGte, "Gte", 2, allStrict2, comparisonImpl(func(c int) bool { return c >= 0 }))

	// And/Or are the builtins that actually exercise the lazy half of the
	// strict/lazy protocol (spec.md §4.5): the second operand is only
	// reduced when short-circuiting can't already decide the result.
	registerBuiltin(BuiltinAnd, "And", 2, []bool{true, false}, andImpl)
	registerBuiltin(BuiltinOr, "Or", 2, []bool{true, false}, orImpl)
}

func numericPair(h *Heap, a, b Address) (ai, bi int64, af, bf float64, isFloat, ok bool) {
	at, bt := h.Tag(a), h.Tag(b)
	switch {
	case at == TagInt && bt == TagInt:
		return h.IntValue(a), h.IntValue(b), 0, 0, false, true
	case at == TagInt && bt == TagFloat:
		return 0, 0, float64(h.IntValue(a)), h.FloatValue(b), true, true
	case at == TagFloat && bt == TagInt:
		return 0, 0, h.FloatValue(a), float64(h.IntValue(b)), true, true
	case at == TagFloat && bt == TagFloat:
		return 0, 0, h.FloatValue(a), h.FloatValue(b), true, true
	default:
		return 0, 0, 0, 0, false, false
	}
}

func numericBinary(intOp func(a, b int64) int64, floatOp func(a, b float64) float64) builtinImpl {
	return func(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
		h := ev.heap
		ai, bi, af, bf, isFloat, ok := numericPair(h, args[0], args[1])
		if !ok {
			return h.invalidFunctionArgs(args...), NilDeps()
		}
		if isFloat {
			return h.Float(floatOp(af, bf)), NilDeps()
		}
		return h.Int(intOp(ai, bi)), NilDeps()
	}
}

func divideImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	ai, bi, af, bf, isFloat, ok := numericPair(h, args[0], args[1])
	if !ok {
		return h.invalidFunctionArgs(args...), NilDeps()
	}
	if isFloat {
		return h.Float(af / bf), NilDeps()
	}
	if bi == 0 {
		return h.NewSignalOf(h.NewCondition("tangle::division_by_zero", args, h.Nil())), NilDeps()
	}
	return h.Int(ai / bi), NilDeps()
}

func remainderImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	if h.Tag(args[0]) != TagInt || h.Tag(args[1]) != TagInt {
		return h.invalidFunctionArgs(args...), NilDeps()
	}
	bi := h.IntValue(args[1])
	if bi == 0 {
		return h.NewSignalOf(h.NewCondition("tangle::division_by_zero", args, h.Nil())), NilDeps()
	}
	return h.Int(h.IntValue(args[0]) % bi), NilDeps()
}

func powImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	_, _, af, bf, _, ok := numericPair(h, args[0], args[1])
	if !ok {
		return h.invalidFunctionArgs(args...), NilDeps()
	}
	return h.Float(floatPow(af, bf)), NilDeps()
}

func absImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	switch h.Tag(args[0]) {
	case TagInt:
		v := h.IntValue(args[0])
		if v < 0 {
			v = -v
		}
		return h.Int(v), NilDeps()
	case TagFloat:
		v := h.FloatValue(args[0])
		if v < 0 {
			v = -v
		}
		return h.Float(v), NilDeps()
	default:
		return h.invalidFunctionArgs(args[0]), NilDeps()
	}
}

func eqImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	return ev.heap.Bool(ev.heap.Equals(args[0], args[1])), NilDeps()
}

// compareScalars returns -1/0/1 and ok=false if a and b are not
// comparable scalars (ints, floats, or strings of matching-enough type).
func compareScalars(h *Heap, a, b Address) (int, bool) {
	ai, bi, af, bf, isFloat, ok := numericPair(h, a, b)
	if ok {
		if isFloat {
			return floatCompare(af, bf), true
		}
		switch {
		case ai < bi:
			return -1, true
		case ai > bi:
			return 1, true
		default:
			return 0, true
		}
	}
	if h.Tag(a) == TagString && h.Tag(b) == TagString {
		sa, sb := h.StringValue(a), h.StringValue(b)
		switch {
		case sa < sb:
			return -1, true
		case sa > sb:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func comparisonImpl(pred func(cmp int) bool) builtinImpl {
	return func(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
		h := ev.heap
		cmp, ok := compareScalars(h, args[0], args[1])
		if !ok {
			return h.invalidFunctionArgs(args...), NilDeps()
		}
		return h.Bool(pred(cmp)), NilDeps()
	}
}

func andImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	if h.Tag(args[0]) != TagBool {
		return h.invalidFunctionArgs(args[0]), NilDeps()
	}
	if !h.BoolValue(args[0]) {
		return h.Bool(false), NilDeps()
	}
	rhs, deps := ev.reduce(args[1], state, steps)
	if h.Tag(rhs) == TagSignal {
		return rhs, deps
	}
	if h.Tag(rhs) != TagBool {
		return h.invalidFunctionArgs(rhs), deps
	}
	return rhs, deps
}

func orImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	if h.Tag(args[0]) != TagBool {
		return h.invalidFunctionArgs(args[0]), NilDeps()
	}
	if h.BoolValue(args[0]) {
		return h.Bool(true), NilDeps()
	}
	rhs, deps := ev.reduce(args[1], state, steps)
	if h.Tag(rhs) == TagSignal {
		return rhs, deps
	}
	if h.Tag(rhs) != TagBool {
		return h.invalidFunctionArgs(rhs), deps
	}
	return rhs, deps
}
