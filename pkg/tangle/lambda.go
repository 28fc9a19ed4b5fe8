package tangle

// NewVariable allocates a de Bruijn-indexed Variable (index 0 = innermost
// bound, spec.md §3).
func (h *Heap) NewVariable(index int) Address {
	addr := h.allocate(TagVariable)
	h.slots[addr] = slot{tag: TagVariable, intVal: int64(index)}
	return h.init(addr)
}

func (h *Heap) VariableIndex(addr Address) int {
	return int(h.slot(addr).intVal)
}

// NewLambda allocates a Lambda of the given arity over body, which may
// reference argument positions 0..arity-1 as Variables.
func (h *Heap) NewLambda(arity int, variadic bool, body Address) Address {
	addr := h.allocate(TagLambda)
	h.slots[addr] = slot{tag: TagLambda, arity: arity, variadic: variadic, fields: []Address{body}}
	return h.init(addr)
}

func (h *Heap) LambdaArity(addr Address) (arity int, variadic bool) {
	s := h.slot(addr)
	return s.arity, s.variadic
}

func (h *Heap) LambdaBody(addr Address) Address {
	return h.slot(addr).fields[0]
}

// NewApplication allocates an unevaluated call (spec.md §3 "Application").
func (h *Heap) NewApplication(fn Address, args []Address) Address {
	addr := h.allocate(TagApplication)
	fields := make([]Address, 0, len(args)+1)
	fields = append(fields, fn)
	fields = append(fields, args...)
	h.slots[addr] = slot{tag: TagApplication, fields: fields, length: len(fields)}
	return h.init(addr)
}

func (h *Heap) ApplicationFn(addr Address) Address    { return h.slot(addr).fields[0] }
func (h *Heap) ApplicationArgs(addr Address) []Address { return h.slot(addr).fields[1:] }

// NewPartial allocates a curried application: a function with some args
// already captured (spec.md §3 "Partial").
func (h *Heap) NewPartial(fn Address, captured []Address) Address {
	addr := h.allocate(TagPartial)
	fields := make([]Address, 0, len(captured)+1)
	fields = append(fields, fn)
	fields = append(fields, captured...)
	h.slots[addr] = slot{tag: TagPartial, fields: fields, length: len(fields)}
	return h.init(addr)
}

func (h *Heap) PartialFn(addr Address) Address        { return h.slot(addr).fields[0] }
func (h *Heap) PartialCaptured(addr Address) []Address { return h.slot(addr).fields[1:] }

// NewConstructor allocates a Constructor: an ordered field-name list that,
// applied, produces a Record (spec.md §3).
func (h *Heap) NewConstructor(keys []Address) Address {
	addr := h.allocate(TagConstructor)
	h.slots[addr] = slot{tag: TagConstructor, keys: keys, length: len(keys)}
	return h.init(addr)
}

func (h *Heap) ConstructorKeys(addr Address) []Address {
	return h.slot(addr).keys
}

// Arity reports a function term's (arity, variadic) for callers that need
// to validate argument counts before applying (spec.md §4.2.4 "Arity
// reports (arity, variadic_flag)").
func (h *Heap) Arity(fn Address) (arity int, variadic bool, ok bool) {
	switch h.Tag(fn) {
	case TagLambda:
		a, v := h.LambdaArity(fn)
		return a, v, true
	case TagPartial:
		a, v, ok := h.Arity(h.PartialFn(fn))
		if !ok {
			return 0, false, false
		}
		return a - len(h.PartialCaptured(fn)), v, true
	case TagConstructor:
		return len(h.ConstructorKeys(fn)), false, true
	case TagBuiltin:
		return h.builtinArity(fn)
	default:
		return 0, false, false
	}
}

// applyVariadic implements the variadic half of Apply: the last bound
// position (index arity-1) collects every argument from that position
// onward into a List, the common "rest parameter" convention (spec.md
// §4.2.4's Arity reports a variadic_flag but leaves the binding
// convention to the implementation). A variadic Lambda under-supplied
// even its fixed (non-rest) parameters still builds a Partial.
func (h *Heap) applyVariadic(fn Address, arity int, args []Address) Address {
	if arity == 0 {
		return h.substituteArgs(h.LambdaBody(fn), []Address{h.NewList(append([]Address(nil), args...))})
	}
	if len(args) < arity-1 {
		return h.NewPartial(fn, args)
	}
	fixed := args[:arity-1]
	restList := h.NewList(append([]Address(nil), args[arity-1:]...))
	used := append(append([]Address(nil), fixed...), restList)
	return h.substituteArgs(h.LambdaBody(fn), used)
}

// Apply dispatches fn against args (spec.md §4.2.4). The evaluator applies
// Builtins itself (builtin.go) and never passes one to Apply. Apply has no
// Builtin case: a Builtin fn (as a Map or Filter iterator may hold) falls
// to the default and yields a tangle::invalid_function_target Signal.
func (h *Heap) Apply(fn Address, args []Address) Address {
	switch h.Tag(fn) {
	case TagLambda:
		arity, variadic := h.LambdaArity(fn)
		if variadic {
			return h.applyVariadic(fn, arity, args)
		}
		if len(args) < arity {
			return h.NewPartial(fn, args)
		}
		used := args[:arity]
		rest := args[arity:]
		substituted := h.substituteArgs(h.LambdaBody(fn), used)
		if len(rest) == 0 {
			return substituted
		}
		return h.NewApplication(substituted, rest)
	case TagPartial:
		captured := h.PartialCaptured(fn)
		all := make([]Address, 0, len(captured)+len(args))
		all = append(all, captured...)
		all = append(all, args...)
		return h.Apply(h.PartialFn(fn), all)
	case TagConstructor:
		keys := h.ConstructorKeys(fn)
		if len(args) != len(keys) {
			return h.NewSignalOf(h.NewCondition("tangle::invalid_args", []Address{fn}, h.Nil()))
		}
		return h.NewRecord(keys, args)
	default:
		return h.NewSignalOf(h.NewCondition("tangle::invalid_function_target", []Address{fn}, h.Nil()))
	}
}
