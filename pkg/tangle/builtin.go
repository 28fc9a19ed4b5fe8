package tangle

// BuiltinID names a primitive operator (spec.md §4.3). It is the payload
// of a Builtin term and the index into builtinTable.
type BuiltinID int

const (
	BuiltinAdd BuiltinID = iota
	BuiltinSubtract
	BuiltinMultiply
	BuiltinDivide
	BuiltinRemainder
	BuiltinPow
	BuiltinAbs
	BuiltinMax
	BuiltinMin
	BuiltinEq
	BuiltinLt
	BuiltinLte
	BuiltinGt
	BuiltinGte
	BuiltinAnd
	BuiltinOr

	BuiltinGet
	BuiltinHas
	BuiltinSet
	BuiltinIterate
	BuiltinCollectList
	BuiltinResolveList
	BuiltinResolveShallow
	BuiltinConstructList

	BuiltinIdentity
	BuiltinApply
	BuiltinThrow
	BuiltinNot
	BuiltinIsTruthy

	BuiltinResolveQueryBranch
	BuiltinResolveQueryLeaf

	BuiltinGetVariable
	BuiltinSetVariable
	BuiltinIncrementVariable
	BuiltinDecrementVariable
	BuiltinGetter
	BuiltinSetter
	BuiltinVariable

	BuiltinToRequest
	BuiltinScan
	BuiltinResolveLoaderResults

	builtinCount
)

// builtinImpl receives pre-reduced strict args and unreduced lazy args
// (per the builtin's strict mask), and returns a result term plus any
// dependencies it directly incurred (e.g. by reducing a lazy arg itself).
// It must never panic on a type mismatch — it returns an
// InvalidFunctionArgs Signal instead (spec.md §4.3 step 4, §4.6).
type builtinImpl func(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree)

type builtinDef struct {
	name   string
	arity  int // -1 = variadic (ConstructList); every other builtin is fixed-arity
	strict []bool
	impl   builtinImpl
}

var builtinTable [builtinCount]builtinDef

func registerBuiltin(id BuiltinID, name string, arity int, strict []bool, impl builtinImpl) {
	builtinTable[id] = builtinDef{name: name, arity: arity, strict: strict, impl: impl}
}

// NewBuiltin allocates a reference to a named builtin operator.
func (h *Heap) NewBuiltin(id BuiltinID) Address {
	addr := h.allocate(TagBuiltin)
	h.slots[addr] = slot{tag: TagBuiltin, builtinID: id}
	return h.init(addr)
}

func (h *Heap) BuiltinID(addr Address) BuiltinID {
	return h.slot(addr).builtinID
}

func (h *Heap) BuiltinName(addr Address) string {
	return builtinTable[h.slot(addr).builtinID].name
}

func (h *Heap) builtinArity(addr Address) (arity int, variadic bool, ok bool) {
	def := builtinTable[h.slot(addr).builtinID]
	if def.arity < 0 {
		return 0, true, true
	}
	return def.arity, false, true
}

// invalidFunctionArgs builds the Signal spec.md §4.3/§4.4 calls for when
// no overload matches: an InvalidFunctionArgsCondition (kind
// "tangle::invalid_args") carrying the offending terms as payload.
func (h *Heap) invalidFunctionArgs(payload ...Address) Address {
	cond := h.NewCondition("tangle::invalid_args", payload, h.Nil())
	return h.NewSignalOf(cond)
}

// applyBuiltin implements the strict/lazy dispatch protocol of spec.md
// §4.3: strict args are reduced first, short-circuiting to a unioned
// Signal if any of them is one; lazy args pass through unreduced; then
// the overload is invoked (here: a single Go implementation per builtin
// that type-switches internally — the idiomatic Go substitute for a
// literal per-tag overload table, per spec.md §9).
func (ev *Evaluator) applyBuiltin(fn Address, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	id := h.BuiltinID(fn)
	def := builtinTable[id]
	if def.impl == nil {
		return h.invalidFunctionArgs(fn), NilDeps()
	}
	if def.arity >= 0 && len(args) != def.arity {
		return h.invalidFunctionArgs(append([]Address{fn}, args...)...), NilDeps()
	}

	reduced := make([]Address, len(args))
	deps := NilDeps()
	var signalParts *Tree
	for i, a := range args {
		strict := true
		if i < len(def.strict) {
			strict = def.strict[i]
		}
		if !strict {
			reduced[i] = a
			continue
		}
		r, d := ev.reduce(a, state, steps)
		deps = deps.Union(h, d)
		if h.Tag(r) == TagSignal {
			signalParts = signalParts.Union(h, h.SignalConditions(r))
		}
		reduced[i] = r
	}
	if signalParts.Len() > 0 {
		return h.NewSignal(signalParts), deps
	}

	result, implDeps := def.impl(ev, reduced, state, steps)
	return result, deps.Union(h, implDeps)
}
