package tangle

func init() {
	registerBuiltin(BuiltinGet, "Get", 2, []bool{true, true}, getImpl)
	registerBuiltin(BuiltinHas, "Has", 2, []bool{true, true}, hasImpl)
	registerBuiltin(BuiltinSet, "Set", 3, []bool{true, true, true}, setImpl)
	registerBuiltin(BuiltinIterate, "Iterate", 1, []bool{true}, iterateImpl)
	registerBuiltin(BuiltinCollectList, "CollectList", 1, []bool{true}, collectListImpl)
	registerBuiltin(BuiltinResolveList, "ResolveList", 1, []bool{true}, resolveListImpl)
	registerBuiltin(BuiltinResolveShallow, "ResolveShallow", 1, []bool{true}, resolveShallowImpl)
	registerBuiltin(BuiltinConstructList, "ConstructList", -1, nil, constructListImpl)
}

// getImpl implements the Get overload set (spec.md §4.2 "Get"): Record by
// key, Hashmap by key, List by integer index. A missing key/out-of-range
// index yields Nil rather than a Signal — absence is a normal outcome, not
// a state dependency or a type error.
func getImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	coll, key := args[0], args[1]
	if h.Tag(coll) == TagList && h.Tag(key) != TagInt {
		return h.invalidFunctionArgs(coll, key), NilDeps()
	}
	if v, ok := h.fieldLookup(coll, key); ok {
		return v, NilDeps()
	}
	if !h.IsIterable(coll) && h.Tag(coll) != TagRecord && h.Tag(coll) != TagHashmap && h.Tag(coll) != TagHashset {
		return h.invalidFunctionArgs(coll, key), NilDeps()
	}
	return h.Nil(), NilDeps()
}

// fieldLookup is the shared Record/Hashmap/List key-or-index dispatch
// behind both the Get builtin and query resolution (spec.md §4.2 "Get",
// §4.4 query branch field lookup) — the two places a collection is
// indexed by an arbitrary term rather than iterated.
func (h *Heap) fieldLookup(coll, key Address) (Address, bool) {
	switch h.Tag(coll) {
	case TagRecord:
		return h.RecordGet(coll, key)
	case TagHashmap:
		return h.HashmapGet(coll, key)
	case TagList:
		if h.Tag(key) != TagInt {
			return NoAddress, false
		}
		return h.ListGet(coll, int(h.IntValue(key)))
	default:
		return NoAddress, false
	}
}

func hasImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	coll, key := args[0], args[1]
	switch h.Tag(coll) {
	case TagRecord:
		return h.Bool(h.RecordHas(coll, key)), NilDeps()
	case TagHashmap:
		return h.Bool(h.HashmapHas(coll, key)), NilDeps()
	case TagHashset:
		return h.Bool(h.HashsetHas(coll, key)), NilDeps()
	case TagList:
		if h.Tag(key) != TagInt {
			return h.invalidFunctionArgs(coll, key), NilDeps()
		}
		_, ok := h.ListGet(coll, int(h.IntValue(key)))
		return h.Bool(ok), NilDeps()
	default:
		return h.invalidFunctionArgs(coll, key), NilDeps()
	}
}

// setImpl implements the Set overload set: Record/Hashmap structural
// update by key, List structural update by index (spec.md §4.2 "Set").
func setImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	coll, key, value := args[0], args[1], args[2]
	switch h.Tag(coll) {
	case TagRecord:
		return h.RecordSet(coll, key, value), NilDeps()
	case TagHashmap:
		return h.HashmapSet(coll, key, value), NilDeps()
	case TagList:
		if h.Tag(key) != TagInt {
			return h.invalidFunctionArgs(coll, key, value), NilDeps()
		}
		if updated, ok := h.ListSet(coll, int(h.IntValue(key)), value); ok {
			return updated, NilDeps()
		}
		return h.invalidFunctionArgs(coll, key, value), NilDeps()
	default:
		return h.invalidFunctionArgs(coll, key, value), NilDeps()
	}
}

// iterateImpl normalizes any collection into a term IteratorFor can drive
// (spec.md §4.2 "Iterate"): Lists and iterator terms pass through as-is;
// Record and Hashmap become a List of [key, value] pairs; Hashset becomes
// a List of its members.
func iterateImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	coll := args[0]
	switch h.Tag(coll) {
	case TagList:
		return coll, NilDeps()
	case TagRecord:
		keys, values := h.RecordKeys(coll), h.RecordValues(coll)
		pairs := make([]Address, len(keys))
		for i := range keys {
			pairs[i] = h.NewList([]Address{keys[i], values[i]})
		}
		return h.NewList(pairs), NilDeps()
	case TagHashmap:
		keys, values := h.HashmapEntries(coll)
		pairs := make([]Address, len(keys))
		for i := range keys {
			pairs[i] = h.NewList([]Address{keys[i], values[i]})
		}
		return h.NewList(pairs), NilDeps()
	case TagHashset:
		return h.NewList(h.HashsetMembers(coll)), NilDeps()
	default:
		if isIteratorTag(h.Tag(coll)) {
			return coll, NilDeps()
		}
		return h.invalidFunctionArgs(coll), NilDeps()
	}
}

// collectListImpl materializes any iterable into a List without forcing
// its items (spec.md §4.2.1 "collect").
func collectListImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	if !h.IsIterable(args[0]) {
		return h.invalidFunctionArgs(args[0]), NilDeps()
	}
	return h.ListCollect(ev, h.IteratorFor(args[0]), state)
}

// resolveListImpl materializes any iterable into a List, forcing every
// item to weak head normal form; if any items become Signals, the result
// is one Signal combining all of them (spec.md §4.2.1 "collect_strict").
func resolveListImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	if !h.IsIterable(args[0]) {
		return h.invalidFunctionArgs(args[0]), NilDeps()
	}
	return h.ListCollectStrict(ev, h.IteratorFor(args[0]), state)
}

// resolveShallowImpl forces every direct item of a List to weak head
// normal form (but does not recurse into nested collections), otherwise
// returns its argument unchanged (it is already in weak head normal form
// by the time a builtin sees it, per the strict-argument protocol).
func resolveShallowImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	h := ev.heap
	v := args[0]
	if h.Tag(v) != TagList {
		return v, NilDeps()
	}
	items := h.ListItems(v)
	resolved := make([]Address, len(items))
	deps := NilDeps()
	var signal *Tree
	for i, item := range items {
		r, d := ev.Evaluate(item, state)
		deps = deps.Union(h, d)
		if h.Tag(r) == TagSignal {
			if signal == nil {
				signal = h.SignalConditions(r)
			} else {
				signal = signal.Union(h, h.SignalConditions(r))
			}
			continue
		}
		resolved[i] = r
	}
	if signal != nil {
		return h.NewSignal(signal), deps
	}
	return h.NewList(resolved), deps
}

func constructListImpl(ev *Evaluator, args []Address, state StateStore, steps *int) (Address, *Tree) {
	return ev.heap.NewList(append([]Address(nil), args...)), NilDeps()
}
